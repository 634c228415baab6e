package felt_test

import (
	"encoding/json"
	"testing"

	"github.com/NethermindEth/probe/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	var f felt.Felt
	assert.Equal(t, "0x0", f.String())

	f.SetUint64(0xcafe)
	assert.Equal(t, "0xcafe", f.String())
	assert.Equal(t, "51966", f.Text(10))
}

func TestSetString(t *testing.T) {
	f, err := new(felt.Felt).SetString("0x4a1b")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x4a1b), f.Uint64())

	f, err = new(felt.Felt).SetString("19")
	require.NoError(t, err)
	assert.Equal(t, uint64(19), f.Uint64())

	_, err = new(felt.Felt).SetString("0x" + "f0" + "0x")
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	f, err := felt.ParseHex("0xabc298498723")
	require.NoError(t, err)

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `"0xabc298498723"`, string(data))

	var got felt.Felt
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, f.Equal(&got))

	// Numbers and decimal strings unmarshal too.
	require.NoError(t, json.Unmarshal([]byte(`123`), &got))
	assert.Equal(t, uint64(123), got.Uint64())
}

func TestUnmarshalJSONRejectsOutOfRange(t *testing.T) {
	var got felt.Felt
	err := json.Unmarshal([]byte(`"0x800000000000011000000000000000000000000000000000000000000000001"`), &got)
	assert.ErrorIs(t, err, felt.ErrOutOfRange)
}

func TestBytes(t *testing.T) {
	f, err := felt.ParseHex("0x1")
	require.NoError(t, err)

	b := f.Bytes()
	assert.Equal(t, byte(1), b[31])
	assert.True(t, new(felt.Felt).SetBytes(b[:]).Equal(f))
}
