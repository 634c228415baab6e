package crypto_test

import (
	"testing"

	"github.com/NethermindEth/probe/core/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector(t *testing.T) {
	tests := map[string]string{
		"transfer":    "0x83afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e",
		"balanceOf":   "0x2e4263afad30923c891518314c3c95dbe830a16874e8abc5777a9a20b54c76e",
		"__execute__": "0x15d40a3d6ca2ac30f4031e42be28da9b056fef9bb7357ac5e85627ee876e5ad",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := crypto.Selector(name)
			require.NoError(t, err)
			assert.Equal(t, want, got.String())
		})
	}
}

func TestSelectorRejectsNonASCII(t *testing.T) {
	_, err := crypto.Selector("transférer")
	assert.ErrorIs(t, err, crypto.ErrInvalidSelectorName)
}
