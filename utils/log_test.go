package utils_test

import (
	"strings"
	"testing"

	"github.com/NethermindEth/probe/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var levelStrings = map[utils.LogLevel]string{
	utils.DEBUG: "debug",
	utils.INFO:  "info",
	utils.WARN:  "warn",
	utils.ERROR: "error",
}

func TestLogLevelString(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("level "+str, func(t *testing.T) {
			assert.Equal(t, str, level.String())
		})
	}
}

func TestLogLevelSet(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("level "+str, func(t *testing.T) {
			l := new(utils.LogLevel)
			require.NoError(t, l.Set(str))
			assert.Equal(t, level, *l)
		})
		uppercase := strings.ToUpper(str)
		t.Run("level "+uppercase, func(t *testing.T) {
			l := new(utils.LogLevel)
			require.NoError(t, l.Set(uppercase))
			assert.Equal(t, level, *l)
		})
	}

	t.Run("unknown log level", func(t *testing.T) {
		l := new(utils.LogLevel)
		require.ErrorIs(t, l.Set("blah"), utils.ErrUnknownLogLevel)
	})
}

func TestLogLevelUnmarshalText(t *testing.T) {
	l := new(utils.LogLevel)
	require.NoError(t, l.UnmarshalText([]byte("warn")))
	assert.Equal(t, utils.WARN, *l)
}

func TestNewZapLogger(t *testing.T) {
	log, err := utils.NewZapLogger(utils.INFO, false)
	require.NoError(t, err)
	assert.NotNil(t, log)
}
