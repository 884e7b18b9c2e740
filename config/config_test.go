package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should apply defaults when variables are unset", func(t *testing.T) {
		req := require.New(t)
		for _, key := range []string{"SERVER_PORT", "EVENT_MODE"} {
			t.Setenv(key, "")
			req.NoError(os.Unsetenv(key))
		}

		settings, err := Load()

		req.NoError(err)
		req.Equal("5000", settings.ServerPort)
		req.Equal("DISABLE", settings.EventMode)
	})

	t.Run("should read values from the environment", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("SERVER_PORT", "8088")
		t.Setenv("LOG_LEVEL", "DEBUG")

		settings, err := Load()

		req.NoError(err)
		req.Equal("8088", settings.ServerPort)
		req.Equal("DEBUG", settings.LogLevel)
		req.Equal("8088", Config("SERVER_PORT"))
	})
}
