package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("production respects level", func(t *testing.T) {
		log, err := New(config.Log{Env: "production", Level: "warn"})
		require.NoError(t, err)

		assert.False(t, log.Core().Enabled(zap.InfoLevel))
		assert.True(t, log.Core().Enabled(zap.WarnLevel))
	})

	t.Run("development defaults to debug", func(t *testing.T) {
		log, err := New(config.Log{Env: "development"})
		require.NoError(t, err)

		assert.True(t, log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(config.Log{Env: "production", Level: "loud"})
		assert.Error(t, err)
	})
}
