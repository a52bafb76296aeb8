package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "madinah-tasks.db"), TasksDBPath(filepath.Join("data", "madinah.db")))
	assert.Equal(t, "prefs-tasks", TasksDBPath("prefs"))
}

func TestNewClient_CreatesQueueDatabaseNextToMain(t *testing.T) {
	dir := t.TempDir()

	client, err := NewClient(filepath.Join(dir, "madinah.db"), DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "madinah-tasks.db"))
	assert.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestNewClient_ReopensExistingSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "madinah.db")

	first, err := NewClient(dbPath, DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewClient(dbPath, DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}

func TestClientStartStop(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	client, err := NewClient(dbPath, DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, client.Stop(stopCtx))
}

func TestClientStopWithoutStart(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, client.Stop(context.Background()))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 5*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}
