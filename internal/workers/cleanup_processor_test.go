package workers_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/inventory-be/internal/pkg/config"
	"github.com/lojinha/inventory-be/internal/workers"
	"github.com/lojinha/inventory-be/test/helpers"
)

func TestCleanupProcessor_CleanupTempFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "stale.csv")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(dir, "fresh.csv")
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0644))

	cfg := helpers.LoadTestConfig()
	cfg.Import.UploadDir = dir

	processor := workers.NewCleanupProcessor(cfg, helpers.TestLogger())
	task := asynq.NewTask(workers.TypeCleanupTempFiles, nil)
	require.NoError(t, processor.CleanupTempFiles(context.Background(), task))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestCleanupProcessor_MissingDir(t *testing.T) {
	cfg := &config.Config{}
	cfg.Import.UploadDir = filepath.Join(t.TempDir(), "does-not-exist")

	processor := workers.NewCleanupProcessor(cfg, helpers.TestLogger())
	task := asynq.NewTask(workers.TypeCleanupTempFiles, nil)

	err := processor.CleanupTempFiles(context.Background(), task)
	assert.Error(t, err)
}
