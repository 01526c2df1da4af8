// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lojinha/inventory-be/internal/pkg/config"
)

// CleanupProcessor handles periodic housekeeping tasks
type CleanupProcessor struct {
	config *config.Config
	logger *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(config *config.Config, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		config: config,
		logger: logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupTempFiles removes stale upload files left behind by crashed or
// abandoned import jobs.
func (p *CleanupProcessor) CleanupTempFiles(ctx context.Context, t *asynq.Task) error {
	uploadDir := p.config.Import.UploadDir
	maxAge := 24 * time.Hour

	p.logger.InfoContext(ctx, "cleaning up stale upload files",
		slog.String("dir", uploadDir))

	var deletedCount int
	err := filepath.Walk(uploadDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				p.logger.WarnContext(ctx, "failed to delete upload file",
					slog.String("file", path),
					slog.String("error", err.Error()))
			} else {
				deletedCount++
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk upload directory: %w", err)
	}

	p.logger.InfoContext(ctx, "upload files cleaned up",
		slog.Int("deleted", deletedCount))

	return nil
}
