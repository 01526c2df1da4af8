// internal/workers/import_processor.go
package workers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/tealeg/xlsx/v3"

	redis_a "github.com/lojinha/inventory-be/internal/adapters/redis_adapter"
	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

const (
	TypeSpreadsheetImport = "import:spreadsheet"
	TypeCleanupTempFiles  = "cleanup:temp_files"
)

// ImportJobPayload is the payload for spreadsheet import jobs
type ImportJobPayload struct {
	JobID    string `json:"job_id"`
	FilePath string `json:"file_path"`
	Format   string `json:"format"` // xlsx or csv
}

// ImportJobStatus is the redis-backed progress record polled by the API
type ImportJobStatus struct {
	JobID       string              `json:"job_id"`
	Status      string              `json:"status"` // queued, processing, completed, failed
	UnitCount   int                 `json:"unit_count,omitempty"`
	RowCount    int                 `json:"row_count,omitempty"`
	RowErrors   []string            `json:"row_errors,omitempty"`
	Error       string              `json:"error,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	Result      *ports.ImportResult `json:"result,omitempty"`
}

// ImportProcessor handles spreadsheet import tasks
type ImportProcessor struct {
	importer  ports.Importer
	cache     ports.CacheRepository
	statusTTL time.Duration
	logger    *slog.Logger
}

// NewImportProcessor creates a new spreadsheet import processor
func NewImportProcessor(importer ports.Importer, cache ports.CacheRepository, statusTTL time.Duration, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		importer:  importer,
		cache:     cache,
		statusTTL: statusTTL,
		logger:    logger.With(slog.String("processor", "import")),
	}
}

// ProcessSpreadsheet parses the uploaded file into rows and feeds them
// to the importer. Row-level validation failures are terminal: the job
// status records them and the task is not retried.
func (p *ImportProcessor) ProcessSpreadsheet(ctx context.Context, t *asynq.Task) error {
	var payload ImportJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "processing spreadsheet import",
		slog.String("job_id", payload.JobID),
		slog.String("file_path", payload.FilePath))

	p.setStatus(ctx, ImportJobStatus{JobID: payload.JobID, Status: "processing"})

	rows, err := p.parseFile(payload.FilePath, payload.Format)
	if err != nil {
		p.failJob(ctx, payload, fmt.Sprintf("failed to parse file: %v", err), nil)
		return fmt.Errorf("failed to parse file: %v: %w", err, asynq.SkipRetry)
	}

	result, err := p.importer.ImportRows(ctx, rows)
	if err != nil {
		var batchErr *domain.BatchError
		if errors.As(err, &batchErr) {
			p.failJob(ctx, payload, "import rejected", batchErr.RowErrors)
			return fmt.Errorf("import rejected: %w", asynq.SkipRetry)
		}
		// Storage errors may be transient; leave the file for the retry.
		p.setStatus(ctx, ImportJobStatus{
			JobID:  payload.JobID,
			Status: "failed",
			Error:  err.Error(),
		})
		return fmt.Errorf("import failed: %w", err)
	}

	p.removeTempFile(payload.FilePath)

	now := time.Now()
	p.setStatus(ctx, ImportJobStatus{
		JobID:       payload.JobID,
		Status:      "completed",
		UnitCount:   result.UnitCount,
		RowCount:    result.RowCount,
		CompletedAt: &now,
		Result:      result,
	})

	p.logger.InfoContext(ctx, "spreadsheet import completed",
		slog.String("job_id", payload.JobID),
		slog.Int("units", result.UnitCount))

	return nil
}

func (p *ImportProcessor) parseFile(path, format string) ([]ports.ImportRow, error) {
	switch format {
	case "csv":
		return parseCSVFile(path)
	default:
		return parseXLSXFile(path)
	}
}

func parseXLSXFile(path string) ([]ports.ImportRow, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	sheet := file.Sheets[0]
	var headers []string
	var rows []ports.ImportRow

	rowIdx := 0
	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		cells := make([]string, 0)
		_ = r.ForEachCell(func(c *xlsx.Cell) error {
			cells = append(cells, strings.TrimSpace(c.String()))
			return nil
		})

		if rowIdx == 0 {
			headers = cells
			rowIdx++
			return nil
		}
		rowIdx++

		if isBlank(cells) {
			return nil
		}
		rows = append(rows, rowFromCells(headers, cells))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}
	return rows, nil
}

func parseCSVFile(path string) ([]ports.ImportRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("csv file is empty")
	}

	headers := records[0]
	rows := make([]ports.ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		rows = append(rows, rowFromCells(headers, record))
	}
	return rows, nil
}

func rowFromCells(headers, cells []string) ports.ImportRow {
	row := make(ports.ImportRow, len(headers))
	for i, header := range headers {
		if header == "" {
			continue
		}
		if i < len(cells) {
			row[header] = cells[i]
		}
	}
	return row
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (p *ImportProcessor) failJob(ctx context.Context, payload ImportJobPayload, msg string, rowErrors []string) {
	p.removeTempFile(payload.FilePath)
	p.setStatus(ctx, ImportJobStatus{
		JobID:     payload.JobID,
		Status:    "failed",
		Error:     msg,
		RowErrors: rowErrors,
	})
}

func (p *ImportProcessor) setStatus(ctx context.Context, status ImportJobStatus) {
	key := redis_a.BuildKey(redis_a.PrefixImportJob, status.JobID)
	if err := p.cache.SetWithTTL(ctx, key, status, p.statusTTL); err != nil {
		p.logger.WarnContext(ctx, "failed to store job status",
			slog.String("job_id", status.JobID),
			slog.String("error", err.Error()))
	}
}

func (p *ImportProcessor) removeTempFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.logger.Warn("failed to remove temp file",
			slog.String("file", path),
			slog.String("error", err.Error()))
	}
}
