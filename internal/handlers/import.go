// internal/handlers/import.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/lojinha/inventory-be/internal/adapters/redis_adapter"
	"github.com/lojinha/inventory-be/internal/core/ports"
	"github.com/lojinha/inventory-be/internal/workers"
)

// ImportHandler handles bulk import operations
type ImportHandler struct {
	importer    ports.Importer
	asynqClient *asynq.Client
	cache       ports.CacheRepository
	logger      *slog.Logger
	maxFileSize int64
	uploadDir   string
}

// NewImportHandler creates a new import handler
func NewImportHandler(importer ports.Importer, asynqClient *asynq.Client, cache ports.CacheRepository, logger *slog.Logger, maxFileSize int64, uploadDir string) *ImportHandler {
	return &ImportHandler{
		importer:    importer,
		asynqClient: asynqClient,
		cache:       cache,
		logger:      logger.With(slog.String("handler", "import")),
		maxFileSize: maxFileSize,
		uploadDir:   uploadDir,
	}
}

// ImportRowsRequest is the payload for synchronous JSON imports
type ImportRowsRequest struct {
	Rows []ports.ImportRow `json:"rows"`
}

// ImportRows handles POST /api/v1/import. The batch is validated and
// persisted synchronously, all-or-nothing.
func (h *ImportHandler) ImportRows(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ImportRowsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Rows) == 0 {
		respondError(w, http.StatusBadRequest, "rows is required")
		return
	}

	result, err := h.importer.ImportRows(ctx, req.Rows)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "bulk import completed",
		slog.Int("rows", result.RowCount),
		slog.Int("units", result.UnitCount))

	respondJSON(w, http.StatusCreated, result)
}

// ImportSpreadsheet handles POST /api/v1/import/spreadsheet. The file is
// saved to the upload directory and processed by a background worker;
// the response carries the job id to poll.
func (h *ImportHandler) ImportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	format, err := spreadsheetFormat(header.Filename)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		h.logger.ErrorContext(ctx, "failed to create upload directory",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to prepare upload")
		return
	}

	tempFile := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), header.Filename))
	dst, err := os.Create(tempFile)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create temp file",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to save file",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	jobID := uuid.New().String()
	payload := workers.ImportJobPayload{
		JobID:    jobID,
		FilePath: tempFile,
		Format:   format,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		os.Remove(tempFile)
		respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	task := asynq.NewTask(workers.TypeSpreadsheetImport, b)
	info, err := h.asynqClient.Enqueue(task,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour))
	if err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to enqueue task",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	status := workers.ImportJobStatus{JobID: jobID, Status: "queued"}
	key := redis_a.BuildKey(redis_a.PrefixImportJob, jobID)
	if err := h.cache.SetWithTTL(ctx, key, status, 24*time.Hour); err != nil {
		h.logger.WarnContext(ctx, "failed to store initial job status",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
	}

	h.logger.InfoContext(ctx, "spreadsheet import queued",
		slog.String("job_id", jobID),
		slog.String("task_id", info.ID),
		slog.String("format", format))

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":  jobID,
		"status":  "queued",
		"message": "Spreadsheet import has been queued for processing",
	})
}

// JobStatus handles GET /api/v1/import/status/{jobId}
func (h *ImportHandler) JobStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jobID := r.PathValue("jobId")
	if jobID == "" {
		respondError(w, http.StatusBadRequest, "job id is required")
		return
	}

	var status workers.ImportJobStatus
	key := redis_a.BuildKey(redis_a.PrefixImportJob, jobID)
	if err := h.cache.Get(ctx, key, &status); err != nil {
		if errors.Is(err, redis_a.ErrCacheMiss) {
			respondError(w, http.StatusNotFound, "Import job not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to fetch job status",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to fetch job status")
		return
	}

	respondJSON(w, http.StatusOK, status)
}

func spreadsheetFormat(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return "xlsx", nil
	case ".csv":
		return "csv", nil
	default:
		return "", fmt.Errorf("only .xlsx and .csv files are supported")
	}
}
