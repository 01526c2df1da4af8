// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lojinha/inventory-be/internal/core/domain"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses.
// Non-domain errors become an opaque 500; the detail stays in the logs.
func respondDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var batchErr *domain.BatchError
	if errors.As(err, &batchErr) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":      "import rejected",
			"row_errors": batchErr.RowErrors,
			"truncated":  batchErr.Truncated,
		})
		return
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		respondJSON(w, statusForCode(domainErr.Code), domainErr)
		return
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict, domain.CodeDuplicateValue:
		return http.StatusConflict
	case domain.CodeInvalidOption, domain.CodeInvalidAmount, domain.CodeInvalidReturn:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
