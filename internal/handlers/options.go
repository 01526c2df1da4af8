// internal/handlers/options.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// OptionsHandler handles field option HTTP requests
type OptionsHandler struct {
	registry ports.OptionRegistry
	logger   *slog.Logger
}

// NewOptionsHandler creates a new options handler
func NewOptionsHandler(registry ports.OptionRegistry, logger *slog.Logger) *OptionsHandler {
	return &OptionsHandler{
		registry: registry,
		logger:   logger.With(slog.String("handler", "options")),
	}
}

// List handles GET /api/v1/options
func (h *OptionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fieldType := domain.FieldType(r.URL.Query().Get("type"))
	if fieldType == "" {
		respondError(w, http.StatusBadRequest, "query parameter 'type' is required")
		return
	}

	includeInactive := false
	if v := r.URL.Query().Get("include_inactive"); v != "" {
		includeInactive, _ = strconv.ParseBool(v)
	}

	options, err := h.registry.ListOptions(ctx, fieldType, includeInactive)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"type":    fieldType,
		"options": options,
	})
}

// AddOptionRequest is the payload for option creation
type AddOptionRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Validate checks the request fields
func (r *AddOptionRequest) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("type is required")
	}
	if r.Value == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// Create handles POST /api/v1/options
func (h *OptionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	option, err := h.registry.AddOption(ctx, domain.FieldType(req.Type), req.Value)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, option)
}

// UpdateOptionRequest is the payload for option lifecycle or rename
// updates. Exactly one of Active or Value must be supplied.
type UpdateOptionRequest struct {
	Active *bool   `json:"active,omitempty"`
	Value  *string `json:"value,omitempty"`
}

// Update handles PATCH /api/v1/options/{id}
func (h *OptionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid option ID format")
		return
	}

	var req UpdateOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if (req.Active == nil) == (req.Value == nil) {
		respondError(w, http.StatusBadRequest, "exactly one of 'active' or 'value' must be provided")
		return
	}

	var option *domain.FieldOption
	if req.Active != nil {
		option, err = h.registry.SetActive(ctx, id, *req.Active)
	} else {
		option, err = h.registry.EditValue(ctx, id, *req.Value)
	}
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, option)
}
