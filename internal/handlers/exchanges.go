// internal/handlers/exchanges.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lojinha/inventory-be/internal/core/ports"
)

// ExchangesHandler handles exchange HTTP requests
type ExchangesHandler struct {
	exchanges ports.ExchangeManager
	logger    *slog.Logger
}

// NewExchangesHandler creates a new exchanges handler
func NewExchangesHandler(exchanges ports.ExchangeManager, logger *slog.Logger) *ExchangesHandler {
	return &ExchangesHandler{
		exchanges: exchanges,
		logger:    logger.With(slog.String("handler", "exchanges")),
	}
}

// CreateExchangeRequest is the payload for exchange creation
type CreateExchangeRequest struct {
	OriginalSaleID  string   `json:"original_sale_id"`
	CustomerName    string   `json:"customer_name"`
	ReturnedUnitIDs []string `json:"returned_unit_ids"`
	NewUnitIDs      []string `json:"new_unit_ids"`
	ExchangeDate    string   `json:"exchange_date,omitempty"`
}

// Validate checks the request fields
func (r *CreateExchangeRequest) Validate() error {
	if r.OriginalSaleID == "" {
		return fmt.Errorf("original_sale_id is required")
	}
	if len(r.ReturnedUnitIDs) == 0 {
		return fmt.Errorf("returned_unit_ids is required")
	}
	if len(r.NewUnitIDs) == 0 {
		return fmt.Errorf("new_unit_ids is required")
	}
	return nil
}

// ToParams converts the request into exchange creation parameters
func (r *CreateExchangeRequest) ToParams() (ports.CreateExchangeParams, error) {
	saleID, err := uuid.Parse(r.OriginalSaleID)
	if err != nil {
		return ports.CreateExchangeParams{}, fmt.Errorf("invalid original_sale_id")
	}

	params := ports.CreateExchangeParams{
		OriginalSaleID: saleID,
		CustomerName:   r.CustomerName,
	}
	for _, raw := range r.ReturnedUnitIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return params, fmt.Errorf("invalid returned unit id %q", raw)
		}
		params.ReturnedUnitIDs = append(params.ReturnedUnitIDs, id)
	}
	for _, raw := range r.NewUnitIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return params, fmt.Errorf("invalid new unit id %q", raw)
		}
		params.NewUnitIDs = append(params.NewUnitIDs, id)
	}
	if r.ExchangeDate != "" {
		date, err := time.Parse("2006-01-02", r.ExchangeDate)
		if err != nil {
			return params, fmt.Errorf("invalid exchange_date: %w", err)
		}
		params.ExchangeDate = date
	}
	return params, nil
}

// Create handles POST /api/v1/exchanges
func (h *ExchangesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.ToParams()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	exchange, err := h.exchanges.CreateExchange(ctx, params)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, exchange)
}

// Get handles GET /api/v1/exchanges/{id}
func (h *ExchangesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid exchange ID format")
		return
	}

	exchange, err := h.exchanges.GetExchange(ctx, id)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, exchange)
}
