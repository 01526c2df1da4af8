// internal/handlers/sales.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// SalesHandler handles sale HTTP requests
type SalesHandler struct {
	sales  ports.SaleManager
	logger *slog.Logger
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(sales ports.SaleManager, logger *slog.Logger) *SalesHandler {
	return &SalesHandler{
		sales:  sales,
		logger: logger.With(slog.String("handler", "sales")),
	}
}

// CreateSaleRequest is the payload for sale creation
type CreateSaleRequest struct {
	CustomerFirstName string   `json:"customer_first_name"`
	CustomerLastName  string   `json:"customer_last_name"`
	PaymentMethod     string   `json:"payment_method"`
	SaleDate          string   `json:"sale_date,omitempty"`
	UnitIDs           []string `json:"unit_ids"`
	Notes             string   `json:"notes,omitempty"`
}

// Validate checks the request fields
func (r *CreateSaleRequest) Validate() error {
	if r.PaymentMethod == "" {
		return fmt.Errorf("payment_method is required")
	}
	if len(r.UnitIDs) == 0 {
		return fmt.Errorf("unit_ids is required")
	}
	return nil
}

// ToParams converts the request into sale creation parameters
func (r *CreateSaleRequest) ToParams() (ports.CreateSaleParams, error) {
	params := ports.CreateSaleParams{
		CustomerFirstName: r.CustomerFirstName,
		CustomerLastName:  r.CustomerLastName,
		PaymentMethod:     r.PaymentMethod,
		Notes:             r.Notes,
	}
	for _, raw := range r.UnitIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return params, fmt.Errorf("invalid unit id %q", raw)
		}
		params.UnitIDs = append(params.UnitIDs, id)
	}
	if r.SaleDate != "" {
		date, err := time.Parse("2006-01-02", r.SaleDate)
		if err != nil {
			return params, fmt.Errorf("invalid sale_date: %w", err)
		}
		params.SaleDate = date
	}
	return params, nil
}

// Create handles POST /api/v1/sales
func (h *SalesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateSaleRequest
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

	sale, err := h.sales.CreateSale(ctx, params)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, sale)
}

// ConfirmPaymentRequest is the payload for payment confirmation
type ConfirmPaymentRequest struct {
	PaidAmount  string `json:"paid_amount"`
	PaymentDate string `json:"payment_date,omitempty"`
}

// ConfirmPayment handles POST /api/v1/sales/{id}/payment
func (h *SalesHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	saleID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	var req ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	paid, err := decimal.NewFromString(req.PaidAmount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid paid_amount")
		return
	}

	params := ports.ConfirmPaymentParams{PaidAmount: paid}
	if req.PaymentDate != "" {
		date, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid payment_date")
			return
		}
		params.PaymentDate = date
	}

	sale, err := h.sales.ConfirmPayment(ctx, saleID, params)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, sale)
}

// Get handles GET /api/v1/sales/{id}
func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	saleID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	sale, err := h.sales.GetSale(ctx, saleID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, sale)
}

// List handles GET /api/v1/sales
func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	params := ports.SaleQueryParams{
		Status:   domain.SaleStatus(q.Get("status")),
		Customer: q.Get("customer"),
	}
	if v := q.Get("limit"); v != "" {
		params.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" {
		params.Offset, _ = strconv.Atoi(v)
	}

	sales, err := h.sales.ListSales(ctx, params)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sales": sales,
		"count": len(sales),
	})
}
