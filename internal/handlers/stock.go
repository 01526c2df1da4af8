// internal/handlers/stock.go
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

// StockHandler handles stock unit HTTP requests
type StockHandler struct {
	ledger ports.Ledger
	logger *slog.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(ledger ports.Ledger, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		ledger: ledger,
		logger: logger.With(slog.String("handler", "stock")),
	}
}

// List handles GET /api/v1/stock. With ranked=true only available units
// are returned, each carrying its FIFO rank within its attribute group.
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := h.parseListParams(r)

	if ranked, _ := strconv.ParseBool(r.URL.Query().Get("ranked")); ranked {
		units, err := h.ledger.RankAvailable(ctx, params)
		if err != nil {
			respondDomainError(w, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"units": units,
			"count": len(units),
		})
		return
	}

	units, err := h.ledger.List(ctx, params)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"units": units,
		"count": len(units),
	})
}

// Get handles GET /api/v1/stock/{id}
func (h *StockHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid stock unit ID format")
		return
	}

	unit, err := h.ledger.Get(ctx, id)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, unit)
}

// IntakeRequest is the payload for stock intake
type IntakeRequest struct {
	Name         string `json:"name"`
	Gender       string `json:"gender"`
	Size         string `json:"size"`
	ColorPrint   string `json:"color_print"`
	Supplier     string `json:"supplier"`
	Cost         string `json:"cost"`
	RetailPrice  string `json:"retail_price"`
	Quantity     int    `json:"quantity"`
	PurchaseDate string `json:"purchase_date,omitempty"`
}

// Validate checks the request fields
func (r *IntakeRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Size == "" {
		return fmt.Errorf("size is required")
	}
	if r.ColorPrint == "" {
		return fmt.Errorf("color_print is required")
	}
	if r.Supplier == "" {
		return fmt.Errorf("supplier is required")
	}
	if r.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	return nil
}

// ToParams converts the request into intake parameters
func (r *IntakeRequest) ToParams() (ports.IntakeParams, error) {
	cost, err := decimal.NewFromString(r.Cost)
	if err != nil {
		return ports.IntakeParams{}, fmt.Errorf("invalid cost: %w", err)
	}
	price, err := decimal.NewFromString(r.RetailPrice)
	if err != nil {
		return ports.IntakeParams{}, fmt.Errorf("invalid retail_price: %w", err)
	}

	params := ports.IntakeParams{
		Name:        r.Name,
		Gender:      r.Gender,
		Size:        r.Size,
		ColorPrint:  r.ColorPrint,
		Supplier:    r.Supplier,
		Cost:        cost,
		RetailPrice: price,
		Quantity:    r.Quantity,
	}
	if r.PurchaseDate != "" {
		date, err := time.Parse("2006-01-02", r.PurchaseDate)
		if err != nil {
			return ports.IntakeParams{}, fmt.Errorf("invalid purchase_date: %w", err)
		}
		params.PurchaseDate = date
	}
	return params, nil
}

// Intake handles POST /api/v1/stock/intake
func (h *StockHandler) Intake(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req IntakeRequest
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

	units, err := h.ledger.Intake(ctx, params)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "stock intake",
		slog.String("name", req.Name),
		slog.Int("quantity", len(units)))

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"units": units,
		"count": len(units),
	})
}

func (h *StockHandler) parseListParams(r *http.Request) ports.UnitQueryParams {
	q := r.URL.Query()
	params := ports.UnitQueryParams{
		Status:     domain.UnitStatus(q.Get("status")),
		Name:       q.Get("name"),
		Gender:     q.Get("gender"),
		Size:       q.Get("size"),
		ColorPrint: q.Get("color_print"),
		Supplier:   q.Get("supplier"),
	}
	if v := q.Get("sale_id"); v != "" {
		if saleID, err := uuid.Parse(v); err == nil {
			params.SaleID = &saleID
		}
	}
	if v := q.Get("limit"); v != "" {
		params.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" {
		params.Offset, _ = strconv.Atoi(v)
	}
	return params
}
