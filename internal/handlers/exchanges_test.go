package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/inventory-be/internal/core/domain"
)

func TestExchangesHandler_Create(t *testing.T) {
	app := newTestApp(t)
	sold := app.intake(t, 2)
	replacement := app.intake(t, 1)

	rec := app.request(t, http.MethodPost, "/api/v1/sales",
		createSaleBody(sold[0].ID.String(), sold[1].ID.String()))
	require.Equal(t, http.StatusCreated, rec.Code)
	var sale domain.SaleTransaction
	decodeBody(t, rec, &sale)

	rec = app.request(t, http.MethodPost, "/api/v1/exchanges", map[string]interface{}{
		"original_sale_id":  sale.ID.String(),
		"customer_name":     "Maria Silva",
		"returned_unit_ids": []string{sold[0].ID.String(), sold[1].ID.String()},
		"new_unit_ids":      []string{replacement[0].ID.String()},
		"exchange_date":     "2025-03-20",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var exchange domain.ExchangeTransaction
	decodeBody(t, rec, &exchange)

	// All units share the same 29.90 price: 29.90 - 59.80 = -29.90 refund.
	assert.True(t, exchange.PriceDifference.Equal(decimal.RequireFromString("-29.90")),
		"got %s", exchange.PriceDifference)
	assert.Len(t, exchange.ReturnedLines, 2)
	assert.Len(t, exchange.NewLines, 1)

	rec = app.request(t, http.MethodGet, "/api/v1/exchanges/"+exchange.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExchangesHandler_CreateValidation(t *testing.T) {
	app := newTestApp(t)
	sold := app.intake(t, 1)
	replacement := app.intake(t, 1)
	outsider := app.intake(t, 1)

	rec := app.request(t, http.MethodPost, "/api/v1/sales", createSaleBody(sold[0].ID.String()))
	require.Equal(t, http.StatusCreated, rec.Code)
	var sale domain.SaleTransaction
	decodeBody(t, rec, &sale)

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			name: "missing_returned_list",
			body: map[string]interface{}{
				"original_sale_id": sale.ID.String(),
				"new_unit_ids":     []string{replacement[0].ID.String()},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown_sale",
			body: map[string]interface{}{
				"original_sale_id":  uuid.NewString(),
				"returned_unit_ids": []string{sold[0].ID.String()},
				"new_unit_ids":      []string{replacement[0].ID.String()},
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "duplicate_across_lists",
			body: map[string]interface{}{
				"original_sale_id":  sale.ID.String(),
				"returned_unit_ids": []string{sold[0].ID.String()},
				"new_unit_ids":      []string{sold[0].ID.String()},
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "unit_outside_sale",
			body: map[string]interface{}{
				"original_sale_id":  sale.ID.String(),
				"returned_unit_ids": []string{outsider[0].ID.String()},
				"new_unit_ids":      []string{replacement[0].ID.String()},
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request(t, http.MethodPost, "/api/v1/exchanges", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestExchangesHandler_GetUnknown(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodGet, "/api/v1/exchanges/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
