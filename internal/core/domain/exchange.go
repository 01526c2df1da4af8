// internal/core/domain/exchange.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeTransaction reconciles one prior sale: units come back to the
// ledger, replacement units go out, and the monetary gap is settled.
// Line prices are snapshots, so the difference stays reproducible from
// the stored lists no matter how unit prices are edited later.
type ExchangeTransaction struct {
	ID              uuid.UUID       `json:"id"`
	OriginalSaleID  uuid.UUID       `json:"original_sale_id"`
	CustomerName    string          `json:"customer_name"`
	ReturnedLines   []SaleLine      `json:"returned_lines"`
	NewLines        []SaleLine      `json:"new_lines"`
	PriceDifference decimal.Decimal `json:"price_difference"`
	ExchangeDate    time.Time       `json:"exchange_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PriceDifference computes sum(new prices) − sum(returned prices).
// Positive means the customer owes the difference, negative a refund.
func PriceDifference(newLines, returnedLines []SaleLine) decimal.Decimal {
	return SumLinePrices(newLines).Sub(SumLinePrices(returnedLines))
}
