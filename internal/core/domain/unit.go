// internal/core/domain/unit.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitStatus represents the lifecycle state of a stock unit.
type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitReserved  UnitStatus = "reserved"
	UnitSold      UnitStatus = "sold"
	UnitReturned  UnitStatus = "returned"
)

// Valid reports whether s is a known unit status.
func (s UnitStatus) Valid() bool {
	switch s {
	case UnitAvailable, UnitReserved, UnitSold, UnitReturned:
		return true
	}
	return false
}

// StockUnit is one physical item. Quantity is always exactly one:
// multi-quantity intake expands into sibling units at creation time.
// Units are never hard-deleted once sold.
//
// IDs are UUIDv7, so lexicographic id order matches intake order and
// serves as the deterministic FIFO tie-breaker for equal purchase dates.
type StockUnit struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Gender       string          `json:"gender"`
	Size         string          `json:"size"`
	ColorPrint   string          `json:"color_print"`
	Supplier     string          `json:"supplier"`
	Cost         decimal.Decimal `json:"cost"`
	RetailPrice  decimal.Decimal `json:"retail_price"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Status       UnitStatus      `json:"status"`
	SaleID       *uuid.UUID      `json:"sale_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the stock unit.
func (u *StockUnit) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(u.Size) == "" {
		return fmt.Errorf("size is required")
	}
	if strings.TrimSpace(u.ColorPrint) == "" {
		return fmt.Errorf("color_print is required")
	}
	if strings.TrimSpace(u.Supplier) == "" {
		return fmt.Errorf("supplier is required")
	}
	if u.Cost.IsNegative() {
		return fmt.Errorf("cost cannot be negative")
	}
	if u.RetailPrice.IsNegative() {
		return fmt.Errorf("retail_price cannot be negative")
	}
	if u.PurchaseDate.IsZero() {
		return fmt.Errorf("purchase_date is required")
	}
	if !u.Status.Valid() {
		return fmt.Errorf("invalid status %q", u.Status)
	}
	return nil
}

// AttributeKey groups units that are interchangeable for FIFO ranking:
// same product name, gender, size and color/print.
func (u *StockUnit) AttributeKey() string {
	return u.Name + "\x1f" + u.Gender + "\x1f" + u.Size + "\x1f" + u.ColorPrint
}

// Sellable reports whether the unit can enter a sale.
func (u *StockUnit) Sellable() bool {
	return u.Status == UnitAvailable
}
