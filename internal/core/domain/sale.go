// internal/core/domain/sale.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the payment state of a sale.
type SaleStatus string

const (
	SalePending SaleStatus = "pending"
	SalePaid    SaleStatus = "paid"
)

// SaleLine is one unit inside a sale or exchange. All descriptive fields
// are copied from the unit at transaction time so later edits to units or
// field options never rewrite historical totals.
type SaleLine struct {
	UnitID      uuid.UUID       `json:"unit_id"`
	ProductName string          `json:"product_name"`
	Gender      string          `json:"gender"`
	Size        string          `json:"size"`
	ColorPrint  string          `json:"color_print"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineFromUnit snapshots a unit into a sale line at its current retail price.
func LineFromUnit(u *StockUnit) SaleLine {
	return SaleLine{
		UnitID:      u.ID,
		ProductName: u.Name,
		Gender:      u.Gender,
		Size:        u.Size,
		ColorPrint:  u.ColorPrint,
		UnitPrice:   u.RetailPrice,
	}
}

// SumLinePrices totals the snapshotted prices of a line list.
func SumLinePrices(lines []SaleLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice)
	}
	return total
}

// SaleTransaction is a single sale event. Every referenced unit moved
// Available→Sold atomically with the sale's creation.
type SaleTransaction struct {
	ID                uuid.UUID        `json:"id"`
	CustomerFirstName string           `json:"customer_first_name"`
	CustomerLastName  string           `json:"customer_last_name"`
	PaymentMethod     string           `json:"payment_method"`
	SaleDate          time.Time        `json:"sale_date"`
	Status            SaleStatus       `json:"status"`
	Lines             []SaleLine       `json:"lines"`
	PaidAmount        decimal.Decimal  `json:"paid_amount"`
	DiscountAmount    *decimal.Decimal `json:"discount_amount,omitempty"`
	DiscountPercent   *decimal.Decimal `json:"discount_percent,omitempty"`
	PaymentDate       *time.Time       `json:"payment_date,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Total is the sum of the line prices captured at sale time.
func (s *SaleTransaction) Total() decimal.Decimal {
	return SumLinePrices(s.Lines)
}

// HasUnit reports whether unitID is one of the sale's line items.
func (s *SaleTransaction) HasUnit(unitID uuid.UUID) bool {
	for _, l := range s.Lines {
		if l.UnitID == unitID {
			return true
		}
	}
	return false
}

// ApplyPayment settles the sale. The discount is derived from the gap
// between the original total and the paid amount, clamped to zero when
// the customer paid more than listed. Settling twice is a conflict.
func (s *SaleTransaction) ApplyPayment(paidAmount decimal.Decimal, paymentDate time.Time) error {
	if paidAmount.LessThanOrEqual(decimal.Zero) {
		return InvalidAmount("paid_amount", "paid amount must be greater than zero")
	}
	if s.Status == SalePaid {
		return Conflictf("sale %s is already paid", s.ID)
	}

	total := s.Total()
	discount := total.Sub(paidAmount)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	percent := decimal.Zero
	if total.GreaterThan(decimal.Zero) {
		percent = discount.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
	}

	s.Status = SalePaid
	s.PaidAmount = paidAmount
	s.DiscountAmount = &discount
	s.DiscountPercent = &percent
	s.PaymentDate = &paymentDate
	return nil
}
