// internal/core/domain/option.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// FieldType identifies which categorical field an option belongs to.
type FieldType string

const (
	FieldSize          FieldType = "size"
	FieldColorPrint    FieldType = "color_print"
	FieldSupplier      FieldType = "supplier"
	FieldPaymentMethod FieldType = "payment_method"
)

// FieldTypes lists every valid field type, in display order.
func FieldTypes() []FieldType {
	return []FieldType{FieldSize, FieldColorPrint, FieldSupplier, FieldPaymentMethod}
}

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldSize, FieldColorPrint, FieldSupplier, FieldPaymentMethod:
		return true
	}
	return false
}

// FieldOption is a selectable categorical value. Options are never
// deleted; instead Active is toggled. Historical records store the
// option's value string at write time, so edits here never rewrite them.
type FieldOption struct {
	ID        uuid.UUID `json:"id"`
	Type      FieldType `json:"type"`
	Value     string    `json:"value"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
