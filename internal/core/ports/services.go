// internal/core/ports/services.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojinha/inventory-be/internal/core/domain"
)

// OptionRegistry owns the selectable categorical values and their
// active/inactive lifecycle.
type OptionRegistry interface {
	AddOption(ctx context.Context, fieldType domain.FieldType, value string) (*domain.FieldOption, error)
	ListOptions(ctx context.Context, fieldType domain.FieldType, includeInactive bool) ([]domain.FieldOption, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.FieldOption, error)
	EditValue(ctx context.Context, id uuid.UUID, newValue string) (*domain.FieldOption, error)
	// ValidateSelection fails with InvalidOption when value is not an
	// active option of the given type.
	ValidateSelection(ctx context.Context, fieldType domain.FieldType, value string) error
}

// IntakeParams describes one product entering stock. Quantity > 1 is
// expanded into that many independent units sharing PurchaseDate.
type IntakeParams struct {
	Name         string
	Gender       string
	Size         string
	ColorPrint   string
	Supplier     string
	Cost         decimal.Decimal
	RetailPrice  decimal.Decimal
	Quantity     int
	PurchaseDate time.Time
}

// Ledger owns the canonical set of stock units and their transitions.
type Ledger interface {
	Intake(ctx context.Context, params IntakeParams) ([]domain.StockUnit, error)
	Reserve(ctx context.Context, unitID, saleID uuid.UUID) (*domain.StockUnit, error)
	MarkSold(ctx context.Context, unitID, saleID uuid.UUID) (*domain.StockUnit, error)
	MarkReturned(ctx context.Context, unitID uuid.UUID) (*domain.StockUnit, error)
	// ReturnFromSale is MarkReturned guarded on the selling transaction:
	// it fails with InvalidReturn when the unit is no longer sold under
	// saleID, including a unit meanwhile re-sold elsewhere.
	ReturnFromSale(ctx context.Context, unitID, saleID uuid.UUID) (*domain.StockUnit, error)
	// Release undoes a reservation (Reserved→Available); sale creation
	// uses it for compensating rollback.
	Release(ctx context.Context, unitID uuid.UUID) (*domain.StockUnit, error)
	// UndoSale reverts a unit sold within a failed transaction back to
	// available. Unlike MarkReturned it never restamps the FIFO date:
	// the sale never happened, so the unit keeps its place in the queue.
	UndoSale(ctx context.Context, unitID uuid.UUID) (*domain.StockUnit, error)
	Get(ctx context.Context, unitID uuid.UUID) (*domain.StockUnit, error)
	List(ctx context.Context, params UnitQueryParams) ([]domain.StockUnit, error)
	// RankAvailable ranks the available units FIFO-wise, per attribute group.
	RankAvailable(ctx context.Context, params UnitQueryParams) ([]domain.RankedUnit, error)
}

// CreateSaleParams carries the inputs of a sale creation.
type CreateSaleParams struct {
	CustomerFirstName string
	CustomerLastName  string
	PaymentMethod     string
	SaleDate          time.Time
	UnitIDs           []uuid.UUID
	Notes             string
}

// ConfirmPaymentParams carries the inputs of a payment confirmation.
type ConfirmPaymentParams struct {
	PaidAmount  decimal.Decimal
	PaymentDate time.Time
}

// SaleManager creates and settles sale transactions.
type SaleManager interface {
	CreateSale(ctx context.Context, params CreateSaleParams) (*domain.SaleTransaction, error)
	ConfirmPayment(ctx context.Context, saleID uuid.UUID, params ConfirmPaymentParams) (*domain.SaleTransaction, error)
	GetSale(ctx context.Context, saleID uuid.UUID) (*domain.SaleTransaction, error)
	ListSales(ctx context.Context, params SaleQueryParams) ([]domain.SaleTransaction, error)
}

// CreateExchangeParams carries the inputs of an exchange.
type CreateExchangeParams struct {
	OriginalSaleID  uuid.UUID
	CustomerName    string
	ReturnedUnitIDs []uuid.UUID
	NewUnitIDs      []uuid.UUID
	ExchangeDate    time.Time
}

// ExchangeManager reconciles prior sales.
type ExchangeManager interface {
	CreateExchange(ctx context.Context, params CreateExchangeParams) (*domain.ExchangeTransaction, error)
	GetExchange(ctx context.Context, id uuid.UUID) (*domain.ExchangeTransaction, error)
}

// ImportRow is one spreadsheet row with its original (heterogeneous)
// column names; the importer normalizes them to the canonical attrs.
type ImportRow map[string]string

// ImportResult reports a successful bulk import.
type ImportResult struct {
	Units          []domain.StockUnit            `json:"units"`
	UnitCount      int                           `json:"unit_count"`
	RowCount       int                           `json:"row_count"`
	CreatedOptions map[domain.FieldType][]string `json:"created_options"`
}

// Importer ingests batches of product rows, all-or-nothing.
type Importer interface {
	ImportRows(ctx context.Context, rows []ImportRow) (*ImportResult, error)
}
