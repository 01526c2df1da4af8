// internal/core/ports/repositories.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lojinha/inventory-be/internal/core/domain"
)

// OptionRepository is the persistence port for field options.
// Find methods return (nil, nil) when nothing matches.
type OptionRepository interface {
	Save(ctx context.Context, option *domain.FieldOption) error
	Update(ctx context.Context, option *domain.FieldOption) error
	// Delete removes an option row. Only the bulk importer uses this, to
	// compensate options it auto-created inside a batch that then failed;
	// user-facing lifecycle is deactivation, never deletion.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FieldOption, error)
	FindActiveByValue(ctx context.Context, fieldType domain.FieldType, value string) (*domain.FieldOption, error)
	FindAll(ctx context.Context, fieldType domain.FieldType, includeInactive bool) ([]domain.FieldOption, error)
}

// StatusTransition describes a compare-and-set move of one unit's status.
// The transition succeeds only if the unit's current status is in From;
// otherwise the repository returns a Conflict domain error. This is the
// single-writer-per-unit discipline: of two racing writers exactly one
// observes its precondition.
type StatusTransition struct {
	From []domain.UnitStatus
	To   domain.UnitStatus
	// FromSaleID additionally guards the transition on the unit's
	// current sale link; a unit meanwhile re-sold under another
	// transaction no longer matches.
	FromSaleID  *uuid.UUID
	SaleID      *uuid.UUID
	ClearSaleID bool
	// PurchaseDate resets the unit's FIFO date when set; left nil the
	// original date is preserved (the default policy for returns).
	PurchaseDate *time.Time
}

// UnitQueryParams filters unit listings.
type UnitQueryParams struct {
	Status     domain.UnitStatus
	Name       string
	Gender     string
	Size       string
	ColorPrint string
	Supplier   string
	SaleID     *uuid.UUID
	Limit      int
	Offset     int
}

// UnitRepository is the persistence port for stock units.
type UnitRepository interface {
	SaveBatch(ctx context.Context, units []domain.StockUnit) error
	// DeleteBatch removes unsold units; used only for import compensation.
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StockUnit, error)
	FindAll(ctx context.Context, params UnitQueryParams) ([]domain.StockUnit, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, t StatusTransition) (*domain.StockUnit, error)
}

// SaleQueryParams filters sale listings.
type SaleQueryParams struct {
	Status   domain.SaleStatus
	Customer string
	Limit    int
	Offset   int
}

// SaleRepository is the persistence port for sale transactions.
type SaleRepository interface {
	Save(ctx context.Context, sale *domain.SaleTransaction) error
	Update(ctx context.Context, sale *domain.SaleTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.SaleTransaction, error)
	FindAll(ctx context.Context, params SaleQueryParams) ([]domain.SaleTransaction, error)
}

// ExchangeRepository is the persistence port for exchange transactions.
type ExchangeRepository interface {
	Save(ctx context.Context, exchange *domain.ExchangeTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ExchangeTransaction, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]domain.ExchangeTransaction, error)
}
