// internal/core/services/ledger.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// LedgerConfig tunes unit lifecycle behavior.
type LedgerConfig struct {
	// ResetReturnedFIFODate moves a returned unit to the back of the
	// FIFO queue by stamping it with the return date. When false the
	// unit keeps its original purchase date and its original queue slot.
	ResetReturnedFIFODate bool
}

// Ledger tracks every physical stock unit as an individual record and
// drives its status lifecycle through compare-and-set transitions.
type Ledger struct {
	units    ports.UnitRepository
	registry ports.OptionRegistry
	cfg      LedgerConfig
	logger   *slog.Logger
}

var _ ports.Ledger = (*Ledger)(nil)

// NewLedger creates a new stock unit ledger service.
func NewLedger(units ports.UnitRepository, registry ports.OptionRegistry, cfg LedgerConfig, logger *slog.Logger) *Ledger {
	return &Ledger{
		units:    units,
		registry: registry,
		cfg:      cfg,
		logger:   logger.With(slog.String("service", "ledger")),
	}
}

// Intake registers quantity identical physical units as separate records.
// Each unit gets a UUIDv7 id, so id order within a purchase date matches
// intake order and the FIFO tie-break stays deterministic.
func (s *Ledger) Intake(ctx context.Context, params ports.IntakeParams) ([]domain.StockUnit, error) {
	if params.Quantity < 1 {
		return nil, domain.InvalidAmount("quantity", "quantity must be at least 1")
	}
	if err := s.validateAttributes(ctx, params); err != nil {
		return nil, err
	}

	purchaseDate := params.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	now := time.Now()
	units := make([]domain.StockUnit, 0, params.Quantity)
	for i := 0; i < params.Quantity; i++ {
		unit := domain.StockUnit{
			ID:           uuid.Must(uuid.NewV7()),
			Name:         params.Name,
			Gender:       params.Gender,
			Size:         params.Size,
			ColorPrint:   params.ColorPrint,
			Supplier:     params.Supplier,
			Cost:         params.Cost,
			RetailPrice:  params.RetailPrice,
			PurchaseDate: purchaseDate,
			Status:       domain.UnitAvailable,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := unit.Validate(); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	if err := s.units.SaveBatch(ctx, units); err != nil {
		return nil, fmt.Errorf("failed to save stock units: %w", err)
	}

	s.logger.InfoContext(ctx, "stock intake recorded",
		slog.String("name", params.Name),
		slog.Int("quantity", params.Quantity))

	return units, nil
}

func (s *Ledger) validateAttributes(ctx context.Context, params ports.IntakeParams) error {
	if err := s.registry.ValidateSelection(ctx, domain.FieldSize, params.Size); err != nil {
		return err
	}
	if err := s.registry.ValidateSelection(ctx, domain.FieldColorPrint, params.ColorPrint); err != nil {
		return err
	}
	if err := s.registry.ValidateSelection(ctx, domain.FieldSupplier, params.Supplier); err != nil {
		return err
	}
	return nil
}

// Reserve moves an available unit into the reserved state for a pending
// sale. A unit already reserved or sold yields a conflict.
func (s *Ledger) Reserve(ctx context.Context, unitID, saleID uuid.UUID) (*domain.StockUnit, error) {
	return s.units.UpdateStatus(ctx, unitID, ports.StatusTransition{
		From:   []domain.UnitStatus{domain.UnitAvailable},
		To:     domain.UnitReserved,
		SaleID: &saleID,
	})
}

// MarkSold finalizes a unit into the sold state. Both reserved and
// available units qualify so a sale can be recorded without a prior
// reservation step.
func (s *Ledger) MarkSold(ctx context.Context, unitID, saleID uuid.UUID) (*domain.StockUnit, error) {
	return s.units.UpdateStatus(ctx, unitID, ports.StatusTransition{
		From:   []domain.UnitStatus{domain.UnitReserved, domain.UnitAvailable},
		To:     domain.UnitSold,
		SaleID: &saleID,
	})
}

// MarkReturned puts a sold unit back into circulation. The sale link is
// cleared. The purchase date is only restamped when the configured
// policy pushes returned units to the back of the FIFO queue.
func (s *Ledger) MarkReturned(ctx context.Context, unitID uuid.UUID) (*domain.StockUnit, error) {
	transition := ports.StatusTransition{
		From:        []domain.UnitStatus{domain.UnitSold},
		To:          domain.UnitAvailable,
		ClearSaleID: true,
	}
	if s.cfg.ResetReturnedFIFODate {
		now := time.Now()
		transition.PurchaseDate = &now
	}
	return s.units.UpdateStatus(ctx, unitID, transition)
}

// ReturnFromSale puts a sold unit back into circulation only while it is
// still sold under saleID. A unit that was returned and re-sold under a
// later transaction no longer qualifies: crediting it against the old
// sale again would double-refund the customer and strip the unit out of
// the newer sale.
func (s *Ledger) ReturnFromSale(ctx context.Context, unitID, saleID uuid.UUID) (*domain.StockUnit, error) {
	transition := ports.StatusTransition{
		From:        []domain.UnitStatus{domain.UnitSold},
		To:          domain.UnitAvailable,
		FromSaleID:  &saleID,
		ClearSaleID: true,
	}
	if s.cfg.ResetReturnedFIFODate {
		now := time.Now()
		transition.PurchaseDate = &now
	}
	unit, err := s.units.UpdateStatus(ctx, unitID, transition)
	if err != nil {
		if domain.IsConflict(err) {
			return nil, domain.InvalidReturn(unitID.String(), "unit is no longer sold under the referenced sale")
		}
		return nil, err
	}
	return unit, nil
}

// Release undoes a reservation, used when a sale fails partway through.
func (s *Ledger) Release(ctx context.Context, unitID uuid.UUID) (*domain.StockUnit, error) {
	return s.units.UpdateStatus(ctx, unitID, ports.StatusTransition{
		From:        []domain.UnitStatus{domain.UnitReserved},
		To:          domain.UnitAvailable,
		ClearSaleID: true,
	})
}

// UndoSale reverts a sold unit to available after the transaction that
// sold it failed partway through. The purchase date is always kept: the
// unit was never really sold, so it must not move in the FIFO queue
// regardless of the configured return policy.
func (s *Ledger) UndoSale(ctx context.Context, unitID uuid.UUID) (*domain.StockUnit, error) {
	return s.units.UpdateStatus(ctx, unitID, ports.StatusTransition{
		From:        []domain.UnitStatus{domain.UnitSold},
		To:          domain.UnitAvailable,
		ClearSaleID: true,
	})
}

// Get fetches a single unit by id.
func (s *Ledger) Get(ctx context.Context, unitID uuid.UUID) (*domain.StockUnit, error) {
	unit, err := s.units.FindByID(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to find stock unit: %w", err)
	}
	if unit == nil {
		return nil, domain.NotFoundf("stock unit %s does not exist", unitID)
	}
	return unit, nil
}

// List returns units matching the filter.
func (s *Ledger) List(ctx context.Context, params ports.UnitQueryParams) ([]domain.StockUnit, error) {
	units, err := s.units.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock units: %w", err)
	}
	return units, nil
}

// RankAvailable returns the available units matching the filter with
// their FIFO rank within each attribute group. Rank 1 is the unit that
// should leave the shelf first.
func (s *Ledger) RankAvailable(ctx context.Context, params ports.UnitQueryParams) ([]domain.RankedUnit, error) {
	params.Status = domain.UnitAvailable
	units, err := s.units.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list available units: %w", err)
	}
	return domain.RankUnits(units), nil
}
