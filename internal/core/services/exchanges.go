// internal/core/services/exchanges.go
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

// ExchangeManager reconciles prior sales: returned units re-enter the
// available pool keeping their original purchase date, replacement units
// are sold under the exchange id, and the price difference is computed
// from the snapshotted line prices on both sides.
type ExchangeManager struct {
	exchanges ports.ExchangeRepository
	sales     ports.SaleRepository
	ledger    ports.Ledger
	logger    *slog.Logger
}

var _ ports.ExchangeManager = (*ExchangeManager)(nil)

// NewExchangeManager creates a new exchange manager service.
func NewExchangeManager(exchanges ports.ExchangeRepository, sales ports.SaleRepository, ledger ports.Ledger, logger *slog.Logger) *ExchangeManager {
	return &ExchangeManager{
		exchanges: exchanges,
		sales:     sales,
		ledger:    ledger,
		logger:    logger.With(slog.String("service", "exchanges")),
	}
}

// CreateExchange processes a return-and-replace against one prior sale.
// Returned units must have been sold under that sale; their line prices
// are taken from the original sale's snapshot, never from the unit's
// current price. Any failure partway through rolls back every unit
// transition already applied in this call.
func (s *ExchangeManager) CreateExchange(ctx context.Context, params ports.CreateExchangeParams) (*domain.ExchangeTransaction, error) {
	if len(params.ReturnedUnitIDs) == 0 {
		return nil, domain.InvalidReturn("", "an exchange requires at least one returned unit")
	}
	if len(params.NewUnitIDs) == 0 {
		return nil, domain.InvalidAmount("new_unit_ids", "an exchange requires at least one replacement unit")
	}
	if err := checkDistinct(params.ReturnedUnitIDs, params.NewUnitIDs); err != nil {
		return nil, err
	}

	sale, err := s.sales.FindByID(ctx, params.OriginalSaleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find original sale: %w", err)
	}
	if sale == nil {
		return nil, domain.NotFoundf("sale %s does not exist", params.OriginalSaleID)
	}

	returnedLines := make([]domain.SaleLine, 0, len(params.ReturnedUnitIDs))
	for _, unitID := range params.ReturnedUnitIDs {
		line, ok := saleLineFor(sale, unitID)
		if !ok {
			return nil, domain.InvalidReturn(unitID.String(), "unit was not sold under the referenced sale")
		}
		returnedLines = append(returnedLines, line)
	}

	exchangeDate := params.ExchangeDate
	if exchangeDate.IsZero() {
		exchangeDate = time.Now()
	}
	exchangeID := uuid.New()

	// Returned units go Sold→Available, guarded on still being sold
	// under the original sale so a unit re-sold since cannot be
	// credited against this sale a second time.
	returned := make([]uuid.UUID, 0, len(params.ReturnedUnitIDs))
	for _, unitID := range params.ReturnedUnitIDs {
		if _, err := s.ledger.ReturnFromSale(ctx, unitID, params.OriginalSaleID); err != nil {
			s.rollbackReturned(ctx, returned, params.OriginalSaleID)
			return nil, err
		}
		returned = append(returned, unitID)
	}

	// New units follow the standard sale sequence under the exchange id.
	newLines := make([]domain.SaleLine, 0, len(params.NewUnitIDs))
	sold := make([]uuid.UUID, 0, len(params.NewUnitIDs))
	for _, unitID := range params.NewUnitIDs {
		unit, err := s.ledger.Reserve(ctx, unitID, exchangeID)
		if err != nil {
			s.rollbackNew(ctx, sold)
			s.rollbackReturned(ctx, returned, params.OriginalSaleID)
			return nil, err
		}
		if _, err := s.ledger.MarkSold(ctx, unitID, exchangeID); err != nil {
			if _, relErr := s.ledger.Release(ctx, unitID); relErr != nil {
				s.logger.ErrorContext(ctx, "failed to release unit during exchange rollback",
					slog.String("unit_id", unitID.String()),
					slog.String("error", relErr.Error()))
			}
			s.rollbackNew(ctx, sold)
			s.rollbackReturned(ctx, returned, params.OriginalSaleID)
			return nil, err
		}
		sold = append(sold, unitID)
		newLines = append(newLines, domain.LineFromUnit(unit))
	}

	exchange := &domain.ExchangeTransaction{
		ID:              exchangeID,
		OriginalSaleID:  params.OriginalSaleID,
		CustomerName:    params.CustomerName,
		ReturnedLines:   returnedLines,
		NewLines:        newLines,
		PriceDifference: domain.PriceDifference(newLines, returnedLines),
		ExchangeDate:    exchangeDate,
		CreatedAt:       time.Now(),
	}
	if err := s.exchanges.Save(ctx, exchange); err != nil {
		s.rollbackNew(ctx, sold)
		s.rollbackReturned(ctx, returned, params.OriginalSaleID)
		return nil, fmt.Errorf("failed to save exchange: %w", err)
	}

	s.logger.InfoContext(ctx, "exchange created",
		slog.String("exchange_id", exchangeID.String()),
		slog.String("sale_id", params.OriginalSaleID.String()),
		slog.String("price_difference", exchange.PriceDifference.String()))

	return exchange, nil
}

// rollbackReturned re-sells units whose return was applied before a
// later step failed, restoring their link to the original sale.
func (s *ExchangeManager) rollbackReturned(ctx context.Context, unitIDs []uuid.UUID, saleID uuid.UUID) {
	for _, id := range unitIDs {
		if _, err := s.ledger.MarkSold(ctx, id, saleID); err != nil {
			s.logger.ErrorContext(ctx, "failed to re-sell unit during exchange rollback",
				slog.String("unit_id", id.String()),
				slog.String("error", err.Error()))
		}
	}
}

func (s *ExchangeManager) rollbackNew(ctx context.Context, unitIDs []uuid.UUID) {
	for _, id := range unitIDs {
		if _, err := s.ledger.UndoSale(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "failed to undo unit sale during exchange rollback",
				slog.String("unit_id", id.String()),
				slog.String("error", err.Error()))
		}
	}
}

// GetExchange fetches an exchange by id.
func (s *ExchangeManager) GetExchange(ctx context.Context, id uuid.UUID) (*domain.ExchangeTransaction, error) {
	exchange, err := s.exchanges.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find exchange: %w", err)
	}
	if exchange == nil {
		return nil, domain.NotFoundf("exchange %s does not exist", id)
	}
	return exchange, nil
}

func saleLineFor(sale *domain.SaleTransaction, unitID uuid.UUID) (domain.SaleLine, bool) {
	for _, l := range sale.Lines {
		if l.UnitID == unitID {
			return l, true
		}
	}
	return domain.SaleLine{}, false
}

func checkDistinct(returned, newUnits []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(returned)+len(newUnits))
	for _, id := range returned {
		if _, dup := seen[id]; dup {
			return domain.Conflictf("unit %s listed more than once", id)
		}
		seen[id] = struct{}{}
	}
	for _, id := range newUnits {
		if _, dup := seen[id]; dup {
			return domain.Conflictf("unit %s listed more than once", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
