// internal/core/services/sales.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// SaleManager creates sale transactions and settles their payment.
// Multi-unit sales are made atomic through compensating rollback: any
// failure partway through undoes every unit transition already applied.
type SaleManager struct {
	sales    ports.SaleRepository
	ledger   ports.Ledger
	registry ports.OptionRegistry
	logger   *slog.Logger
}

var _ ports.SaleManager = (*SaleManager)(nil)

// NewSaleManager creates a new sale manager service.
func NewSaleManager(sales ports.SaleRepository, ledger ports.Ledger, registry ports.OptionRegistry, logger *slog.Logger) *SaleManager {
	return &SaleManager{
		sales:    sales,
		ledger:   ledger,
		registry: registry,
		logger:   logger.With(slog.String("service", "sales")),
	}
}

// CreateSale reserves every requested unit, snapshots its descriptive
// attributes and retail price into sale lines, marks the units sold and
// persists the pending transaction. Concurrent sales over overlapping
// units lose at the reservation step with a conflict and leave no
// partial state behind.
func (s *SaleManager) CreateSale(ctx context.Context, params ports.CreateSaleParams) (*domain.SaleTransaction, error) {
	if len(params.UnitIDs) == 0 {
		return nil, domain.InvalidAmount("unit_ids", "a sale requires at least one unit")
	}
	seen := make(map[uuid.UUID]struct{}, len(params.UnitIDs))
	for _, id := range params.UnitIDs {
		if _, dup := seen[id]; dup {
			return nil, domain.Conflictf("unit %s listed more than once", id)
		}
		seen[id] = struct{}{}
	}
	if err := s.registry.ValidateSelection(ctx, domain.FieldPaymentMethod, params.PaymentMethod); err != nil {
		return nil, err
	}

	saleDate := params.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	saleID := uuid.New()
	reserved := make([]uuid.UUID, 0, len(params.UnitIDs))
	lines := make([]domain.SaleLine, 0, len(params.UnitIDs))
	for _, unitID := range params.UnitIDs {
		unit, err := s.ledger.Reserve(ctx, unitID, saleID)
		if err != nil {
			s.rollbackReserved(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, unitID)
		lines = append(lines, domain.LineFromUnit(unit))
	}

	sold := make([]uuid.UUID, 0, len(reserved))
	for _, unitID := range reserved {
		if _, err := s.ledger.MarkSold(ctx, unitID, saleID); err != nil {
			s.rollbackSold(ctx, sold)
			s.rollbackReserved(ctx, reserved[len(sold):])
			return nil, err
		}
		sold = append(sold, unitID)
	}

	now := time.Now()
	sale := &domain.SaleTransaction{
		ID:                saleID,
		CustomerFirstName: strings.TrimSpace(params.CustomerFirstName),
		CustomerLastName:  strings.TrimSpace(params.CustomerLastName),
		PaymentMethod:     params.PaymentMethod,
		Status:            domain.SalePending,
		SaleDate:          saleDate,
		Lines:             lines,
		Notes:             params.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.sales.Save(ctx, sale); err != nil {
		s.rollbackSold(ctx, sold)
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	s.logger.InfoContext(ctx, "sale created",
		slog.String("sale_id", saleID.String()),
		slog.Int("units", len(lines)),
		slog.String("total", sale.Total().String()))

	return sale, nil
}

func (s *SaleManager) rollbackReserved(ctx context.Context, unitIDs []uuid.UUID) {
	for _, id := range unitIDs {
		if _, err := s.ledger.Release(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "failed to release unit during sale rollback",
				slog.String("unit_id", id.String()),
				slog.String("error", err.Error()))
		}
	}
}

func (s *SaleManager) rollbackSold(ctx context.Context, unitIDs []uuid.UUID) {
	for _, id := range unitIDs {
		if _, err := s.ledger.UndoSale(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "failed to undo unit sale during rollback",
				slog.String("unit_id", id.String()),
				slog.String("error", err.Error()))
		}
	}
}

// ConfirmPayment settles a pending sale. The discount is derived from
// the gap between the snapshot total and the amount actually paid, never
// negative; an overpayment records a zero discount.
func (s *SaleManager) ConfirmPayment(ctx context.Context, saleID uuid.UUID, params ports.ConfirmPaymentParams) (*domain.SaleTransaction, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	if sale == nil {
		return nil, domain.NotFoundf("sale %s does not exist", saleID)
	}

	paymentDate := params.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	if err := sale.ApplyPayment(params.PaidAmount, paymentDate); err != nil {
		return nil, err
	}
	if err := s.sales.Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}

	s.logger.InfoContext(ctx, "payment confirmed",
		slog.String("sale_id", saleID.String()),
		slog.String("paid", params.PaidAmount.String()),
		slog.String("discount", sale.DiscountAmount.String()))

	return sale, nil
}

// GetSale fetches a sale by id.
func (s *SaleManager) GetSale(ctx context.Context, saleID uuid.UUID) (*domain.SaleTransaction, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	if sale == nil {
		return nil, domain.NotFoundf("sale %s does not exist", saleID)
	}
	return sale, nil
}

// ListSales returns sales matching the filter.
func (s *SaleManager) ListSales(ctx context.Context, params ports.SaleQueryParams) ([]domain.SaleTransaction, error) {
	sales, err := s.sales.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}
