// internal/adapters/memory/units.go
package memory

import (
	"bytes"
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// UnitRepository is an in-memory implementation of the stock unit
// persistence port. UpdateStatus applies the same compare-and-set
// discipline the postgres adapter enforces with a conditional UPDATE,
// so the conflict semantics are testable without a database.
type UnitRepository struct {
	mu    sync.RWMutex
	units map[uuid.UUID]domain.StockUnit
}

var _ ports.UnitRepository = (*UnitRepository)(nil)

// NewUnitRepository creates an empty in-memory unit repository.
func NewUnitRepository() *UnitRepository {
	return &UnitRepository{units: make(map[uuid.UUID]domain.StockUnit)}
}

func (r *UnitRepository) SaveBatch(ctx context.Context, units []domain.StockUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range units {
		r.units[u.ID] = u
	}
	return nil
}

func (r *UnitRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.units, id)
	}
	return nil
}

func (r *UnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StockUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	unit, ok := r.units[id]
	if !ok {
		return nil, nil
	}
	return &unit, nil
}

func (r *UnitRepository) FindAll(ctx context.Context, params ports.UnitQueryParams) ([]domain.StockUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.StockUnit, 0)
	for _, u := range r.units {
		if !matchesUnit(u, params) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.Before(out[j].PurchaseDate)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})

	if params.Offset > 0 {
		if params.Offset >= len(out) {
			return []domain.StockUnit{}, nil
		}
		out = out[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(out) {
		out = out[:params.Limit]
	}
	return out, nil
}

func matchesUnit(u domain.StockUnit, params ports.UnitQueryParams) bool {
	if params.Status != "" && u.Status != params.Status {
		return false
	}
	if params.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(params.Name)) {
		return false
	}
	if params.Gender != "" && u.Gender != params.Gender {
		return false
	}
	if params.Size != "" && u.Size != params.Size {
		return false
	}
	if params.ColorPrint != "" && u.ColorPrint != params.ColorPrint {
		return false
	}
	if params.Supplier != "" && u.Supplier != params.Supplier {
		return false
	}
	if params.SaleID != nil && (u.SaleID == nil || *u.SaleID != *params.SaleID) {
		return false
	}
	return true
}

// UpdateStatus performs the compare-and-set transition under the
// repository lock. When the current status is not in t.From the call
// fails with NotFound or Conflict depending on whether the unit exists.
func (r *UnitRepository) UpdateStatus(ctx context.Context, id uuid.UUID, t ports.StatusTransition) (*domain.StockUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	unit, ok := r.units[id]
	if !ok {
		return nil, domain.NotFoundf("stock unit %s does not exist", id)
	}
	if !slices.Contains(t.From, unit.Status) {
		return nil, domain.Conflictf("stock unit %s is %s, expected one of %v", id, unit.Status, t.From)
	}
	if t.FromSaleID != nil && (unit.SaleID == nil || *unit.SaleID != *t.FromSaleID) {
		return nil, domain.Conflictf("stock unit %s is not linked to sale %s", id, *t.FromSaleID)
	}

	unit.Status = t.To
	if t.SaleID != nil {
		saleID := *t.SaleID
		unit.SaleID = &saleID
	}
	if t.ClearSaleID {
		unit.SaleID = nil
	}
	if t.PurchaseDate != nil {
		unit.PurchaseDate = *t.PurchaseDate
	}
	unit.UpdatedAt = time.Now()
	r.units[id] = unit
	return &unit, nil
}
