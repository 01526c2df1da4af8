// internal/adapters/memory/sales.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// SaleRepository is an in-memory implementation of the sale persistence port.
type SaleRepository struct {
	mu    sync.RWMutex
	sales map[uuid.UUID]domain.SaleTransaction
}

var _ ports.SaleRepository = (*SaleRepository)(nil)

// NewSaleRepository creates an empty in-memory sale repository.
func NewSaleRepository() *SaleRepository {
	return &SaleRepository{sales: make(map[uuid.UUID]domain.SaleTransaction)}
}

func (r *SaleRepository) Save(ctx context.Context, sale *domain.SaleTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales[sale.ID] = cloneSale(*sale)
	return nil
}

// Update mirrors the settlement guard of the postgres adapter: the
// stored sale must still be pending, checked under the lock.
func (r *SaleRepository) Update(ctx context.Context, sale *domain.SaleTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.sales[sale.ID]
	if !ok {
		return domain.NotFoundf("sale %s does not exist", sale.ID)
	}
	if stored.Status != domain.SalePending {
		return domain.Conflictf("sale %s is already %s", sale.ID, stored.Status)
	}
	r.sales[sale.ID] = cloneSale(*sale)
	return nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SaleTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sale, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	out := cloneSale(sale)
	return &out, nil
}

func (r *SaleRepository) FindAll(ctx context.Context, params ports.SaleQueryParams) ([]domain.SaleTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SaleTransaction, 0)
	for _, sale := range r.sales {
		if params.Status != "" && sale.Status != params.Status {
			continue
		}
		if params.Customer != "" && !matchesCustomer(sale, params.Customer) {
			continue
		}
		out = append(out, cloneSale(sale))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })

	if params.Offset > 0 {
		if params.Offset >= len(out) {
			return []domain.SaleTransaction{}, nil
		}
		out = out[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(out) {
		out = out[:params.Limit]
	}
	return out, nil
}

func matchesCustomer(sale domain.SaleTransaction, needle string) bool {
	full := strings.ToLower(sale.CustomerFirstName + " " + sale.CustomerLastName)
	return strings.Contains(full, strings.ToLower(needle))
}

// cloneSale deep-copies the line slice so callers never share state with
// the stored record.
func cloneSale(s domain.SaleTransaction) domain.SaleTransaction {
	lines := make([]domain.SaleLine, len(s.Lines))
	copy(lines, s.Lines)
	s.Lines = lines
	return s
}
