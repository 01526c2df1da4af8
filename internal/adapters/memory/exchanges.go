// internal/adapters/memory/exchanges.go
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// ExchangeRepository is an in-memory implementation of the exchange
// persistence port.
type ExchangeRepository struct {
	mu        sync.RWMutex
	exchanges map[uuid.UUID]domain.ExchangeTransaction
}

var _ ports.ExchangeRepository = (*ExchangeRepository)(nil)

// NewExchangeRepository creates an empty in-memory exchange repository.
func NewExchangeRepository() *ExchangeRepository {
	return &ExchangeRepository{exchanges: make(map[uuid.UUID]domain.ExchangeTransaction)}
}

func (r *ExchangeRepository) Save(ctx context.Context, exchange *domain.ExchangeTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exchanges[exchange.ID] = cloneExchange(*exchange)
	return nil
}

func (r *ExchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ExchangeTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exchange, ok := r.exchanges[id]
	if !ok {
		return nil, nil
	}
	out := cloneExchange(exchange)
	return &out, nil
}

func (r *ExchangeRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]domain.ExchangeTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ExchangeTransaction, 0)
	for _, exchange := range r.exchanges {
		if exchange.OriginalSaleID == saleID {
			out = append(out, cloneExchange(exchange))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExchangeDate.Before(out[j].ExchangeDate) })
	return out, nil
}

func cloneExchange(e domain.ExchangeTransaction) domain.ExchangeTransaction {
	returned := make([]domain.SaleLine, len(e.ReturnedLines))
	copy(returned, e.ReturnedLines)
	e.ReturnedLines = returned
	newLines := make([]domain.SaleLine, len(e.NewLines))
	copy(newLines, e.NewLines)
	e.NewLines = newLines
	return e
}
