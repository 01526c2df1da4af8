// internal/adapters/memory/options.go
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// OptionRepository is an in-memory implementation of the option
// persistence port, used by unit tests and local development.
type OptionRepository struct {
	mu      sync.RWMutex
	options map[uuid.UUID]domain.FieldOption
}

var _ ports.OptionRepository = (*OptionRepository)(nil)

// NewOptionRepository creates an empty in-memory option repository.
func NewOptionRepository() *OptionRepository {
	return &OptionRepository{options: make(map[uuid.UUID]domain.FieldOption)}
}

func (r *OptionRepository) Save(ctx context.Context, option *domain.FieldOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options[option.ID] = *option
	return nil
}

func (r *OptionRepository) Update(ctx context.Context, option *domain.FieldOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.options[option.ID]; !ok {
		return domain.NotFoundf("option %s does not exist", option.ID)
	}
	r.options[option.ID] = *option
	return nil
}

func (r *OptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.options, id)
	return nil
}

func (r *OptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FieldOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	option, ok := r.options[id]
	if !ok {
		return nil, nil
	}
	return &option, nil
}

func (r *OptionRepository) FindActiveByValue(ctx context.Context, fieldType domain.FieldType, value string) (*domain.FieldOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, option := range r.options {
		if option.Type == fieldType && option.Value == value && option.Active {
			o := option
			return &o, nil
		}
	}
	return nil, nil
}

func (r *OptionRepository) FindAll(ctx context.Context, fieldType domain.FieldType, includeInactive bool) ([]domain.FieldOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.FieldOption, 0)
	for _, option := range r.options {
		if option.Type != fieldType {
			continue
		}
		if !option.Active && !includeInactive {
			continue
		}
		out = append(out, option)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out, nil
}
