// internal/core/services/options.go
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

// OptionRegistry manages the selectable categorical values (sizes,
// colors/prints, suppliers, payment methods) with a soft lifecycle:
// options are created, toggled active/inactive, edited, never deleted.
type OptionRegistry struct {
	repo   ports.OptionRepository
	logger *slog.Logger
}

// Statically assert that *OptionRegistry implements the port.
var _ ports.OptionRegistry = (*OptionRegistry)(nil)

// NewOptionRegistry creates a new option registry service.
func NewOptionRegistry(repo ports.OptionRepository, logger *slog.Logger) *OptionRegistry {
	return &OptionRegistry{
		repo:   repo,
		logger: logger.With(slog.String("service", "options")),
	}
}

// AddOption creates a new active option. Uniqueness is case-sensitive
// and enforced only among active options of the same field type.
func (s *OptionRegistry) AddOption(ctx context.Context, fieldType domain.FieldType, value string) (*domain.FieldOption, error) {
	if !fieldType.Valid() {
		return nil, domain.InvalidOption("type", string(fieldType))
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, domain.InvalidOption(string(fieldType), value)
	}

	existing, err := s.repo.FindActiveByValue(ctx, fieldType, value)
	if err != nil {
		return nil, fmt.Errorf("failed to check option uniqueness: %w", err)
	}
	if existing != nil {
		return nil, domain.DuplicateValue(string(fieldType), value)
	}

	now := time.Now()
	option := &domain.FieldOption{
		ID:        uuid.New(),
		Type:      fieldType,
		Value:     value,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, option); err != nil {
		return nil, fmt.Errorf("failed to save option: %w", err)
	}

	s.logger.InfoContext(ctx, "field option added",
		slog.String("type", string(fieldType)),
		slog.String("value", value))

	return option, nil
}

// ListOptions returns options of a field type sorted by value ascending.
func (s *OptionRegistry) ListOptions(ctx context.Context, fieldType domain.FieldType, includeInactive bool) ([]domain.FieldOption, error) {
	if !fieldType.Valid() {
		return nil, domain.InvalidOption("type", string(fieldType))
	}
	options, err := s.repo.FindAll(ctx, fieldType, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	return options, nil
}

// SetActive toggles the option's lifecycle flag. Idempotent: setting the
// current state again is a no-op. Units already referencing the value
// are untouched; they store the literal string, not a live reference.
func (s *OptionRegistry) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.FieldOption, error) {
	option, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find option: %w", err)
	}
	if option == nil {
		return nil, domain.NotFoundf("option %s does not exist", id)
	}
	if option.Active == active {
		return option, nil
	}

	option.Active = active
	option.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, option); err != nil {
		return nil, fmt.Errorf("failed to update option: %w", err)
	}

	s.logger.InfoContext(ctx, "field option lifecycle changed",
		slog.String("option_id", id.String()),
		slog.Bool("active", active))

	return option, nil
}

// EditValue renames an option under the same uniqueness rule. Historical
// records keep the string they captured at write time.
func (s *OptionRegistry) EditValue(ctx context.Context, id uuid.UUID, newValue string) (*domain.FieldOption, error) {
	newValue = strings.TrimSpace(newValue)
	option, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find option: %w", err)
	}
	if option == nil {
		return nil, domain.NotFoundf("option %s does not exist", id)
	}
	if newValue == "" {
		return nil, domain.InvalidOption(string(option.Type), newValue)
	}
	if option.Value == newValue {
		return option, nil
	}

	existing, err := s.repo.FindActiveByValue(ctx, option.Type, newValue)
	if err != nil {
		return nil, fmt.Errorf("failed to check option uniqueness: %w", err)
	}
	if existing != nil && existing.ID != option.ID {
		return nil, domain.DuplicateValue(string(option.Type), newValue)
	}

	option.Value = newValue
	option.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, option); err != nil {
		return nil, fmt.Errorf("failed to update option: %w", err)
	}

	s.logger.InfoContext(ctx, "field option renamed",
		slog.String("option_id", id.String()),
		slog.String("value", newValue))

	return option, nil
}

// ValidateSelection fails with InvalidOption unless value is an active
// option of the given field type (case-sensitive exact match).
func (s *OptionRegistry) ValidateSelection(ctx context.Context, fieldType domain.FieldType, value string) error {
	option, err := s.repo.FindActiveByValue(ctx, fieldType, value)
	if err != nil {
		return fmt.Errorf("failed to validate option: %w", err)
	}
	if option == nil {
		return domain.InvalidOption(string(fieldType), value)
	}
	return nil
}
