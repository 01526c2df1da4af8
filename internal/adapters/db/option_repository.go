// internal/adapters/db/option_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// optionRepository implements ports.OptionRepository
type optionRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewOptionRepository creates a new field option repository
func NewOptionRepository(db *Database, logger *slog.Logger) ports.OptionRepository {
	return &optionRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "options")),
	}
}

func (r *optionRepository) Save(ctx context.Context, option *domain.FieldOption) error {
	query := `
		INSERT INTO field_options (id, field_type, value, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		option.ID, option.Type, option.Value, option.Active,
		option.CreatedAt, option.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save field option: %w", err)
	}

	r.logger.DebugContext(ctx, "field option saved",
		slog.String("type", string(option.Type)),
		slog.String("value", option.Value))

	return nil
}

func (r *optionRepository) Update(ctx context.Context, option *domain.FieldOption) error {
	query := `
		UPDATE field_options
		SET value = $2, active = $3, updated_at = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		option.ID, option.Value, option.Active, option.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update field option: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("option %s does not exist", option.ID)
	}
	return nil
}

// Delete removes an option row. Only the bulk importer calls this, to
// compensate auto-created options after a failed batch.
func (r *optionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM field_options WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete field option: %w", err)
	}
	return nil
}

func (r *optionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FieldOption, error) {
	query := `
		SELECT id, field_type, value, active, created_at, updated_at
		FROM field_options
		WHERE id = $1`

	option, err := scanOption(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find field option: %w", err)
	}
	return option, nil
}

func (r *optionRepository) FindActiveByValue(ctx context.Context, fieldType domain.FieldType, value string) (*domain.FieldOption, error) {
	query := `
		SELECT id, field_type, value, active, created_at, updated_at
		FROM field_options
		WHERE field_type = $1 AND value = $2 AND active`

	option, err := scanOption(r.db.QueryRow(ctx, query, fieldType, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find field option by value: %w", err)
	}
	return option, nil
}

func (r *optionRepository) FindAll(ctx context.Context, fieldType domain.FieldType, includeInactive bool) ([]domain.FieldOption, error) {
	qb := squirrel.Select("id", "field_type", "value", "active", "created_at", "updated_at").
		From("field_options").
		Where(squirrel.Eq{"field_type": fieldType}).
		OrderBy("value ASC").
		PlaceholderFormat(squirrel.Dollar)

	if !includeInactive {
		qb = qb.Where("active")
	}

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list field options: %w", err)
	}
	defer rows.Close()

	options := make([]domain.FieldOption, 0)
	for rows.Next() {
		option, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field option: %w", err)
		}
		options = append(options, *option)
	}
	return options, rows.Err()
}

func scanOption(row pgx.Row) (*domain.FieldOption, error) {
	var option domain.FieldOption
	err := row.Scan(
		&option.ID, &option.Type, &option.Value, &option.Active,
		&option.CreatedAt, &option.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &option, nil
}
