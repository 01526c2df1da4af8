// internal/adapters/db/unit_repository.go
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

// unitRepository implements ports.UnitRepository
type unitRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewUnitRepository creates a new stock unit repository
func NewUnitRepository(db *Database, logger *slog.Logger) ports.UnitRepository {
	return &unitRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "units")),
	}
}

const unitColumns = `
	id, name, gender, size, color_print, supplier,
	cost, retail_price, purchase_date, status, sale_id,
	created_at, updated_at`

// SaveBatch inserts all units in a single transaction.
func (r *unitRepository) SaveBatch(ctx context.Context, units []domain.StockUnit) error {
	if len(units) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		query := `
			INSERT INTO stock_units (
				id, name, gender, size, color_print, supplier,
				cost, retail_price, purchase_date, status, sale_id,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

		for i := range units {
			batch.Queue(query,
				units[i].ID, units[i].Name, units[i].Gender, units[i].Size,
				units[i].ColorPrint, units[i].Supplier,
				units[i].Cost, units[i].RetailPrice, units[i].PurchaseDate,
				units[i].Status, units[i].SaleID,
				units[i].CreatedAt, units[i].UpdatedAt,
			)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range units {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert stock unit: %w", err)
			}
		}
		return nil
	})
}

// DeleteBatch removes unsold units; import compensation only.
func (r *unitRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`DELETE FROM stock_units WHERE id = ANY($1) AND status <> 'sold'`, ids)
	if err != nil {
		return fmt.Errorf("failed to delete stock units: %w", err)
	}
	return nil
}

func (r *unitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StockUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM stock_units WHERE id = $1`

	unit, err := scanUnit(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find stock unit: %w", err)
	}
	return unit, nil
}

func (r *unitRepository) FindAll(ctx context.Context, params ports.UnitQueryParams) ([]domain.StockUnit, error) {
	qb := squirrel.Select(
		"id", "name", "gender", "size", "color_print", "supplier",
		"cost", "retail_price", "purchase_date", "status", "sale_id",
		"created_at", "updated_at",
	).From("stock_units").
		PlaceholderFormat(squirrel.Dollar)

	if params.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": params.Status})
	}
	if params.Name != "" {
		qb = qb.Where("name ILIKE ?", "%"+params.Name+"%")
	}
	if params.Gender != "" {
		qb = qb.Where(squirrel.Eq{"gender": params.Gender})
	}
	if params.Size != "" {
		qb = qb.Where(squirrel.Eq{"size": params.Size})
	}
	if params.ColorPrint != "" {
		qb = qb.Where(squirrel.Eq{"color_print": params.ColorPrint})
	}
	if params.Supplier != "" {
		qb = qb.Where(squirrel.Eq{"supplier": params.Supplier})
	}
	if params.SaleID != nil {
		qb = qb.Where(squirrel.Eq{"sale_id": *params.SaleID})
	}

	// Purchase date then id keeps the FIFO order stable; ids are UUIDv7
	// so the byte order matches intake order.
	qb = qb.OrderBy("purchase_date ASC", "id ASC")

	if params.Limit > 0 {
		qb = qb.Limit(uint64(params.Limit))
	}
	if params.Offset > 0 {
		qb = qb.Offset(uint64(params.Offset))
	}

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock units: %w", err)
	}
	defer rows.Close()

	units := make([]domain.StockUnit, 0)
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock unit: %w", err)
		}
		units = append(units, *unit)
	}
	return units, rows.Err()
}

// UpdateStatus applies a compare-and-set transition: the UPDATE only
// matches while the current status is one of t.From, so of two racing
// writers exactly one sees its precondition hold. A zero-row result is
// disambiguated into NotFound or Conflict with a follow-up read.
func (r *unitRepository) UpdateStatus(ctx context.Context, id uuid.UUID, t ports.StatusTransition) (*domain.StockUnit, error) {
	from := make([]string, len(t.From))
	for i, s := range t.From {
		from[i] = string(s)
	}

	qb := squirrel.Update("stock_units").
		Set("status", t.To).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("status = ANY(?)", from).
		Suffix("RETURNING " + unitColumns).
		PlaceholderFormat(squirrel.Dollar)

	if t.FromSaleID != nil {
		qb = qb.Where(squirrel.Eq{"sale_id": *t.FromSaleID})
	}

	if t.SaleID != nil {
		qb = qb.Set("sale_id", *t.SaleID)
	}
	if t.ClearSaleID {
		qb = qb.Set("sale_id", nil)
	}
	if t.PurchaseDate != nil {
		qb = qb.Set("purchase_date", *t.PurchaseDate)
	}

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	unit, err := scanUnit(r.db.QueryRow(ctx, sqlQuery, args...))
	if err == nil {
		r.logger.DebugContext(ctx, "stock unit transitioned",
			slog.String("unit_id", id.String()),
			slog.String("status", string(t.To)))
		return unit, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update stock unit status: %w", err)
	}

	current, ferr := r.FindByID(ctx, id)
	if ferr != nil {
		return nil, ferr
	}
	if current == nil {
		return nil, domain.NotFoundf("stock unit %s does not exist", id)
	}
	return nil, domain.Conflictf("stock unit %s is %s, expected one of %v", id, current.Status, t.From)
}

func scanUnit(row pgx.Row) (*domain.StockUnit, error) {
	var unit domain.StockUnit
	err := row.Scan(
		&unit.ID, &unit.Name, &unit.Gender, &unit.Size,
		&unit.ColorPrint, &unit.Supplier,
		&unit.Cost, &unit.RetailPrice, &unit.PurchaseDate,
		&unit.Status, &unit.SaleID,
		&unit.CreatedAt, &unit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &unit, nil
}
