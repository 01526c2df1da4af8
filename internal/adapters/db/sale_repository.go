// internal/adapters/db/sale_repository.go
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

// saleRepository implements ports.SaleRepository
type saleRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *Database, logger *slog.Logger) ports.SaleRepository {
	return &saleRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "sales")),
	}
}

// Save inserts the sale header and its line snapshots in one transaction.
func (r *saleRepository) Save(ctx context.Context, sale *domain.SaleTransaction) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO sales (
				id, customer_first_name, customer_last_name, payment_method,
				sale_date, status, paid_amount, discount_amount, discount_percent,
				payment_date, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			sale.ID, sale.CustomerFirstName, sale.CustomerLastName, sale.PaymentMethod,
			sale.SaleDate, sale.Status, sale.PaidAmount, sale.DiscountAmount, sale.DiscountPercent,
			sale.PaymentDate, sale.Notes, sale.CreatedAt, sale.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}
		if err := insertSaleLines(ctx, tx, sale.ID, sale.Lines); err != nil {
			return err
		}

		r.logger.DebugContext(ctx, "sale saved",
			slog.String("sale_id", sale.ID.String()),
			slog.Int("lines", len(sale.Lines)))
		return nil
	})
}

// Update rewrites the sale header. Lines are immutable snapshots and are
// never updated after creation. The write is guarded on the stored row
// still being pending, so of two racing settlements exactly one lands.
func (r *saleRepository) Update(ctx context.Context, sale *domain.SaleTransaction) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sales
		SET status = $2, paid_amount = $3, discount_amount = $4,
		    discount_percent = $5, payment_date = $6, notes = $7, updated_at = $8
		WHERE id = $1 AND status = 'pending'`,
		sale.ID, sale.Status, sale.PaidAmount, sale.DiscountAmount,
		sale.DiscountPercent, sale.PaymentDate, sale.Notes, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existing, ferr := r.FindByID(ctx, sale.ID)
		if ferr != nil {
			return ferr
		}
		if existing == nil {
			return domain.NotFoundf("sale %s does not exist", sale.ID)
		}
		return domain.Conflictf("sale %s is already %s", sale.ID, existing.Status)
	}
	return nil
}

func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SaleTransaction, error) {
	query := `
		SELECT id, customer_first_name, customer_last_name, payment_method,
		       sale_date, status, paid_amount, discount_amount, discount_percent,
		       payment_date, notes, created_at, updated_at
		FROM sales
		WHERE id = $1`

	sale, err := scanSale(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}

	sale.Lines, err = r.findLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *saleRepository) FindAll(ctx context.Context, params ports.SaleQueryParams) ([]domain.SaleTransaction, error) {
	qb := squirrel.Select(
		"id", "customer_first_name", "customer_last_name", "payment_method",
		"sale_date", "status", "paid_amount", "discount_amount", "discount_percent",
		"payment_date", "notes", "created_at", "updated_at",
	).From("sales").
		OrderBy("sale_date DESC").
		PlaceholderFormat(squirrel.Dollar)

	if params.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": params.Status})
	}
	if params.Customer != "" {
		qb = qb.Where("customer_first_name || ' ' || customer_last_name ILIKE ?",
			"%"+params.Customer+"%")
	}
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
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]domain.SaleTransaction, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sales {
		if sales[i].Lines, err = r.findLines(ctx, sales[i].ID); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

func (r *saleRepository) findLines(ctx context.Context, saleID uuid.UUID) ([]domain.SaleLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT unit_id, product_name, gender, size, color_print, unit_price
		FROM sale_lines
		WHERE sale_id = $1
		ORDER BY position ASC`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.SaleLine, 0)
	for rows.Next() {
		var line domain.SaleLine
		if err := rows.Scan(&line.UnitID, &line.ProductName, &line.Gender,
			&line.Size, &line.ColorPrint, &line.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan sale line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func insertSaleLines(ctx context.Context, tx pgx.Tx, saleID uuid.UUID, lines []domain.SaleLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO sale_lines (
			sale_id, position, unit_id, product_name, gender, size, color_print, unit_price
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, line := range lines {
		batch.Queue(query,
			saleID, i, line.UnitID, line.ProductName,
			line.Gender, line.Size, line.ColorPrint, line.UnitPrice,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert sale line: %w", err)
		}
	}
	return nil
}

func scanSale(row pgx.Row) (*domain.SaleTransaction, error) {
	var sale domain.SaleTransaction
	err := row.Scan(
		&sale.ID, &sale.CustomerFirstName, &sale.CustomerLastName, &sale.PaymentMethod,
		&sale.SaleDate, &sale.Status, &sale.PaidAmount, &sale.DiscountAmount, &sale.DiscountPercent,
		&sale.PaymentDate, &sale.Notes, &sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
