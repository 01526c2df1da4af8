// internal/adapters/db/exchange_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// exchangeRepository implements ports.ExchangeRepository
type exchangeRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewExchangeRepository creates a new exchange repository
func NewExchangeRepository(db *Database, logger *slog.Logger) ports.ExchangeRepository {
	return &exchangeRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "exchanges")),
	}
}

// Save inserts the exchange and both line lists in one transaction.
// Lines carry a side marker ('returned' or 'new') in a single table.
func (r *exchangeRepository) Save(ctx context.Context, exchange *domain.ExchangeTransaction) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO exchanges (
				id, original_sale_id, customer_name, price_difference,
				exchange_date, created_at
			) VALUES ($1, $2, $3, $4, $5, $6)`,
			exchange.ID, exchange.OriginalSaleID, exchange.CustomerName,
			exchange.PriceDifference, exchange.ExchangeDate, exchange.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert exchange: %w", err)
		}

		if err := insertExchangeLines(ctx, tx, exchange.ID, "returned", exchange.ReturnedLines); err != nil {
			return err
		}
		if err := insertExchangeLines(ctx, tx, exchange.ID, "new", exchange.NewLines); err != nil {
			return err
		}

		r.logger.DebugContext(ctx, "exchange saved",
			slog.String("exchange_id", exchange.ID.String()),
			slog.String("price_difference", exchange.PriceDifference.String()))
		return nil
	})
}

func (r *exchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ExchangeTransaction, error) {
	query := `
		SELECT id, original_sale_id, customer_name, price_difference,
		       exchange_date, created_at
		FROM exchanges
		WHERE id = $1`

	exchange, err := scanExchange(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find exchange: %w", err)
	}

	if err := r.loadLines(ctx, exchange); err != nil {
		return nil, err
	}
	return exchange, nil
}

func (r *exchangeRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]domain.ExchangeTransaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, original_sale_id, customer_name, price_difference,
		       exchange_date, created_at
		FROM exchanges
		WHERE original_sale_id = $1
		ORDER BY exchange_date ASC`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges: %w", err)
	}
	defer rows.Close()

	exchanges := make([]domain.ExchangeTransaction, 0)
	for rows.Next() {
		exchange, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		exchanges = append(exchanges, *exchange)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range exchanges {
		if err := r.loadLines(ctx, &exchanges[i]); err != nil {
			return nil, err
		}
	}
	return exchanges, nil
}

func (r *exchangeRepository) loadLines(ctx context.Context, exchange *domain.ExchangeTransaction) error {
	rows, err := r.db.Query(ctx, `
		SELECT side, unit_id, product_name, gender, size, color_print, unit_price
		FROM exchange_lines
		WHERE exchange_id = $1
		ORDER BY position ASC`, exchange.ID)
	if err != nil {
		return fmt.Errorf("failed to find exchange lines: %w", err)
	}
	defer rows.Close()

	exchange.ReturnedLines = make([]domain.SaleLine, 0)
	exchange.NewLines = make([]domain.SaleLine, 0)
	for rows.Next() {
		var side string
		var line domain.SaleLine
		if err := rows.Scan(&side, &line.UnitID, &line.ProductName,
			&line.Gender, &line.Size, &line.ColorPrint, &line.UnitPrice); err != nil {
			return fmt.Errorf("failed to scan exchange line: %w", err)
		}
		if side == "returned" {
			exchange.ReturnedLines = append(exchange.ReturnedLines, line)
		} else {
			exchange.NewLines = append(exchange.NewLines, line)
		}
	}
	return rows.Err()
}

func insertExchangeLines(ctx context.Context, tx pgx.Tx, exchangeID uuid.UUID, side string, lines []domain.SaleLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO exchange_lines (
			exchange_id, side, position, unit_id, product_name, gender, size, color_print, unit_price
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for i, line := range lines {
		batch.Queue(query,
			exchangeID, side, i, line.UnitID, line.ProductName,
			line.Gender, line.Size, line.ColorPrint, line.UnitPrice,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert exchange line: %w", err)
		}
	}
	return nil
}

func scanExchange(row pgx.Row) (*domain.ExchangeTransaction, error) {
	var exchange domain.ExchangeTransaction
	err := row.Scan(
		&exchange.ID, &exchange.OriginalSaleID, &exchange.CustomerName,
		&exchange.PriceDifference, &exchange.ExchangeDate, &exchange.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &exchange, nil
}
