// internal/handlers/dashboard.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	redis_a "github.com/lojinha/inventory-be/internal/adapters/redis_adapter"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// DashboardHandler serves the cached stock and sales summary
type DashboardHandler struct {
	db     ports.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(database ports.Database, cache ports.CacheRepository, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		db:     database,
		cache:  cache,
		logger: logger.With(slog.String("handler", "dashboard")),
	}
}

// DashboardData is the stock and sales summary payload
type DashboardData struct {
	Timestamp       time.Time       `json:"timestamp"`
	UnitsAvailable  int64           `json:"units_available"`
	UnitsReserved   int64           `json:"units_reserved"`
	UnitsSold       int64           `json:"units_sold"`
	StockCost       decimal.Decimal `json:"stock_cost"`
	StockValue      decimal.Decimal `json:"stock_value"`
	SalesPending    int64           `json:"sales_pending"`
	SalesPaid       int64           `json:"sales_paid"`
	RevenueThisWeek decimal.Decimal `json:"revenue_this_week"`
	TopProducts     []ProductCount  `json:"top_products"`
}

// ProductCount is one product name with its available unit count
type ProductCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "main")
	var dashboard DashboardData

	err := h.cache.GetOrSet(ctx, cacheKey, &dashboard, func() (interface{}, error) {
		return h.loadDashboardData(ctx)
	}, 5*time.Minute)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	respondJSON(w, http.StatusOK, dashboard)
}

func (h *DashboardHandler) loadDashboardData(ctx context.Context) (*DashboardData, error) {
	dashboard := &DashboardData{
		Timestamp:       time.Now(),
		StockCost:       decimal.Zero,
		StockValue:      decimal.Zero,
		RevenueThisWeek: decimal.Zero,
	}

	stockQuery := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'available') AS units_available,
			COUNT(*) FILTER (WHERE status = 'reserved') AS units_reserved,
			COUNT(*) FILTER (WHERE status = 'sold') AS units_sold,
			COALESCE(SUM(cost) FILTER (WHERE status = 'available'), 0) AS stock_cost,
			COALESCE(SUM(retail_price) FILTER (WHERE status = 'available'), 0) AS stock_value
		FROM stock_units`

	err := h.db.QueryRow(ctx, stockQuery).Scan(
		&dashboard.UnitsAvailable,
		&dashboard.UnitsReserved,
		&dashboard.UnitsSold,
		&dashboard.StockCost,
		&dashboard.StockValue,
	)
	if err != nil {
		return nil, err
	}

	salesQuery := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending') AS sales_pending,
			COUNT(*) FILTER (WHERE status = 'paid') AS sales_paid,
			COALESCE(SUM(paid_amount) FILTER (
				WHERE status = 'paid' AND payment_date >= NOW() - INTERVAL '7 days'
			), 0) AS revenue_this_week
		FROM sales`

	err = h.db.QueryRow(ctx, salesQuery).Scan(
		&dashboard.SalesPending,
		&dashboard.SalesPaid,
		&dashboard.RevenueThisWeek,
	)
	if err != nil {
		return nil, err
	}

	topQuery := `
		SELECT name, COUNT(*) AS count
		FROM stock_units
		WHERE status = 'available'
		GROUP BY name
		ORDER BY count DESC, name ASC
		LIMIT 10`

	rows, err := h.db.Query(ctx, topQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pc ProductCount
		if err := rows.Scan(&pc.Name, &pc.Count); err != nil {
			return nil, err
		}
		dashboard.TopProducts = append(dashboard.TopProducts, pc)
	}
	return dashboard, rows.Err()
}
