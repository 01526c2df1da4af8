// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/inventory-be/internal/adapters/memory"
	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
	"github.com/lojinha/inventory-be/internal/core/services"
	"github.com/lojinha/inventory-be/test/helpers"
)

var benchSizes = []string{"RN", "P", "M", "G"}
var benchColors = []string{"Branco", "Rosa", "Azul"}

// generateUnits builds n available units spread over distinct purchase
// dates and attribute groups.
func generateUnits(n int) []domain.StockUnit {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	units := make([]domain.StockUnit, n)
	for i := 0; i < n; i++ {
		id, _ := uuid.NewV7()
		units[i] = domain.StockUnit{
			ID:           id,
			Name:         fmt.Sprintf("Produto %d", i%20),
			Gender:       "menina",
			Size:         benchSizes[i%len(benchSizes)],
			ColorPrint:   benchColors[i%len(benchColors)],
			Supplier:     "Fornecedor Local",
			Cost:         decimal.NewFromFloat(12.50),
			RetailPrice:  decimal.NewFromFloat(29.90),
			PurchaseDate: base.Add(time.Duration(i) * time.Hour),
			Status:       domain.UnitAvailable,
		}
	}
	return units
}

type benchServices struct {
	ledger   *services.Ledger
	sales    *services.SaleManager
	importer *services.Importer
}

// setupBenchServices wires the full service stack over in-memory
// repositories with the standard option set registered.
func setupBenchServices(b *testing.B) *benchServices {
	b.Helper()
	ctx := context.Background()
	logger := helpers.TestLogger()

	optionRepo := memory.NewOptionRepository()
	unitRepo := memory.NewUnitRepository()
	saleRepo := memory.NewSaleRepository()

	registry := services.NewOptionRegistry(optionRepo, logger)
	ledger := services.NewLedger(unitRepo, registry, services.LedgerConfig{}, logger)
	saleManager := services.NewSaleManager(saleRepo, ledger, registry, logger)
	importer := services.NewImporter(unitRepo, optionRepo, registry, services.ImporterConfig{}, logger)

	for fieldType, values := range map[domain.FieldType][]string{
		domain.FieldSize:          benchSizes,
		domain.FieldColorPrint:    benchColors,
		domain.FieldSupplier:      {"Fornecedor Local"},
		domain.FieldPaymentMethod: {"Pix"},
	} {
		for _, v := range values {
			_, err := registry.AddOption(ctx, fieldType, v)
			require.NoError(b, err)
		}
	}

	return &benchServices{
		ledger:   ledger,
		sales:    saleManager,
		importer: importer,
	}
}

// intakeUnits stocks n units through the ledger and returns their ids.
func (s *benchServices) intakeUnits(b *testing.B, n int) []uuid.UUID {
	b.Helper()
	ctx := context.Background()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		units, err := s.ledger.Intake(ctx, ports.IntakeParams{
			Name:         fmt.Sprintf("Produto %d", i%20),
			Gender:       "menina",
			Size:         benchSizes[i%len(benchSizes)],
			ColorPrint:   benchColors[i%len(benchColors)],
			Supplier:     "Fornecedor Local",
			Cost:         decimal.NewFromFloat(12.50),
			RetailPrice:  decimal.NewFromFloat(29.90),
			PurchaseDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
			Quantity:     1,
		})
		require.NoError(b, err)
		ids = append(ids, units[0].ID)
	}
	return ids
}

// generateImportRows builds n valid spreadsheet rows.
func generateImportRows(n int) []ports.ImportRow {
	rows := make([]ports.ImportRow, n)
	for i := 0; i < n; i++ {
		rows[i] = ports.ImportRow{
			"produto":     fmt.Sprintf("Produto %d", i%20),
			"genero":      "menina",
			"tamanho":     benchSizes[i%len(benchSizes)],
			"cor":         benchColors[i%len(benchColors)],
			"fornecedor":  "Fornecedor Local",
			"preco_custo": "R$ 12,50",
			"preco_venda": "29,90",
			"quantidade":  "1",
			"data":        "15/01/2025",
		}
	}
	return rows
}
