// test/benchmarks/inventory_bench_test.go
package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

func BenchmarkRankUnits(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		units := generateUnits(size)
		b.Run(fmt.Sprintf("units_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = domain.RankUnits(units)
			}
		})
	}
}

func BenchmarkLedgerOperations(b *testing.B) {
	ctx := context.Background()

	b.Run("Intake", func(b *testing.B) {
		svcs := setupBenchServices(b)
		params := ports.IntakeParams{
			Name:        "Body manga curta",
			Gender:      "menina",
			Size:        "P",
			ColorPrint:  "Branco",
			Supplier:    "Fornecedor Local",
			Cost:        decimal.NewFromFloat(12.50),
			RetailPrice: decimal.NewFromFloat(29.90),
			Quantity:    1,
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = svcs.ledger.Intake(ctx, params)
		}
	})

	b.Run("RankAvailable", func(b *testing.B) {
		svcs := setupBenchServices(b)
		svcs.intakeUnits(b, 1000)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = svcs.ledger.RankAvailable(ctx, ports.UnitQueryParams{})
		}
	})

	b.Run("ReserveRelease", func(b *testing.B) {
		svcs := setupBenchServices(b)
		ids := svcs.intakeUnits(b, 1000)
		saleID := ids[0]
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			id := ids[i%len(ids)]
			if _, err := svcs.ledger.Reserve(ctx, id, saleID); err != nil {
				b.Fatal(err)
			}
			if _, err := svcs.ledger.Release(ctx, id); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkSaleCreation(b *testing.B) {
	ctx := context.Background()
	svcs := setupBenchServices(b)
	ids := svcs.intakeUnits(b, 10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i >= len(ids) {
			b.StopTimer()
			ids = append(ids, svcs.intakeUnits(b, 10000)...)
			b.StartTimer()
		}
		_, err := svcs.sales.CreateSale(ctx, ports.CreateSaleParams{
			UnitIDs:           []uuid.UUID{ids[i]},
			CustomerFirstName: "Maria",
			PaymentMethod:     "Pix",
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkImportRows(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		rows := generateImportRows(size)
		b.Run(fmt.Sprintf("rows_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				svcs := setupBenchServices(b)
				b.StartTimer()
				if _, err := svcs.importer.ImportRows(context.Background(), rows); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
