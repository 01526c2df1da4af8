// cmd/seeder/main.go
// Seeds the field option registry with the storefront defaults and,
// optionally, a batch of demo stock units.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lojinha/inventory-be/internal/adapters/db"
	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
	"github.com/lojinha/inventory-be/internal/core/services"
	"github.com/lojinha/inventory-be/internal/pkg/config"
	"github.com/lojinha/inventory-be/internal/pkg/logger"
)

var defaultOptions = map[domain.FieldType][]string{
	domain.FieldSize:          {"RN", "P", "M", "G", "1", "2", "3", "4", "6", "8"},
	domain.FieldColorPrint:    {"Branco", "Rosa", "Azul", "Amarelo", "Listrado", "Floral"},
	domain.FieldSupplier:      {"Fornecedor Local", "Atacado Centro"},
	domain.FieldPaymentMethod: {"Dinheiro", "Pix", "Cartão de Débito", "Cartão de Crédito"},
}

type demoUnit struct {
	name       string
	gender     string
	size       string
	colorPrint string
	cost       string
	price      string
	quantity   int
}

var demoStock = []demoUnit{
	{"Body manga curta", "Unissex", "RN", "Branco", "12.50", "29.90", 4},
	{"Vestido floral", "Menina", "2", "Floral", "22.00", "49.90", 2},
	{"Conjunto moletom", "Menino", "4", "Azul", "28.00", "69.90", 3},
	{"Macacão listrado", "Unissex", "P", "Listrado", "18.00", "39.90", 2},
}

func main() {
	var (
		withDemo = flag.Bool("demo", false, "seed demo stock units in addition to field options")
		timeout  = flag.Duration("timeout", 30*time.Second, "overall seeding timeout")
	)
	flag.Parse()

	slogger := logger.SetupLogger("info", "text")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: 4,
		MinConnections: 1,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	optionRepo := db.NewOptionRepository(database, slogger)
	unitRepo := db.NewUnitRepository(database, slogger)
	registry := services.NewOptionRegistry(optionRepo, slogger)
	ledger := services.NewLedger(unitRepo, registry, services.LedgerConfig{}, slogger)

	seeded, err := seedOptions(ctx, registry)
	if err != nil {
		slogger.Error("failed to seed options", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slogger.Info("field options seeded", slog.Int("created", seeded))

	if *withDemo {
		units, err := seedDemoStock(ctx, ledger)
		if err != nil {
			slogger.Error("failed to seed demo stock", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slogger.Info("demo stock seeded", slog.Int("units", units))
	}
}

func seedOptions(ctx context.Context, registry *services.OptionRegistry) (int, error) {
	created := 0
	for fieldType, values := range defaultOptions {
		for _, value := range values {
			_, err := registry.AddOption(ctx, fieldType, value)
			if err != nil {
				var domErr *domain.Error
				if errors.As(err, &domErr) && domErr.Code == domain.CodeDuplicateValue {
					continue
				}
				return created, fmt.Errorf("seed option %s/%s: %w", fieldType, value, err)
			}
			created++
		}
	}
	return created, nil
}

func seedDemoStock(ctx context.Context, ledger *services.Ledger) (int, error) {
	total := 0
	for _, d := range demoStock {
		cost, err := decimal.NewFromString(d.cost)
		if err != nil {
			return total, fmt.Errorf("demo unit %s: %w", d.name, err)
		}
		price, err := decimal.NewFromString(d.price)
		if err != nil {
			return total, fmt.Errorf("demo unit %s: %w", d.name, err)
		}

		units, err := ledger.Intake(ctx, ports.IntakeParams{
			Name:        d.name,
			Gender:      d.gender,
			Size:        d.size,
			ColorPrint:  d.colorPrint,
			Supplier:    "Fornecedor Local",
			Cost:        cost,
			RetailPrice: price,
			Quantity:    d.quantity,
		})
		if err != nil {
			return total, fmt.Errorf("intake %s: %w", d.name, err)
		}
		total += len(units)
	}
	return total, nil
}
