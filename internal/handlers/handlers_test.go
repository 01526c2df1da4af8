package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/inventory-be/internal/adapters/memory"
	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
	"github.com/lojinha/inventory-be/internal/core/services"
	"github.com/lojinha/inventory-be/internal/handlers"
	"github.com/lojinha/inventory-be/test/helpers"
)

// testApp wires the handlers over in-memory repositories and exposes the
// same routes the server registers.
type testApp struct {
	mux      *http.ServeMux
	ledger   *services.Ledger
	sales    *services.SaleManager
	registry *services.OptionRegistry
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()
	logger := helpers.TestLogger()

	optionRepo := memory.NewOptionRepository()
	unitRepo := memory.NewUnitRepository()
	saleRepo := memory.NewSaleRepository()
	exchangeRepo := memory.NewExchangeRepository()

	registry := services.NewOptionRegistry(optionRepo, logger)
	ledger := services.NewLedger(unitRepo, registry, services.LedgerConfig{}, logger)
	saleManager := services.NewSaleManager(saleRepo, ledger, registry, logger)
	exchangeManager := services.NewExchangeManager(exchangeRepo, saleRepo, ledger, logger)
	importer := services.NewImporter(unitRepo, optionRepo, registry, services.ImporterConfig{}, logger)

	for fieldType, values := range map[domain.FieldType][]string{
		domain.FieldSize:          {"RN", "P", "M"},
		domain.FieldColorPrint:    {"Branco", "Rosa"},
		domain.FieldSupplier:      {"Fornecedor Local"},
		domain.FieldPaymentMethod: {"Pix", "Dinheiro"},
	} {
		for _, v := range values {
			_, err := registry.AddOption(ctx, fieldType, v)
			require.NoError(t, err)
		}
	}

	optionsHandler := handlers.NewOptionsHandler(registry, logger)
	stockHandler := handlers.NewStockHandler(ledger, logger)
	salesHandler := handlers.NewSalesHandler(saleManager, logger)
	exchangesHandler := handlers.NewExchangesHandler(exchangeManager, logger)
	importHandler := handlers.NewImportHandler(importer, nil, nil, logger, 1<<20, t.TempDir())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/options", optionsHandler.List)
	mux.HandleFunc("POST /api/v1/options", optionsHandler.Create)
	mux.HandleFunc("PATCH /api/v1/options/{id}", optionsHandler.Update)
	mux.HandleFunc("GET /api/v1/stock", stockHandler.List)
	mux.HandleFunc("GET /api/v1/stock/{id}", stockHandler.Get)
	mux.HandleFunc("POST /api/v1/stock/intake", stockHandler.Intake)
	mux.HandleFunc("GET /api/v1/sales", salesHandler.List)
	mux.HandleFunc("POST /api/v1/sales", salesHandler.Create)
	mux.HandleFunc("GET /api/v1/sales/{id}", salesHandler.Get)
	mux.HandleFunc("POST /api/v1/sales/{id}/payment", salesHandler.ConfirmPayment)
	mux.HandleFunc("POST /api/v1/exchanges", exchangesHandler.Create)
	mux.HandleFunc("GET /api/v1/exchanges/{id}", exchangesHandler.Get)
	mux.HandleFunc("POST /api/v1/import", importHandler.ImportRows)

	return &testApp{
		mux:      mux,
		ledger:   ledger,
		sales:    saleManager,
		registry: registry,
	}
}

func (a *testApp) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dest))
}

func (a *testApp) intake(t *testing.T, quantity int) []domain.StockUnit {
	t.Helper()

	units, err := a.ledger.Intake(context.Background(), ports.IntakeParams{
		Name:        "Body manga curta",
		Gender:      "Unissex",
		Size:        "RN",
		ColorPrint:  "Branco",
		Supplier:    "Fornecedor Local",
		Cost:        decimal.RequireFromString("12.50"),
		RetailPrice: decimal.RequireFromString("29.90"),
		Quantity:    quantity,
	})
	require.NoError(t, err)
	return units
}
