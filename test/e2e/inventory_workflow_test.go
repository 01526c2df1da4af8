//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lojinha/inventory-be/internal/adapters/db"
	redis_a "github.com/lojinha/inventory-be/internal/adapters/redis_adapter"
	"github.com/lojinha/inventory-be/internal/core/services"
	"github.com/lojinha/inventory-be/internal/handlers"
	"github.com/lojinha/inventory-be/test/helpers"
)

type ShopWorkflowSuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *ShopWorkflowSuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *ShopWorkflowSuite) TearDownSuite() {
	s.server.Close()
}

func (s *ShopWorkflowSuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
	s.seedOptions()
}

func (s *ShopWorkflowSuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()

	optionRepo := db.NewOptionRepository(s.testDB.Database, logger)
	unitRepo := db.NewUnitRepository(s.testDB.Database, logger)
	saleRepo := db.NewSaleRepository(s.testDB.Database, logger)
	exchangeRepo := db.NewExchangeRepository(s.testDB.Database, logger)
	cache := redis_a.NewCache(s.testRedis.Client, 5*time.Minute, logger)

	registry := services.NewOptionRegistry(optionRepo, logger)
	ledger := services.NewLedger(unitRepo, registry, services.LedgerConfig{}, logger)
	saleManager := services.NewSaleManager(saleRepo, ledger, registry, logger)
	exchangeManager := services.NewExchangeManager(exchangeRepo, saleRepo, ledger, logger)
	importer := services.NewImporter(unitRepo, optionRepo, registry, services.ImporterConfig{}, logger)

	optionsHandler := handlers.NewOptionsHandler(registry, logger)
	stockHandler := handlers.NewStockHandler(ledger, logger)
	salesHandler := handlers.NewSalesHandler(saleManager, logger)
	exchangesHandler := handlers.NewExchangesHandler(exchangeManager, logger)
	importHandler := handlers.NewImportHandler(importer, nil, cache, logger, 10<<20, s.T().TempDir())
	dashboardHandler := handlers.NewDashboardHandler(s.testDB.Database, cache, logger)

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
	mux.HandleFunc("GET /api/v1/dashboard", dashboardHandler.GetDashboard)

	return httptest.NewServer(mux)
}

func (s *ShopWorkflowSuite) seedOptions() {
	for _, opt := range []map[string]string{
		{"field_type": "size", "value": "P"},
		{"field_type": "size", "value": "M"},
		{"field_type": "color_print", "value": "Branco"},
		{"field_type": "supplier", "value": "Fornecedor Local"},
		{"field_type": "payment_method", "value": "Pix"},
	} {
		resp := s.makeRequest("POST", "/options", opt)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
}

func (s *ShopWorkflowSuite) TestCompleteShopWorkflow() {
	// 1. Intake three identical units on staggered dates
	unitIDs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		resp := s.makeRequest("POST", "/stock/intake", map[string]interface{}{
			"name":          "Body manga curta",
			"gender":        "menina",
			"size":          "P",
			"color_print":   "Branco",
			"supplier":      "Fornecedor Local",
			"cost_price":    "12.50",
			"retail_price":  "29.90",
			"quantity":      1,
			"purchase_date": fmt.Sprintf("2025-01-%02d", 10+i),
		})
		s.Equal(http.StatusCreated, resp.StatusCode)

		var created struct {
			Units []struct {
				ID string `json:"id"`
			} `json:"units"`
		}
		s.decodeResponse(resp, &created)
		s.Require().Len(created.Units, 1)
		unitIDs = append(unitIDs, created.Units[0].ID)
	}

	// 2. Ranked listing puts the oldest purchase first
	resp := s.makeRequest("GET", "/stock?ranked=true", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var ranked struct {
		Units []struct {
			Unit struct {
				ID string `json:"id"`
			} `json:"unit"`
			Rank int `json:"rank"`
		} `json:"units"`
	}
	s.decodeResponse(resp, &ranked)
	s.Require().Len(ranked.Units, 3)
	s.Equal(unitIDs[0], ranked.Units[0].Unit.ID)
	s.Equal(1, ranked.Units[0].Rank)

	// 3. Sell the two oldest units
	resp = s.makeRequest("POST", "/sales", map[string]interface{}{
		"unit_ids":            []string{unitIDs[0], unitIDs[1]},
		"customer_first_name": "Maria",
		"payment_method":      "Pix",
		"sale_date":           "2025-02-01",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var sale struct {
		ID    string `json:"id"`
		Lines []struct {
			UnitPrice string `json:"unit_price"`
		} `json:"lines"`
	}
	s.decodeResponse(resp, &sale)
	s.Require().Len(sale.Lines, 2)
	s.Equal("29.9", sale.Lines[0].UnitPrice)

	// 4. A sold unit cannot be sold again
	resp = s.makeRequest("POST", "/sales", map[string]interface{}{
		"unit_ids":       []string{unitIDs[0]},
		"payment_method": "Pix",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// 5. Settle the sale with a discount
	resp = s.makeRequest("POST", fmt.Sprintf("/sales/%s/payment", sale.ID), map[string]interface{}{
		"paid_amount": "54.80",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var paid struct {
		Status         string `json:"status"`
		DiscountAmount string `json:"discount_amount"`
	}
	s.decodeResponse(resp, &paid)
	s.Equal("paid", paid.Status)
	s.Equal("5", paid.DiscountAmount)

	// 6. Exchange one sold unit for the remaining available one
	resp = s.makeRequest("POST", "/exchanges", map[string]interface{}{
		"original_sale_id":  sale.ID,
		"customer_name":     "Maria",
		"returned_unit_ids": []string{unitIDs[0]},
		"new_unit_ids":      []string{unitIDs[2]},
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var exchange struct {
		ID              string `json:"id"`
		PriceDifference string `json:"price_difference"`
	}
	s.decodeResponse(resp, &exchange)
	s.Equal("0", exchange.PriceDifference)

	// 7. The returned unit is available again and keeps its purchase date
	resp = s.makeRequest("GET", fmt.Sprintf("/stock/%s", unitIDs[0]), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var returned struct {
		Status       string `json:"status"`
		PurchaseDate string `json:"purchase_date"`
	}
	s.decodeResponse(resp, &returned)
	s.Equal("available", returned.Status)
	s.Contains(returned.PurchaseDate, "2025-01-10")

	// 8. Dashboard aggregates reflect the final state
	resp = s.makeRequest("GET", "/dashboard", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var dashboard map[string]interface{}
	s.decodeResponse(resp, &dashboard)
	s.Contains(dashboard, "units_available")
	s.Contains(dashboard, "sales_paid")
}

func (s *ShopWorkflowSuite) TestBulkImportWorkflow() {
	resp := s.makeRequest("POST", "/import", map[string]interface{}{
		"rows": []map[string]string{
			{
				"produto":     "Macacão",
				"genero":      "menino",
				"tamanho":     "M",
				"cor":         "Branco",
				"fornecedor":  "Fornecedor Local",
				"preco_custo": "R$ 18,00",
				"preco_venda": "39,90",
				"quantidade":  "2",
				"data":        "15/01/2025",
			},
			{
				"produto":     "Vestido",
				"genero":      "menina",
				"tamanho":     "GG",
				"cor":         "Rosa",
				"fornecedor":  "Fornecedor Local",
				"preco_custo": "25,00",
				"preco_venda": "59,90",
			},
		},
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var result struct {
		UnitCount      int                 `json:"unit_count"`
		RowCount       int                 `json:"row_count"`
		CreatedOptions map[string][]string `json:"created_options"`
	}
	s.decodeResponse(resp, &result)
	s.Equal(2, result.RowCount)
	s.Equal(3, result.UnitCount)
	s.Contains(result.CreatedOptions["size"], "GG")

	resp = s.makeRequest("GET", "/stock", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var stock struct {
		Count int `json:"count"`
	}
	s.decodeResponse(resp, &stock)
	s.Equal(3, stock.Count)
}

func (s *ShopWorkflowSuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *ShopWorkflowSuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func TestShopWorkflowSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e tests in short mode")
	}
	suite.Run(t, new(ShopWorkflowSuite))
}
