package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/inventory-be/internal/core/ports"
)

func importRow(overrides map[string]string) ports.ImportRow {
	row := ports.ImportRow{
		"produto":     "Body manga longa",
		"genero":      "menina",
		"tamanho":     "P",
		"cor":         "Branco",
		"fornecedor":  "Fornecedor Local",
		"preco_custo": "R$ 12,50",
		"preco_venda": "29,90",
		"quantidade":  "2",
		"data":        "15/01/2025",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestImportHandler_ImportRows(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/v1/import", map[string]interface{}{
		"rows": []ports.ImportRow{
			importRow(nil),
			importRow(map[string]string{"produto": "Macacão", "quantidade": "1"}),
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var result ports.ImportResult
	decodeBody(t, rec, &result)

	assert.Equal(t, 2, result.RowCount)
	assert.Equal(t, 3, result.UnitCount)
	assert.Len(t, result.Units, 3)
}

func TestImportHandler_ImportRowsEmpty(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/v1/import", map[string]interface{}{
		"rows": []ports.ImportRow{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportHandler_ImportRowsBatchRejected(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/v1/import", map[string]interface{}{
		"rows": []ports.ImportRow{
			importRow(nil),
			importRow(map[string]string{"preco_custo": "abc"}),
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error     string   `json:"error"`
		RowErrors []string `json:"row_errors"`
		Truncated bool     `json:"truncated"`
	}
	decodeBody(t, rec, &body)

	assert.Equal(t, "import rejected", body.Error)
	require.Len(t, body.RowErrors, 1)
	assert.Contains(t, body.RowErrors[0], "row 2")
	assert.False(t, body.Truncated)

	// All-or-nothing: the valid first row must not have been persisted.
	list := app.request(t, http.MethodGet, "/api/v1/stock", nil)
	require.Equal(t, http.StatusOK, list.Code)
	var stock struct {
		Count int `json:"count"`
	}
	decodeBody(t, list, &stock)
	assert.Equal(t, 0, stock.Count)
}
