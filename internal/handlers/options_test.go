package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/inventory-be/internal/core/domain"
)

func TestOptionsHandler_List(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodGet, "/api/v1/options?type=size", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Type    string               `json:"type"`
		Options []domain.FieldOption `json:"options"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "size", body.Type)
	assert.Len(t, body.Options, 3)
}

func TestOptionsHandler_ListRequiresType(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodGet, "/api/v1/options", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptionsHandler_Create(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			name:       "creates_option",
			body:       map[string]interface{}{"type": "size", "value": "GG"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate_value_conflicts",
			body:       map[string]interface{}{"type": "size", "value": "RN"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown_type_rejected",
			body:       map[string]interface{}{"type": "flavor", "value": "morango"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing_value_rejected",
			body:       map[string]interface{}{"type": "size"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request(t, http.MethodPost, "/api/v1/options", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestOptionsHandler_Update(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	option, err := app.registry.AddOption(ctx, domain.FieldSize, "XG")
	require.NoError(t, err)

	t.Run("deactivates", func(t *testing.T) {
		rec := app.request(t, http.MethodPatch, "/api/v1/options/"+option.ID.String(),
			map[string]interface{}{"active": false})
		require.Equal(t, http.StatusOK, rec.Code)

		var updated domain.FieldOption
		decodeBody(t, rec, &updated)
		assert.False(t, updated.Active)
	})

	t.Run("renames", func(t *testing.T) {
		rec := app.request(t, http.MethodPatch, "/api/v1/options/"+option.ID.String(),
			map[string]interface{}{"value": "XG (12m+)"})
		require.Equal(t, http.StatusOK, rec.Code)

		var updated domain.FieldOption
		decodeBody(t, rec, &updated)
		assert.Equal(t, "XG (12m+)", updated.Value)
	})

	t.Run("rejects_both_fields", func(t *testing.T) {
		rec := app.request(t, http.MethodPatch, "/api/v1/options/"+option.ID.String(),
			map[string]interface{}{"active": true, "value": "X"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects_neither_field", func(t *testing.T) {
		rec := app.request(t, http.MethodPatch, "/api/v1/options/"+option.ID.String(),
			map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown_id_is_404", func(t *testing.T) {
		rec := app.request(t, http.MethodPatch, "/api/v1/options/00000000-0000-0000-0000-000000000001",
			map[string]interface{}{"active": false})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed_id_is_400", func(t *testing.T) {
		rec := app.request(t, http.MethodPatch, "/api/v1/options/not-a-uuid",
			map[string]interface{}{"active": false})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
