package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/inventory-be/internal/adapters/memory"
	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/services"
	"github.com/lojinha/inventory-be/test/helpers"
)

func newRegistry() *services.OptionRegistry {
	return services.NewOptionRegistry(memory.NewOptionRepository(), helpers.TestLogger())
}

func TestOptionRegistry_AddOption(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		fieldType domain.FieldType
		value     string
		wantCode  domain.ErrorCode
	}{
		{
			name:      "adds_size_option",
			fieldType: domain.FieldSize,
			value:     "RN",
		},
		{
			name:      "trims_whitespace",
			fieldType: domain.FieldSupplier,
			value:     "  Fornecedor Local  ",
		},
		{
			name:      "rejects_empty_value",
			fieldType: domain.FieldSize,
			value:     "   ",
			wantCode:  domain.CodeInvalidOption,
		},
		{
			name:      "rejects_unknown_field_type",
			fieldType: domain.FieldType("flavor"),
			value:     "morango",
			wantCode:  domain.CodeInvalidOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := newRegistry()
			option, err := registry.AddOption(ctx, tt.fieldType, tt.value)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, domain.CodeOf(err))
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, option.ID)
			assert.Equal(t, tt.fieldType, option.Type)
			assert.True(t, option.Active)
		})
	}
}

func TestOptionRegistry_AddOptionRejectsActiveDuplicate(t *testing.T) {
	ctx := context.Background()
	registry := newRegistry()

	_, err := registry.AddOption(ctx, domain.FieldSize, "P")
	require.NoError(t, err)

	_, err = registry.AddOption(ctx, domain.FieldSize, "P")
	require.Error(t, err)
	assert.True(t, domain.IsDuplicateValue(err))

	// Same value under a different field type is fine.
	_, err = registry.AddOption(ctx, domain.FieldColorPrint, "P")
	require.NoError(t, err)
}

func TestOptionRegistry_DeactivatedValueCanBeReAdded(t *testing.T) {
	ctx := context.Background()
	registry := newRegistry()

	option, err := registry.AddOption(ctx, domain.FieldSupplier, "Atacado Centro")
	require.NoError(t, err)

	_, err = registry.SetActive(ctx, option.ID, false)
	require.NoError(t, err)

	// The slot reopens once the original is inactive.
	_, err = registry.AddOption(ctx, domain.FieldSupplier, "Atacado Centro")
	require.NoError(t, err)
}

func TestOptionRegistry_SetActive(t *testing.T) {
	ctx := context.Background()
	registry := newRegistry()

	option, err := registry.AddOption(ctx, domain.FieldPaymentMethod, "Pix")
	require.NoError(t, err)

	deactivated, err := registry.SetActive(ctx, option.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	// Deactivating again is a no-op, not an error.
	again, err := registry.SetActive(ctx, option.ID, false)
	require.NoError(t, err)
	assert.False(t, again.Active)

	reactivated, err := registry.SetActive(ctx, option.ID, true)
	require.NoError(t, err)
	assert.True(t, reactivated.Active)

	_, err = registry.SetActive(ctx, uuid.New(), false)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestOptionRegistry_EditValue(t *testing.T) {
	ctx := context.Background()
	registry := newRegistry()

	option, err := registry.AddOption(ctx, domain.FieldSize, "G")
	require.NoError(t, err)
	other, err := registry.AddOption(ctx, domain.FieldSize, "GG")
	require.NoError(t, err)

	edited, err := registry.EditValue(ctx, option.ID, "G (9-12m)")
	require.NoError(t, err)
	assert.Equal(t, "G (9-12m)", edited.Value)

	// Renaming onto another active value collides.
	_, err = registry.EditValue(ctx, other.ID, "G (9-12m)")
	require.Error(t, err)
	assert.True(t, domain.IsDuplicateValue(err))

	// Renaming to its own value is allowed.
	_, err = registry.EditValue(ctx, edited.ID, "G (9-12m)")
	require.NoError(t, err)
}

func TestOptionRegistry_ValidateSelection(t *testing.T) {
	ctx := context.Background()
	registry := newRegistry()

	option, err := registry.AddOption(ctx, domain.FieldPaymentMethod, "Dinheiro")
	require.NoError(t, err)

	require.NoError(t, registry.ValidateSelection(ctx, domain.FieldPaymentMethod, "Dinheiro"))

	err = registry.ValidateSelection(ctx, domain.FieldPaymentMethod, "Cheque")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidOption(err))

	// Deactivated options stop validating for new transactions.
	_, err = registry.SetActive(ctx, option.ID, false)
	require.NoError(t, err)

	err = registry.ValidateSelection(ctx, domain.FieldPaymentMethod, "Dinheiro")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidOption(err))
}

func TestOptionRegistry_ListOptions(t *testing.T) {
	ctx := context.Background()
	registry := newRegistry()

	active, err := registry.AddOption(ctx, domain.FieldSize, "M")
	require.NoError(t, err)
	inactive, err := registry.AddOption(ctx, domain.FieldSize, "XG")
	require.NoError(t, err)
	_, err = registry.SetActive(ctx, inactive.ID, false)
	require.NoError(t, err)

	activeOnly, err := registry.ListOptions(ctx, domain.FieldSize, false)
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, active.ID, activeOnly[0].ID)

	all, err := registry.ListOptions(ctx, domain.FieldSize, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
