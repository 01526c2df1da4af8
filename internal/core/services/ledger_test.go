package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/inventory-be/internal/adapters/memory"
	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
	"github.com/lojinha/inventory-be/internal/core/services"
	"github.com/lojinha/inventory-be/test/helpers"
)

func newLedger(t *testing.T, cfg services.LedgerConfig) (*services.Ledger, *services.OptionRegistry) {
	t.Helper()
	ctx := context.Background()

	registry := services.NewOptionRegistry(memory.NewOptionRepository(), helpers.TestLogger())
	for fieldType, values := range map[domain.FieldType][]string{
		domain.FieldSize:          {"RN", "P", "M"},
		domain.FieldColorPrint:    {"Branco", "Rosa"},
		domain.FieldSupplier:      {"Fornecedor Local"},
		domain.FieldPaymentMethod: {"Pix"},
	} {
		for _, v := range values {
			_, err := registry.AddOption(ctx, fieldType, v)
			require.NoError(t, err)
		}
	}

	ledger := services.NewLedger(memory.NewUnitRepository(), registry, cfg, helpers.TestLogger())
	return ledger, registry
}

func intakeParams() ports.IntakeParams {
	return ports.IntakeParams{
		Name:        "Body manga curta",
		Gender:      "Unissex",
		Size:        "RN",
		ColorPrint:  "Branco",
		Supplier:    "Fornecedor Local",
		Cost:        decimal.RequireFromString("12.50"),
		RetailPrice: decimal.RequireFromString("29.90"),
		Quantity:    1,
	}
}

func TestLedger_IntakeCreatesOneRowPerPhysicalPiece(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	params := intakeParams()
	params.Quantity = 5
	params.PurchaseDate = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	units, err := ledger.Intake(ctx, params)
	require.NoError(t, err)
	require.Len(t, units, 5)

	seen := make(map[uuid.UUID]bool)
	for _, u := range units {
		assert.False(t, seen[u.ID], "unit ids must be distinct")
		seen[u.ID] = true
		assert.Equal(t, domain.UnitAvailable, u.Status)
		assert.True(t, params.PurchaseDate.Equal(u.PurchaseDate))
	}
}

func TestLedger_IntakeValidation(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	tests := []struct {
		name     string
		mutate   func(*ports.IntakeParams)
		wantCode domain.ErrorCode
	}{
		{
			name:     "zero_quantity",
			mutate:   func(p *ports.IntakeParams) { p.Quantity = 0 },
			wantCode: domain.CodeInvalidAmount,
		},
		{
			name:     "unknown_size",
			mutate:   func(p *ports.IntakeParams) { p.Size = "XXG" },
			wantCode: domain.CodeInvalidOption,
		},
		{
			name:     "unknown_color",
			mutate:   func(p *ports.IntakeParams) { p.ColorPrint = "Roxo" },
			wantCode: domain.CodeInvalidOption,
		},
		{
			name:     "unknown_supplier",
			mutate:   func(p *ports.IntakeParams) { p.Supplier = "Desconhecido" },
			wantCode: domain.CodeInvalidOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := intakeParams()
			tt.mutate(&params)

			_, err := ledger.Intake(ctx, params)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.CodeOf(err))
		})
	}
}

func TestLedger_IntakeDefaultsPurchaseDate(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	before := time.Now()
	units, err := ledger.Intake(ctx, intakeParams())
	require.NoError(t, err)
	require.Len(t, units, 1)

	assert.False(t, units[0].PurchaseDate.Before(before))
}

func TestLedger_LifecycleTransitions(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	units, err := ledger.Intake(ctx, intakeParams())
	require.NoError(t, err)
	unitID := units[0].ID
	saleID := uuid.New()

	reserved, err := ledger.Reserve(ctx, unitID, saleID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitReserved, reserved.Status)
	require.NotNil(t, reserved.SaleID)
	assert.Equal(t, saleID, *reserved.SaleID)

	// A second reservation loses the race.
	_, err = ledger.Reserve(ctx, unitID, uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	sold, err := ledger.MarkSold(ctx, unitID, saleID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitSold, sold.Status)

	returned, err := ledger.MarkReturned(ctx, unitID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitAvailable, returned.Status)
	assert.Nil(t, returned.SaleID)
}

func TestLedger_MarkSoldStraightFromAvailable(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	units, err := ledger.Intake(ctx, intakeParams())
	require.NoError(t, err)

	sold, err := ledger.MarkSold(ctx, units[0].ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.UnitSold, sold.Status)
}

func TestLedger_ReleasePutsReservedBack(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	units, err := ledger.Intake(ctx, intakeParams())
	require.NoError(t, err)

	_, err = ledger.Reserve(ctx, units[0].ID, uuid.New())
	require.NoError(t, err)

	released, err := ledger.Release(ctx, units[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitAvailable, released.Status)
	assert.Nil(t, released.SaleID)

	// Releasing an available unit is a conflict, not a silent no-op.
	_, err = ledger.Release(ctx, units[0].ID)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestLedger_ReturnKeepsOriginalFIFODate(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	params := intakeParams()
	params.PurchaseDate = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	units, err := ledger.Intake(ctx, params)
	require.NoError(t, err)

	_, err = ledger.MarkSold(ctx, units[0].ID, uuid.New())
	require.NoError(t, err)

	returned, err := ledger.MarkReturned(ctx, units[0].ID)
	require.NoError(t, err)
	assert.True(t, params.PurchaseDate.Equal(returned.PurchaseDate),
		"return must keep the unit's queue slot")
}

func TestLedger_ReturnRestampsDateWhenConfigured(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{ResetReturnedFIFODate: true})

	params := intakeParams()
	params.PurchaseDate = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	units, err := ledger.Intake(ctx, params)
	require.NoError(t, err)

	_, err = ledger.MarkSold(ctx, units[0].ID, uuid.New())
	require.NoError(t, err)

	before := time.Now()
	returned, err := ledger.MarkReturned(ctx, units[0].ID)
	require.NoError(t, err)
	assert.False(t, returned.PurchaseDate.Before(before),
		"restamp policy must push the unit to the back of the queue")
}

func TestLedger_ReturnFromSaleRequiresMatchingSale(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	units, err := ledger.Intake(ctx, intakeParams())
	require.NoError(t, err)
	saleID := uuid.New()

	_, err = ledger.MarkSold(ctx, units[0].ID, saleID)
	require.NoError(t, err)

	_, err = ledger.ReturnFromSale(ctx, units[0].ID, uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsInvalidReturn(err), "got %v", err)

	// The mismatched attempt leaves the unit sold.
	got, err := ledger.Get(ctx, units[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitSold, got.Status)

	returned, err := ledger.ReturnFromSale(ctx, units[0].ID, saleID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitAvailable, returned.Status)
	assert.Nil(t, returned.SaleID)
}

func TestLedger_UndoSaleNeverRestampsDate(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{ResetReturnedFIFODate: true})

	params := intakeParams()
	params.PurchaseDate = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	units, err := ledger.Intake(ctx, params)
	require.NoError(t, err)

	_, err = ledger.MarkSold(ctx, units[0].ID, uuid.New())
	require.NoError(t, err)

	// Undoing a sale that never completed keeps the unit's queue slot
	// even under the restamp policy.
	undone, err := ledger.UndoSale(ctx, units[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitAvailable, undone.Status)
	assert.Nil(t, undone.SaleID)
	assert.True(t, params.PurchaseDate.Equal(undone.PurchaseDate),
		"undo must not move the unit in the queue")
}

func TestLedger_ConcurrentReservesYieldOneWinner(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	units, err := ledger.Intake(ctx, intakeParams())
	require.NoError(t, err)
	unitID := units[0].ID

	const writers = 16
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Reserve(ctx, unitID, uuid.New())
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, domain.IsConflict(err))
		}
	}
	assert.Equal(t, 1, winners, "exactly one writer observes its precondition")
}

func TestLedger_RankAvailableIgnoresNonAvailableUnits(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	params := intakeParams()
	params.Quantity = 3
	params.PurchaseDate = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	units, err := ledger.Intake(ctx, params)
	require.NoError(t, err)

	_, err = ledger.MarkSold(ctx, units[0].ID, uuid.New())
	require.NoError(t, err)

	ranked, err := ledger.RankAvailable(ctx, ports.UnitQueryParams{})
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// Oldest remaining unit ranks first; the sold one is gone.
	assert.Equal(t, units[1].ID, ranked[0].Unit.ID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, units[2].ID, ranked[1].Unit.ID)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestLedger_GetUnknownUnit(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t, services.LedgerConfig{})

	_, err := ledger.Get(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
