//go:build integration
// +build integration

package db_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/inventory-be/internal/adapters/db"
	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
	"github.com/lojinha/inventory-be/test/helpers"
)

func TestUnitRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := helpers.SetupTestDB(t)
	repo := db.NewUnitRepository(testDB.Database, helpers.TestLogger())
	ctx := context.Background()

	t.Run("SaveBatchAndFindAll", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)

		units := helpers.CreateTestUnits(5)
		require.NoError(t, repo.SaveBatch(ctx, units))

		found, err := repo.FindAll(ctx, ports.UnitQueryParams{})
		require.NoError(t, err)
		require.Len(t, found, 5)

		// FIFO order: purchase_date ascending, UUIDv7 id as tie-break.
		for i := 1; i < len(found); i++ {
			assert.False(t, found[i].PurchaseDate.Before(found[i-1].PurchaseDate))
		}
	})

	t.Run("FindAllFilters", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)

		units := []domain.StockUnit{
			*helpers.CreateTestUnit(func(u *domain.StockUnit) { u.Size = "P" }),
			*helpers.CreateTestUnit(func(u *domain.StockUnit) { u.Size = "M" }),
			*helpers.CreateTestUnit(func(u *domain.StockUnit) {
				u.Size = "P"
				u.Status = domain.UnitSold
			}),
		}
		require.NoError(t, repo.SaveBatch(ctx, units))

		sized, err := repo.FindAll(ctx, ports.UnitQueryParams{Size: "P"})
		require.NoError(t, err)
		assert.Len(t, sized, 2)

		available, err := repo.FindAll(ctx, ports.UnitQueryParams{
			Size:   "P",
			Status: domain.UnitAvailable,
		})
		require.NoError(t, err)
		assert.Len(t, available, 1)
	})

	t.Run("FindByIDMissing", func(t *testing.T) {
		unit, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, unit)
	})

	t.Run("UpdateStatusTransition", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)

		unit := helpers.CreateTestUnit()
		require.NoError(t, repo.SaveBatch(ctx, []domain.StockUnit{*unit}))

		saleID := uuid.New()
		reserved, err := repo.UpdateStatus(ctx, unit.ID, ports.StatusTransition{
			From:   []domain.UnitStatus{domain.UnitAvailable},
			To:     domain.UnitReserved,
			SaleID: &saleID,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.UnitReserved, reserved.Status)
		require.NotNil(t, reserved.SaleID)
		assert.Equal(t, saleID, *reserved.SaleID)

		// Wrong precondition reports the current state as a conflict.
		_, err = repo.UpdateStatus(ctx, unit.ID, ports.StatusTransition{
			From: []domain.UnitStatus{domain.UnitAvailable},
			To:   domain.UnitReserved,
		})
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))

		// Release clears the sale link.
		released, err := repo.UpdateStatus(ctx, unit.ID, ports.StatusTransition{
			From:        []domain.UnitStatus{domain.UnitReserved},
			To:          domain.UnitAvailable,
			ClearSaleID: true,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.UnitAvailable, released.Status)
		assert.Nil(t, released.SaleID)
	})

	t.Run("UpdateStatusRestampsPurchaseDate", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)

		unit := helpers.CreateTestUnit(func(u *domain.StockUnit) {
			u.Status = domain.UnitSold
		})
		require.NoError(t, repo.SaveBatch(ctx, []domain.StockUnit{*unit}))

		restamp := time.Now().UTC().Truncate(time.Second)
		updated, err := repo.UpdateStatus(ctx, unit.ID, ports.StatusTransition{
			From:         []domain.UnitStatus{domain.UnitSold},
			To:           domain.UnitAvailable,
			ClearSaleID:  true,
			PurchaseDate: &restamp,
		})
		require.NoError(t, err)
		assert.WithinDuration(t, restamp, updated.PurchaseDate, time.Second)
	})

	t.Run("UpdateStatusMissingUnit", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, uuid.New(), ports.StatusTransition{
			From: []domain.UnitStatus{domain.UnitAvailable},
			To:   domain.UnitReserved,
		})
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("ConcurrentReserveSingleWinner", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)

		unit := helpers.CreateTestUnit()
		require.NoError(t, repo.SaveBatch(ctx, []domain.StockUnit{*unit}))

		const attempts = 10
		var wg sync.WaitGroup
		errs := make([]error, attempts)

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				saleID := uuid.New()
				_, errs[i] = repo.UpdateStatus(ctx, unit.ID, ports.StatusTransition{
					From:   []domain.UnitStatus{domain.UnitAvailable},
					To:     domain.UnitReserved,
					SaleID: &saleID,
				})
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
		assert.Equal(t, 1, winners)
	})

	t.Run("DeleteBatchSkipsSold", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)

		available := helpers.CreateTestUnit()
		sold := helpers.CreateTestUnit(func(u *domain.StockUnit) {
			u.Status = domain.UnitSold
		})
		require.NoError(t, repo.SaveBatch(ctx, []domain.StockUnit{*available, *sold}))

		require.NoError(t, repo.DeleteBatch(ctx, []uuid.UUID{available.ID, sold.ID}))

		remaining, err := repo.FindAll(ctx, ports.UnitQueryParams{})
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, sold.ID, remaining[0].ID)
	})
}
