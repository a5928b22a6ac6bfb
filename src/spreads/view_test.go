package spreads_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbwatch/arbwatch/src/data"
	"github.com/arbwatch/arbwatch/src/models"
	"github.com/arbwatch/arbwatch/src/spreads"
)

func TestBuildSpreadView(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	cfg := spreads.DefaultLiquidityConfig()

	t.Run("unrefreshed spread falls back to entry premium", func(t *testing.T) {
		spread := &models.WatchedSpread{
			EntryPremium: decimal.NewFromInt(100),
			Status:       models.SpreadStatusActive,
			Expiration:   time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		}

		view := spreads.BuildSpreadView(spread, now.AddDate(0, 0, 10), true, now, cfg)

		assert.True(t, view.CurrentPremium.Equal(decimal.NewFromInt(100)))
		assert.True(t, view.PnLDollar.IsZero())
		assert.True(t, view.PnLPercent.IsZero())
		assert.Equal(t, 10, view.DaysToClose)
		assert.True(t, view.DaysToCloseKnown)
	})

	t.Run("refreshed spread uses current premium", func(t *testing.T) {
		spread := &models.WatchedSpread{
			EntryPremium:   decimal.NewFromInt(100),
			CurrentPremium: decimal.NewNullDecimal(decimal.NewFromInt(150)),
			Status:         models.SpreadStatusActive,
			Expiration:     time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		}

		view := spreads.BuildSpreadView(spread, time.Time{}, false, now, cfg)

		assert.True(t, view.PnLDollar.Equal(decimal.NewFromInt(50)))
		assert.True(t, view.PnLPercent.Equal(decimal.NewFromInt(50)))
	})

	t.Run("unknown close date surfaces zero with flag unset", func(t *testing.T) {
		spread := &models.WatchedSpread{
			EntryPremium: decimal.NewFromInt(100),
			Status:       models.SpreadStatusActive,
			Expiration:   time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		}

		view := spreads.BuildSpreadView(spread, time.Time{}, false, now, cfg)

		assert.Equal(t, 0, view.DaysToClose)
		assert.False(t, view.DaysToCloseKnown)
	})

	t.Run("past-due deal yields negative days", func(t *testing.T) {
		spread := &models.WatchedSpread{
			EntryPremium: decimal.NewFromInt(100),
			Status:       models.SpreadStatusActive,
			Expiration:   time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		}

		view := spreads.BuildSpreadView(spread, now.AddDate(0, 0, -3), true, now, cfg)

		assert.Equal(t, -3, view.DaysToClose)
		assert.True(t, view.DaysToCloseKnown)
	})
}

func TestBuildDealViews(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	cfg := spreads.DefaultLiquidityConfig()

	t.Run("derives metrics for every spread on the deal", func(t *testing.T) {
		db := data.NewInMemoryDatabaseService()
		registrar := spreads.NewRegistrar(db)

		closeDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
		deal := &models.Deal{ExpectedCloseDate: &closeDate}
		deal.ID = 1
		db.AddDeal(deal)

		_, err := registrar.Watch(watchRequest(condorLegs()))
		require.NoError(t, err)

		altLegs := condorLegs()
		altLegs[1].Strike = decimal.NewFromInt(110)
		_, err = registrar.Watch(watchRequest(altLegs))
		require.NoError(t, err)

		views, err := spreads.BuildDealViews(db, 1, now, cfg)

		require.NoError(t, err)
		require.Len(t, views, 2)

		for _, view := range views {
			assert.Equal(t, 10, view.DaysToClose)
			assert.True(t, view.DaysToCloseKnown)
			assert.GreaterOrEqual(t, view.LiquidityScore, 0.0)
			assert.LessOrEqual(t, view.LiquidityScore, 100.0)
		}
	})

	t.Run("missing deal close date does not fail the read", func(t *testing.T) {
		db := data.NewInMemoryDatabaseService()
		registrar := spreads.NewRegistrar(db)

		_, err := registrar.Watch(watchRequest(condorLegs()))
		require.NoError(t, err)

		views, err := spreads.BuildDealViews(db, 1, now, cfg)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.False(t, views[0].DaysToCloseKnown)
		assert.Equal(t, 0, views[0].DaysToClose)
	})
}
