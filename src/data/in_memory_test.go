package data

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbwatch/arbwatch/src/models"
)

func testSpread(signature string) *models.WatchedSpread {
	return &models.WatchedSpread{
		DealID:       1,
		StrategyType: models.StrategyTypeIronCondor,
		Expiration:   time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		Signature:    signature,
		EntryPremium: decimal.NewFromInt(1),
		Status:       models.SpreadStatusActive,
		IsPublic:     true,
	}
}

func TestInMemoryInsertSpread(t *testing.T) {
	t.Run("enforces active bucket uniqueness", func(t *testing.T) {
		db := NewInMemoryDatabaseService()

		_, err := db.InsertSpread(testSpread("100|call|sell|1"))
		require.NoError(t, err)

		_, err = db.InsertSpread(testSpread("100|call|sell|1"))
		assert.ErrorIs(t, err, models.ErrDuplicateSpread)

		_, err = db.InsertSpread(testSpread("105|call|sell|1"))
		assert.NoError(t, err)
	})

	t.Run("retired spreads leave the bucket", func(t *testing.T) {
		db := NewInMemoryDatabaseService()

		id, err := db.InsertSpread(testSpread("100|call|sell|1"))
		require.NoError(t, err)

		expired := models.SpreadStatusExpired
		_, err = db.UpdateSpread(id, &expired, nil)
		require.NoError(t, err)

		_, err = db.InsertSpread(testSpread("100|call|sell|1"))
		assert.NoError(t, err)
	})
}

func TestInMemoryUpdateSpread(t *testing.T) {
	t.Run("missing id returns the shared sentinel", func(t *testing.T) {
		db := NewInMemoryDatabaseService()

		inactive := models.SpreadStatusInactive
		_, err := db.UpdateSpread(999, &inactive, nil)

		assert.ErrorIs(t, err, models.ErrSpreadNotFound)
	})
}

func TestInMemoryTransaction(t *testing.T) {
	t.Run("conflict inside transaction surfaces to caller", func(t *testing.T) {
		db := NewInMemoryDatabaseService()

		_, err := db.InsertSpread(testSpread("100|call|sell|1"))
		require.NoError(t, err)

		err = db.Transaction(func(tx models.IDatabaseService) error {
			_, insertErr := tx.InsertSpread(testSpread("100|call|sell|1"))
			return insertErr
		})

		assert.ErrorIs(t, err, models.ErrDuplicateSpread)
	})
}
