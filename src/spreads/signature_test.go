package spreads

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/arbwatch/arbwatch/src/models"
)

func newLeg(strike int64, right models.OptionRight, side models.LegSide, quantity int) models.StrategyLeg {
	return models.StrategyLeg{
		Strike:   decimal.NewFromInt(strike),
		Right:    right,
		Side:     side,
		Quantity: quantity,
	}
}

func TestSignature(t *testing.T) {
	t.Run("empty legs", func(t *testing.T) {
		assert.Equal(t, "", Signature(nil))
		assert.Equal(t, "", Signature([]models.StrategyLeg{}))
	})

	t.Run("single leg", func(t *testing.T) {
		legs := []models.StrategyLeg{newLeg(100, models.OptionRightCall, models.LegSideSell, 1)}

		assert.Equal(t, "100|call|sell|1", Signature(legs))
	})

	t.Run("order invariance", func(t *testing.T) {
		legs := []models.StrategyLeg{
			newLeg(100, models.OptionRightCall, models.LegSideSell, 1),
			newLeg(105, models.OptionRightCall, models.LegSideBuy, 1),
			newLeg(95, models.OptionRightPut, models.LegSideSell, 1),
			newLeg(90, models.OptionRightPut, models.LegSideBuy, 1),
		}

		expected := Signature(legs)

		permutations := [][]int{
			{3, 2, 1, 0},
			{1, 0, 3, 2},
			{2, 3, 0, 1},
			{0, 2, 1, 3},
		}

		for _, perm := range permutations {
			shuffled := make([]models.StrategyLeg, 0, len(legs))
			for _, i := range perm {
				shuffled = append(shuffled, legs[i])
			}

			assert.Equal(t, expected, Signature(shuffled))
		}
	})

	t.Run("liquidity fields excluded", func(t *testing.T) {
		quiet := newLeg(100, models.OptionRightCall, models.LegSideSell, 1)

		busy := quiet
		busy.Bid = decimal.NewFromFloat(1.05)
		busy.Ask = decimal.NewFromFloat(1.15)
		busy.Mid = decimal.NewFromFloat(1.10)
		busy.Volume = 2500
		busy.OpenInterest = 12000

		assert.Equal(t, Signature([]models.StrategyLeg{quiet}), Signature([]models.StrategyLeg{busy}))
	})

	t.Run("differing quantity changes signature", func(t *testing.T) {
		one := []models.StrategyLeg{newLeg(100, models.OptionRightCall, models.LegSideSell, 1)}
		two := []models.StrategyLeg{newLeg(100, models.OptionRightCall, models.LegSideSell, 2)}

		assert.NotEqual(t, Signature(one), Signature(two))
	})

	t.Run("trailing zeros normalized", func(t *testing.T) {
		a := newLeg(100, models.OptionRightCall, models.LegSideSell, 1)

		b := a
		strike, err := decimal.NewFromString("100.00")
		assert.NoError(t, err)
		b.Strike = strike

		assert.Equal(t, Signature([]models.StrategyLeg{a}), Signature([]models.StrategyLeg{b}))
	})

	t.Run("fractional strike preserved", func(t *testing.T) {
		strike, err := decimal.NewFromString("102.50")
		assert.NoError(t, err)

		leg := newLeg(0, models.OptionRightPut, models.LegSideBuy, 1)
		leg.Strike = strike

		assert.Equal(t, "102.5|put|buy|1", Signature([]models.StrategyLeg{leg}))
	})
}
