package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type OptionRight string

const (
	OptionRightCall OptionRight = "call"
	OptionRightPut  OptionRight = "put"
)

type LegSide string

const (
	LegSideBuy  LegSide = "buy"
	LegSideSell LegSide = "sell"
)

// StrategyLeg is one option position within a multi-leg strategy. Legs are
// immutable once their parent spread is persisted.
type StrategyLeg struct {
	ID           uint            `gorm:"primaryKey" json:"-"`
	SpreadID     uint            `gorm:"column:spread_id;index" json:"-"`
	Strike       decimal.Decimal `gorm:"column:strike;type:numeric;not null" json:"strike"`
	Right        OptionRight     `gorm:"column:right;type:text;not null" json:"right"`
	Side         LegSide         `gorm:"column:side;type:text;not null" json:"side"`
	Quantity     int             `gorm:"column:quantity;not null" json:"quantity"`
	Bid          decimal.Decimal `gorm:"column:bid;type:numeric" json:"bid"`
	Ask          decimal.Decimal `gorm:"column:ask;type:numeric" json:"ask"`
	Mid          decimal.Decimal `gorm:"column:mid;type:numeric" json:"mid"`
	Volume       int             `gorm:"column:volume" json:"volume"`
	OpenInterest int             `gorm:"column:open_interest" json:"openInterest"`
}

func (leg StrategyLeg) Validate() error {
	if leg.Right != OptionRightCall && leg.Right != OptionRightPut {
		return fmt.Errorf("invalid leg right: %s", leg.Right)
	}

	if leg.Side != LegSideBuy && leg.Side != LegSideSell {
		return fmt.Errorf("invalid leg side: %s", leg.Side)
	}

	if leg.Quantity == 0 {
		return fmt.Errorf("leg quantity cannot be zero")
	}

	if leg.Bid.IsNegative() || leg.Ask.IsNegative() || leg.Mid.IsNegative() {
		return fmt.Errorf("leg quotes cannot be negative")
	}

	if leg.Volume < 0 || leg.OpenInterest < 0 {
		return fmt.Errorf("leg volume and open interest cannot be negative")
	}

	return nil
}
