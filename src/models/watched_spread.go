package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StrategyType string

const (
	StrategyTypeBullCallSpread StrategyType = "bull_call_spread"
	StrategyTypeBearCallSpread StrategyType = "bear_call_spread"
	StrategyTypeBullPutSpread  StrategyType = "bull_put_spread"
	StrategyTypeBearPutSpread  StrategyType = "bear_put_spread"
	StrategyTypeIronCondor     StrategyType = "iron_condor"
	StrategyTypeIronButterfly  StrategyType = "iron_butterfly"
)

type SpreadStatus string

const (
	SpreadStatusActive   SpreadStatus = "active"
	SpreadStatusInactive SpreadStatus = "inactive"
	SpreadStatusExpired  SpreadStatus = "expired"
)

func (s SpreadStatus) IsValid() bool {
	switch s {
	case SpreadStatusActive, SpreadStatusInactive, SpreadStatusExpired:
		return true
	}

	return false
}

// WatchedSpread is a user-curated observation of one multi-leg strategy tied
// to one deal. Entry economics and the liquidity snapshot are set once at
// creation; current-* fields are refreshed by the price sync worker. Spreads
// are never hard-deleted, they are retired via status.
type WatchedSpread struct {
	gorm.Model
	DealID       uint         `gorm:"column:deal_id;not null;index:idx_spread_bucket" json:"dealId"`
	StrategyType StrategyType `gorm:"column:strategy_type;type:text;not null;index:idx_spread_bucket" json:"strategyType"`
	Expiration   time.Time    `gorm:"column:expiration;type:date;not null;index:idx_spread_bucket" json:"expiration"`

	// Signature backs the partial unique index on active rows; comparisons
	// always recompute from the stored legs.
	Signature string        `gorm:"column:signature;type:text;not null" json:"-"`
	Legs      []StrategyLeg `gorm:"foreignKey:SpreadID" json:"legs"`

	EntryPremium    decimal.Decimal `gorm:"column:entry_premium;type:numeric;not null" json:"entryPremium"`
	MaxProfit       decimal.Decimal `gorm:"column:max_profit;type:numeric" json:"maxProfit"`
	MaxLoss         decimal.Decimal `gorm:"column:max_loss;type:numeric" json:"maxLoss"`
	ReturnOnRisk    decimal.Decimal `gorm:"column:return_on_risk;type:numeric" json:"returnOnRisk"`
	AnnualizedYield decimal.Decimal `gorm:"column:annualized_yield;type:numeric" json:"annualizedYield"`

	CurrentPremium  decimal.NullDecimal `gorm:"column:current_premium;type:numeric" json:"currentPremium"`
	UnderlyingPrice decimal.NullDecimal `gorm:"column:underlying_price;type:numeric" json:"underlyingPrice"`
	LastUpdated     *time.Time          `gorm:"column:last_updated;type:timestamp" json:"lastUpdated"`

	AvgBidAskSpreadRatio float64 `gorm:"column:avg_bid_ask_spread_ratio;type:numeric" json:"avgBidAskSpreadRatio"`
	AvgVolume            float64 `gorm:"column:avg_volume;type:numeric" json:"avgVolume"`
	AvgOpenInterest      float64 `gorm:"column:avg_open_interest;type:numeric" json:"avgOpenInterest"`

	Status    SpreadStatus `gorm:"column:status;type:text;not null;index:idx_spread_bucket" json:"status"`
	Notes     *string      `gorm:"column:notes;type:text" json:"notes"`
	CuratedBy *uuid.UUID   `gorm:"column:curated_by;type:uuid" json:"curatedBy"`
	IsPublic  bool         `gorm:"column:is_public;not null" json:"isPublic"`
}

// EffectivePremium returns the last refreshed premium, falling back to the
// entry premium when no refresh has happened yet.
func (s *WatchedSpread) EffectivePremium() decimal.Decimal {
	if s.CurrentPremium.Valid {
		return s.CurrentPremium.Decimal
	}

	return s.EntryPremium
}
