package spreads

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arbwatch/arbwatch/src/models"
)

// SpreadView is the dashboard read model. Every derived field is recomputed
// on each read from the stored record, so a formula change applies to all
// existing rows immediately.
type SpreadView struct {
	ID               uint                `json:"id" csv:"id"`
	DealID           uint                `json:"dealId" csv:"deal_id"`
	StrategyType     models.StrategyType `json:"strategyType" csv:"strategy_type"`
	Expiration       string              `json:"expiration" csv:"expiration"`
	Status           models.SpreadStatus `json:"status" csv:"status"`
	EntryPremium     decimal.Decimal     `json:"entryPremium" csv:"entry_premium"`
	CurrentPremium   decimal.Decimal     `json:"currentPremium" csv:"current_premium"`
	PnLDollar        decimal.Decimal     `json:"pnlDollar" csv:"pnl_dollar"`
	PnLPercent       decimal.Decimal     `json:"pnlPercent" csv:"pnl_percent"`
	DaysToClose      int                 `json:"daysToClose" csv:"days_to_close"`
	DaysToCloseKnown bool                `json:"daysToCloseKnown" csv:"days_to_close_known"`
	LiquidityScore   float64             `json:"liquidityScore" csv:"liquidity_score"`
}

// BuildSpreadView derives the read-time metrics for one spread. A deal with
// no expected close date yields daysToClose = 0 with the known flag unset so
// callers can tell "due today" apart from "unknown".
func BuildSpreadView(spread *models.WatchedSpread, expectedClose time.Time, closeKnown bool, now time.Time, cfg LiquidityConfig) SpreadView {
	current := spread.EffectivePremium()
	pnl := ComputePnL(spread.EntryPremium, current)

	view := SpreadView{
		ID:             spread.ID,
		DealID:         spread.DealID,
		StrategyType:   spread.StrategyType,
		Expiration:     spread.Expiration.Format("2006-01-02"),
		Status:         spread.Status,
		EntryPremium:   spread.EntryPremium,
		CurrentPremium: current,
		PnLDollar:      pnl.Dollar,
		PnLPercent:     pnl.Percent,
		LiquidityScore: LiquidityScore(cfg, spread.AvgBidAskSpreadRatio, spread.AvgVolume, spread.AvgOpenInterest),
	}

	if closeKnown {
		view.DaysToClose = DaysToClose(expectedClose, now)
		view.DaysToCloseKnown = true
	}

	return view
}

// BuildDealViews assembles the read model for every spread watched against a
// deal, looking up the expected close date once.
func BuildDealViews(db models.IDatabaseService, dealID uint, now time.Time, cfg LiquidityConfig) ([]SpreadView, error) {
	spreadRecords, err := db.FindSpreadsByDeal(dealID)
	if err != nil {
		return nil, fmt.Errorf("BuildDealViews: failed to fetch spreads: %w", err)
	}

	expectedClose, closeKnown, err := db.GetDealExpectedCloseDate(dealID)
	if err != nil {
		return nil, fmt.Errorf("BuildDealViews: failed to fetch expected close date: %w", err)
	}

	views := make([]SpreadView, 0, len(spreadRecords))
	for _, spread := range spreadRecords {
		views = append(views, BuildSpreadView(spread, expectedClose, closeKnown, now, cfg))
	}

	return views, nil
}
