package spreads

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/arbwatch/arbwatch/src/models"
)

// LiquidityConfig carries the normalization denominators for the liquidity
// score. The defaults (100 contracts of volume, 1000 open interest) are
// tunable policy thresholds, not derived constants.
type LiquidityConfig struct {
	VolumeNormalization       float64 `yaml:"volume_normalization"`
	OpenInterestNormalization float64 `yaml:"open_interest_normalization"`
}

const (
	spreadScoreWeight = 0.5
	volumeScoreWeight = 0.25
	oiScoreWeight     = 0.25
)

func DefaultLiquidityConfig() LiquidityConfig {
	return LiquidityConfig{
		VolumeNormalization:       100,
		OpenInterestNormalization: 1000,
	}
}

// LoadLiquidityConfig reads threshold overrides from a yaml file. An empty
// path returns the defaults.
func LoadLiquidityConfig(path string) (LiquidityConfig, error) {
	cfg := DefaultLiquidityConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("LoadLiquidityConfig: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("LoadLiquidityConfig: failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// DaysToClose returns the signed number of calendar days until the expected
// close date, rounded up. Negative values mean the deal is past its expected
// close; callers must not clamp them.
func DaysToClose(expectedClose time.Time, now time.Time) int {
	return int(math.Ceil(expectedClose.Sub(now).Hours() / 24))
}

type PnL struct {
	Dollar  decimal.Decimal `json:"dollar"`
	Percent decimal.Decimal `json:"percent"`
}

// ComputePnL compares the current premium against entry. A zero entry yields
// zero percent rather than a division fault; the premium sign convention
// (credit vs debit) is assumed already baked into entry.
func ComputePnL(entry decimal.Decimal, current decimal.Decimal) PnL {
	dollar := current.Sub(entry)

	percent := decimal.Zero
	if !entry.IsZero() {
		percent = dollar.Div(entry).Mul(decimal.NewFromInt(100))
	}

	return PnL{
		Dollar:  dollar,
		Percent: percent,
	}
}

// LiquidityScore blends relative bid-ask spread, volume and open interest
// into a 0-100 composite. Negative inputs are treated as zero so the
// function stays total.
func LiquidityScore(cfg LiquidityConfig, avgBidAskSpreadRatio float64, avgVolume float64, avgOpenInterest float64) float64 {
	ratio := math.Max(avgBidAskSpreadRatio, 0)
	volume := math.Max(avgVolume, 0)
	oi := math.Max(avgOpenInterest, 0)

	spreadScore := 1 / (1 + ratio)
	volumeScore := math.Min(volume/cfg.VolumeNormalization, 1)
	oiScore := math.Min(oi/cfg.OpenInterestNormalization, 1)

	return (spreadScore*spreadScoreWeight + volumeScore*volumeScoreWeight + oiScore*oiScoreWeight) * 100
}

// LegAverages computes the liquidity snapshot persisted at creation: mean
// bid-ask spread ratio, mean volume and mean open interest across the legs.
// A leg with a zero mid contributes a zero ratio.
func LegAverages(legs []models.StrategyLeg) (avgRatio float64, avgVolume float64, avgOpenInterest float64, err error) {
	if len(legs) == 0 {
		return 0, 0, 0, models.ErrNoLegs
	}

	ratios := make([]float64, 0, len(legs))
	volumes := make([]float64, 0, len(legs))
	openInterests := make([]float64, 0, len(legs))

	for _, leg := range legs {
		ratio := 0.0
		if !leg.Mid.IsZero() {
			r, _ := leg.Ask.Sub(leg.Bid).Div(leg.Mid).Float64()
			ratio = r
		}

		ratios = append(ratios, ratio)
		volumes = append(volumes, float64(leg.Volume))
		openInterests = append(openInterests, float64(leg.OpenInterest))
	}

	avgRatio, err = stats.Mean(ratios)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("LegAverages: ratio mean: %w", err)
	}

	avgVolume, err = stats.Mean(volumes)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("LegAverages: volume mean: %w", err)
	}

	avgOpenInterest, err = stats.Mean(openInterests)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("LegAverages: open interest mean: %w", err)
	}

	return avgRatio, avgVolume, avgOpenInterest, nil
}
