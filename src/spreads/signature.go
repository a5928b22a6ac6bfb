package spreads

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arbwatch/arbwatch/src/models"
)

// Signature returns the canonical comparison key for a leg composition. Two
// spreads with the same strike/right/side/quantity multiset produce the same
// signature regardless of leg order; quoted liquidity at capture time is
// deliberately excluded. An empty leg list yields an empty signature.
func Signature(legs []models.StrategyLeg) string {
	if len(legs) == 0 {
		return ""
	}

	tokens := make([]string, 0, len(legs))
	for _, leg := range legs {
		tokens = append(tokens, legToken(leg))
	}

	sort.Strings(tokens)

	return strings.Join(tokens, ",")
}

func legToken(leg models.StrategyLeg) string {
	return fmt.Sprintf("%s|%s|%s|%d", canonicalDecimal(leg.Strike), leg.Right, leg.Side, leg.Quantity)
}

// canonicalDecimal strips trailing fractional zeros so that "100", "100.0"
// and "100.00" tokenize identically. No rounding takes place.
func canonicalDecimal(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}

	return s
}
