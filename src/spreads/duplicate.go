package spreads

import (
	"fmt"
	"time"

	"github.com/arbwatch/arbwatch/src/models"
)

// FindDuplicate looks for an existing active spread in the same (deal,
// strategy type, expiration) bucket whose stored legs produce the candidate's
// signature. It returns the first match the store yields and performs no
// writes. Signatures are recomputed from stored legs rather than read from
// the persisted column.
func FindDuplicate(db models.IDatabaseService, dealID uint, strategyType models.StrategyType, expiration time.Time, candidateLegs []models.StrategyLeg) (uint, bool, error) {
	candidateSignature := Signature(candidateLegs)

	existing, err := db.FindActiveSpreads(dealID, strategyType, expiration)
	if err != nil {
		return 0, false, fmt.Errorf("FindDuplicate: failed to fetch active spreads: %w", err)
	}

	for _, spread := range existing {
		if Signature(spread.Legs) == candidateSignature {
			return spread.ID, true, nil
		}
	}

	return 0, false, nil
}
