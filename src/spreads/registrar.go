package spreads

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/arbwatch/arbwatch/src/models"
)

// WatchRequest is a request to start watching a generated strategy against a
// deal. Entry economics arrive pre-computed from the strategy generator.
type WatchRequest struct {
	DealID          uint
	StrategyType    models.StrategyType
	Expiration      string
	Legs            []models.StrategyLeg
	EntryPremium    decimal.Decimal
	MaxProfit       decimal.Decimal
	MaxLoss         decimal.Decimal
	ReturnOnRisk    decimal.Decimal
	AnnualizedYield decimal.Decimal
	UnderlyingPrice decimal.NullDecimal
	Notes           *string
	ListIDs         []uint
	NewListName     string
	ActingUserID    *uuid.UUID
}

// WatchResult reports the outcome of a watch request. Created is false when
// an economically identical spread already existed; that is a normal outcome,
// not an error.
type WatchResult struct {
	ID          uint               `json:"id"`
	Created     bool               `json:"created"`
	ListResults []ListAttachResult `json:"listResults,omitempty"`
}

type Registrar struct {
	db    models.IDatabaseService
	lists *ListManager
}

func NewRegistrar(db models.IDatabaseService) *Registrar {
	return &Registrar{
		db:    db,
		lists: NewListManager(db),
	}
}

// Watch validates the request, deduplicates against active spreads in the
// same (deal, strategy type, expiration) bucket, persists a new spread on a
// miss and attaches it to any requested lists. The duplicate check and the
// insert run inside one store transaction; a uniqueness conflict raised by a
// concurrent writer is converted back into a duplicate result.
func (r *Registrar) Watch(req WatchRequest) (*WatchResult, error) {
	if req.DealID == 0 {
		return nil, models.NewValidationError("missing deal id", nil)
	}

	if req.StrategyType == "" {
		return nil, models.NewValidationError("missing strategy type", nil)
	}

	if len(req.Legs) == 0 {
		return nil, models.NewValidationError("invalid strategy", models.ErrNoLegs)
	}

	for _, leg := range req.Legs {
		if err := leg.Validate(); err != nil {
			return nil, models.NewValidationError("invalid strategy leg", err)
		}
	}

	expiration, _, err := ParseExpiration(req.Expiration)
	if err != nil {
		return nil, models.NewValidationError("invalid expiration", err)
	}

	result := &WatchResult{}

	err = r.db.Transaction(func(tx models.IDatabaseService) error {
		existingID, found, err := FindDuplicate(tx, req.DealID, req.StrategyType, expiration, req.Legs)
		if err != nil {
			return err
		}

		if found {
			result.ID = existingID
			result.Created = false
			return nil
		}

		spread, err := r.buildSpread(req, expiration)
		if err != nil {
			return err
		}

		newID, err := tx.InsertSpread(spread)
		if err != nil {
			return fmt.Errorf("Watch: failed to insert spread: %w", err)
		}

		result.ID = newID
		result.Created = true
		return nil
	})

	if err != nil {
		if errors.Is(err, models.ErrDuplicateSpread) {
			// A concurrent writer won the insert race. Re-read the bucket and
			// report the surviving row as the duplicate.
			existingID, found, dupErr := FindDuplicate(r.db, req.DealID, req.StrategyType, expiration, req.Legs)
			if dupErr != nil || !found {
				return nil, models.NewPersistenceError("Watch: conflict on insert but no duplicate found", err)
			}

			return &WatchResult{ID: existingID, Created: false}, nil
		}

		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}

		return nil, models.NewPersistenceError("Watch: transaction failed", err)
	}

	if result.Created && req.ActingUserID != nil {
		result.ListResults = r.attachToLists(result.ID, req)
	}

	return result, nil
}

func (r *Registrar) buildSpread(req WatchRequest, expiration time.Time) (*models.WatchedSpread, error) {
	avgRatio, avgVolume, avgOpenInterest, err := LegAverages(req.Legs)
	if err != nil {
		return nil, models.NewValidationError("invalid strategy", err)
	}

	return &models.WatchedSpread{
		DealID:               req.DealID,
		StrategyType:         req.StrategyType,
		Expiration:           expiration,
		Signature:            Signature(req.Legs),
		Legs:                 req.Legs,
		EntryPremium:         req.EntryPremium,
		MaxProfit:            req.MaxProfit,
		MaxLoss:              req.MaxLoss,
		ReturnOnRisk:         req.ReturnOnRisk,
		AnnualizedYield:      req.AnnualizedYield,
		UnderlyingPrice:      req.UnderlyingPrice,
		AvgBidAskSpreadRatio: avgRatio,
		AvgVolume:            avgVolume,
		AvgOpenInterest:      avgOpenInterest,
		Status:               models.SpreadStatusActive,
		Notes:                req.Notes,
		CuratedBy:            req.ActingUserID,
		IsPublic:             true,
	}, nil
}

// attachToLists processes list associations independently: a skipped or
// failed list never rolls back the spread or the other attachments. An
// acting user who names no lists gets the spread filed into their default
// list, creating it on first use.
func (r *Registrar) attachToLists(spreadID uint, req WatchRequest) []ListAttachResult {
	listIDs := req.ListIDs

	if len(listIDs) == 0 && req.NewListName == "" {
		defaultList, err := r.lists.EnsureDefaultList(*req.ActingUserID)
		if err != nil {
			log.Errorf("attachToLists: failed to ensure default list: %v", err)
			return nil
		}

		listIDs = []uint{defaultList.ID}
	}

	if req.NewListName != "" {
		newList, err := r.lists.CreateList(*req.ActingUserID, req.NewListName)
		if err != nil {
			log.Errorf("attachToLists: failed to create list %q: %v", req.NewListName, err)
		} else {
			listIDs = append(listIDs, newList.ID)
		}
	}

	results := make([]ListAttachResult, 0, len(listIDs))
	for _, listID := range listIDs {
		attachResult, err := r.lists.Attach(listID, spreadID, *req.ActingUserID)
		if err != nil {
			log.Errorf("attachToLists: failed to attach spread %d to list %d: %v", spreadID, listID, err)
			attachResult = ListAttachResult{ListID: listID, Outcome: AttachOutcomeSkipped}
		}

		results = append(results, attachResult)
	}

	return results
}

// UpdateSpread mutates status and/or notes, the only edit path after
// creation. Spreads are retired via status, never hard-deleted.
func (r *Registrar) UpdateSpread(id uint, status *models.SpreadStatus, notes *string) (*models.WatchedSpread, error) {
	if status != nil && !status.IsValid() {
		return nil, models.NewValidationError(fmt.Sprintf("invalid status: %s", *status), nil)
	}

	spread, err := r.db.UpdateSpread(id, status, notes)
	if err != nil {
		if errors.Is(err, models.ErrSpreadNotFound) {
			return nil, err
		}

		return nil, models.NewPersistenceError("UpdateSpread: failed to update spread", err)
	}

	return spread, nil
}
