package spreads

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/arbwatch/arbwatch/src/models"
)

type AttachOutcome string

const (
	AttachOutcomeAttached AttachOutcome = "attached"
	AttachOutcomeSkipped  AttachOutcome = "skipped"
	AttachOutcomeNotFound AttachOutcome = "notFound"
)

// ListAttachResult reports what happened to one requested list so callers
// can observe partial success instead of a swallowed skip.
type ListAttachResult struct {
	ListID  uint          `json:"listId"`
	Outcome AttachOutcome `json:"outcome"`
}

type ListManager struct {
	db models.IDatabaseService
}

func NewListManager(db models.IDatabaseService) *ListManager {
	return &ListManager{
		db: db,
	}
}

// Attach adds a spread to a list if the acting user owns it. A list owned by
// someone else is skipped, a missing list reported as not found; neither is
// an error. The underlying upsert is idempotent, so re-attaching is a no-op.
func (m *ListManager) Attach(listID uint, spreadID uint, actingUserID uuid.UUID) (ListAttachResult, error) {
	result := ListAttachResult{ListID: listID}

	list, err := m.db.FindListByID(listID)
	if err != nil {
		return result, fmt.Errorf("Attach: failed to fetch list %d: %w", listID, err)
	}

	if list == nil {
		result.Outcome = AttachOutcomeNotFound
		return result, nil
	}

	if list.UserID != actingUserID {
		authErr := models.NewAuthorizationError(fmt.Sprintf("list %d not owned by user %s", listID, actingUserID))
		log.Warnf("Attach: %v, skipping", authErr)
		result.Outcome = AttachOutcomeSkipped
		return result, nil
	}

	if err := m.db.UpsertListItem(listID, spreadID); err != nil {
		return result, fmt.Errorf("Attach: failed to upsert list item (%d, %d): %w", listID, spreadID, err)
	}

	result.Outcome = AttachOutcomeAttached
	return result, nil
}

// CreateList creates a non-default list. Name uniqueness across a user's
// lists is not enforced.
func (m *ListManager) CreateList(userID uuid.UUID, name string) (*models.UserDealList, error) {
	list, err := m.db.CreateList(userID, name, false)
	if err != nil {
		return nil, fmt.Errorf("CreateList: %w", err)
	}

	return list, nil
}

// EnsureDefaultList returns the user's default list, creating it on first
// use. At most one default exists per user.
func (m *ListManager) EnsureDefaultList(userID uuid.UUID) (*models.UserDealList, error) {
	list, found, err := m.db.FindDefaultList(userID)
	if err != nil {
		return nil, fmt.Errorf("EnsureDefaultList: failed to fetch default list: %w", err)
	}

	if found {
		return list, nil
	}

	created, err := m.db.CreateList(userID, "Watchlist", true)
	if err != nil {
		return nil, fmt.Errorf("EnsureDefaultList: failed to create default list: %w", err)
	}

	return created, nil
}
