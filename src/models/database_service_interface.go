package models

import (
	"time"

	"github.com/google/uuid"
)

// IDatabaseService is the persistence contract required by the watched-spread
// core. InsertSpread is an atomic single-row insert (legs included) and
// returns ErrDuplicateSpread when the active-bucket uniqueness constraint
// fires. Transaction scopes a duplicate-check-plus-insert sequence; the
// service passed to fn runs against the transaction.
type IDatabaseService interface {
	FindActiveSpreads(dealID uint, strategyType StrategyType, expiration time.Time) ([]*WatchedSpread, error)
	FindSpread(id uint) (*WatchedSpread, error)
	FindSpreadsByDeal(dealID uint) ([]*WatchedSpread, error)
	InsertSpread(spread *WatchedSpread) (uint, error)
	UpdateSpread(id uint, status *SpreadStatus, notes *string) (*WatchedSpread, error)
	FindListByID(listID uint) (*UserDealList, error)
	FindDefaultList(userID uuid.UUID) (*UserDealList, bool, error)
	CreateList(userID uuid.UUID, name string, isDefault bool) (*UserDealList, error)
	UpsertListItem(listID uint, spreadID uint) error
	GetDealExpectedCloseDate(dealID uint) (time.Time, bool, error)
	Transaction(fn func(tx IDatabaseService) error) error
}
