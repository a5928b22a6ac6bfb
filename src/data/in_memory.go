package data

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arbwatch/arbwatch/src/models"
)

// InMemoryDatabaseService mirrors the Postgres service for tests, including
// the active-bucket uniqueness constraint so the insert-conflict path is
// exercisable without a database.
type InMemoryDatabaseService struct {
	mutex        sync.Mutex
	spreads      map[uint]*models.WatchedSpread
	lists        map[uint]*models.UserDealList
	listItems    map[string]bool
	deals        map[uint]*models.Deal
	nextSpreadID uint
	nextListID   uint
}

func NewInMemoryDatabaseService() *InMemoryDatabaseService {
	return &InMemoryDatabaseService{
		spreads:      map[uint]*models.WatchedSpread{},
		lists:        map[uint]*models.UserDealList{},
		listItems:    map[string]bool{},
		deals:        map[uint]*models.Deal{},
		nextSpreadID: 1,
		nextListID:   1,
	}
}

// AddDeal seeds a deal row for tests.
func (s *InMemoryDatabaseService) AddDeal(deal *models.Deal) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.deals[deal.ID] = deal
}

func (s *InMemoryDatabaseService) FindActiveSpreads(dealID uint, strategyType models.StrategyType, expiration time.Time) ([]*models.WatchedSpread, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var matches []*models.WatchedSpread
	for id := uint(1); id < s.nextSpreadID; id++ {
		spread, found := s.spreads[id]
		if !found {
			continue
		}

		if spread.DealID == dealID && spread.StrategyType == strategyType &&
			spread.Expiration.Equal(expiration) && spread.Status == models.SpreadStatusActive {
			matches = append(matches, spread)
		}
	}

	return matches, nil
}

func (s *InMemoryDatabaseService) FindSpread(id uint) (*models.WatchedSpread, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.spreads[id], nil
}

func (s *InMemoryDatabaseService) FindSpreadsByDeal(dealID uint) ([]*models.WatchedSpread, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var matches []*models.WatchedSpread
	for id := uint(1); id < s.nextSpreadID; id++ {
		spread, found := s.spreads[id]
		if found && spread.DealID == dealID {
			matches = append(matches, spread)
		}
	}

	return matches, nil
}

func (s *InMemoryDatabaseService) InsertSpread(spread *models.WatchedSpread) (uint, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, existing := range s.spreads {
		if existing.DealID == spread.DealID && existing.StrategyType == spread.StrategyType &&
			existing.Expiration.Equal(spread.Expiration) && existing.Status == models.SpreadStatusActive &&
			existing.Signature == spread.Signature {
			return 0, models.ErrDuplicateSpread
		}
	}

	spread.ID = s.nextSpreadID
	spread.CreatedAt = time.Now().UTC()
	s.nextSpreadID++
	s.spreads[spread.ID] = spread

	return spread.ID, nil
}

func (s *InMemoryDatabaseService) UpdateSpread(id uint, status *models.SpreadStatus, notes *string) (*models.WatchedSpread, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	spread, found := s.spreads[id]
	if !found {
		return nil, models.ErrSpreadNotFound
	}

	if status != nil {
		spread.Status = *status
	}
	if notes != nil {
		spread.Notes = notes
	}

	return spread, nil
}

func (s *InMemoryDatabaseService) FindListByID(listID uint) (*models.UserDealList, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.lists[listID], nil
}

func (s *InMemoryDatabaseService) FindDefaultList(userID uuid.UUID) (*models.UserDealList, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, list := range s.lists {
		if list.UserID == userID && list.IsDefault {
			return list, true, nil
		}
	}

	return nil, false, nil
}

func (s *InMemoryDatabaseService) CreateList(userID uuid.UUID, name string, isDefault bool) (*models.UserDealList, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	list := &models.UserDealList{
		UserID:    userID,
		Name:      name,
		IsDefault: isDefault,
	}
	list.ID = s.nextListID
	s.nextListID++
	s.lists[list.ID] = list

	return list, nil
}

func (s *InMemoryDatabaseService) UpsertListItem(listID uint, spreadID uint) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.listItems[fmt.Sprintf("%d:%d", listID, spreadID)] = true

	return nil
}

// ListItemCount reports the number of membership rows, for idempotency
// assertions.
func (s *InMemoryDatabaseService) ListItemCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.listItems)
}

// HasListItem reports whether a membership row exists.
func (s *InMemoryDatabaseService) HasListItem(listID uint, spreadID uint) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.listItems[fmt.Sprintf("%d:%d", listID, spreadID)]
}

func (s *InMemoryDatabaseService) GetDealExpectedCloseDate(dealID uint) (time.Time, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	deal, found := s.deals[dealID]
	if !found || deal.ExpectedCloseDate == nil {
		return time.Time{}, false, nil
	}

	return *deal.ExpectedCloseDate, true, nil
}

func (s *InMemoryDatabaseService) Transaction(fn func(tx models.IDatabaseService) error) error {
	return fn(s)
}
