package data

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arbwatch/arbwatch/src/models"
)

const pgUniqueViolation = "23505"

// DatabaseService implements models.IDatabaseService on Postgres via gorm.
type DatabaseService struct {
	db *gorm.DB
}

func NewDatabaseService(dsn string) (*DatabaseService, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("NewDatabaseService: failed to connect to database: %w", err)
	}

	service := &DatabaseService{db: db}
	if err := service.migrate(); err != nil {
		return nil, err
	}

	log.Info("connected to database")

	return service, nil
}

func (s *DatabaseService) migrate() error {
	err := s.db.AutoMigrate(
		&models.Deal{},
		&models.WatchedSpread{},
		&models.StrategyLeg{},
		&models.UserDealList{},
		&models.UserDealListItem{},
	)
	if err != nil {
		return fmt.Errorf("migrate: auto migrate failed: %w", err)
	}

	// Partial unique index backing the active-bucket invariant. gorm tags
	// cannot express the WHERE clause.
	err = s.db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_active_spread_signature
		ON watched_spreads (deal_id, strategy_type, expiration, signature)
		WHERE status = 'active' AND deleted_at IS NULL`).Error
	if err != nil {
		return fmt.Errorf("migrate: failed to create active signature index: %w", err)
	}

	return nil
}

func (s *DatabaseService) FindActiveSpreads(dealID uint, strategyType models.StrategyType, expiration time.Time) ([]*models.WatchedSpread, error) {
	var spreads []*models.WatchedSpread

	err := s.db.Preload("Legs").
		Where("deal_id = ? AND strategy_type = ? AND expiration = ? AND status = ?",
			dealID, strategyType, expiration, models.SpreadStatusActive).
		Find(&spreads).Error
	if err != nil {
		return nil, fmt.Errorf("FindActiveSpreads: %w", err)
	}

	return spreads, nil
}

func (s *DatabaseService) FindSpread(id uint) (*models.WatchedSpread, error) {
	var spread models.WatchedSpread

	err := s.db.Preload("Legs").First(&spread, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("FindSpread: %w", err)
	}

	return &spread, nil
}

func (s *DatabaseService) FindSpreadsByDeal(dealID uint) ([]*models.WatchedSpread, error) {
	var spreads []*models.WatchedSpread

	err := s.db.Preload("Legs").Where("deal_id = ?", dealID).Order("id").Find(&spreads).Error
	if err != nil {
		return nil, fmt.Errorf("FindSpreadsByDeal: %w", err)
	}

	return spreads, nil
}

func (s *DatabaseService) InsertSpread(spread *models.WatchedSpread) (uint, error) {
	if err := s.db.Create(spread).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, models.ErrDuplicateSpread
		}

		return 0, fmt.Errorf("InsertSpread: %w", err)
	}

	return spread.ID, nil
}

func (s *DatabaseService) UpdateSpread(id uint, status *models.SpreadStatus, notes *string) (*models.WatchedSpread, error) {
	existing, err := s.FindSpread(id)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, models.ErrSpreadNotFound
	}

	updates := map[string]interface{}{}
	if status != nil {
		updates["status"] = *status
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) > 0 {
		err := s.db.Model(&models.WatchedSpread{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, fmt.Errorf("UpdateSpread: %w", err)
		}
	}

	return s.FindSpread(id)
}

func (s *DatabaseService) FindListByID(listID uint) (*models.UserDealList, error) {
	var list models.UserDealList

	err := s.db.First(&list, listID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("FindListByID: %w", err)
	}

	return &list, nil
}

func (s *DatabaseService) FindDefaultList(userID uuid.UUID) (*models.UserDealList, bool, error) {
	var list models.UserDealList

	err := s.db.Where("user_id = ? AND is_default = ?", userID, true).First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("FindDefaultList: %w", err)
	}

	return &list, true, nil
}

func (s *DatabaseService) CreateList(userID uuid.UUID, name string, isDefault bool) (*models.UserDealList, error) {
	list := &models.UserDealList{
		UserID:    userID,
		Name:      name,
		IsDefault: isDefault,
	}

	if err := s.db.Create(list).Error; err != nil {
		return nil, fmt.Errorf("CreateList: %w", err)
	}

	return list, nil
}

func (s *DatabaseService) UpsertListItem(listID uint, spreadID uint) error {
	// ON CONFLICT DO NOTHING via the unique (list_id, spread_id) index.
	err := s.db.Exec(`INSERT INTO user_deal_list_items (created_at, updated_at, list_id, spread_id)
		VALUES (NOW(), NOW(), ?, ?)
		ON CONFLICT (list_id, spread_id) DO NOTHING`, listID, spreadID).Error
	if err != nil {
		return fmt.Errorf("UpsertListItem: %w", err)
	}

	return nil
}

func (s *DatabaseService) GetDealExpectedCloseDate(dealID uint) (time.Time, bool, error) {
	var deal models.Deal

	err := s.db.First(&deal, dealID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, false, nil
		}

		return time.Time{}, false, fmt.Errorf("GetDealExpectedCloseDate: %w", err)
	}

	if deal.ExpectedCloseDate == nil {
		return time.Time{}, false, nil
	}

	return *deal.ExpectedCloseDate, true, nil
}

func (s *DatabaseService) Transaction(fn func(tx models.IDatabaseService) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&DatabaseService{db: tx})
	})
}
