package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDealList is a named collection of watched spreads owned by exactly one
// user. At most one list per user carries IsDefault. Duplicate names across a
// user's lists are permitted.
type UserDealList struct {
	gorm.Model
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	IsDefault bool      `gorm:"column:is_default;not null" json:"isDefault"`
}

// UserDealListItem is a membership edge, unique per (list, spread) pair.
type UserDealListItem struct {
	gorm.Model
	ListID   uint `gorm:"column:list_id;not null;uniqueIndex:idx_list_spread" json:"listId"`
	SpreadID uint `gorm:"column:spread_id;not null;uniqueIndex:idx_list_spread" json:"spreadId"`
}
