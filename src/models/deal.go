package models

import (
	"time"

	"gorm.io/gorm"
)

// Deal is the merger deal a spread is watched against. The deal lifecycle is
// owned by the deal versioning system; this core only reads the expected
// close date for days-to-close computation.
type Deal struct {
	gorm.Model
	Acquirer          string     `gorm:"column:acquirer;type:text" json:"acquirer"`
	Target            string     `gorm:"column:target;type:text" json:"target"`
	TargetTicker      string     `gorm:"column:target_ticker;type:text;index" json:"targetTicker"`
	ExpectedCloseDate *time.Time `gorm:"column:expected_close_date;type:date" json:"expectedCloseDate"`
}
