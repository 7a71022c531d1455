package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequiredCount overrides the catalog baseline of one item.
type RequiredCount struct {
	ItemID    string          `gorm:"size:64;primaryKey"`
	Value     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}
