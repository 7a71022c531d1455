package model

import (
	"time"

	"gorm.io/datatypes"

	"nursery-prep-backend/internal/calendar"
)

// ObservationType is the time of day an observation was recorded.
type ObservationType string

const (
	ObservationMorning ObservationType = "morning"
	ObservationEvening ObservationType = "evening"
)

// Valid reports whether t is a known observation type.
func (t ObservationType) Valid() bool {
	return t == ObservationMorning || t == ObservationEvening
}

// ItemCounts maps an item id to a non-negative count.
type ItemCounts map[string]int

// WeeklyFlags maps a weekly item id to "brought" (morning) or "taken home" (evening).
type WeeklyFlags map[string]bool

// Observation is one caregiver record for a (date, type) slot.
type Observation struct {
	ID          string                          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Date        calendar.Date                   `gorm:"size:10;not null;uniqueIndex:idx_observation_slot,priority:1;index:idx_observation_latest,priority:2" json:"date"`
	Type        ObservationType                 `gorm:"size:16;not null;uniqueIndex:idx_observation_slot,priority:2;index:idx_observation_latest,priority:1" json:"type"`
	ItemCounts  datatypes.JSONType[ItemCounts]  `gorm:"not null" json:"itemCounts"`
	WeeklyFlags datatypes.JSONType[WeeklyFlags] `gorm:"not null" json:"weeklyFlags"`
	AuthorID    string                          `gorm:"size:128;not null" json:"authorId"`
	RecordedAt  time.Time                       `gorm:"not null;index:idx_observation_latest,priority:3" json:"recordedAt"`
	CreatedAt   time.Time                       `json:"-"`
	UpdatedAt   time.Time                       `json:"-"`
}

// Count returns the recorded count for an item, zero when absent.
func (o *Observation) Count(itemID string) int {
	if o == nil {
		return 0
	}
	return o.ItemCounts.Data()[itemID]
}

// Flag returns the weekly flag for an item, false when absent.
func (o *Observation) Flag(itemID string) bool {
	if o == nil {
		return false
	}
	return o.WeeklyFlags.Data()[itemID]
}
