package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/catalog"
	"nursery-prep-backend/internal/model"
)

// ObservationStore is the dated record store behind the reconciliation engine.
type ObservationStore interface {
	// FindLatestByType returns the newest record of a type by (date, recorded_at),
	// or nil when there is none.
	FindLatestByType(ctx context.Context, t model.ObservationType) (*model.Observation, error)
	FindAllSince(ctx context.Context, since calendar.Date) ([]model.Observation, error)
	// Upsert updates the record of the input's (date, type) slot or inserts it.
	Upsert(ctx context.Context, in ObservationInput) (*model.Observation, error)
}

// SettingsStore persists required-count overrides.
type SettingsStore interface {
	// Load returns the overrides merged over the catalog defaults.
	Load(ctx context.Context) (map[string]decimal.Decimal, error)
	Save(ctx context.Context, counts map[string]decimal.Decimal) error
	Reset(ctx context.Context) error
}

// SubscriptionStore persists browser push subscriptions.
type SubscriptionStore interface {
	SaveSubscription(ctx context.Context, sub model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	ListSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
}

// Store defines the interface for all database operations.
type Store interface {
	ObservationStore
	SettingsStore
	SubscriptionStore
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	now     func() time.Time
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, c *catalog.Catalog) Store {
	return &gormStore{db: db, catalog: c, now: time.Now}
}

// FindLatestByType uses idx_observation_latest (type, date, recorded_at).
func (s *gormStore) FindLatestByType(ctx context.Context, t model.ObservationType) (*model.Observation, error) {
	var rows []model.Observation
	if err := s.db.WithContext(ctx).
		Where("type = ?", t).
		Order("date DESC, recorded_at DESC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find latest %s observation: %w", t, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// FindAllSince returns every observation on or after since, newest first.
func (s *gormStore) FindAllSince(ctx context.Context, since calendar.Date) ([]model.Observation, error) {
	var rows []model.Observation
	if err := s.db.WithContext(ctx).
		Where("date >= ?", since).
		Order("date DESC, recorded_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch observations since %s: %w", since, err)
	}
	return rows, nil
}

// Upsert looks the slot up and writes it inside one transaction so a
// subsequent read always sees the new payload.
func (s *gormStore) Upsert(ctx context.Context, in ObservationInput) (*model.Observation, error) {
	in, err := in.Normalize(s.catalog)
	if err != nil {
		return nil, err
	}

	var result model.Observation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Observation
		err := tx.Where("date = ? AND type = ?", in.Date, in.Type).First(&existing).Error
		created := false
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = model.Observation{ID: uuid.NewString()}
			created = true
		case err != nil:
			return fmt.Errorf("failed to look up %s observation for %s: %w", in.Type, in.Date, err)
		default:
			result = existing
		}

		result.Date = in.Date
		result.Type = in.Type
		result.ItemCounts = datatypes.NewJSONType(in.ItemCounts)
		result.WeeklyFlags = datatypes.NewJSONType(in.WeeklyFlags)
		result.AuthorID = in.AuthorID
		result.RecordedAt = s.now().UTC()

		write := tx.Save
		if created {
			write = tx.Create
		}
		if err := write(&result).Error; err != nil {
			return fmt.Errorf("failed to save %s observation for %s: %w", in.Type, in.Date, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Stored %s observation %s for %s", result.Type, result.ID, result.Date)
	return &result, nil
}

// Load merges stored overrides with catalog defaults. Rows for items no
// longer in the catalog are ignored.
func (s *gormStore) Load(ctx context.Context) (map[string]decimal.Decimal, error) {
	var rows []model.RequiredCount
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load required counts: %w", err)
	}

	counts := s.catalog.Defaults()
	for _, r := range rows {
		if _, ok := counts[r.ItemID]; !ok {
			continue
		}
		if r.Value.IsNegative() {
			counts[r.ItemID] = decimal.Zero
			continue
		}
		counts[r.ItemID] = r.Value
	}
	return counts, nil
}

// Save upserts one row per catalog item; negative values are stored as zero.
func (s *gormStore) Save(ctx context.Context, counts map[string]decimal.Decimal) error {
	now := s.now().UTC()
	var rows []model.RequiredCount
	for _, it := range s.catalog.Items() {
		v, ok := counts[it.ID]
		if !ok {
			continue
		}
		if v.IsNegative() {
			v = decimal.Zero
		}
		rows = append(rows, model.RequiredCount{ItemID: it.ID, Value: v, UpdatedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to save required counts: %w", err)
	}
	return nil
}

// Reset drops every override so Load falls back to the catalog.
func (s *gormStore) Reset(ctx context.Context) error {
	if err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.RequiredCount{}).Error; err != nil {
		return fmt.Errorf("failed to reset required counts: %w", err)
	}
	return nil
}

// SaveSubscription creates or replaces the keys of a subscription.
func (s *gormStore) SaveSubscription(ctx context.Context, sub model.PushSubscription) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
	}).Create(&sub).Error
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error
}

func (s *gormStore) ListSubscriptions(ctx context.Context) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}
