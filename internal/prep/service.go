package prep

import (
	"context"
	"fmt"
	"log"
	"time"

	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/catalog"
	"nursery-prep-backend/internal/model"
	"nursery-prep-backend/internal/store"
)

// Service loads the inputs of each derivation from the stores.
type Service struct {
	observations store.ObservationStore
	settings     store.SettingsStore
	catalog      *catalog.Catalog
	loc          *time.Location
	windowDays   int
	now          func() time.Time
}

// Options configures a Service.
type Options struct {
	Location   *time.Location
	WindowDays int
	Now        func() time.Time
}

// NewService creates a Service. Zero options fall back to the local time
// zone, a 14-day weekly window and the wall clock.
func NewService(obs store.ObservationStore, settings store.SettingsStore, c *catalog.Catalog, opts Options) *Service {
	s := &Service{
		observations: obs,
		settings:     settings,
		catalog:      c,
		loc:          opts.Location,
		windowDays:   opts.WindowDays,
		now:          opts.Now,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.windowDays <= 0 {
		s.windowDays = DefaultWeeklyWindowDays
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Catalog returns the item catalog the service computes against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Today is the caregiver's current calendar day.
func (s *Service) Today() calendar.Date {
	return calendar.Of(s.now().In(s.loc))
}

// Tomorrow is the day the pack list is for.
func (s *Service) Tomorrow() calendar.Date {
	return s.Today().AddDays(1)
}

// Snapshot fetches the latest morning and evening records.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	morning, err := s.observations.FindLatestByType(ctx, model.ObservationMorning)
	if err != nil {
		return Snapshot{}, err
	}
	evening, err := s.observations.FindLatestByType(ctx, model.ObservationEvening)
	if err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(morning, evening), nil
}

// Resolver loads the caregiver's required-count overrides. On error the
// returned Resolver still answers with catalog defaults.
func (s *Service) Resolver(ctx context.Context) (Resolver, error) {
	counts, err := s.settings.Load(ctx)
	if err != nil {
		return NewResolver(s.catalog, nil), err
	}
	return NewResolver(s.catalog, counts), nil
}

// resolverOrDefaults logs a settings failure and falls back to defaults.
func (s *Service) resolverOrDefaults(ctx context.Context) Resolver {
	r, err := s.Resolver(ctx)
	if err != nil {
		log.Printf("Required counts unavailable, using catalog defaults: %v", err)
	}
	return r
}

// WeeklyStatuses replays the weekly window ending today.
func (s *Service) WeeklyStatuses(ctx context.Context) ([]WeeklyItemStatus, error) {
	today := s.Today()
	history, err := s.observations.FindAllSince(ctx, WindowStart(today, s.windowDays))
	if err != nil {
		return nil, err
	}
	return TrackWeekly(s.catalog, history, today, s.windowDays), nil
}

// NurseryStock computes the current stock report.
func (s *Service) NurseryStock(ctx context.Context) (StockReport, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return StockReport{Entries: []StockEntry{}}, err
	}
	return BuildStockReport(s.catalog, s.resolverOrDefaults(ctx), snap), nil
}

// DailyNeeds computes tomorrow's pack list.
func (s *Service) DailyNeeds(ctx context.Context) ([]DailyNeed, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return DailyNeeds(s.catalog, s.resolverOrDefaults(ctx), snap), nil
}

// WeeklyNeeds computes tomorrow's weekly bring/take-home suggestions.
func (s *Service) WeeklyNeeds(ctx context.Context) ([]WeeklyNeed, error) {
	statuses, err := s.WeeklyStatuses(ctx)
	if err != nil {
		return nil, err
	}
	return WeeklyNeeds(s.catalog, StatusIndex(statuses), s.Tomorrow()), nil
}

// Record upserts one observation.
func (s *Service) Record(ctx context.Context, in store.ObservationInput) (*model.Observation, error) {
	obs, err := s.observations.Upsert(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to record observation: %w", err)
	}
	return obs, nil
}

// Dashboard is every derived view for one recomputation.
type Dashboard struct {
	Today          calendar.Date      `json:"today"`
	Tomorrow       calendar.Date      `json:"tomorrow"`
	Stock          StockReport        `json:"stock"`
	DailyNeeds     []DailyNeed        `json:"dailyNeeds"`
	WeeklyStatuses []WeeklyItemStatus `json:"weeklyStatuses"`
	WeeklyNeeds    []WeeklyNeed       `json:"weeklyNeeds"`
	// Errors names the sources that could not be read, keyed by source.
	Errors map[string]string `json:"errors,omitempty"`
}

// Dashboard recomputes everything from scratch. Each source is read once and
// a failing source only empties the sections that depend on it.
func (s *Service) Dashboard(ctx context.Context) Dashboard {
	d := Dashboard{
		Today:          s.Today(),
		Tomorrow:       s.Tomorrow(),
		Stock:          StockReport{Entries: []StockEntry{}},
		DailyNeeds:     []DailyNeed{},
		WeeklyStatuses: []WeeklyItemStatus{},
		WeeklyNeeds:    []WeeklyNeed{},
	}
	fail := func(source string, err error) {
		log.Printf("Dashboard: %s unavailable: %v", source, err)
		if d.Errors == nil {
			d.Errors = make(map[string]string)
		}
		d.Errors[source] = err.Error()
	}

	// Stock math still works on catalog defaults when settings are down.
	r, err := s.Resolver(ctx)
	if err != nil {
		fail("settings", err)
	}

	if snap, err := s.Snapshot(ctx); err != nil {
		fail("observations", err)
	} else {
		d.Stock = BuildStockReport(s.catalog, r, snap)
		d.DailyNeeds = DailyNeeds(s.catalog, r, snap)
	}

	if statuses, err := s.WeeklyStatuses(ctx); err != nil {
		fail("weekly_history", err)
	} else {
		d.WeeklyStatuses = statuses
		d.WeeklyNeeds = WeeklyNeeds(s.catalog, StatusIndex(statuses), d.Tomorrow)
	}
	return d
}
