package internal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nursery-prep-backend/config"
	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/catalog"
	"nursery-prep-backend/internal/db"
	"nursery-prep-backend/internal/model"
	"nursery-prep-backend/internal/notification"
	"nursery-prep-backend/internal/prep"
	"nursery-prep-backend/internal/reminder"
	"nursery-prep-backend/internal/store"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type recordingDispatcher struct{ messages []notification.Message }

func (r *recordingDispatcher) Dispatch(_ context.Context, msg notification.Message) error {
	r.messages = append(r.messages, msg)
	return nil
}

// TestWeekLifecycle walks one nursery week through the store and engine:
// Monday drop-off with the swimsuit, daily evening pickups, and the Friday
// take-home, checking the derived views after each step.
func TestWeekLifecycle(t *testing.T) {
	testDB, err := gorm.Open(sqlite.Open("file:week_lifecycle?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to the in-memory database: %v", err)
	}
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(testDB))

	ctx := context.Background()
	jst := time.FixedZone("JST", 9*60*60)
	clk := &clock{}
	appStore := store.NewGormStore(testDB, catalog.Default)
	svc := prep.NewService(appStore, appStore, catalog.Default, prep.Options{Location: jst, Now: clk.Now})

	record := func(date string, typ model.ObservationType, counts model.ItemCounts, flags model.WeeklyFlags) {
		t.Helper()
		_, err := svc.Record(ctx, store.ObservationInput{
			Date:        calendar.MustParse(date),
			Type:        typ,
			ItemCounts:  counts,
			WeeklyFlags: flags,
			AuthorID:    "parent",
		})
		require.NoError(t, err)
	}

	// Sunday evening before the week starts: nothing recorded yet.
	clk.now = time.Date(2025, 6, 1, 20, 0, 0, 0, jst)
	d := svc.Dashboard(ctx)
	assert.Empty(t, d.Errors)
	assert.False(t, d.Stock.HasBaseline)
	require.Len(t, d.WeeklyNeeds, 1)
	assert.Equal(t, "swimsuit", d.WeeklyNeeds[0].ItemID)

	// Monday morning drop-off, then evening pickup.
	clk.now = time.Date(2025, 6, 2, 8, 30, 0, 0, jst)
	record("2025-06-02", model.ObservationMorning,
		model.ItemCounts{"underwear": 3, "short_sleeve": 2, "long_sleeve": 1, "pants": 3, "towel": 1, "contact_book": 1, "straw_mug": 1, "plastic_bag": 1},
		model.WeeklyFlags{"swimsuit": true})

	clk.now = time.Date(2025, 6, 2, 18, 0, 0, 0, jst)
	record("2025-06-02", model.ObservationEvening,
		model.ItemCounts{"underwear": 2, "short_sleeve": 1, "pants": 1, "towel": 1, "contact_book": 1, "straw_mug": 1, "plastic_bag": 1},
		nil)

	clk.now = time.Date(2025, 6, 2, 20, 0, 0, 0, jst)
	d = svc.Dashboard(ctx)
	require.True(t, d.Stock.HasBaseline)
	stock := map[string]int{}
	for _, e := range d.Stock.Entries {
		stock[e.ItemID] = e.CurrentStock
	}
	assert.Equal(t, 1, stock["underwear"])
	assert.Equal(t, 1, stock["short_sleeve"])
	assert.Equal(t, 1, stock["long_sleeve"])
	assert.Equal(t, 2, stock["pants"])

	needs := map[string]int{}
	for _, n := range d.DailyNeeds {
		needs[n.ItemID] = n.NeedToBring
	}
	assert.Equal(t, 2, needs["underwear"])
	assert.Equal(t, 1, needs["group:tops"])
	assert.Equal(t, 1, needs["pants"])
	assert.Equal(t, 1, needs["towel"])

	statuses := prep.StatusIndex(d.WeeklyStatuses)
	assert.Equal(t, prep.AtNursery, statuses["swimsuit"].CurrentStatus)
	assert.Empty(t, d.WeeklyNeeds, "swimsuit already at the nursery on Tuesday")

	// Correcting the evening count replaces the slot instead of adding one.
	record("2025-06-02", model.ObservationEvening, model.ItemCounts{"underwear": 3}, nil)
	var evenings int64
	require.NoError(t, testDB.Model(&model.Observation{}).Where("type = ?", model.ObservationEvening).Count(&evenings).Error)
	assert.Equal(t, int64(1), evenings)
	latest, err := appStore.FindLatestByType(ctx, model.ObservationEvening)
	require.NoError(t, err)
	assert.Equal(t, 3, latest.Count("underwear"))
	assert.Equal(t, 0, latest.Count("pants"))

	// Thursday evening: tomorrow is Friday, the swimsuit comes home and
	// fresh bed linen goes in.
	clk.now = time.Date(2025, 6, 5, 20, 0, 0, 0, jst)
	weekly, err := svc.WeeklyNeeds(ctx)
	require.NoError(t, err)
	ids := []string{}
	for _, n := range weekly {
		ids = append(ids, n.ItemID)
	}
	assert.Equal(t, []string{"swimsuit_return", "bed_cover", "pillow_towel"}, ids)

	dispatcher := &recordingDispatcher{}
	rem := reminder.NewService(config.ReminderConfig{Enabled: true, Hour: 20}, jst, svc, dispatcher)
	require.NoError(t, rem.RunOnce(ctx))
	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, "2025-06-06", dispatcher.messages[0].Date)
	assert.Contains(t, dispatcher.messages[0].Body, "今週使った水着を持ち帰り")

	// Friday: swimsuit taken home, covers brought.
	clk.now = time.Date(2025, 6, 6, 8, 30, 0, 0, jst)
	record("2025-06-06", model.ObservationMorning, model.ItemCounts{"underwear": 3}, model.WeeklyFlags{"bed_cover": true, "pillow_towel": true})
	clk.now = time.Date(2025, 6, 6, 18, 0, 0, 0, jst)
	record("2025-06-06", model.ObservationEvening, model.ItemCounts{"underwear": 1}, model.WeeklyFlags{"swimsuit": true})

	clk.now = time.Date(2025, 6, 6, 20, 0, 0, 0, jst)
	ws, err := svc.WeeklyStatuses(ctx)
	require.NoError(t, err)
	statuses = prep.StatusIndex(ws)
	assert.Equal(t, prep.AtHome, statuses["swimsuit"].CurrentStatus)
	assert.Equal(t, "2025-06-02", statuses["swimsuit"].LastBroughtDate.String())
	assert.Equal(t, "2025-06-06", statuses["swimsuit"].LastTakenDate.String())
	assert.Equal(t, prep.AtNursery, statuses["bed_cover"].CurrentStatus)
}
