package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery-prep-backend/config"
	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/notification"
	"nursery-prep-backend/internal/prep"
)

var jst = time.FixedZone("JST", 9*60*60)

func TestNextRun(t *testing.T) {
	testCases := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "Later today",
			now:      time.Date(2025, 6, 1, 18, 0, 0, 0, jst),
			expected: time.Date(2025, 6, 1, 20, 0, 0, 0, jst),
		},
		{
			name:     "Exactly on time waits a day",
			now:      time.Date(2025, 6, 1, 20, 0, 0, 0, jst),
			expected: time.Date(2025, 6, 2, 20, 0, 0, 0, jst),
		},
		{
			name:     "Already passed",
			now:      time.Date(2025, 6, 1, 21, 15, 0, 0, jst),
			expected: time.Date(2025, 6, 2, 20, 0, 0, 0, jst),
		},
		{
			name:     "Month boundary",
			now:      time.Date(2025, 6, 30, 22, 0, 0, 0, jst),
			expected: time.Date(2025, 7, 1, 20, 0, 0, 0, jst),
		},
		{
			name:     "Other zone input",
			now:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), // 19:00 JST
			expected: time.Date(2025, 6, 1, 20, 0, 0, 0, jst),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextRun(tc.now, 20, 0, jst)
			assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}

func TestBuildMessage(t *testing.T) {
	tomorrow := calendar.MustParse("2025-06-02")

	t.Run("Nothing to pack", func(t *testing.T) {
		msg := BuildMessage(tomorrow, nil, nil)
		assert.Equal(t, "明日（6/2 月）の準備", msg.Title)
		assert.Equal(t, "2025-06-02", msg.Date)
		assert.Equal(t, "追加で持っていくものはありません", msg.Body)
	})

	t.Run("Daily and weekly", func(t *testing.T) {
		msg := BuildMessage(tomorrow,
			[]prep.DailyNeed{
				{ItemID: "underwear", ItemName: "肌着", NeedToBring: 1, Unit: "枚"},
				{ItemID: "contact_book", ItemName: "連絡帳", NeedToBring: 1, Unit: "個"},
			},
			[]prep.WeeklyNeed{
				{ItemID: "swimsuit", ItemName: "水着", Description: "新しい水着を持参（金曜日まで保育園で保管）"},
			},
		)
		assert.Equal(t, "肌着 1枚、連絡帳 1個\n水着: 新しい水着を持参（金曜日まで保育園で保管）", msg.Body)
	})
}

type fakePlanner struct {
	daily     []prep.DailyNeed
	weekly    []prep.WeeklyNeed
	dailyErr  error
	weeklyErr error
}

func (f *fakePlanner) Tomorrow() calendar.Date { return calendar.MustParse("2025-06-06") }

func (f *fakePlanner) DailyNeeds(context.Context) ([]prep.DailyNeed, error) {
	return f.daily, f.dailyErr
}

func (f *fakePlanner) WeeklyNeeds(context.Context) ([]prep.WeeklyNeed, error) {
	return f.weekly, f.weeklyErr
}

type recordingDispatcher struct {
	messages []notification.Message
	err      error
}

func (r *recordingDispatcher) Dispatch(_ context.Context, msg notification.Message) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, msg)
	return nil
}

func TestRunOnce(t *testing.T) {
	cfg := config.ReminderConfig{Enabled: true, Hour: 20}

	t.Run("Dispatches the pack list", func(t *testing.T) {
		d := &recordingDispatcher{}
		planner := &fakePlanner{daily: []prep.DailyNeed{{ItemName: "タオル", NeedToBring: 1, Unit: "枚"}}}
		require.NoError(t, NewService(cfg, jst, planner, d).RunOnce(context.Background()))
		require.Len(t, d.messages, 1)
		assert.Equal(t, "明日（6/6 金）の準備", d.messages[0].Title)
		assert.Equal(t, "タオル 1枚", d.messages[0].Body)
	})

	t.Run("Weekly failure still sends daily", func(t *testing.T) {
		d := &recordingDispatcher{}
		planner := &fakePlanner{
			daily:     []prep.DailyNeed{{ItemName: "タオル", NeedToBring: 1, Unit: "枚"}},
			weeklyErr: errors.New("history timeout"),
		}
		require.NoError(t, NewService(cfg, jst, planner, d).RunOnce(context.Background()))
		require.Len(t, d.messages, 1)
	})

	t.Run("Dispatch failure is reported", func(t *testing.T) {
		d := &recordingDispatcher{err: context.Canceled}
		planner := &fakePlanner{daily: []prep.DailyNeed{{ItemName: "タオル", NeedToBring: 1, Unit: "枚"}}}
		err := NewService(cfg, jst, planner, d).RunOnce(context.Background())
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Daily failure sends nothing", func(t *testing.T) {
		d := &recordingDispatcher{}
		planner := &fakePlanner{dailyErr: errors.New("db down")}
		err := NewService(cfg, jst, planner, d).RunOnce(context.Background())
		require.Error(t, err)
		assert.Empty(t, d.messages)
	})
}

func TestRun_DisabledReturnsImmediately(t *testing.T) {
	d := &recordingDispatcher{}
	done := make(chan struct{})
	go func() {
		NewService(config.ReminderConfig{Enabled: false}, jst, &fakePlanner{}, d).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled reminder should not block")
	}
	assert.Empty(t, d.messages)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewService(config.ReminderConfig{Enabled: true, Hour: 3}, jst, &fakePlanner{}, &recordingDispatcher{}).Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reminder did not stop after cancel")
	}
}
