// Package reminder pushes tomorrow's pack list to subscribers every evening.
package reminder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"nursery-prep-backend/config"
	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/notification"
	"nursery-prep-backend/internal/prep"
)

// Planner computes what to pack for tomorrow.
type Planner interface {
	Tomorrow() calendar.Date
	DailyNeeds(ctx context.Context) ([]prep.DailyNeed, error)
	WeeklyNeeds(ctx context.Context) ([]prep.WeeklyNeed, error)
}

// Dispatcher queues a message for every push subscriber.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg notification.Message) error
}

// Service fires the reminder once a day at the configured wall-clock time.
type Service struct {
	cfg        config.ReminderConfig
	loc        *time.Location
	planner    Planner
	dispatcher Dispatcher
	now        func() time.Time
}

// NewService creates a reminder service.
func NewService(cfg config.ReminderConfig, loc *time.Location, planner Planner, dispatcher Dispatcher) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{cfg: cfg, loc: loc, planner: planner, dispatcher: dispatcher, now: time.Now}
}

// NextRun returns the first hour:minute in loc strictly after now.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}

// Run waits for each scheduled time and sends the reminder until ctx is done.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Reminder is disabled. Not starting.")
		return
	}
	log.Printf("Starting reminder service, daily at %02d:%02d %s", s.cfg.Hour, s.cfg.Minute, s.loc)

	timer := time.NewTimer(s.untilNext())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder service shutting down.")
			return
		case <-timer.C:
			if err := s.RunOnce(ctx); err != nil {
				log.Printf("Reminder failed: %v", err)
			}
			timer.Reset(s.untilNext())
		}
	}
}

func (s *Service) untilNext() time.Duration {
	now := s.now()
	return NextRun(now, s.cfg.Hour, s.cfg.Minute, s.loc).Sub(now)
}

// RunOnce computes tomorrow's needs and dispatches one message.
func (s *Service) RunOnce(ctx context.Context) error {
	daily, err := s.planner.DailyNeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute daily needs: %w", err)
	}
	weekly, err := s.planner.WeeklyNeeds(ctx)
	if err != nil {
		// A partial list is still worth sending.
		log.Printf("Reminder: weekly needs unavailable: %v", err)
		weekly = nil
	}
	msg := BuildMessage(s.planner.Tomorrow(), daily, weekly)
	if err := s.dispatcher.Dispatch(ctx, msg); err != nil {
		return fmt.Errorf("failed to dispatch reminder: %w", err)
	}
	log.Printf("Reminder dispatched for %s (%d daily, %d weekly)", msg.Date, len(daily), len(weekly))
	return nil
}

var weekdayNames = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// BuildMessage renders the pack list as a push notification.
func BuildMessage(tomorrow calendar.Date, daily []prep.DailyNeed, weekly []prep.WeeklyNeed) notification.Message {
	msg := notification.Message{
		Title: fmt.Sprintf("明日（%d/%d %s）の準備", int(tomorrow.Month), tomorrow.Day, weekdayNames[tomorrow.Weekday()]),
		Date:  tomorrow.String(),
		URL:   "/",
	}
	if len(daily) == 0 && len(weekly) == 0 {
		msg.Body = "追加で持っていくものはありません"
		return msg
	}

	var lines []string
	if len(daily) > 0 {
		items := make([]string, 0, len(daily))
		for _, n := range daily {
			items = append(items, fmt.Sprintf("%s %d%s", n.ItemName, n.NeedToBring, n.Unit))
		}
		lines = append(lines, strings.Join(items, "、"))
	}
	for _, n := range weekly {
		lines = append(lines, fmt.Sprintf("%s: %s", n.ItemName, n.Description))
	}
	msg.Body = strings.Join(lines, "\n")
	return msg
}
