package prep

import (
	"sort"

	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/catalog"
	"nursery-prep-backend/internal/model"
)

// DefaultWeeklyWindowDays is how far back weekly history is replayed.
const DefaultWeeklyWindowDays = 14

// Location is where a weekly item currently is.
type Location string

const (
	AtHome    Location = "at_home"
	AtNursery Location = "at_nursery"
)

// WeeklyItemStatus is the replayed state of one weekly item.
type WeeklyItemStatus struct {
	ItemID          string         `json:"itemId"`
	CurrentStatus   Location       `json:"currentStatus"`
	LastBroughtDate *calendar.Date `json:"lastBroughtDate,omitempty"`
	LastTakenDate   *calendar.Date `json:"lastTakenDate,omitempty"`
}

// WindowStart is the first date of the replay window ending today.
func WindowStart(today calendar.Date, days int) calendar.Date {
	return today.AddDays(-days)
}

// TrackWeekly replays history newest first. The most recent flagged record
// decides an item's location and older records never override it; each
// stamp is the date of the most recent record of its kind. Records outside
// [WindowStart(today, windowDays), today] are ignored.
func TrackWeekly(c *catalog.Catalog, history []model.Observation, today calendar.Date, windowDays int) []WeeklyItemStatus {
	start := WindowStart(today, windowDays)

	ordered := make([]model.Observation, 0, len(history))
	for _, o := range history {
		if o.Date.Before(start) || o.Date.After(today) {
			continue
		}
		ordered = append(ordered, o)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if cmp := ordered[i].Date.Compare(ordered[j].Date); cmp != 0 {
			return cmp > 0
		}
		return ordered[i].RecordedAt.After(ordered[j].RecordedAt)
	})

	weekly := c.Weekly()
	statuses := make([]WeeklyItemStatus, len(weekly))
	decided := make([]bool, len(weekly))
	for i, it := range weekly {
		statuses[i] = WeeklyItemStatus{ItemID: it.ID, CurrentStatus: AtHome}
	}

	for idx := range ordered {
		o := &ordered[idx]
		for i, it := range weekly {
			if !o.Flag(it.ID) {
				continue
			}
			st := &statuses[i]
			d := o.Date
			switch o.Type {
			case model.ObservationMorning:
				if st.LastBroughtDate == nil {
					st.LastBroughtDate = &d
				}
				if !decided[i] {
					st.CurrentStatus = AtNursery
					decided[i] = true
				}
			case model.ObservationEvening:
				if st.LastTakenDate == nil {
					st.LastTakenDate = &d
				}
				if !decided[i] {
					st.CurrentStatus = AtHome
					decided[i] = true
				}
			}
		}
	}
	return statuses
}

// StatusIndex keys statuses by item id.
func StatusIndex(statuses []WeeklyItemStatus) map[string]WeeklyItemStatus {
	out := make(map[string]WeeklyItemStatus, len(statuses))
	for _, s := range statuses {
		out[s.ItemID] = s
	}
	return out
}
