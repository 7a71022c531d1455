package prep

import (
	"time"

	"gorm.io/datatypes"

	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/model"
)

// newObservation builds a stored observation for tests.
func newObservation(date string, t model.ObservationType, counts model.ItemCounts, flags model.WeeklyFlags, hour int) model.Observation {
	d := calendar.MustParse(date)
	return model.Observation{
		ID:          date + "-" + string(t),
		Date:        d,
		Type:        t,
		ItemCounts:  datatypes.NewJSONType(counts),
		WeeklyFlags: datatypes.NewJSONType(flags),
		AuthorID:    "parent",
		RecordedAt:  time.Date(d.Year, d.Month, d.Day, hour, 0, 0, 0, time.UTC),
	}
}

func morning(date string, counts model.ItemCounts) *model.Observation {
	o := newObservation(date, model.ObservationMorning, counts, nil, 8)
	return &o
}

func evening(date string, counts model.ItemCounts) *model.Observation {
	o := newObservation(date, model.ObservationEvening, counts, nil, 18)
	return &o
}
