package store

import (
	"errors"
	"fmt"

	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/catalog"
	"nursery-prep-backend/internal/model"
	"nursery-prep-backend/internal/parse"
)

// ErrInvalidObservation is returned when an upsert payload cannot be stored.
var ErrInvalidObservation = errors.New("invalid observation")

// ObservationInput is the caregiver payload for one (date, type) slot.
type ObservationInput struct {
	Date        calendar.Date
	Type        model.ObservationType
	ItemCounts  model.ItemCounts
	WeeklyFlags model.WeeklyFlags
	AuthorID    string
}

// Normalize validates the input against the catalog and clamps negative
// counts at zero. It returns a copy; the receiver is not modified.
func (in ObservationInput) Normalize(c *catalog.Catalog) (ObservationInput, error) {
	if in.Date.IsZero() {
		return in, fmt.Errorf("%w: date is required", ErrInvalidObservation)
	}
	if !in.Type.Valid() {
		return in, fmt.Errorf("%w: unknown type %q", ErrInvalidObservation, in.Type)
	}

	counts := make(model.ItemCounts, len(in.ItemCounts))
	for id, n := range in.ItemCounts {
		if !c.Has(id) {
			return in, fmt.Errorf("%w: unknown item %q", ErrInvalidObservation, id)
		}
		counts[id] = parse.Count(n)
	}

	flags := make(model.WeeklyFlags, len(in.WeeklyFlags))
	for id, v := range in.WeeklyFlags {
		it, ok := c.Item(id)
		if !ok || !it.Cadence.Weekly() {
			return in, fmt.Errorf("%w: %q is not a weekly item", ErrInvalidObservation, id)
		}
		flags[id] = v
	}

	in.ItemCounts = counts
	in.WeeklyFlags = flags
	return in, nil
}
