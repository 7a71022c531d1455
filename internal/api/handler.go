package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/checklist"
	"nursery-prep-backend/internal/prep"
	"nursery-prep-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	prep      *prep.Service
	store     store.Store
	checklist checklist.Store
	webpush   *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(svc *prep.Service, s store.Store, cl checklist.Store, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		prep:      svc,
		store:     s,
		checklist: cl,
		webpush:   webpushOptions,
	}
}

// abortWithError maps invalid input to 400 and everything else to 500.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, store.ErrInvalidObservation) {
		status = http.StatusBadRequest
	} else {
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// checkedFor loads the checklist of a date. A failure is logged and treated
// as nothing checked.
func (h *Handler) checkedFor(ctx context.Context, date calendar.Date) map[string]bool {
	if h.checklist == nil {
		return map[string]bool{}
	}
	checked, err := h.checklist.Get(ctx, date)
	if err != nil {
		log.Printf("Checklist for %s unavailable: %v", date, err)
		return map[string]bool{}
	}
	return checked
}

func markDaily(needs []prep.DailyNeed, checked map[string]bool) {
	for i := range needs {
		needs[i].IsChecked = checked[needs[i].ItemID]
	}
}

func markWeekly(needs []prep.WeeklyNeed, checked map[string]bool) {
	for i := range needs {
		needs[i].IsChecked = checked[needs[i].ItemID]
	}
}
