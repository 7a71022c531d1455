package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nursery-prep-backend/internal/model"
	"nursery-prep-backend/internal/mw"
	"nursery-prep-backend/internal/parse"
	"nursery-prep-backend/internal/store"
)

// GetLatestObservation handles GET /api/observations/latest?type=morning|evening.
func (h *Handler) GetLatestObservation(c *gin.Context) {
	t, err := parse.ObservationType(c.Query("type"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	obs, err := h.store.FindLatestByType(c.Request.Context(), t)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if obs == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no " + string(t) + " observation recorded"})
		return
	}
	c.JSON(http.StatusOK, obs)
}

type putObservationRequest struct {
	// Date defaults to today in the configured time zone.
	Date        string            `json:"date"`
	Type        string            `json:"type" binding:"required"`
	ItemCounts  model.ItemCounts  `json:"itemCounts"`
	WeeklyFlags model.WeeklyFlags `json:"weeklyFlags"`
}

// PutObservation handles PUT /api/observations, replacing the record of the
// (date, type) slot.
func (h *Handler) PutObservation(c *gin.Context) {
	var req putObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	t, err := parse.ObservationType(req.Type)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parse.DateOr(req.Date, h.prep.Today())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	obs, err := h.prep.Record(c.Request.Context(), store.ObservationInput{
		Date:        date,
		Type:        t,
		ItemCounts:  req.ItemCounts,
		WeeklyFlags: req.WeeklyFlags,
		AuthorID:    mw.CaregiverID(c),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, obs)
}
