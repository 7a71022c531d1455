package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nursery-prep-backend/internal/calendar"
)

// GetChecklist handles GET /api/checklist/:date.
func (h *Handler) GetChecklist(c *gin.Context) {
	date, err := calendar.Parse(c.Param("date"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checked, err := h.checklist.Get(c.Request.Context(), date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "checked": checked})
}

type putChecklistRequest struct {
	Checked map[string]bool `json:"checked" binding:"required"`
}

// PutChecklist handles PUT /api/checklist/:date, replacing that day's ticks.
func (h *Handler) PutChecklist(c *gin.Context) {
	date, err := calendar.Parse(c.Param("date"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req putChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()
	if err := h.checklist.Set(ctx, date, req.Checked); err != nil {
		abortWithError(c, err)
		return
	}
	h.GetChecklist(c)
}
