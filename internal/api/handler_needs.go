package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboard handles GET /api/dashboard. Sources that fail are reported in
// "errors" and leave their sections empty; the request itself still succeeds.
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	d := h.prep.Dashboard(ctx)

	checked := h.checkedFor(ctx, d.Tomorrow)
	markDaily(d.DailyNeeds, checked)
	markWeekly(d.WeeklyNeeds, checked)

	c.JSON(http.StatusOK, d)
}

// GetStock handles GET /api/stock.
func (h *Handler) GetStock(c *gin.Context) {
	report, err := h.prep.NurseryStock(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetDailyNeeds handles GET /api/needs/daily.
func (h *Handler) GetDailyNeeds(c *gin.Context) {
	ctx := c.Request.Context()
	needs, err := h.prep.DailyNeeds(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	tomorrow := h.prep.Tomorrow()
	markDaily(needs, h.checkedFor(ctx, tomorrow))
	c.JSON(http.StatusOK, gin.H{"date": tomorrow, "needs": needs})
}

// GetWeeklyNeeds handles GET /api/needs/weekly.
func (h *Handler) GetWeeklyNeeds(c *gin.Context) {
	ctx := c.Request.Context()
	needs, err := h.prep.WeeklyNeeds(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	tomorrow := h.prep.Tomorrow()
	markWeekly(needs, h.checkedFor(ctx, tomorrow))
	c.JSON(http.StatusOK, gin.H{"date": tomorrow, "needs": needs})
}

// GetWeeklyStatus handles GET /api/weekly-status.
func (h *Handler) GetWeeklyStatus(c *gin.Context) {
	statuses, err := h.prep.WeeklyStatuses(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}
