package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"nursery-prep-backend/internal/parse"
)

// GetRequiredCounts handles GET /api/settings/required-counts.
func (h *Handler) GetRequiredCounts(c *gin.Context) {
	counts, err := h.store.Load(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requiredCounts": counts})
}

type putRequiredCountsRequest struct {
	RequiredCounts map[string]json.RawMessage `json:"requiredCounts" binding:"required"`
}

// PutRequiredCounts handles PUT /api/settings/required-counts. Values that
// are not finite non-negative numbers are stored as zero; unknown item ids
// are ignored. Values stay raw until parse so one bad literal cannot fail
// the whole payload.
func (h *Handler) PutRequiredCounts(c *gin.Context) {
	var req putRequiredCountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Save(ctx, parse.RawRequiredCounts(req.RequiredCounts)); err != nil {
		abortWithError(c, err)
		return
	}
	h.GetRequiredCounts(c)
}

// ResetRequiredCounts handles POST /api/settings/required-counts/reset.
func (h *Handler) ResetRequiredCounts(c *gin.Context) {
	if err := h.store.Reset(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	h.GetRequiredCounts(c)
}
