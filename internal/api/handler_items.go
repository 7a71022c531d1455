package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nursery-prep-backend/internal/catalog"
)

type itemsResponse struct {
	Items  []catalog.Item  `json:"items"`
	Groups []catalog.Group `json:"groups"`
}

// GetItems handles GET /api/items. The catalog is static, so the route is
// safe to cache.
func (h *Handler) GetItems(c *gin.Context) {
	cat := h.prep.Catalog()
	resp := itemsResponse{Items: cat.Items(), Groups: []catalog.Group{}}

	seen := make(map[string]bool)
	for _, it := range resp.Items {
		if !it.Grouped() || seen[it.Group] {
			continue
		}
		seen[it.Group] = true
		resp.Groups = append(resp.Groups, cat.Group(it.Group))
	}
	c.JSON(http.StatusOK, resp)
}
