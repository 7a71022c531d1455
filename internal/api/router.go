package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"nursery-prep-backend/config"
	"nursery-prep-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	r := gin.Default()
	if cfg.Server.RequestIPHeader != "" {
		// ClientIP, and so the rate limiter, keys on this header from proxies.
		r.RemoteIPHeaders = []string{cfg.Server.RequestIPHeader}
	}
	r.Use(mw.CORS(cfg.Server.AllowedOrigins, cfg.Caregiver.Header))

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	api.Use(rateLimiter, mw.Caregiver(cfg.Caregiver.Header, cfg.Caregiver.DefaultAuthorID))
	{
		// Only the catalog is cached; every other view is recomputed on read.
		api.GET("/items", caching, handler.GetItems)

		api.GET("/dashboard", handler.GetDashboard)
		api.GET("/stock", handler.GetStock)
		api.GET("/needs/daily", handler.GetDailyNeeds)
		api.GET("/needs/weekly", handler.GetWeeklyNeeds)
		api.GET("/weekly-status", handler.GetWeeklyStatus)

		api.GET("/observations/latest", handler.GetLatestObservation)
		api.PUT("/observations", handler.PutObservation)

		api.GET("/settings/required-counts", handler.GetRequiredCounts)
		api.PUT("/settings/required-counts", handler.PutRequiredCounts)
		api.POST("/settings/required-counts/reset", handler.ResetRequiredCounts)

		api.GET("/checklist/:date", handler.GetChecklist)
		api.PUT("/checklist/:date", handler.PutChecklist)

		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
