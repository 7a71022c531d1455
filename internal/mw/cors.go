package mw

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the listed browser origins. With no origins configured the
// API is same-origin only and the middleware is a no-op.
func CORS(allowedOrigins []string, caregiverHeader string) gin.HandlerFunc {
	if len(allowedOrigins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", caregiverHeader},
		ExposeHeaders:    []string{"Content-Length", CacheHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
