package mw

import (
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

const caregiverKey = "caregiverID"

// maxCaregiverIDLen is the author_id column size in bytes.
const maxCaregiverIDLen = 128

// Caregiver records who is making the request. The id comes from header,
// falling back to defaultID when the header is missing or blank.
func Caregiver(header, defaultID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(header))
		if len(id) > maxCaregiverIDLen {
			id = id[:maxCaregiverIDLen]
			// Back off to a rune boundary.
			for !utf8.ValidString(id) {
				id = id[:len(id)-1]
			}
		}
		if id == "" {
			id = defaultID
		}
		c.Set(caregiverKey, id)
		c.Next()
	}
}

// CaregiverID returns the id set by Caregiver, or "" outside that middleware.
func CaregiverID(c *gin.Context) string {
	return c.GetString(caregiverKey)
}
