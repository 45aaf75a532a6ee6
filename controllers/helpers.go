package controllers

import (
	"log"
	"time"

	"capstone-tracker-api/services"

	"github.com/gin-gonic/gin"
)

// respondError translates a service failure into its transport status, always
// keeping the human-readable message intact.
func respondError(c *gin.Context, err error) {
	svcErr := services.AsError(err)
	if svcErr.Kind == services.KindInternal || svcErr.Kind == services.KindConfiguration {
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(svcErr.HTTPStatus(), gin.H{
		"success": false,
		"message": svcErr.Message,
	})
}

// parseTimePtr takes a *string (possibly nil/empty) and parses it into *time.Time (or nil)
func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	layouts := []string{
		"2006-01-02 15:04:05", // common MySQL DATETIME
		time.RFC3339,          // ISO8601
		"2006-01-02T15:04:05", // datetime-local without TZ
		"2006-01-02",          // date only
	}
	var lastErr error
	for _, layout := range layouts {
		if tt, err := time.Parse(layout, *s); err == nil {
			return &tt, nil
		} else {
			lastErr = err
		}
	}
	return nil, lastErr
}

// currentFacultyID pulls the authenticated account ID set by AuthMiddleware.
func currentFacultyID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("facultyID")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
