package controllers

import (
	"net/http"

	"capstone-tracker-api/config"
	"capstone-tracker-api/services"

	"github.com/gin-gonic/gin"
)

type deadlineWindowPayload struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

type setDefaultDeadlinesRequest struct {
	DefaultDeadlines map[string]deadlineWindowPayload `json:"default_deadlines" binding:"required"`
}

// GetDefaultDeadlines returns the configured default windows per review type.
func GetDefaultDeadlines(c *gin.Context) {
	svc := services.NewDeadlineService(config.DB)
	rows, err := svc.GetDefaults()
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No default deadlines set yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

// SetDefaultDeadlines merges the given windows into the default config. Review
// types missing from the payload are left untouched.
func SetDefaultDeadlines(c *gin.Context) {
	var req setDefaultDeadlinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	updates := make([]services.WindowUpdate, 0, len(req.DefaultDeadlines))
	for reviewType, window := range req.DefaultDeadlines {
		from, err := parseTimePtr(window.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid 'from' date for " + reviewType})
			return
		}
		to, err := parseTimePtr(window.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid 'to' date for " + reviewType})
			return
		}
		updates = append(updates, services.WindowUpdate{ReviewType: reviewType, From: from, To: to})
	}

	svc := services.NewDeadlineService(config.DB)
	if err := svc.SetDefaults(updates); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Default deadlines set successfully",
	})
}
