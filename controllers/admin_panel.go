package controllers

import (
	"net/http"

	"capstone-tracker-api/config"
	"capstone-tracker-api/models"
	"capstone-tracker-api/services"

	"github.com/gin-gonic/gin"
)

// CreatePanelManually records a panel from two chosen faculty members.
func CreatePanelManually(c *gin.Context) {
	var req struct {
		Faculty1ID uint `json:"faculty1_id"`
		Faculty2ID uint `json:"faculty2_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	svc := services.NewPanelService(config.DB)
	panel, err := svc.CreatePanel(req.Faculty1ID, req.Faculty2ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Panel created successfully",
		"data":    panel,
	})
}

// GetAllPanels lists every panel with its two members.
func GetAllPanels(c *gin.Context) {
	var panels []models.Panel
	if err := config.DB.Preload("Faculty1").Preload("Faculty2").
		Order("panel_id ASC").Find(&panels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load panels"})
		return
	}
	if len(panels) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No panels"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Operation successful",
		"data":    panels,
	})
}

// DeletePanel removes a panel and detaches it from any projects.
func DeletePanel(c *gin.Context) {
	panelID, ok := parseIDParam(c, "panelId")
	if !ok {
		return
	}

	svc := services.NewPanelService(config.DB)
	if err := svc.DeletePanel(panelID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Panel deleted successfully and removed from associated projects",
	})
}

// AutoCreatePanels pairs the faculty pool into panels. Requires force=true to
// replace an existing set.
func AutoCreatePanels(c *gin.Context) {
	var req struct {
		Force bool `json:"force"`
	}
	// Body is optional; force defaults to false.
	_ = c.ShouldBindJSON(&req)

	svc := services.NewPanelService(config.DB)
	result, err := svc.AutoCreatePanels(req.Force)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Panels created successfully"
	if result.Replaced {
		message = "Existing panels replaced successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        message,
		"panels_created": result.PanelsCreated,
	})
}

// AutoAssignPanelsToProjects attaches panels to every guide-only project,
// skipping projects with no eligible panel.
func AutoAssignPanelsToProjects(c *gin.Context) {
	svc := services.NewPanelService(config.DB)
	result, err := svc.AutoAssignPanels()
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Panels assigned automatically to unassigned projects"
	if result.Assigned == 0 && result.Skipped == 0 {
		message = "All projects already have panels"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  message,
		"assigned": result.Assigned,
		"skipped":  result.Skipped,
	})
}

// AssignPanelToProject creates a brand-new panel from two faculty members and
// attaches it to a project.
func AssignPanelToProject(c *gin.Context) {
	var req struct {
		PanelFacultyIDs []uint `json:"panel_faculty_ids"`
		ProjectID       uint   `json:"project_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	svc := services.NewPanelService(config.DB)
	project, err := svc.AssignPanelToProject(req.PanelFacultyIDs, req.ProjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Panel assigned successfully",
		"data":    project,
	})
}

// AssignExistingPanelToProject attaches an existing panel to a project, or
// detaches the current one when panel_id is omitted.
func AssignExistingPanelToProject(c *gin.Context) {
	var req struct {
		PanelID   *uint `json:"panel_id"`
		ProjectID uint  `json:"project_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	svc := services.NewPanelService(config.DB)
	project, err := svc.AssignExistingPanelToProject(req.PanelID, req.ProjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Panel assigned successfully"
	if req.PanelID == nil {
		message = "Panel removed from project successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    project,
	})
}
