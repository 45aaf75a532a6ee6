package controllers

import (
	"net/http"
	"time"

	"capstone-tracker-api/config"
	"capstone-tracker-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProject registers a new team under a guide and attaches its students
// by register number.
func CreateProject(c *gin.Context) {
	var req struct {
		Name            string   `json:"name" binding:"required"`
		GuideEmployeeID string   `json:"guide_employee_id" binding:"required"`
		StudentRegNos   []string `json:"student_reg_nos" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var guide models.Faculty
	if err := config.DB.Where("employee_id = ? AND role = ? AND delete_at IS NULL",
		req.GuideEmployeeID, models.RoleFaculty).First(&guide).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No faculty found with the provided employee ID"})
		return
	}

	var students []models.Student
	if err := config.DB.Where("reg_no IN ? AND delete_at IS NULL", req.StudentRegNos).
		Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load students"})
		return
	}
	if len(students) != len(req.StudentRegNos) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "One or more students not found"})
		return
	}

	now := time.Now()
	project := models.Project{
		Name:           req.Name,
		GuideFacultyID: guide.FacultyID,
		CreateAt:       now,
		UpdateAt:       now,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		for i := range students {
			students[i].ProjectID = &project.ProjectID
			students[i].UpdateAt = now
			if err := tx.Save(&students[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Project created successfully",
		"data":    project,
	})
}

// GetAllGuidesWithProjects lists every faculty with the projects they guide.
func GetAllGuidesWithProjects(c *gin.Context) {
	var faculties []models.Faculty
	if err := config.DB.Where("role = ? AND delete_at IS NULL", models.RoleFaculty).
		Order("faculty_id ASC").Find(&faculties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load faculty"})
		return
	}

	type guideEntry struct {
		Faculty  models.Faculty   `json:"faculty"`
		Projects []models.Project `json:"guided_projects"`
	}

	result := make([]guideEntry, 0, len(faculties))
	for _, faculty := range faculties {
		var projects []models.Project
		if err := config.DB.Preload("Students").
			Where("guide_faculty_id = ? AND delete_at IS NULL", faculty.FacultyID).
			Find(&projects).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load projects"})
			return
		}
		result = append(result, guideEntry{Faculty: faculty, Projects: projects})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// GetAllPanelsWithProjects lists every panel with the projects it evaluates.
func GetAllPanelsWithProjects(c *gin.Context) {
	var panels []models.Panel
	if err := config.DB.Preload("Faculty1").Preload("Faculty2").
		Order("panel_id ASC").Find(&panels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load panels"})
		return
	}

	type panelEntry struct {
		Panel    models.Panel     `json:"panel"`
		Projects []models.Project `json:"projects"`
	}

	result := make([]panelEntry, 0, len(panels))
	for _, panel := range panels {
		var projects []models.Project
		if err := config.DB.Preload("Students").
			Where("panel_id = ? AND delete_at IS NULL", panel.PanelID).
			Find(&projects).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load projects"})
			return
		}
		result = append(result, panelEntry{Panel: panel, Projects: projects})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// GetAllFacultyWithProjects rolls up guide and panel duties per faculty.
func GetAllFacultyWithProjects(c *gin.Context) {
	var faculties []models.Faculty
	if err := config.DB.Where("delete_at IS NULL").Order("faculty_id ASC").
		Find(&faculties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load faculty"})
		return
	}

	type facultyEntry struct {
		Faculty models.Faculty   `json:"faculty"`
		Guide   []models.Project `json:"guide"`
		Panel   []models.Project `json:"panel"`
	}

	result := make([]facultyEntry, 0, len(faculties))
	for _, faculty := range faculties {
		var guided []models.Project
		if err := config.DB.Preload("Students").Preload("Panel").
			Where("guide_faculty_id = ? AND delete_at IS NULL", faculty.FacultyID).
			Find(&guided).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load projects"})
			return
		}

		var panelIDs []uint
		if err := config.DB.Model(&models.Panel{}).
			Where("faculty1_id = ? OR faculty2_id = ?", faculty.FacultyID, faculty.FacultyID).
			Pluck("panel_id", &panelIDs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load panels"})
			return
		}

		var paneled []models.Project
		if len(panelIDs) > 0 {
			if err := config.DB.Preload("Students").Preload("Panel").
				Where("panel_id IN ? AND delete_at IS NULL", panelIDs).
				Find(&paneled).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load projects"})
				return
			}
		}

		result = append(result, facultyEntry{Faculty: faculty, Guide: guided, Panel: paneled})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
