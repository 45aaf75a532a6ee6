package controllers

import (
	"net/http"

	"capstone-tracker-api/config"
	"capstone-tracker-api/models"
	"capstone-tracker-api/services"

	"github.com/gin-gonic/gin"
)

// GetFacultyDetails returns one faculty account by employee ID.
func GetFacultyDetails(c *gin.Context) {
	employeeID := c.Param("employeeId")

	var faculty models.Faculty
	if err := config.DB.Where("employee_id = ? AND delete_at IS NULL", employeeID).
		First(&faculty).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No faculty found with the provided ID"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Operation successful",
		"data":    faculty,
	})
}

// GetGuideProjects lists the projects the current user guides, with students
// and their review rows preloaded.
func GetGuideProjects(c *gin.Context) {
	facultyID, ok := currentFacultyID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "User context missing"})
		return
	}

	var projects []models.Project
	if err := config.DB.Preload("GuideFaculty").Preload("Students").
		Preload("Students.Reviews").Preload("Students.Deadlines").
		Where("guide_faculty_id = ? AND delete_at IS NULL", facultyID).
		Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": projects})
}

// GetPanelProjects lists the projects evaluated by panels the current user
// serves on.
func GetPanelProjects(c *gin.Context) {
	facultyID, ok := currentFacultyID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "User context missing"})
		return
	}

	var panelIDs []uint
	if err := config.DB.Model(&models.Panel{}).
		Where("faculty1_id = ? OR faculty2_id = ?", facultyID, facultyID).
		Pluck("panel_id", &panelIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load panels"})
		return
	}

	var projects []models.Project
	if len(panelIDs) > 0 {
		if err := config.DB.Preload("GuideFaculty").Preload("Panel").Preload("Students").
			Preload("Students.Reviews").Preload("Students.Deadlines").
			Where("panel_id IN ? AND delete_at IS NULL", panelIDs).
			Find(&projects).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load projects"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": projects})
}

// SubmitReview records team marks for one review milestone.
func SubmitReview(c *gin.Context) {
	facultyType := c.Param("facultyType")

	var req struct {
		ProjectID      uint                           `json:"project_id" binding:"required"`
		ReviewType     string                         `json:"review_type" binding:"required"`
		StudentUpdates []services.StudentReviewUpdate `json:"student_updates" binding:"required"`
		PPTApproved    *bool                          `json:"ppt_approved"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	svc := services.NewReviewService(config.DB)
	err := svc.SubmitReview(services.SubmitReviewInput{
		ProjectID:      req.ProjectID,
		FacultyType:    facultyType,
		ReviewType:     req.ReviewType,
		StudentUpdates: req.StudentUpdates,
		PPTApproved:    req.PPTApproved,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review submitted successfully",
	})
}

// GetTeamReviewStatus evaluates per-student lock state for one project and
// review type and folds the team's request statuses into a single display
// status. Per-student rows stay the source of truth for authorization.
func GetTeamReviewStatus(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}
	reviewType := c.Param("reviewType")

	facultyType := models.FacultyTypeGuide
	if models.ValidReviewType(models.FacultyTypePanel, reviewType) {
		facultyType = models.FacultyTypePanel
	} else if !models.ValidReviewType(models.FacultyTypeGuide, reviewType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown review type"})
		return
	}

	var project models.Project
	if err := config.DB.Preload("Students").
		Where("project_id = ? AND delete_at IS NULL", projectID).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
		return
	}

	deadlineSvc := services.NewDeadlineService(config.DB)
	requestSvc := services.NewRequestService(config.DB)

	type studentStatus struct {
		RegNo         string `json:"reg_no"`
		Name          string `json:"name"`
		Locked        bool   `json:"locked"`
		RequestStatus string `json:"request_status"`
	}

	students := make([]studentStatus, 0, len(project.Students))
	statuses := make([]string, 0, len(project.Students))
	anyUnlocked := false
	allPassed := true
	for _, student := range project.Students {
		locked, err := deadlineSvc.IsReviewLocked(student.StudentID, reviewType)
		if err != nil {
			respondError(c, err)
			return
		}
		if !locked {
			anyUnlocked = true
		}

		window, err := deadlineSvc.EffectiveWindow(student.StudentID, reviewType)
		if err != nil {
			respondError(c, err)
			return
		}
		if !window.Passed(timeNow()) {
			allPassed = false
		}

		status, qerr := requestSvc.QueryStatus(facultyType, student.RegNo, reviewType)
		if qerr != nil {
			respondError(c, qerr)
			return
		}
		statuses = append(statuses, status)
		students = append(students, studentStatus{
			RegNo:         student.RegNo,
			Name:          student.Name,
			Locked:        locked,
			RequestStatus: status,
		})
	}

	teamStatus := services.TeamReviewStatus(statuses, allPassed && len(project.Students) > 0)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"review_type": reviewType,
		"team_status": teamStatus,
		"actionable":  anyUnlocked,
		"students":    students,
	})
}
