package controllers

import (
	"net/http"
	"strconv"

	"capstone-tracker-api/config"
	"capstone-tracker-api/services"

	"github.com/gin-gonic/gin"
)

// GetAllRequests lists unresolved edit requests of one faculty type, grouped
// by the requesting faculty for the admin review screen.
func GetAllRequests(c *gin.Context) {
	facultyType := c.Param("facultyType")

	svc := services.NewRequestService(config.DB)
	groups, err := svc.ListPending(facultyType)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(groups) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "No requests found for the " + facultyType,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Operation successful",
		"data":    groups,
	})
}

type updateRequestStatusRequest struct {
	RequestID   uint    `json:"request_id" binding:"required"`
	Status      string  `json:"status" binding:"required"`
	NewDeadline *string `json:"new_deadline"`
}

// UpdateRequestStatus resolves a pending edit request. Approval requires a
// new deadline and opens a fresh edit window for the student.
func UpdateRequestStatus(c *gin.Context) {
	var req updateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	newDeadline, err := parseTimePtr(req.NewDeadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format for new_deadline"})
		return
	}

	svc := services.NewRequestService(config.DB)
	request, rerr := svc.Resolve(req.RequestID, req.Status, newDeadline)
	if rerr != nil {
		respondError(c, rerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request " + request.Status + " successfully",
		"data":    request,
	})
}

// CheckRequestStatus reports the most relevant request status for one
// student and review type.
func CheckRequestStatus(c *gin.Context) {
	facultyType := c.Param("facultyType")
	regNo := c.Query("reg_no")
	reviewType := c.Query("review_type")

	if regNo == "" || reviewType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "reg_no and review_type are required"})
		return
	}

	svc := services.NewRequestService(config.DB)
	status, err := svc.QueryStatus(facultyType, regNo, reviewType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

// CreateEditRequest files a new edit-access request after a deadline passed.
func CreateEditRequest(c *gin.Context) {
	facultyType := c.Param("facultyType")

	var req struct {
		EmployeeID string `json:"employee_id" binding:"required"`
		RegNo      string `json:"reg_no" binding:"required"`
		ReviewType string `json:"review_type" binding:"required"`
		Reason     string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	svc := services.NewRequestService(config.DB)
	request, err := svc.CreateRequest(services.CreateRequestInput{
		FacultyType: facultyType,
		EmployeeID:  req.EmployeeID,
		RegNo:       req.RegNo,
		ReviewType:  req.ReviewType,
		Reason:      req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Edit request submitted successfully",
		"data":    request,
	})
}

// parseIDParam converts a path segment into an entity ID.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
