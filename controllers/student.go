package controllers

import (
	"net/http"
	"time"

	"capstone-tracker-api/config"
	"capstone-tracker-api/models"

	"github.com/gin-gonic/gin"
)

var timeNow = time.Now

// GetStudentDetails returns one student with review rows and deadline
// overrides by register number.
func GetStudentDetails(c *gin.Context) {
	regNo := c.Param("regNo")

	var student models.Student
	if err := config.DB.Preload("Reviews").Preload("Deadlines").
		Where("reg_no = ? AND delete_at IS NULL", regNo).
		First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No student found with the provided register number"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Operation successful",
		"data":    student,
	})
}

// CreateStudent registers a new student account (admin path; students join a
// project later through project creation).
func CreateStudent(c *gin.Context) {
	var req struct {
		RegNo string `json:"reg_no" binding:"required"`
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var existing models.Student
	if err := config.DB.Where("reg_no = ?", req.RegNo).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Student already registered"})
		return
	}

	now := timeNow()
	student := models.Student{
		RegNo:    req.RegNo,
		Name:     req.Name,
		Email:    req.Email,
		CreateAt: now,
		UpdateAt: now,
	}
	if err := config.DB.Create(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create student"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Student created successfully",
		"data":    student,
	})
}
