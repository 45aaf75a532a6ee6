package controllers

import (
	"net/http"
	"time"

	"capstone-tracker-api/config"
	"capstone-tracker-api/models"
	"capstone-tracker-api/utils"

	"github.com/gin-gonic/gin"
)

type createAccountRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	EmployeeID string `json:"employee_id" binding:"required"`
}

func createAccount(c *gin.Context, role string) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if ok, msg := utils.ValidateEmail(req.Email); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	var existing models.Faculty
	if err := config.DB.Where("email = ? OR employee_id = ?", req.Email, req.EmployeeID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Account already registered"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	now := time.Now()
	faculty := models.Faculty{
		Name:       utils.SanitizeInput(req.Name),
		Email:      req.Email,
		Password:   hashed,
		EmployeeID: req.EmployeeID,
		Role:       role,
		CreateAt:   now,
		UpdateAt:   now,
	}
	if err := config.DB.Create(&faculty).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
	})
}

// CreateFaculty registers a regular faculty account
func CreateFaculty(c *gin.Context) {
	createAccount(c, models.RoleFaculty)
}

// CreateAdmin registers an admin account
func CreateAdmin(c *gin.Context) {
	createAccount(c, models.RoleAdmin)
}

// GetAllFaculty lists every account, admins included
func GetAllFaculty(c *gin.Context) {
	var faculties []models.Faculty
	if err := config.DB.Where("delete_at IS NULL").Order("faculty_id ASC").
		Find(&faculties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load faculty"})
		return
	}

	if len(faculties) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No faculty found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "faculties": faculties})
}
