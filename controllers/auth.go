package controllers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"capstone-tracker-api/config"
	"capstone-tracker-api/middleware"
	"capstone-tracker-api/models"
	"capstone-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Faculty models.Faculty `json:"faculty"`
	Message string         `json:"message"`
}

// Login handles faculty and admin authentication
func Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var faculty models.Faculty
	if err := config.DB.Where("employee_id = ? AND delete_at IS NULL", req.EmployeeID).
		First(&faculty).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid employee ID or password"})
		return
	}

	if !CheckPasswordHash(req.Password, faculty.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid employee ID or password"})
		return
	}

	token, err := generateToken(faculty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Faculty: faculty,
		Message: "Login successful",
	})
}

// GetProfile returns the authenticated account
func GetProfile(c *gin.Context) {
	facultyID, _ := currentFacultyID(c)

	var faculty models.Faculty
	if err := config.DB.Where("faculty_id = ?", facultyID).First(&faculty).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"faculty": faculty})
}

// ChangePassword handles password change
func ChangePassword(c *gin.Context) {
	type PasswordChangeRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	facultyID, _ := currentFacultyID(c)

	var faculty models.Faculty
	if err := config.DB.Where("faculty_id = ?", facultyID).First(&faculty).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	if !CheckPasswordHash(req.CurrentPassword, faculty.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	faculty.Password = hashed
	faculty.UpdateAt = time.Now()

	if err := config.DB.Save(&faculty).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// generateToken creates JWT token
func generateToken(faculty models.Faculty) (string, error) {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24 // default 24 hours
	}

	claims := middleware.Claims{
		FacultyID:  faculty.FacultyID,
		EmployeeID: faculty.EmployeeID,
		Role:       faculty.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// HashPassword hashes password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
