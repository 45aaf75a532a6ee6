// Bootstrap script to create the first admin account
// cmd/create-admin/main.go
package main

import (
	"flag"
	"log"
	"time"

	"capstone-tracker-api/config"
	"capstone-tracker-api/models"
	"capstone-tracker-api/utils"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	name := flag.String("name", "", "admin display name")
	email := flag.String("email", "", "admin email address")
	employeeID := flag.String("employee-id", "", "admin employee ID")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	if *name == "" || *email == "" || *employeeID == "" || *password == "" {
		log.Fatal("all of -name, -email, -employee-id and -password are required")
	}
	if ok, msg := utils.ValidateEmail(*email); !ok {
		log.Fatal(msg)
	}
	if ok, msg := utils.ValidatePassword(*password); !ok {
		log.Fatal(msg)
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	var existing models.Faculty
	if err := config.DB.Where("email = ? OR employee_id = ?", *email, *employeeID).
		First(&existing).Error; err == nil {
		log.Fatalf("account %s already exists", existing.EmployeeID)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password:", err)
	}

	now := time.Now()
	admin := models.Faculty{
		Name:       *name,
		Email:      *email,
		EmployeeID: *employeeID,
		Password:   string(hashed),
		Role:       models.RoleAdmin,
		CreateAt:   now,
		UpdateAt:   now,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin:", err)
	}

	log.Printf("Admin account %s created successfully", admin.EmployeeID)
}
