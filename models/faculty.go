package models

import "time"

// Faculty roles. Admins manage deadlines, requests and panels; regular
// faculty act as guides and panel members.
const (
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

type Faculty struct {
	FacultyID  uint       `gorm:"primaryKey;column:faculty_id" json:"faculty_id"`
	EmployeeID string     `gorm:"column:employee_id;unique" json:"employee_id"`
	Name       string     `gorm:"column:name" json:"name"`
	Email      string     `gorm:"column:email;unique" json:"email"`
	Password   string     `gorm:"column:password" json:"-"`
	Role       string     `gorm:"column:role" json:"role"`
	CreateAt   time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt   time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Faculty) TableName() string {
	return "faculties"
}

func (f *Faculty) IsAdmin() bool {
	return f.Role == RoleAdmin
}
