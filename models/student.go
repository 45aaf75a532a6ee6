package models

import "time"

type Student struct {
	StudentID uint       `gorm:"primaryKey;column:student_id" json:"student_id"`
	RegNo     string     `gorm:"column:reg_no;unique" json:"reg_no"`
	Name      string     `gorm:"column:name" json:"name"`
	Email     string     `gorm:"column:email" json:"email"`
	ProjectID *uint      `gorm:"column:project_id" json:"project_id,omitempty"`
	// PPT approval is tracked per student and toggled during the review1
	// submission; it has no deadline window of its own.
	PPTApproved bool       `gorm:"column:ppt_approved" json:"ppt_approved"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt    time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Reviews   []StudentReview   `gorm:"foreignKey:StudentID" json:"reviews,omitempty"`
	Deadlines []StudentDeadline `gorm:"foreignKey:StudentID" json:"deadlines,omitempty"`
}

func (Student) TableName() string {
	return "students"
}
