package models

import "time"

// DefaultDeadline is the process-wide fallback window for one review type.
// WindowFrom may be nil: a row with only WindowTo is the legacy point form
// ("passed once now > to"). The table is created lazily by the first admin
// write and rows are merged in place, never deleted.
type DefaultDeadline struct {
	ReviewType string     `gorm:"primaryKey;column:review_type" json:"review_type"`
	WindowFrom *time.Time `gorm:"column:window_from" json:"window_from,omitempty"`
	WindowTo   *time.Time `gorm:"column:window_to" json:"window_to,omitempty"`
	UpdateAt   time.Time  `gorm:"column:update_at" json:"update_at"`
}

func (DefaultDeadline) TableName() string {
	return "default_deadlines"
}

// StudentDeadline overrides the default window for one student and review
// type. It is written only by the approval workflow (seeding + reopening).
type StudentDeadline struct {
	DeadlineID uint       `gorm:"primaryKey;column:deadline_id" json:"deadline_id"`
	StudentID  uint       `gorm:"column:student_id;uniqueIndex:uq_student_deadline,priority:1" json:"student_id"`
	ReviewType string     `gorm:"column:review_type;uniqueIndex:uq_student_deadline,priority:2" json:"review_type"`
	WindowFrom *time.Time `gorm:"column:window_from" json:"window_from,omitempty"`
	WindowTo   *time.Time `gorm:"column:window_to" json:"window_to,omitempty"`
	UpdateAt   time.Time  `gorm:"column:update_at" json:"update_at"`
}

func (StudentDeadline) TableName() string {
	return "student_deadlines"
}
