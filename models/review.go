package models

import "time"

// Review milestone tags. Guides own the first three, panels the last two.
const (
	ReviewTypeReview0     = "review0"
	ReviewTypeDraftReview = "draftReview"
	ReviewTypeReview1     = "review1"
	ReviewTypeReview2     = "review2"
	ReviewTypeReview3     = "review3"
)

// Faculty types that may hold review milestones and file edit requests.
const (
	FacultyTypeGuide = "guide"
	FacultyTypePanel = "panel"
)

// AllReviewTypes lists every milestone in order.
var AllReviewTypes = []string{
	ReviewTypeReview0,
	ReviewTypeDraftReview,
	ReviewTypeReview1,
	ReviewTypeReview2,
	ReviewTypeReview3,
}

// ReviewTypesFor returns the milestone set owned by a faculty type, or nil
// for an unknown faculty type.
func ReviewTypesFor(facultyType string) []string {
	switch facultyType {
	case FacultyTypeGuide:
		return []string{ReviewTypeReview0, ReviewTypeDraftReview, ReviewTypeReview1}
	case FacultyTypePanel:
		return []string{ReviewTypeReview2, ReviewTypeReview3}
	}
	return nil
}

// ValidReviewType reports whether reviewType belongs to the facultyType's set.
func ValidReviewType(facultyType, reviewType string) bool {
	for _, rt := range ReviewTypesFor(facultyType) {
		if rt == reviewType {
			return true
		}
	}
	return false
}

// StudentReview holds one student's marks for one review milestone. Locked is
// the manual override flag cleared only through the approval workflow.
type StudentReview struct {
	ReviewID   uint       `gorm:"primaryKey;column:review_id" json:"review_id"`
	StudentID  uint       `gorm:"column:student_id;uniqueIndex:uq_student_review,priority:1" json:"student_id"`
	ReviewType string     `gorm:"column:review_type;uniqueIndex:uq_student_review,priority:2" json:"review_type"`
	Component1 *float64   `gorm:"column:component1" json:"component1,omitempty"`
	Component2 *float64   `gorm:"column:component2" json:"component2,omitempty"`
	Component3 *float64   `gorm:"column:component3" json:"component3,omitempty"`
	Attendance *string    `gorm:"column:attendance" json:"attendance,omitempty"`
	Comments   *string    `gorm:"column:comments" json:"comments,omitempty"`
	Locked     bool       `gorm:"column:locked" json:"locked"`
	CreateAt   time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt   time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (StudentReview) TableName() string {
	return "student_reviews"
}
