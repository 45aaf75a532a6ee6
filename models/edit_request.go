package models

import "time"

// Edit request statuses. A request is terminal once resolved; ResolvedAt is
// set exactly once and the row is never deleted (audit trail).
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// EditRequest is an appeal to reopen editing for one student's review
// milestone after its deadline has passed.
type EditRequest struct {
	RequestID   uint       `gorm:"primaryKey;column:request_id" json:"request_id"`
	FacultyType string     `gorm:"column:faculty_type" json:"faculty_type"`
	ReviewType  string     `gorm:"column:review_type" json:"review_type"`
	StudentID   uint       `gorm:"column:student_id" json:"student_id"`
	FacultyID   uint       `gorm:"column:faculty_id" json:"faculty_id"`
	Reason      string     `gorm:"column:reason" json:"reason"`
	Status      string     `gorm:"column:status" json:"status"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`

	// Relations
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
}

func (EditRequest) TableName() string {
	return "edit_requests"
}

// Resolved reports whether the request has reached a terminal state.
func (r *EditRequest) Resolved() bool {
	return r.ResolvedAt != nil
}

// ApprovedFlag derives the tri-state display flag used by pending listings:
// true when approved, false when rejected, nil while pending. Never persisted.
func (r *EditRequest) ApprovedFlag() *bool {
	switch r.Status {
	case RequestStatusApproved:
		v := true
		return &v
	case RequestStatusRejected:
		v := false
		return &v
	}
	return nil
}
