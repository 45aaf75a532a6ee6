package services

import (
	"errors"
	"fmt"
	"time"

	"capstone-tracker-api/models"

	"gorm.io/gorm"
)

// ReviewService records guide and panel marks. Submission never touches the
// manual lock flag; only the approval workflow changes lock state.
type ReviewService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db, now: time.Now}
}

// StudentReviewUpdate carries one student's marks for a submission.
type StudentReviewUpdate struct {
	StudentID  uint     `json:"student_id"`
	Component1 *float64 `json:"component1"`
	Component2 *float64 `json:"component2"`
	Component3 *float64 `json:"component3"`
	Attendance *string  `json:"attendance"`
	Comments   *string  `json:"comments"`
}

// SubmitReviewInput is a whole-team review submission.
type SubmitReviewInput struct {
	ProjectID      uint
	FacultyType    string
	ReviewType     string
	StudentUpdates []StudentReviewUpdate
	PPTApproved    *bool
}

// SubmitReview upserts marks for every listed team member. The submit action
// applies uniformly to the team; per-student lock state is authorization's
// concern at a different layer and is left untouched here.
func (s *ReviewService) SubmitReview(in SubmitReviewInput) error {
	if !models.ValidReviewType(in.FacultyType, in.ReviewType) {
		return ValidationError(fmt.Sprintf("Review type %q is not valid for %s reviews", in.ReviewType, in.FacultyType))
	}
	if len(in.StudentUpdates) == 0 {
		return ValidationError("At least one student update is required")
	}

	var project models.Project
	if err := s.db.Preload("Students").
		Where("project_id = ? AND delete_at IS NULL", in.ProjectID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("Project not found")
		}
		return InternalError("Failed to load project", err)
	}

	members := make(map[uint]*models.Student, len(project.Students))
	for i := range project.Students {
		members[project.Students[i].StudentID] = &project.Students[i]
	}

	now := s.now()
	for _, update := range in.StudentUpdates {
		student, ok := members[update.StudentID]
		if !ok {
			return ValidationError(fmt.Sprintf("Student %d is not a member of this project", update.StudentID))
		}

		var review models.StudentReview
		err := s.db.Where("student_id = ? AND review_type = ?", update.StudentID, in.ReviewType).
			First(&review).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return InternalError("Failed to load student review", err)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			review = models.StudentReview{
				StudentID:  update.StudentID,
				ReviewType: in.ReviewType,
				CreateAt:   now,
			}
		}

		review.Component1 = update.Component1
		review.Component2 = update.Component2
		review.Component3 = update.Component3
		review.Comments = update.Comments
		if in.ReviewType == models.ReviewTypeReview1 {
			review.Attendance = update.Attendance
		}
		review.UpdateAt = now

		if review.ReviewID == 0 {
			if err := s.db.Create(&review).Error; err != nil {
				return InternalError("Failed to save student review", err)
			}
		} else if err := s.db.Save(&review).Error; err != nil {
			return InternalError("Failed to save student review", err)
		}

		// PPT approval rides along with the review1 submission only.
		if in.ReviewType == models.ReviewTypeReview1 && in.PPTApproved != nil {
			student.PPTApproved = *in.PPTApproved
			student.UpdateAt = now
			if err := s.db.Save(student).Error; err != nil {
				return InternalError("Failed to save student", err)
			}
		}
	}
	return nil
}
