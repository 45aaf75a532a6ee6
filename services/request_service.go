package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"capstone-tracker-api/models"

	"gorm.io/gorm"
)

// RequestService is the edit-request ledger plus the approval workflow that
// arbitrates deadline exceptions.
type RequestService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{db: db, now: time.Now}
}

// CreateRequestInput is the payload for filing a new edit request.
type CreateRequestInput struct {
	FacultyType string
	EmployeeID  string
	RegNo       string
	ReviewType  string
	Reason      string
}

// CreateRequest files one pending edit request. The ledger does not
// de-duplicate: a student may hold several pending requests for the same
// review type and callers own any de-dup policy.
func (s *RequestService) CreateRequest(in CreateRequestInput) (*models.EditRequest, error) {
	if in.FacultyType != models.FacultyTypeGuide && in.FacultyType != models.FacultyTypePanel {
		return nil, ValidationError("facultyType should either be 'guide' or 'panel'")
	}
	if !models.ValidReviewType(in.FacultyType, in.ReviewType) {
		return nil, ValidationError(fmt.Sprintf("Review type %q is not valid for %s reviews", in.ReviewType, in.FacultyType))
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, ValidationError("A reason is required to request edit access")
	}

	var faculty models.Faculty
	if err := s.db.Where("employee_id = ? AND delete_at IS NULL", in.EmployeeID).
		First(&faculty).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("No faculty found with the provided employee ID")
		}
		return nil, InternalError("Failed to load faculty", err)
	}

	var student models.Student
	if err := s.db.Where("reg_no = ? AND delete_at IS NULL", in.RegNo).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("No student found with the provided register number")
		}
		return nil, InternalError("Failed to load student", err)
	}

	request := models.EditRequest{
		FacultyType: in.FacultyType,
		ReviewType:  in.ReviewType,
		StudentID:   student.StudentID,
		FacultyID:   faculty.FacultyID,
		Reason:      strings.TrimSpace(in.Reason),
		Status:      models.RequestStatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, InternalError("Failed to create edit request", err)
	}
	return &request, nil
}

// QueryStatus returns the most relevant request status for one student and
// review type: an unresolved request wins, then the latest resolution, and
// "none" when no request has ever been filed.
func (s *RequestService) QueryStatus(facultyType, regNo, reviewType string) (string, error) {
	var student models.Student
	if err := s.db.Where("reg_no = ? AND delete_at IS NULL", regNo).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NotFoundError("No student found with the provided register number")
		}
		return "", InternalError("Failed to load student", err)
	}

	var requests []models.EditRequest
	if err := s.db.Where("faculty_type = ? AND student_id = ? AND review_type = ?",
		facultyType, student.StudentID, reviewType).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return "", InternalError("Failed to load edit requests", err)
	}
	if len(requests) == 0 {
		return "none", nil
	}
	for _, r := range requests {
		if !r.Resolved() {
			return models.RequestStatusPending, nil
		}
	}
	return requests[0].Status, nil
}

// PendingRequestEntry is one unresolved request in a faculty's listing.
// Approved is the derived tri-state display flag and is never persisted.
type PendingRequestEntry struct {
	RequestID  uint   `json:"request_id"`
	Name       string `json:"name"`
	RegNo      string `json:"reg_no"`
	ReviewType string `json:"review_type"`
	Reason     string `json:"reason"`
	Approved   *bool  `json:"approved"`
}

// PendingFacultyGroup groups a faculty's unresolved requests for display.
type PendingFacultyGroup struct {
	FacultyID  uint                  `json:"faculty_id"`
	Name       string                `json:"name"`
	EmployeeID string                `json:"employee_id"`
	Students   []PendingRequestEntry `json:"students"`
}

// ListPending returns every unresolved request of the given faculty type,
// grouped by requesting faculty in first-filed order.
func (s *RequestService) ListPending(facultyType string) ([]PendingFacultyGroup, error) {
	if facultyType != models.FacultyTypeGuide && facultyType != models.FacultyTypePanel {
		return nil, ValidationError("facultyType should either be 'guide' or 'panel'")
	}

	var requests []models.EditRequest
	if err := s.db.Preload("Faculty").Preload("Student").
		Where("faculty_type = ? AND resolved_at IS NULL", facultyType).
		Order("created_at ASC").Find(&requests).Error; err != nil {
		return nil, InternalError("Failed to load edit requests", err)
	}

	groups := make([]PendingFacultyGroup, 0)
	index := make(map[uint]int)
	for _, r := range requests {
		if r.Faculty == nil || r.Student == nil {
			log.Printf("Warning: request %d has a broken faculty or student reference, skipping", r.RequestID)
			continue
		}
		i, ok := index[r.FacultyID]
		if !ok {
			i = len(groups)
			index[r.FacultyID] = i
			groups = append(groups, PendingFacultyGroup{
				FacultyID:  r.FacultyID,
				Name:       r.Faculty.Name,
				EmployeeID: r.Faculty.EmployeeID,
			})
		}
		groups[i].Students = append(groups[i].Students, PendingRequestEntry{
			RequestID:  r.RequestID,
			Name:       r.Student.Name,
			RegNo:      r.Student.RegNo,
			ReviewType: r.ReviewType,
			Reason:     r.Reason,
			Approved:   r.ApprovedFlag(),
		})
	}
	return groups, nil
}

// Resolve moves a pending request to approved or rejected. Approval clears
// the manual lock for the request's review type and opens a fresh edit window
// {from: now, to: newDeadline} on the student, seeding the student's whole
// deadline map from the defaults when no complete range exists yet. The
// student rows are persisted before the request row; a crash between the two
// leaves the request pending with the student already unlocked.
func (s *RequestService) Resolve(requestID uint, status string, newDeadline *time.Time) (*models.EditRequest, error) {
	if status != models.RequestStatusApproved && status != models.RequestStatusRejected {
		return nil, ValidationError("Invalid status value. Must be 'approved' or 'rejected'.")
	}
	if status == models.RequestStatusApproved && newDeadline == nil {
		return nil, ValidationError("newDeadline is required for approved requests.")
	}

	var request models.EditRequest
	if err := s.db.Where("request_id = ?", requestID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Request not found")
		}
		return nil, InternalError("Failed to load request", err)
	}
	if request.Resolved() {
		return nil, ConflictError("Request has already been resolved")
	}

	var student models.Student
	if err := s.db.Where("student_id = ?", request.StudentID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("No student mapped to the request")
		}
		return nil, InternalError("Failed to load student", err)
	}

	now := s.now()
	if status == models.RequestStatusApproved {
		if err := s.applyApproval(&request, &student, now, *newDeadline); err != nil {
			return nil, err
		}
	}

	request.Status = status
	request.ResolvedAt = &now
	if err := s.db.Save(&request).Error; err != nil {
		return nil, InternalError("Failed to save request", err)
	}
	return &request, nil
}

// applyApproval performs the student-side mutations of an approval: unlock
// the review row, reset the deadline map from the defaults when the request's
// review type has no complete window yet, then open the fresh window for the
// request's review type.
func (s *RequestService) applyApproval(request *models.EditRequest, student *models.Student, now, newDeadline time.Time) error {
	var review models.StudentReview
	err := s.db.Where("student_id = ? AND review_type = ?", student.StudentID, request.ReviewType).
		First(&review).Error
	switch {
	case err == nil:
		review.Locked = false
		review.UpdateAt = now
		if err := s.db.Save(&review).Error; err != nil {
			return InternalError("Failed to unlock student review", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("Warning: review type %q not found on student %d for request %d",
			request.ReviewType, student.StudentID, request.RequestID)
	default:
		return InternalError("Failed to load student review", err)
	}

	var override models.StudentDeadline
	err = s.db.Where("student_id = ? AND review_type = ?", student.StudentID, request.ReviewType).
		First(&override).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return InternalError("Failed to load student deadline", err)
	}
	hasCompleteWindow := err == nil && override.WindowFrom != nil && override.WindowTo != nil

	if !hasCompleteWindow {
		if err := s.seedStudentDeadlines(student.StudentID, now); err != nil {
			return err
		}
		err = s.db.Where("student_id = ? AND review_type = ?", student.StudentID, request.ReviewType).
			First(&override).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return InternalError("Failed to load student deadline", err)
		}
	}

	from := now
	to := newDeadline
	if override.DeadlineID == 0 {
		override = models.StudentDeadline{
			StudentID:  student.StudentID,
			ReviewType: request.ReviewType,
			WindowFrom: &from,
			WindowTo:   &to,
			UpdateAt:   now,
		}
		if err := s.db.Create(&override).Error; err != nil {
			return InternalError("Failed to open student deadline window", err)
		}
		return nil
	}
	override.WindowFrom = &from
	override.WindowTo = &to
	override.UpdateAt = now
	if err := s.db.Save(&override).Error; err != nil {
		return InternalError("Failed to open student deadline window", err)
	}
	return nil
}

// seedStudentDeadlines resets the student's whole deadline map to a deep copy
// of the current defaults. Prior per-type overrides are overwritten, windows
// opened by earlier approvals included; the caller re-opens the window for
// the review type being approved afterwards.
func (s *RequestService) seedStudentDeadlines(studentID uint, now time.Time) error {
	var defaults []models.DefaultDeadline
	if err := s.db.Find(&defaults).Error; err != nil {
		return InternalError("Failed to load default deadlines", err)
	}
	if len(defaults) == 0 {
		return ConfigurationError("Default deadlines have not been configured")
	}

	for _, def := range defaults {
		var row models.StudentDeadline
		err := s.db.Where("student_id = ? AND review_type = ?", studentID, def.ReviewType).
			First(&row).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return InternalError("Failed to load student deadline", err)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.StudentDeadline{StudentID: studentID, ReviewType: def.ReviewType}
		}
		row.WindowFrom = copyTime(def.WindowFrom)
		row.WindowTo = copyTime(def.WindowTo)
		row.UpdateAt = now

		if row.DeadlineID == 0 {
			if err := s.db.Create(&row).Error; err != nil {
				return InternalError("Failed to seed student deadlines", err)
			}
			continue
		}
		if err := s.db.Save(&row).Error; err != nil {
			return InternalError("Failed to seed student deadlines", err)
		}
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
