package services

import (
	"errors"
	"fmt"
	"time"

	"capstone-tracker-api/models"

	"gorm.io/gorm"
)

// WindowKind tags the three deadline representations: no restriction, the
// legacy single-cutoff form, and the from/to range form.
type WindowKind int

const (
	WindowOpen WindowKind = iota
	WindowPoint
	WindowRange
)

// Window is the resolved deadline variant for one review type. Point windows
// carry only To; Open windows carry nothing.
type Window struct {
	Kind WindowKind
	From time.Time
	To   time.Time
}

// ResolveWindow normalizes stored from/to columns into the tagged variant.
// A lone From is not a usable restriction and resolves to Open.
func ResolveWindow(from, to *time.Time) Window {
	switch {
	case from != nil && to != nil:
		return Window{Kind: WindowRange, From: *from, To: *to}
	case to != nil:
		return Window{Kind: WindowPoint, To: *to}
	default:
		return Window{Kind: WindowOpen}
	}
}

// Passed reports whether the deadline restricts edits at the given instant.
// Range windows permit edits only strictly inside (from, to).
func (w Window) Passed(now time.Time) bool {
	switch w.Kind {
	case WindowRange:
		return now.Before(w.From) || now.After(w.To)
	case WindowPoint:
		return now.After(w.To)
	default:
		return false
	}
}

// IsLocked decides whether a student's review milestone is editable. The
// manual lock flag wins over any deadline state.
func IsLocked(manualLock bool, w Window, now time.Time) bool {
	if manualLock {
		return true
	}
	return w.Passed(now)
}

// TeamReviewStatus merges per-student request statuses into one team-level
// display status. A pending request surfaces even when the deadline has
// expired; only without one does an expired deadline collapse to "none".
func TeamReviewStatus(statuses []string, deadlinePassed bool) string {
	for _, s := range statuses {
		if s == models.RequestStatusPending {
			return models.RequestStatusPending
		}
	}
	if deadlinePassed {
		return "none"
	}
	for _, s := range statuses {
		if s == models.RequestStatusApproved {
			return models.RequestStatusApproved
		}
	}
	return "none"
}

// DeadlineService owns the default and per-student deadline windows.
type DeadlineService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDeadlineService(db *gorm.DB) *DeadlineService {
	return &DeadlineService{db: db, now: time.Now}
}

// GetDefaults returns every configured default window. An empty slice means
// no defaults have been set yet; callers decide whether that is an error.
func (s *DeadlineService) GetDefaults() ([]models.DefaultDeadline, error) {
	var rows []models.DefaultDeadline
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, InternalError("Failed to load default deadlines", err)
	}
	return rows, nil
}

// DefaultWindows resolves the default rows into per-type window variants.
func (s *DeadlineService) DefaultWindows() (map[string]Window, error) {
	rows, err := s.GetDefaults()
	if err != nil {
		return nil, err
	}
	windows := make(map[string]Window, len(rows))
	for _, row := range rows {
		windows[row.ReviewType] = ResolveWindow(row.WindowFrom, row.WindowTo)
	}
	return windows, nil
}

// WindowUpdate is one review type's new default window as supplied by the
// admin setter. Nil fields clear nothing; they just leave the legacy point
// form in place when only To is sent.
type WindowUpdate struct {
	ReviewType string
	From       *time.Time
	To         *time.Time
}

// SetDefaults merges the given windows into the default table, updating only
// the review types present in the payload. The table is created lazily: the
// first write simply inserts the rows it was given.
func (s *DeadlineService) SetDefaults(updates []WindowUpdate) error {
	if len(updates) == 0 {
		return ValidationError("At least one review type deadline is required")
	}
	for _, u := range updates {
		if !contains(models.AllReviewTypes, u.ReviewType) {
			return ValidationError(fmt.Sprintf("Unknown review type %q", u.ReviewType))
		}
		if u.To == nil {
			return ValidationError(fmt.Sprintf("Review type %q requires a 'to' deadline", u.ReviewType))
		}
	}

	now := s.now()
	for _, u := range updates {
		var row models.DefaultDeadline
		err := s.db.Where("review_type = ?", u.ReviewType).First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = models.DefaultDeadline{
				ReviewType: u.ReviewType,
				WindowFrom: u.From,
				WindowTo:   u.To,
				UpdateAt:   now,
			}
			if err := s.db.Create(&row).Error; err != nil {
				return InternalError("Failed to save default deadlines", err)
			}
		case err != nil:
			return InternalError("Failed to load default deadlines", err)
		default:
			row.WindowFrom = u.From
			row.WindowTo = u.To
			row.UpdateAt = now
			if err := s.db.Save(&row).Error; err != nil {
				return InternalError("Failed to save default deadlines", err)
			}
		}
	}
	return nil
}

// EffectiveWindow resolves the window governing one student's review type:
// the student override when it is a complete range, the default otherwise.
func (s *DeadlineService) EffectiveWindow(studentID uint, reviewType string) (Window, error) {
	var override models.StudentDeadline
	err := s.db.Where("student_id = ? AND review_type = ?", studentID, reviewType).
		First(&override).Error
	if err == nil && override.WindowFrom != nil && override.WindowTo != nil {
		return ResolveWindow(override.WindowFrom, override.WindowTo), nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Window{}, InternalError("Failed to load student deadline", err)
	}

	var def models.DefaultDeadline
	err = s.db.Where("review_type = ?", reviewType).First(&def).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Window{Kind: WindowOpen}, nil
	}
	if err != nil {
		return Window{}, InternalError("Failed to load default deadline", err)
	}
	return ResolveWindow(def.WindowFrom, def.WindowTo), nil
}

// IsReviewLocked evaluates the lock state for one student and review type,
// combining the manual lock flag with the effective window.
func (s *DeadlineService) IsReviewLocked(studentID uint, reviewType string) (bool, error) {
	var review models.StudentReview
	manualLock := false
	err := s.db.Where("student_id = ? AND review_type = ?", studentID, reviewType).
		First(&review).Error
	if err == nil {
		manualLock = review.Locked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, InternalError("Failed to load student review", err)
	}

	window, werr := s.EffectiveWindow(studentID, reviewType)
	if werr != nil {
		return false, werr
	}
	return IsLocked(manualLock, window, s.now()), nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
