package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"capstone-tracker-api/models"
)

func TestCreateRequestValidation(t *testing.T) {
	svc := NewRequestService(nil)

	cases := []struct {
		name string
		in   CreateRequestInput
	}{
		{
			name: "unknown faculty type",
			in:   CreateRequestInput{FacultyType: "mentor", ReviewType: "review1", Reason: "late"},
		},
		{
			name: "panel review type on guide request",
			in:   CreateRequestInput{FacultyType: models.FacultyTypeGuide, ReviewType: "review2", Reason: "late"},
		},
		{
			name: "guide review type on panel request",
			in:   CreateRequestInput{FacultyType: models.FacultyTypePanel, ReviewType: "review0", Reason: "late"},
		},
		{
			name: "blank reason",
			in:   CreateRequestInput{FacultyType: models.FacultyTypeGuide, ReviewType: "review1", Reason: "   "},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRequest(tc.in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if AsError(err).Kind != KindValidation {
				t.Fatalf("expected validation error, got kind %v", AsError(err).Kind)
			}
		})
	}
}

func TestResolveValidation(t *testing.T) {
	svc := NewRequestService(nil)
	deadline := time.Now().Add(48 * time.Hour)

	if _, err := svc.Resolve(1, "pending", &deadline); err == nil {
		t.Fatal("expected error for non-terminal status")
	} else if AsError(err).Kind != KindValidation {
		t.Fatalf("expected validation error, got kind %v", AsError(err).Kind)
	}

	if _, err := svc.Resolve(1, models.RequestStatusApproved, nil); err == nil {
		t.Fatal("expected error for approval without a new deadline")
	} else if AsError(err).Kind != KindValidation {
		t.Fatalf("expected validation error, got kind %v", AsError(err).Kind)
	}
}

func TestResolveAlreadyResolvedConflicts(t *testing.T) {
	resolvedAt := mustTime(t, "2026-01-10T12:00:00Z")
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `edit_requests` WHERE request_id = "),
			columns: []string{"request_id", "faculty_type", "review_type", "student_id", "faculty_id", "reason", "status", "created_at", "resolved_at"},
			rows: [][]driver.Value{{
				int64(7), "guide", "review1", int64(3), int64(2),
				"missed the window", models.RequestStatusApproved,
				resolvedAt.Add(-24 * time.Hour), resolvedAt,
			}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRequestService(db)
	_, err := svc.Resolve(7, models.RequestStatusRejected, nil)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if AsError(err).Kind != KindConflict {
		t.Fatalf("expected conflict error, got kind %v", AsError(err).Kind)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolveRejectedLeavesStudentUntouched(t *testing.T) {
	created := mustTime(t, "2026-01-05T09:00:00Z")
	now := mustTime(t, "2026-01-10T12:00:00Z")

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `edit_requests` WHERE request_id = "),
			columns: []string{"request_id", "faculty_type", "review_type", "student_id", "faculty_id", "reason", "status", "created_at", "resolved_at"},
			rows: [][]driver.Value{{
				int64(7), "guide", "review1", int64(3), int64(2),
				"missed the window", models.RequestStatusPending, created, nil,
			}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `students` WHERE student_id = "),
			columns: []string{"student_id", "reg_no", "name"},
			rows:    [][]driver.Value{{int64(3), "CS2026-014", "Meera"}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `edit_requests` SET "),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRequestService(db)
	svc.now = func() time.Time { return now }

	request, err := svc.Resolve(7, models.RequestStatusRejected, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if request.Status != models.RequestStatusRejected {
		t.Fatalf("status = %q, want rejected", request.Status)
	}
	if request.ResolvedAt == nil || !request.ResolvedAt.Equal(now) {
		t.Fatalf("resolved_at = %v, want %v", request.ResolvedAt, now)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQueryStatusUnresolvedWinsOverLatestResolution(t *testing.T) {
	created := mustTime(t, "2026-01-05T09:00:00Z")
	resolved := mustTime(t, "2026-01-06T09:00:00Z")

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `students` WHERE reg_no = "),
			columns: []string{"student_id", "reg_no", "name"},
			rows:    [][]driver.Value{{int64(3), "CS2026-014", "Meera"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `edit_requests` WHERE faculty_type = "),
			columns: []string{"request_id", "status", "created_at", "resolved_at"},
			rows: [][]driver.Value{
				{int64(9), models.RequestStatusApproved, created.Add(time.Hour), resolved},
				{int64(8), models.RequestStatusPending, created, nil},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRequestService(db)
	status, err := svc.QueryStatus("guide", "CS2026-014", "review1")
	if err != nil {
		t.Fatalf("QueryStatus returned error: %v", err)
	}
	if status != models.RequestStatusPending {
		t.Fatalf("status = %q, want pending", status)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQueryStatusNoneWhenNeverFiled(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `students` WHERE reg_no = "),
			columns: []string{"student_id", "reg_no", "name"},
			rows:    [][]driver.Value{{int64(3), "CS2026-014", "Meera"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `edit_requests` WHERE faculty_type = "),
			columns: []string{"request_id", "status", "created_at", "resolved_at"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRequestService(db)
	status, err := svc.QueryStatus("guide", "CS2026-014", "review1")
	if err != nil {
		t.Fatalf("QueryStatus returned error: %v", err)
	}
	if status != "none" {
		t.Fatalf("status = %q, want none", status)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolveApprovedUnlocksAndOpensWindow(t *testing.T) {
	created := mustTime(t, "2026-01-05T09:00:00Z")
	oldFrom := mustTime(t, "2026-01-01T00:00:00Z")
	oldTo := mustTime(t, "2026-01-31T00:00:00Z")
	now := mustTime(t, "2026-02-01T10:00:00Z")
	deadline := mustTime(t, "2026-02-15T00:00:00Z")

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `edit_requests` WHERE request_id = "),
			columns: []string{"request_id", "faculty_type", "review_type", "student_id", "faculty_id", "reason", "status", "created_at", "resolved_at"},
			rows: [][]driver.Value{{
				int64(7), "guide", "review1", int64(3), int64(2),
				"missed the window", models.RequestStatusPending, created, nil,
			}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `students` WHERE student_id = "),
			columns: []string{"student_id", "reg_no", "name"},
			rows:    [][]driver.Value{{int64(3), "CS2026-014", "Meera"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `student_reviews` WHERE student_id = "),
			columns: []string{"review_id", "student_id", "review_type", "locked", "create_at", "update_at"},
			rows:    [][]driver.Value{{int64(11), int64(3), "review1", true, created, created}},
		},
		{
			// Unlock: every review column rides along, locked flips to false.
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `student_reviews` SET "),
			args: []driver.Value{
				int64(3), "review1", nil, nil, nil, nil, nil, false,
				created, now, nil, int64(11),
			},
			result: scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `student_deadlines` WHERE student_id = "),
			columns: []string{"deadline_id", "student_id", "review_type", "window_from", "window_to", "update_at"},
			rows:    [][]driver.Value{{int64(21), int64(3), "review1", oldFrom, oldTo, created}},
		},
		{
			// The fresh window is exactly {from: now, to: newDeadline}.
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `student_deadlines` SET "),
			args:    []driver.Value{int64(3), "review1", now, deadline, now, int64(21)},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `edit_requests` SET "),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRequestService(db)
	svc.now = func() time.Time { return now }

	request, err := svc.Resolve(7, models.RequestStatusApproved, &deadline)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if request.Status != models.RequestStatusApproved {
		t.Fatalf("status = %q, want approved", request.Status)
	}
	if request.ResolvedAt == nil || !request.ResolvedAt.Equal(now) {
		t.Fatalf("resolved_at = %v, want %v", request.ResolvedAt, now)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolveApprovedReseedsWholeDeadlineMap(t *testing.T) {
	created := mustTime(t, "2026-01-05T09:00:00Z")
	def1From := mustTime(t, "2026-01-01T00:00:00Z")
	def1To := mustTime(t, "2026-01-31T00:00:00Z")
	def2From := mustTime(t, "2026-03-01T00:00:00Z")
	def2To := mustTime(t, "2026-03-31T00:00:00Z")
	customFrom := mustTime(t, "2026-04-01T00:00:00Z")
	customTo := mustTime(t, "2026-04-30T00:00:00Z")
	now := mustTime(t, "2026-02-01T10:00:00Z")
	deadline := mustTime(t, "2026-02-15T00:00:00Z")

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `edit_requests` WHERE request_id = "),
			columns: []string{"request_id", "faculty_type", "review_type", "student_id", "faculty_id", "reason", "status", "created_at", "resolved_at"},
			rows: [][]driver.Value{{
				int64(7), "guide", "review1", int64(3), int64(2),
				"missed the window", models.RequestStatusPending, created, nil,
			}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `students` WHERE student_id = "),
			columns: []string{"student_id", "reg_no", "name"},
			rows:    [][]driver.Value{{int64(3), "CS2026-014", "Meera"}},
		},
		{
			// No review row yet: approval tolerates that and still proceeds.
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `student_reviews` WHERE student_id = "),
			columns: []string{"review_id", "student_id", "review_type", "locked"},
			rows:    [][]driver.Value{},
		},
		{
			// No window for the requested type: the whole map gets reseeded.
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `student_deadlines` WHERE student_id = "),
			columns: []string{"deadline_id", "student_id", "review_type", "window_from", "window_to", "update_at"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `default_deadlines`"),
			columns: []string{"review_type", "window_from", "window_to", "update_at"},
			rows: [][]driver.Value{
				{"review1", def1From, def1To, created},
				{"review2", def2From, def2To, created},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `student_deadlines` WHERE student_id = "),
			columns: []string{"deadline_id", "student_id", "review_type", "window_from", "window_to", "update_at"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `student_deadlines`"),
			result:  scriptedResult{lastInsertID: 31, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `student_deadlines` WHERE student_id = "),
			columns: []string{"deadline_id", "student_id", "review_type", "window_from", "window_to", "update_at"},
			rows:    [][]driver.Value{{int64(21), int64(3), "review2", customFrom, customTo, created}},
		},
		{
			// The pre-existing review2 override is overwritten with the default.
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `student_deadlines` SET "),
			args:    []driver.Value{int64(3), "review2", def2From, def2To, now, int64(21)},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `student_deadlines` WHERE student_id = "),
			columns: []string{"deadline_id", "student_id", "review_type", "window_from", "window_to", "update_at"},
			rows:    [][]driver.Value{{int64(31), int64(3), "review1", def1From, def1To, now}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `student_deadlines` SET "),
			args:    []driver.Value{int64(3), "review1", now, deadline, now, int64(31)},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `edit_requests` SET "),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRequestService(db)
	svc.now = func() time.Time { return now }

	request, err := svc.Resolve(7, models.RequestStatusApproved, &deadline)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if request.Status != models.RequestStatusApproved {
		t.Fatalf("status = %q, want approved", request.Status)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
