package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
	"github.com/Rakibhasaniu/employee-schedule/internal/model"
)

func setupTestShiftService() (ShiftService, *testRepos) {
	repos := newTestRepos()
	svc := NewShiftService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestCreateShift_Success(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()
	emp := seedEmployee(repos, "Alice", "Lee")

	resp, err := svc.Create(ctx, &dto.CreateShiftRequest{
		EmployeeID:    emp.EmployeeID,
		Date:          "2026-01-05",
		StartTime:     "09:00",
		EndTime:       "17:00",
		ShiftType:     "morning",
		Location:      "Front Desk",
		Department:    "Operations",
		Role:          "Cashier",
		BreakDuration: 30,
	}, "mgr-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if resp.Status != "scheduled" {
		t.Errorf("status = %q, want scheduled", resp.Status)
	}
	if resp.DurationHours != 7.5 {
		t.Errorf("DurationHours = %v, want 7.5", resp.DurationHours)
	}
	if resp.EmployeeName != "Alice Lee" {
		t.Errorf("EmployeeName = %q, want Alice Lee", resp.EmployeeName)
	}
}

func TestCreateShift_Validation(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()
	emp := seedEmployee(repos, "Alice", "Lee")

	base := dto.CreateShiftRequest{
		EmployeeID: emp.EmployeeID,
		Date:       "2026-01-05",
		StartTime:  "09:00",
		EndTime:    "17:00",
		ShiftType:  "morning",
		Location:   "Front Desk",
		Role:       "Cashier",
	}

	badTime := base
	badTime.StartTime, badTime.EndTime = "17:00", "09:00"
	if _, err := svc.Create(ctx, &badTime, "mgr-1"); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("expected ErrInvalidTimeRange, got %v", err)
	}

	badDate := base
	badDate.Date = "05/01/2026"
	if _, err := svc.Create(ctx, &badDate, "mgr-1"); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}

	missing := base
	missing.EmployeeID = "missing"
	if _, err := svc.Create(ctx, &missing, "mgr-1"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestCreateShift_AvailabilityConflict(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()

	narrow := &model.Employee{
		FirstName:    "Nina",
		LastName:     "Park",
		Email:        "nina.park@example.com",
		Department:   "Operations",
		Status:       "active",
		Availability: weekdayAvailability("09:00", "12:00"),
	}
	repos.employee.Create(ctx, narrow)

	_, err := svc.Create(ctx, &dto.CreateShiftRequest{
		EmployeeID: narrow.EmployeeID,
		Date:       "2026-01-05",
		StartTime:  "09:00",
		EndTime:    "17:00",
		ShiftType:  "morning",
		Location:   "Front Desk",
		Role:       "Cashier",
	}, "mgr-1")
	if !errors.Is(err, ErrShiftConflict) {
		t.Fatalf("expected ErrShiftConflict, got %v", err)
	}

	var details *ConflictDetailsError
	if !errors.As(err, &details) {
		t.Fatalf("expected ConflictDetailsError, got %T", err)
	}
	want := "Nina Park's shift 09:00-17:00 is outside the monday availability window 09:00-12:00"
	if details.Descriptions()[0] != want {
		t.Errorf("description = %q, want %q", details.Descriptions()[0], want)
	}
}

func TestUpdateShift_ExcludesOwnOverlap(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()
	emp := seedEmployee(repos, "Alice", "Lee")

	created, err := svc.Create(ctx, &dto.CreateShiftRequest{
		EmployeeID: emp.EmployeeID,
		Date:       "2026-01-05",
		StartTime:  "09:00",
		EndTime:    "17:00",
		ShiftType:  "morning",
		Location:   "Front Desk",
		Role:       "Cashier",
	}, "mgr-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// extending the same shift must not conflict with itself
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateShiftRequest{
		EndTime: strPtr("18:00"),
	}, "mgr-1")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.EndTime != "18:00" {
		t.Errorf("EndTime = %q, want 18:00", updated.EndTime)
	}
}

func TestUpdateShift_Guards(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()
	emp := seedEmployee(repos, "Alice", "Lee")

	completed := &model.Shift{
		EmployeeID: &emp.EmployeeID,
		Date:       mustDate("2026-01-05"),
		StartTime:  "09:00",
		EndTime:    "17:00",
		Status:     "completed",
	}
	repos.shift.Create(ctx, completed)
	if _, err := svc.Update(ctx, completed.ShiftID, &dto.UpdateShiftRequest{}, "mgr-1"); !errors.Is(err, ErrShiftCompleted) {
		t.Errorf("expected ErrShiftCompleted, got %v", err)
	}

	published := &model.Schedule{
		Title:         "Published week",
		WeekStartDate: mustDate("2026-01-05"),
		WeekEndDate:   mustDate("2026-01-11"),
		Status:        "published",
	}
	repos.schedule.Create(ctx, published)

	locked := &model.Shift{
		ScheduleID: &published.ScheduleID,
		EmployeeID: &emp.EmployeeID,
		Date:       mustDate("2026-01-06"),
		StartTime:  "09:00",
		EndTime:    "17:00",
		Status:     "scheduled",
	}
	repos.shift.Create(ctx, locked)
	if _, err := svc.Update(ctx, locked.ShiftID, &dto.UpdateShiftRequest{}, "mgr-1"); !errors.Is(err, ErrScheduleNotDraft) {
		t.Errorf("expected ErrScheduleNotDraft, got %v", err)
	}
	if err := svc.Delete(ctx, locked.ShiftID, "mgr-1"); !errors.Is(err, ErrScheduleNotDraft) {
		t.Errorf("expected ErrScheduleNotDraft on delete, got %v", err)
	}

	if _, err := svc.Update(ctx, "missing", &dto.UpdateShiftRequest{}, "mgr-1"); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("expected ErrShiftNotFound, got %v", err)
	}
}

func TestUpdateShift_AssigningActivatesUnassigned(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()
	emp := seedEmployee(repos, "Alice", "Lee")

	open := &model.Shift{
		Date:      mustDate("2026-01-05"),
		StartTime: "09:00",
		EndTime:   "17:00",
		Status:    "unassigned",
		Location:  "Front Desk",
	}
	repos.shift.Create(ctx, open)

	updated, err := svc.Update(ctx, open.ShiftID, &dto.UpdateShiftRequest{
		EmployeeID: &emp.EmployeeID,
	}, "mgr-1")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != "scheduled" {
		t.Errorf("status = %q, want scheduled after assignment", updated.Status)
	}
	if updated.EmployeeID == nil || *updated.EmployeeID != emp.EmployeeID {
		t.Errorf("employee not assigned: %+v", updated.EmployeeID)
	}
}

func TestUpdateShift_CancelSkipsConflictGate(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()
	emp := seedEmployee(repos, "Alice", "Lee")

	first := &model.Shift{
		EmployeeID: &emp.EmployeeID,
		Date:       mustDate("2026-01-05"),
		StartTime:  "09:00",
		EndTime:    "17:00",
		Status:     "scheduled",
	}
	second := &model.Shift{
		EmployeeID: &emp.EmployeeID,
		Date:       mustDate("2026-01-05"),
		StartTime:  "15:00",
		EndTime:    "21:00",
		Status:     "scheduled",
	}
	repos.shift.Create(ctx, first)
	repos.shift.Create(ctx, second)

	// cancelling an overlapping shift must not be blocked by the overlap
	updated, err := svc.Update(ctx, second.ShiftID, &dto.UpdateShiftRequest{
		Status: strPtr("cancelled"),
	}, "mgr-1")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != "cancelled" {
		t.Errorf("status = %q, want cancelled", updated.Status)
	}
}

func TestDeleteShift_Guards(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()
	emp := seedEmployee(repos, "Alice", "Lee")

	for _, status := range []string{"in-progress", "completed"} {
		shift := &model.Shift{
			EmployeeID: &emp.EmployeeID,
			Date:       mustDate("2026-01-05"),
			StartTime:  "09:00",
			EndTime:    "17:00",
			Status:     status,
		}
		repos.shift.Create(ctx, shift)
		if err := svc.Delete(ctx, shift.ShiftID, "mgr-1"); !errors.Is(err, ErrShiftUndeletable) {
			t.Errorf("status %s: expected ErrShiftUndeletable, got %v", status, err)
		}
	}

	deletable := &model.Shift{
		EmployeeID: &emp.EmployeeID,
		Date:       mustDate("2026-01-06"),
		StartTime:  "09:00",
		EndTime:    "17:00",
		Status:     "scheduled",
	}
	repos.shift.Create(ctx, deletable)
	if err := svc.Delete(ctx, deletable.ShiftID, "mgr-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, deletable.ShiftID); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("expected ErrShiftNotFound after delete, got %v", err)
	}
}

func seedAnalyticsShifts(t *testing.T, repos *testRepos) (alice, bob *model.Employee) {
	t.Helper()
	ctx := context.Background()
	alice = seedEmployee(repos, "Alice", "Lee")
	bob = seedEmployee(repos, "Bob", "Ng")

	shifts := []model.Shift{
		{EmployeeID: &alice.EmployeeID, Date: mustDate("2026-01-05"), StartTime: "09:00", EndTime: "17:00", ShiftType: "morning", Location: "Front Desk", Role: "Cashier", Status: "scheduled"},
		{EmployeeID: &alice.EmployeeID, Date: mustDate("2026-01-06"), StartTime: "09:00", EndTime: "13:00", ShiftType: "morning", Location: "Front Desk", Role: "Cashier", Status: "scheduled"},
		{EmployeeID: &bob.EmployeeID, Date: mustDate("2026-01-05"), StartTime: "13:00", EndTime: "21:00", ShiftType: "afternoon", Location: "Warehouse", Role: "Picker", Status: "scheduled"},
		{EmployeeID: &bob.EmployeeID, Date: mustDate("2026-01-05"), StartTime: "08:00", EndTime: "14:00", ShiftType: "morning", Location: "Warehouse", Role: "Picker", Status: "cancelled"},
	}
	for i := range shifts {
		if err := repos.shift.Create(ctx, &shifts[i]); err != nil {
			t.Fatalf("seed shift: %v", err)
		}
	}
	return alice, bob
}

func TestCoverageByRange(t *testing.T) {
	svc, repos := setupTestShiftService()
	seedAnalyticsShifts(t, repos)

	resp, err := svc.CoverageByRange(context.Background(), &dto.DateRangeRequest{
		StartDate: "2026-01-05",
		EndDate:   "2026-01-11",
	})
	if err != nil {
		t.Fatalf("CoverageByRange failed: %v", err)
	}

	if len(resp.Entries) != 3 {
		t.Fatalf("expected 3 coverage cells, got %d", len(resp.Entries))
	}
	// sorted by location, then date; cancelled shifts excluded
	first := resp.Entries[0]
	if first.Location != "Front Desk" || first.Date != "2026-01-05" || first.ShiftCount != 1 || first.TotalHours != 8 {
		t.Errorf("unexpected first cell: %+v", first)
	}
	if first.ByRole["Cashier"] != 1 {
		t.Errorf("unexpected role breakdown: %v", first.ByRole)
	}
	warehouse := resp.Entries[2]
	if warehouse.Location != "Warehouse" || warehouse.ShiftCount != 1 {
		t.Errorf("cancelled shift counted in coverage: %+v", warehouse)
	}
}

func TestWorkloadByEmployee(t *testing.T) {
	svc, repos := setupTestShiftService()
	alice, _ := seedAnalyticsShifts(t, repos)

	resp, err := svc.WorkloadByEmployee(context.Background(), &dto.DateRangeRequest{
		StartDate: "2026-01-05",
		EndDate:   "2026-01-10",
	})
	if err != nil {
		t.Fatalf("WorkloadByEmployee failed: %v", err)
	}

	if len(resp.Workloads) != 2 {
		t.Fatalf("expected 2 workloads, got %d", len(resp.Workloads))
	}
	// sorted by total hours descending; Alice has 12, Bob 8
	top := resp.Workloads[0]
	if top.EmployeeID != alice.EmployeeID || top.TotalHours != 12 || top.TotalShifts != 2 {
		t.Errorf("unexpected top workload: %+v", top)
	}
	if top.EmployeeName != "Alice Lee" {
		t.Errorf("EmployeeName = %q, want Alice Lee", top.EmployeeName)
	}
	if top.AvgHoursDay != 2 { // 12 hours over a 6-day range
		t.Errorf("AvgHoursDay = %v, want 2", top.AvgHoursDay)
	}
	if top.ByShiftType["morning"] != 2 {
		t.Errorf("unexpected shift type breakdown: %v", top.ByShiftType)
	}
}

func TestConflictScan(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()
	emp := seedEmployee(repos, "Alice", "Lee")

	shifts := []model.Shift{
		{EmployeeID: &emp.EmployeeID, Date: mustDate("2026-01-05"), StartTime: "09:00", EndTime: "17:00", Status: "scheduled"},
		{EmployeeID: &emp.EmployeeID, Date: mustDate("2026-01-05"), StartTime: "15:00", EndTime: "21:00", Status: "scheduled"},
		{EmployeeID: &emp.EmployeeID, Date: mustDate("2026-01-06"), StartTime: "09:00", EndTime: "17:00", Status: "scheduled"},
	}
	for i := range shifts {
		repos.shift.Create(ctx, &shifts[i])
	}

	resp, err := svc.ConflictScan(ctx, &dto.DateRangeRequest{
		StartDate: "2026-01-05",
		EndDate:   "2026-01-11",
	})
	if err != nil {
		t.Fatalf("ConflictScan failed: %v", err)
	}

	if len(resp.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(resp.Conflicts))
	}
	c := resp.Conflicts[0]
	if c.EmployeeID != emp.EmployeeID || c.Date != "2026-01-05" {
		t.Errorf("unexpected conflict: %+v", c)
	}
	if c.Description != "overlapping shifts 09:00-17:00 and 15:00-21:00" {
		t.Errorf("unexpected description: %q", c.Description)
	}
}

func TestAnalytics_InvalidRange(t *testing.T) {
	svc, _ := setupTestShiftService()
	ctx := context.Background()

	req := &dto.DateRangeRequest{StartDate: "2026-01-11", EndDate: "2026-01-05"}
	if _, err := svc.CoverageByRange(ctx, req); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
	if _, err := svc.WorkloadByEmployee(ctx, req); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestListByEmployee(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()
	alice, _ := seedAnalyticsShifts(t, repos)

	resps, total, err := svc.ListByEmployee(ctx, alice.EmployeeID, &dto.ShiftListRequest{})
	if err != nil {
		t.Fatalf("ListByEmployee failed: %v", err)
	}
	if total != 2 || len(resps) != 2 {
		t.Errorf("expected 2 shifts for alice, got total=%d len=%d", total, len(resps))
	}

	if _, _, err := svc.ListByEmployee(ctx, "missing", &dto.ShiftListRequest{}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}
