package service

import (
	"context"

	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	"github.com/Rakibhasaniu/employee-schedule/internal/repository"
)

// recomputeSchedule rebuilds a schedule's derived state (coverage rows,
// conflict rows, totalEmployees, totalHours) from its current shift set.
// Runs synchronously inside the same unit of work as the shift mutation
// that triggered it.
func recomputeSchedule(ctx context.Context, repo *repository.Repository, scheduleID string) error {
	schedule, err := repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	shifts := schedule.Shifts

	employeeIDs := make([]string, 0, len(shifts))
	seen := make(map[string]bool)
	for _, shift := range shifts {
		if shift.EmployeeID != nil && !seen[*shift.EmployeeID] {
			seen[*shift.EmployeeID] = true
			employeeIDs = append(employeeIDs, *shift.EmployeeID)
		}
	}
	employeeList, err := repo.Employee.ListByIDs(ctx, employeeIDs)
	if err != nil {
		return err
	}
	employees := make(map[string]*model.Employee, len(employeeList))
	for i := range employeeList {
		employees[employeeList[i].EmployeeID] = &employeeList[i]
	}

	leaves, err := repo.TimeOff.ListApprovedInRange(ctx, schedule.WeekStartDate, schedule.WeekEndDate)
	if err != nil {
		return err
	}
	approvedLeave := make(map[string][]model.TimeOffRequest)
	for _, leave := range leaves {
		if seen[leave.EmployeeID] {
			approvedLeave[leave.EmployeeID] = append(approvedLeave[leave.EmployeeID], leave)
		}
	}

	var declared []model.CoverageEntry
	for i := range schedule.Coverage {
		if schedule.Coverage[i].Declared {
			declared = append(declared, schedule.Coverage[i])
		}
	}

	coverage := computeCoverage(declared, shifts)
	conflicts := carryResolutions(schedule.Conflicts, detectScheduleConflicts(shifts, employees, approvedLeave))

	if err := repo.Schedule.ReplaceCoverage(ctx, scheduleID, coverage); err != nil {
		return err
	}
	if err := repo.Schedule.ReplaceConflicts(ctx, scheduleID, conflicts); err != nil {
		return err
	}

	schedule.TotalEmployees, schedule.TotalHours = scheduleTotals(shifts)
	return repo.Schedule.Update(ctx, schedule)
}
