package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Rakibhasaniu/employee-schedule/internal/model"
)

// Pure scheduling math shared by the schedule, shift and template services.
// Times are zero-padded HH:MM strings, so lexicographic comparison is
// chronological.

const dateLayout = "2006-01-02"

// Conflict types stored on schedules.
const (
	conflictOverlap     = "overlap"
	conflictUnavailable = "unavailable"
)

// timeOverlap reports whether two same-day [start,end) ranges intersect.
// Adjacent shifts (end1 == start2) do not overlap.
func timeOverlap(start1, end1, start2, end2 string) bool {
	return start1 < end2 && end1 > start2
}

// minutesOfDay converts HH:MM to minutes since midnight.
func minutesOfDay(t string) int {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// shiftDuration returns a shift's paid hours: wall-clock span minus break
// minutes, floored at zero.
func shiftDuration(startTime, endTime string, breakMinutes int) float64 {
	minutes := minutesOfDay(endTime) - minutesOfDay(startTime) - breakMinutes
	if minutes < 0 {
		minutes = 0
	}
	return float64(minutes) / 60
}

// weekdayName returns the lowercase weekday key used by WeeklyAvailability.
func weekdayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// availabilityViolation checks a shift window against the employee's weekly
// availability for the shift date. Returns a human-readable reason, or ""
// when the window fits.
func availabilityViolation(employee *model.Employee, date time.Time, startTime, endTime string) string {
	day, ok := employee.Availability.ForDate(date)
	weekday := weekdayName(date)
	if !ok || !day.Available {
		return fmt.Sprintf("%s is not available on %s", employee.FullName(), weekday)
	}
	if startTime < day.Start || endTime > day.End {
		return fmt.Sprintf("%s's shift %s-%s is outside the %s availability window %s-%s",
			employee.FullName(), startTime, endTime, weekday, day.Start, day.End)
	}
	return ""
}

// coversDate reports whether a leave request's inclusive span contains date.
func coversDate(request *model.TimeOffRequest, date time.Time) bool {
	return !date.Before(request.StartDate) && !date.After(request.EndDate)
}

// inclusiveDays counts the calendar days in [start, end], both ends
// included.
func inclusiveDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// ── coverage engine ──

// computeCoverage derives the coverage rows for a schedule's shift set.
// Declared rows keep their staffing requirements; locations present in
// shifts but undeclared are synthesized with requiredStaff=1 and 100%
// coverage while any shift exists.
func computeCoverage(declared []model.CoverageEntry, shifts []model.Shift) []model.CoverageEntry {
	byLocation := make(map[string][]model.Shift)
	for _, s := range shifts {
		byLocation[s.Location] = append(byLocation[s.Location], s)
	}

	out := make([]model.CoverageEntry, 0, len(declared))
	seen := make(map[string]bool, len(declared))
	for _, req := range declared {
		group := byLocation[req.Location]
		entry := model.CoverageEntry{
			Location:      req.Location,
			RequiredStaff: req.RequiredStaff,
			AssignedStaff: len(group),
			ShiftIDs:      shiftIDs(group),
			Declared:      true,
		}
		if req.RequiredStaff > 0 {
			entry.CoveragePercentage = int(math.Round(float64(len(group)) / float64(req.RequiredStaff) * 100))
		}
		out = append(out, entry)
		seen[req.Location] = true
	}

	extra := make([]string, 0)
	for loc := range byLocation {
		if !seen[loc] {
			extra = append(extra, loc)
		}
	}
	sort.Strings(extra)
	for _, loc := range extra {
		group := byLocation[loc]
		entry := model.CoverageEntry{
			Location:      loc,
			RequiredStaff: 1,
			AssignedStaff: len(group),
			ShiftIDs:      shiftIDs(group),
		}
		if len(group) > 0 {
			entry.CoveragePercentage = 100
		}
		out = append(out, entry)
	}
	return out
}

func shiftIDs(shifts []model.Shift) model.StringArray {
	ids := make(model.StringArray, 0, len(shifts))
	for _, s := range shifts {
		ids = append(ids, s.ShiftID)
	}
	return ids
}

// ── conflict detector ──

// detectShiftConflicts validates one candidate shift against the employee's
// existing shifts on the same date, their weekly availability, and approved
// leave. Pass excludeShiftID to skip the candidate itself on update.
func detectShiftConflicts(
	candidate *model.Shift,
	employee *model.Employee,
	sameDateShifts []model.Shift,
	approvedLeave []model.TimeOffRequest,
	excludeShiftID string,
) []model.Conflict {
	var conflicts []model.Conflict
	if candidate.EmployeeID == nil {
		return nil
	}
	date := candidate.Date.Format(dateLayout)

	if reason := availabilityViolation(employee, candidate.Date, candidate.StartTime, candidate.EndTime); reason != "" {
		conflicts = append(conflicts, model.Conflict{
			Type:         conflictUnavailable,
			EmployeeID:   employee.EmployeeID,
			EmployeeName: employee.FullName(),
			Description:  reason,
			ShiftIDs:     model.StringArray{candidate.ShiftID},
		})
	}

	for _, leave := range approvedLeave {
		if coversDate(&leave, candidate.Date) {
			conflicts = append(conflicts, model.Conflict{
				Type:         conflictUnavailable,
				EmployeeID:   employee.EmployeeID,
				EmployeeName: employee.FullName(),
				Description: fmt.Sprintf("%s has approved %s leave covering %s",
					employee.FullName(), leave.Type, date),
				ShiftIDs: model.StringArray{candidate.ShiftID},
			})
			break
		}
	}

	for _, other := range sameDateShifts {
		if other.ShiftID == excludeShiftID || other.ShiftID == candidate.ShiftID {
			continue
		}
		if other.Status == "cancelled" {
			continue
		}
		if timeOverlap(candidate.StartTime, candidate.EndTime, other.StartTime, other.EndTime) {
			conflicts = append(conflicts, model.Conflict{
				Type:         conflictOverlap,
				EmployeeID:   employee.EmployeeID,
				EmployeeName: employee.FullName(),
				Description: fmt.Sprintf("%s has overlapping shifts on %s (%s-%s and %s-%s)",
					employee.FullName(), date,
					candidate.StartTime, candidate.EndTime, other.StartTime, other.EndTime),
				ShiftIDs: model.StringArray{candidate.ShiftID, other.ShiftID},
			})
		}
	}
	return conflicts
}

// detectScheduleConflicts runs the pairwise check over a whole shift set.
// Shifts are grouped per employee, then compared per date; each shift is
// also checked against availability and approved leave.
func detectScheduleConflicts(
	shifts []model.Shift,
	employees map[string]*model.Employee,
	approvedLeave map[string][]model.TimeOffRequest,
) []model.Conflict {
	byEmployee := make(map[string][]model.Shift)
	for _, s := range shifts {
		if s.EmployeeID == nil || s.Status == "cancelled" {
			continue
		}
		byEmployee[*s.EmployeeID] = append(byEmployee[*s.EmployeeID], s)
	}

	employeeIDs := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	var conflicts []model.Conflict
	for _, empID := range employeeIDs {
		employee := employees[empID]
		if employee == nil {
			continue
		}
		group := byEmployee[empID]

		for i := range group {
			date := group[i].Date.Format(dateLayout)

			if reason := availabilityViolation(employee, group[i].Date, group[i].StartTime, group[i].EndTime); reason != "" {
				conflicts = append(conflicts, model.Conflict{
					Type:         conflictUnavailable,
					EmployeeID:   empID,
					EmployeeName: employee.FullName(),
					Description:  reason,
					ShiftIDs:     model.StringArray{group[i].ShiftID},
				})
			}

			for _, leave := range approvedLeave[empID] {
				if coversDate(&leave, group[i].Date) {
					conflicts = append(conflicts, model.Conflict{
						Type:         conflictUnavailable,
						EmployeeID:   empID,
						EmployeeName: employee.FullName(),
						Description: fmt.Sprintf("%s has approved %s leave covering %s",
							employee.FullName(), leave.Type, date),
						ShiftIDs: model.StringArray{group[i].ShiftID},
					})
					break
				}
			}

			for j := i + 1; j < len(group); j++ {
				if !group[i].Date.Equal(group[j].Date) {
					continue
				}
				if timeOverlap(group[i].StartTime, group[i].EndTime, group[j].StartTime, group[j].EndTime) {
					conflicts = append(conflicts, model.Conflict{
						Type:         conflictOverlap,
						EmployeeID:   empID,
						EmployeeName: employee.FullName(),
						Description: fmt.Sprintf("%s has overlapping shifts on %s (%s-%s and %s-%s)",
							employee.FullName(), date,
							group[i].StartTime, group[i].EndTime, group[j].StartTime, group[j].EndTime),
						ShiftIDs: model.StringArray{group[i].ShiftID, group[j].ShiftID},
					})
				}
			}
		}
	}
	return conflicts
}

// conflictKey identifies a conflict across recomputes so resolution state
// survives when the same conflict is re-detected.
func conflictKey(c *model.Conflict) string {
	ids := append([]string(nil), c.ShiftIDs...)
	sort.Strings(ids)
	return c.Type + "|" + c.EmployeeID + "|" + strings.Join(ids, ",")
}

// carryResolutions copies Resolved state from the previous conflict set onto
// re-detected conflicts with the same identity.
func carryResolutions(previous, detected []model.Conflict) []model.Conflict {
	resolved := make(map[string]*model.Conflict, len(previous))
	for i := range previous {
		if previous[i].Resolved {
			resolved[conflictKey(&previous[i])] = &previous[i]
		}
	}
	for i := range detected {
		if prev, ok := resolved[conflictKey(&detected[i])]; ok {
			detected[i].Resolved = true
			detected[i].ResolvedBy = prev.ResolvedBy
			detected[i].ResolvedAt = prev.ResolvedAt
		}
	}
	return detected
}

// scheduleTotals derives totalEmployees and totalHours from the shift set.
func scheduleTotals(shifts []model.Shift) (int, float64) {
	employees := make(map[string]bool)
	var hours float64
	for _, s := range shifts {
		if s.Status == "cancelled" {
			continue
		}
		if s.EmployeeID != nil {
			employees[*s.EmployeeID] = true
		}
		hours += shiftDuration(s.StartTime, s.EndTime, s.BreakDuration)
	}
	return len(employees), hours
}
