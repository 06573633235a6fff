package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/repository"
)

// ── export module business errors ──

var (
	ErrExportNoShifts     = errors.New("no shifts to export")
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

// ExportService builds downloadable artifacts. Files are returned as a
// buffer plus a suggested filename; the handler sets the response headers.
type ExportService interface {
	// ExportSchedule renders a week schedule as an Excel workbook,
	// one row per location, one column per day.
	ExportSchedule(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error)
	// ExportEmployeeCalendar renders an employee's shifts in a date range
	// as an iCalendar feed.
	ExportEmployeeCalendar(ctx context.Context, employeeID, startDate, endDate string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportSchedule ──────────────────────

func (s *exportService) ExportSchedule(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrScheduleNotFound
		}
		s.logger.Error("failed to load schedule", zap.String("id", scheduleID), zap.Error(err))
		return nil, "", err
	}
	if len(schedule.Shifts) == 0 {
		return nil, "", ErrExportNoShifts
	}

	// index cell text by (location, date), collect locations and days
	cellIndex := make(map[string][]string)
	locationSeen := make(map[string]bool)
	var locations []string
	for i := range schedule.Shifts {
		shift := &schedule.Shifts[i]
		if shift.Status == "cancelled" {
			continue
		}
		name := "unassigned"
		if shift.Employee != nil {
			name = shift.Employee.FullName()
		}
		text := fmt.Sprintf("%s %s-%s (%s)", name, shift.StartTime, shift.EndTime, shift.Role)
		key := shift.Location + "|" + shift.Date.Format(dateLayout)
		cellIndex[key] = append(cellIndex[key], text)
		if !locationSeen[shift.Location] {
			locationSeen[shift.Location] = true
			locations = append(locations, shift.Location)
		}
	}
	sort.Strings(locations)

	var days []time.Time
	for d := schedule.WeekStartDate; !d.After(schedule.WeekEndDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schedule"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 18)
	for i := range days {
		col := exportColName(1 + i)
		f.SetColWidth(sheetName, col, col, 30)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	title := fmt.Sprintf("%s (%s to %s)",
		schedule.Title,
		schedule.WeekStartDate.Format(dateLayout),
		schedule.WeekEndDate.Format(dateLayout))
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", exportCell(exportColName(len(days)), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, exportCell("A", row), "Location")
	for i, day := range days {
		f.SetCellValue(sheetName, exportCell(exportColName(1+i), row),
			fmt.Sprintf("%s %s", weekdayName(day), day.Format("01-02")))
	}

	row = 3
	for _, location := range locations {
		f.SetCellValue(sheetName, exportCell("A", row), location)
		for i, day := range days {
			key := location + "|" + day.Format(dateLayout)
			entries := cellIndex[key]
			sort.Strings(entries)
			text := "-"
			if len(entries) > 0 {
				text = entries[0]
				for _, e := range entries[1:] {
					text += "\n" + e
				}
			}
			f.SetCellValue(sheetName, exportCell(exportColName(1+i), row), text)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write workbook", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s.xlsx", schedule.WeekStartDate.Format(dateLayout))
	return buf, filename, nil
}

// ────────────────────── ExportEmployeeCalendar ──────────────────────

func (s *exportService) ExportEmployeeCalendar(ctx context.Context, employeeID, startDate, endDate string) (*bytes.Buffer, string, error) {
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrEmployeeNotFound
		}
		return nil, "", err
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, "", ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil || end.Before(start) {
		return nil, "", ErrInvalidDateRange
	}

	shifts, err := s.repo.Shift.ListAll(ctx, repository.ShiftFilter{
		EmployeeID: employeeID,
		DateFrom:   &start,
		DateTo:     &end,
	})
	if err != nil {
		s.logger.Error("failed to list shifts", zap.Error(err))
		return nil, "", err
	}
	if len(shifts) == 0 {
		return nil, "", ErrExportNoShifts
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//employee-schedule//EN")

	for i := range shifts {
		shift := &shifts[i]
		if shift.Status == "cancelled" {
			continue
		}
		event := cal.AddEvent(shift.ShiftID + "@employee-schedule")
		event.SetCreatedTime(shift.CreatedAt)
		event.SetDtStampTime(shift.UpdatedAt)
		event.SetStartAt(shiftClock(shift.Date, shift.StartTime))
		event.SetEndAt(shiftClock(shift.Date, shift.EndTime))
		event.SetSummary(fmt.Sprintf("%s shift (%s)", shift.ShiftType, shift.Role))
		event.SetLocation(shift.Location)
		if shift.Notes != "" {
			event.SetDescription(shift.Notes)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("shifts_%s_%s.ics", employee.Code, startDate)
	return buf, filename, nil
}

// ── helpers ──

// shiftClock combines a calendar date with an HH:MM wall clock.
func shiftClock(date time.Time, hhmm string) time.Time {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location())
}

func exportColName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func exportCell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
