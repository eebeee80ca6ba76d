package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/employee"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/report"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/workarea"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const inProgressLabel = "in progress"

type ReportServiceImpl struct {
	attendance.EventRepository
	employee.EmployeeRepository
	workarea.WorkAreaRepository
	collator *collate.Collator
}

func NewReportService(
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	workAreaRepo workarea.WorkAreaRepository,
) report.ReportService {
	return &ReportServiceImpl{
		EventRepository:    eventRepo,
		EmployeeRepository: employeeRepo,
		WorkAreaRepository: workAreaRepo,
		collator:           collate.New(language.Und, collate.IgnoreCase),
	}
}

// HoursReport implements report.ReportService.
func (s *ReportServiceImpl) HoursReport(ctx context.Context, req report.HoursReportRequest) (report.HoursReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.HoursReportResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	window := report.DayWindow(start, end)

	events, err := s.EventRepository.ListByClockInWindow(ctx, window.Start, window.End)
	if err != nil {
		return report.HoursReportResponse{}, fmt.Errorf("failed to load events for report: %w", err)
	}

	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return report.HoursReportResponse{}, fmt.Errorf("failed to load employees: %w", err)
	}

	areas, err := s.WorkAreaRepository.List(ctx)
	if err != nil {
		return report.HoursReportResponse{}, fmt.Errorf("failed to load work areas: %w", err)
	}

	rows, totals := s.buildRows(events, employees, areas, window, time.Now().UTC())

	return report.HoursReportResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Rows:      rows,
		Totals:    totals,
	}, nil
}

// buildRows resolves each event into a display-ready row. Events with a
// dangling employee or area reference are skipped: a data-quality gap, not a
// fatal error. Rows come out ordered by employee name (collated), then
// clock-in time. Totals cover closed sessions only; open ones are counted
// separately so payroll never pays for a shift still running.
func (s *ReportServiceImpl) buildRows(
	events []attendance.Event,
	employees []employee.Employee,
	areas []workarea.WorkArea,
	window report.Window,
	asOf time.Time,
) ([]report.Row, []report.EmployeeTotal) {
	employeesByID := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		employeesByID[emp.ID] = emp
	}
	areasByID := make(map[string]workarea.WorkArea, len(areas))
	for _, area := range areas {
		areasByID[area.ID] = area
	}

	rows := make([]report.Row, 0, len(events))
	closedByEmployee := make(map[string][]attendance.Event)
	openByEmployee := make(map[string]int)

	for _, event := range events {
		if !window.Contains(event.ClockIn) {
			continue
		}

		emp, ok := employeesByID[event.EmployeeID]
		if !ok {
			continue
		}
		area, ok := areasByID[event.WorkAreaID]
		if !ok {
			continue
		}

		row := report.Row{
			EventID:      event.ID,
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			WorkAreaID:   area.ID,
			WorkAreaName: area.Name,
			Date:         event.ClockIn.UTC().Format("2006-01-02"),
			ClockInTime:  event.ClockIn.UTC().Format(time.RFC3339),
			PauseAnomaly: event.CompletedPauseCount() > 1,
		}
		if event.PauseSkipReason != nil {
			reason := string(*event.PauseSkipReason)
			row.PauseSkipReason = &reason
		}

		if event.ClockOut == nil {
			row.InProgress = true
			row.NetTime = inProgressLabel
			openByEmployee[emp.ID]++
		} else {
			out := event.ClockOut.UTC().Format(time.RFC3339)
			row.ClockOutTime = &out
			minutes := event.NetMinutes(asOf)
			row.NetMinutes = &minutes
			row.NetTime = attendance.FormatMinutes(minutes)
			closedByEmployee[emp.ID] = append(closedByEmployee[emp.ID], event)
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := s.collator.CompareString(rows[i].EmployeeName, rows[j].EmployeeName); c != 0 {
			return c < 0
		}
		return rows[i].ClockInTime < rows[j].ClockInTime
	})

	totals := make([]report.EmployeeTotal, 0, len(closedByEmployee))
	seen := make(map[string]bool)
	for _, row := range rows {
		if seen[row.EmployeeID] {
			continue
		}
		seen[row.EmployeeID] = true

		minutes := attendance.TotalNetMinutes(closedByEmployee[row.EmployeeID], asOf)
		totals = append(totals, report.EmployeeTotal{
			EmployeeID:   row.EmployeeID,
			EmployeeName: row.EmployeeName,
			NetMinutes:   minutes,
			NetTime:      attendance.FormatMinutes(minutes),
			OpenSessions: openByEmployee[row.EmployeeID],
		})
	}

	return rows, totals
}

// LiveDashboard implements report.ReportService.
func (s *ReportServiceImpl) LiveDashboard(ctx context.Context) (report.LiveDashboardResponse, error) {
	now := time.Now().UTC()

	open, err := s.EventRepository.ListOpen(ctx)
	if err != nil {
		return report.LiveDashboardResponse{}, fmt.Errorf("failed to load open sessions: %w", err)
	}

	areas, err := s.WorkAreaRepository.List(ctx)
	if err != nil {
		return report.LiveDashboardResponse{}, fmt.Errorf("failed to load work areas: %w", err)
	}

	presence := make(map[string]*report.AreaPresence, len(areas))
	for _, area := range areas {
		presence[area.ID] = &report.AreaPresence{WorkAreaID: area.ID, WorkAreaName: area.Name}
	}

	totalWorking := 0
	totalOnBreak := 0
	for i := range open {
		event := &open[i]
		ap, ok := presence[event.WorkAreaID]
		if !ok {
			// Dangling area reference; still counted in the roster totals.
			ap = nil
		}
		switch event.Presence() {
		case attendance.PresenceOnBreak:
			totalOnBreak++
			if ap != nil {
				ap.OnBreak++
			}
		case attendance.PresenceWorking:
			totalWorking++
			if ap != nil {
				ap.Working++
			}
		}
	}

	liveMinutes := attendance.TotalNetMinutes(open, now)

	areaList := make([]report.AreaPresence, 0, len(areas))
	for _, area := range areas {
		areaList = append(areaList, *presence[area.ID])
	}

	return report.LiveDashboardResponse{
		AsOf:            now.Format(time.RFC3339),
		Areas:           areaList,
		TotalWorking:    totalWorking,
		TotalOnBreak:    totalOnBreak,
		LiveNetMinutes:  liveMinutes,
		LiveNetTime:     attendance.FormatMinutes(liveMinutes),
		OpenSessionsNum: len(open),
	}, nil
}
