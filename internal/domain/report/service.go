package report

import (
	"context"
)

// ReportService aggregates raw attendance events into payroll-ready rows and
// live dashboard figures.
type ReportService interface {
	// HoursReport builds the payroll-hours report for a day window. Events
	// whose employee or area reference cannot be resolved are skipped, not
	// errored: a dangling reference is a data-quality gap.
	HoursReport(ctx context.Context, req HoursReportRequest) (HoursReportResponse, error)

	// LiveDashboard returns per-area working/on-break counts and the live
	// total of net minutes across the active roster, as of now.
	LiveDashboard(ctx context.Context) (LiveDashboardResponse, error)
}
