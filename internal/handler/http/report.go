package http

import (
	"net/http"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/report"
	"github.com/fieldtrack/timeclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// GetHoursReport returns payroll-ready net hours per session and employee
	GetHoursReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// GetHoursReport handles GET /reports/hours
func (h *reportHandlerImpl) GetHoursReport(w http.ResponseWriter, r *http.Request) {
	req := report.HoursReportRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.HoursReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
