package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	MyReport(w http.ResponseWriter, r *http.Request)
	EmployeeReport(w http.ResponseWriter, r *http.Request)
	OrganizationReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	clock         clock.Clock
	location      *time.Location
}

func NewReportHandler(reportService report.ReportService, clk clock.Clock, loc *time.Location) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		clock:         clk,
		location:      loc,
	}
}

// MyReport implements ReportHandler.
func (h *reportHandlerImpl) MyReport(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.employeeReport(w, r, identity.EmployeeID)
}

// EmployeeReport implements ReportHandler.
func (h *reportHandlerImpl) EmployeeReport(w http.ResponseWriter, r *http.Request) {
	h.employeeReport(w, r, chi.URLParam(r, "id"))
}

func (h *reportHandlerImpl) employeeReport(w http.ResponseWriter, r *http.Request, employeeID string) {
	from, to := rangeQuery(r)
	req := report.EmployeeReportRequest{
		EmployeeID: employeeID,
		From:       from,
		To:         to,
	}

	if err := req.Validate(h.location); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GenerateEmployeeReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.NewEmployeeReportResponse(result, h.location))
}

// OrganizationReport implements ReportHandler.
func (h *reportHandlerImpl) OrganizationReport(w http.ResponseWriter, r *http.Request) {
	from, to := rangeQuery(r)
	req := report.OrganizationReportRequest{From: from, To: to}

	if err := req.Validate(h.location); err != nil {
		response.HandleError(w, err)
		return
	}

	reports, err := h.reportService.GenerateOrganizationReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.NewOrganizationReportResponse(req, reports, h.clock.Now(), h.location))
}
