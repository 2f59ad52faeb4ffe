package report

import "context"

// ReportService aggregates ledger data into per-employee summaries
type ReportService interface {
	// GenerateEmployeeReport summarises one employee over a range
	GenerateEmployeeReport(ctx context.Context, req EmployeeReportRequest) (EmployeeReport, error)

	// GenerateOrganizationReport summarises every active employee over a
	// range, ordered by employee name
	GenerateOrganizationReport(ctx context.Context, req OrganizationReportRequest) ([]EmployeeReport, error)
}
