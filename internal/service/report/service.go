package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/report"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many employee reports are built at once.
const DefaultConcurrency = 8

type ReportServiceImpl struct {
	ledger      attendance.Ledger
	directory   employee.Directory
	loc         *time.Location
	concurrency int
}

// GenerateEmployeeReport implements report.ReportService.
func (r *ReportServiceImpl) GenerateEmployeeReport(ctx context.Context, req report.EmployeeReportRequest) (report.EmployeeReport, error) {
	if err := req.Validate(r.loc); err != nil {
		return report.EmployeeReport{}, err
	}

	from, to := attendance.ResolveRange(req.From, req.To, r.loc)
	return r.employeeReport(ctx, req.EmployeeID, from, to)
}

// GenerateOrganizationReport implements report.ReportService.
func (r *ReportServiceImpl) GenerateOrganizationReport(ctx context.Context, req report.OrganizationReportRequest) ([]report.EmployeeReport, error) {
	if err := req.Validate(r.loc); err != nil {
		return nil, err
	}

	employees, err := r.directory.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list active employees: %w", attendance.ErrStorageUnavailable, err)
	}

	from, to := attendance.ResolveRange(req.From, req.To, r.loc)

	// Slots stay nil for employees that disappear mid-run.
	results := make([]*report.EmployeeReport, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, emp := range employees {
		g.Go(func() error {
			rep, err := r.employeeReport(gctx, emp.ID, from, to)
			if err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					slog.Debug("Skipping employee missing from directory", "employee_id", emp.ID)
					return nil
				}
				return err
			}
			results[i] = &rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reports := make([]report.EmployeeReport, 0, len(results))
	for _, rep := range results {
		if rep != nil {
			reports = append(reports, *rep)
		}
	}

	slices.SortStableFunc(reports, func(a, b report.EmployeeReport) int {
		return strings.Compare(a.EmployeeName, b.EmployeeName)
	})

	slog.Info("Generated organization report", "employees", len(reports), "skipped", len(employees)-len(reports))
	return reports, nil
}

func (r *ReportServiceImpl) employeeReport(ctx context.Context, employeeID string, from, to *time.Time) (report.EmployeeReport, error) {
	active, err := r.directory.IsActiveEmployee(ctx, employeeID)
	if err != nil {
		return report.EmployeeReport{}, directoryError(err)
	}
	if !active {
		return report.EmployeeReport{}, employee.ErrEmployeeNotFound
	}

	name, err := r.directory.DisplayName(ctx, employeeID)
	if err != nil {
		return report.EmployeeReport{}, directoryError(err)
	}

	records, err := r.ledger.List(ctx, employeeID, from, to)
	if err != nil {
		return report.EmployeeReport{}, err
	}

	return Summarize(employeeID, name, records), nil
}

// Summarize aggregates records into a report. Every record counts as a day
// worked; open sessions add no duration.
func Summarize(employeeID, name string, records []attendance.Attendance) report.EmployeeReport {
	var total time.Duration
	for _, rec := range records {
		if rec.WorkDuration != nil {
			total += *rec.WorkDuration
		}
	}

	var average time.Duration
	if len(records) > 0 {
		average = total / time.Duration(len(records))
	}

	return report.EmployeeReport{
		EmployeeID:          employeeID,
		EmployeeName:        name,
		TotalDaysWorked:     len(records),
		TotalWorkingHours:   total,
		AverageWorkingHours: average,
		Attendances:         records,
	}
}

func directoryError(err error) error {
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return err
	}
	return fmt.Errorf("%w: employee directory: %w", attendance.ErrStorageUnavailable, err)
}

// NewReportService builds a ReportService. concurrency <= 0 means
// DefaultConcurrency; a nil loc means time.Local.
func NewReportService(ledger attendance.Ledger, directory employee.Directory, loc *time.Location, concurrency int) report.ReportService {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReportServiceImpl{
		ledger:      ledger,
		directory:   directory,
		loc:         loc,
		concurrency: concurrency,
	}
}
