package report

import (
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE ATTENDANCE REPORT
// ========================================

type EmployeeReportRequest struct {
	EmployeeID string  `json:"employee_id"`
	From       *string `json:"from,omitempty"`
	To         *string `json:"to,omitempty"`
}

func (r *EmployeeReportRequest) Validate(loc *time.Location) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	errs = validator.ValidateRange(r.From, r.To, loc, errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OrganizationReportRequest struct {
	From *string `json:"from,omitempty"`
	To   *string `json:"to,omitempty"`
}

func (r *OrganizationReportRequest) Validate(loc *time.Location) error {
	if errs := validator.ValidateRange(r.From, r.To, loc, nil); len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeReport is the aggregate for one employee. TotalDaysWorked counts
// every record in range; only closed records contribute duration.
type EmployeeReport struct {
	EmployeeID          string
	EmployeeName        string
	TotalDaysWorked     int
	TotalWorkingHours   time.Duration
	AverageWorkingHours time.Duration
	Attendances         []attendance.Attendance
}

type EmployeeReportResponse struct {
	EmployeeID             string                          `json:"employee_id"`
	EmployeeName           string                          `json:"employee_name"`
	TotalDaysWorked        int                             `json:"total_days_worked"`
	TotalWorkingHours      float64                         `json:"total_working_hours"`
	TotalWorkingDuration   string                          `json:"total_working_duration"`
	AverageWorkingHours    float64                         `json:"average_working_hours"`
	AverageWorkingDuration string                          `json:"average_working_duration"`
	Attendances            []attendance.AttendanceResponse `json:"attendances"`
}

func NewEmployeeReportResponse(r EmployeeReport, loc *time.Location) EmployeeReportResponse {
	items := make([]attendance.AttendanceResponse, 0, len(r.Attendances))
	for _, a := range r.Attendances {
		items = append(items, attendance.NewAttendanceResponse(a, r.EmployeeName, loc))
	}

	return EmployeeReportResponse{
		EmployeeID:             r.EmployeeID,
		EmployeeName:           r.EmployeeName,
		TotalDaysWorked:        r.TotalDaysWorked,
		TotalWorkingHours:      attendance.RoundHours(r.TotalWorkingHours),
		TotalWorkingDuration:   r.TotalWorkingHours.String(),
		AverageWorkingHours:    attendance.RoundHours(r.AverageWorkingHours),
		AverageWorkingDuration: r.AverageWorkingHours.String(),
		Attendances:            items,
	}
}

// ========================================
// ORGANIZATION ATTENDANCE REPORT
// ========================================

type OrganizationReportResponse struct {
	From        *string                  `json:"from,omitempty"`
	To          *string                  `json:"to,omitempty"`
	GeneratedAt string                   `json:"generated_at"`
	Employees   []EmployeeReportResponse `json:"employees"`
}

func NewOrganizationReportResponse(req OrganizationReportRequest, reports []EmployeeReport, generatedAt time.Time, loc *time.Location) OrganizationReportResponse {
	employees := make([]EmployeeReportResponse, 0, len(reports))
	for _, r := range reports {
		employees = append(employees, NewEmployeeReportResponse(r, loc))
	}

	return OrganizationReportResponse{
		From:        req.From,
		To:          req.To,
		GeneratedAt: generatedAt.In(loc).Format(time.RFC3339),
		Employees:   employees,
	}
}
