package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Marked-days gate carries the shortfall
	var shortfall *timesheet.ShortfallError
	if errors.As(err, &shortfall) {
		ConflictWithDetails(w, "INSUFFICIENT_MARKED_DAYS", shortfall.Error(), map[string]string{
			"marked":    strconv.Itoa(shortfall.Marked),
			"required":  strconv.Itoa(shortfall.Required),
			"shortfall": strconv.Itoa(shortfall.Shortfall()),
		})
		return
	}

	switch {
	// Authorization
	case errors.Is(err, employee.ErrSalaryChangeNotAllowed):
		Forbidden(w, "Only admin can change salary fields")
	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, "Role is not allowed to perform this action")
	case errors.Is(err, user.ErrInvalidActor):
		Unauthorized(w, "Invalid or missing credentials")

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, approval.ErrApprovalNotFound):
		NotFound(w, "Approval not found")
	case errors.Is(err, payroll.ErrEsiEntryNotFound):
		NotFound(w, "ESI entry not found")
	case errors.Is(err, timesheet.ErrSuperSaveNotFound):
		NotFound(w, "Timesheet has not been super-saved")
	case errors.Is(err, report.ErrNoDataFound):
		NotFound(w, "No data found for the requested month")
	case errors.Is(err, shift.ErrUnknownShift):
		BadRequest(w, "Unknown shift type", nil)

	// Workflow conflicts
	case errors.Is(err, approval.ErrApprovalAlreadyDecided):
		Conflict(w, "Approval has already been decided")
	case errors.Is(err, approval.ErrApprovalNotPending):
		Conflict(w, "Approval is not pending")
	case errors.Is(err, approval.ErrInvalidDecision):
		BadRequest(w, "Decision must be accepted or declined", nil)
	case errors.Is(err, payroll.ErrPaidRequiresIncluded):
		Conflict(w, "Payment status can be Paid only while ESI is included")
	case errors.Is(err, payroll.ErrInvalidPaymentStatus):
		BadRequest(w, "Invalid payment status", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
