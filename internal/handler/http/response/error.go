package response

import (
	"errors"
	"net/http"

	"github.com/boris2442/task-bml/internal/domain/approval"
	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/domain/auth"
	"github.com/boris2442/task-bml/internal/domain/schedule"
	"github.com/boris2442/task-bml/internal/domain/user"
	"github.com/boris2442/task-bml/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrBadgeCodeExists):
		Conflict(w, "Badge code already exists")
	case errors.Is(err, user.ErrLastAdmin):
		Conflict(w, "Cannot remove the last administrator account")
	case errors.Is(err, user.ErrAdminRequired):
		Forbidden(w, "Administrator privileges required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyReportedToday):
		Conflict(w, "Arrival already reported for today")
	case errors.Is(err, attendance.ErrNoActiveArrival):
		Conflict(w, "No active arrival to depart from")
	case errors.Is(err, attendance.ErrArrivalNotApproved):
		Conflict(w, "Arrival has not been approved yet")
	case errors.Is(err, attendance.ErrDepartureAlreadyReported):
		Conflict(w, "Departure already reported")
	case errors.Is(err, attendance.ErrNoDocuments):
		ValidationError(w, map[string]string{"justifications": "at least one justification document is required"})
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDocumentNotFound):
		NotFound(w, "Justification document not found")

	// Approval domain errors
	case errors.Is(err, approval.ErrIllegalTransition):
		Conflict(w, "This attendance record cannot be processed in its current state")
	case errors.Is(err, approval.ErrCommentRequired):
		ValidationError(w, map[string]string{"comment": "rejection comment must contain at least 10 characters"})

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, schedule.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
