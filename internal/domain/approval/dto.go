package approval

import (
	"strings"

	"github.com/boris2442/task-bml/internal/pkg/validator"
)

// MinCommentLength applies to single-record rejections.
const MinCommentLength = 10

type RejectRequest struct {
	AttendanceID string `json:"-"`
	Comment      string `json:"comment"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(strings.TrimSpace(r.Comment)) < MinCommentLength {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "rejection comment must contain at least 10 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BatchAction string

const (
	BatchApproveArrival   BatchAction = "approve_arrival"
	BatchApproveDeparture BatchAction = "approve_departure"
	BatchReject           BatchAction = "reject"
)

// BatchRequest applies one action to many records. Records whose current
// status does not match the action's precondition are skipped silently; the
// response carries the count of records actually changed. A single shared
// motive may accompany a batch reject; per-record comments require the
// single-record endpoint.
type BatchRequest struct {
	IDs    []string `json:"ids"`
	Action string   `json:"action"`
	Motive *string  `json:"motive,omitempty"`
}

func (r *BatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ids",
			Message: "at least one record id is required",
		})
	}

	valid := []string{
		string(BatchApproveArrival),
		string(BatchApproveDeparture),
		string(BatchReject),
	}
	if !validator.IsInSlice(r.Action, valid) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: approve_arrival, approve_departure, reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BatchResponse struct {
	// Processed is the number of records whose status actually changed.
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

type ApprovalResponse struct {
	ID           string  `json:"id"`
	AttendanceID string  `json:"attendance_id"`
	AdminID      string  `json:"admin_id"`
	AdminName    *string `json:"admin_name,omitempty"`
	Type         string  `json:"type"`
	Outcome      string  `json:"outcome"`
	Comment      *string `json:"comment,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// PendingCounts summarizes the approvals inbox.
type PendingCounts struct {
	ArrivalsPending   int64 `json:"arrivals_pending"`
	DeparturesPending int64 `json:"departures_pending"`
	TotalPending      int64 `json:"total_pending"`
}
