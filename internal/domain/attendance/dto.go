package attendance

import (
	"mime/multipart"
	"strings"

	"github.com/boris2442/task-bml/internal/pkg/validator"
)

const (
	// MinDescriptionLength is required on both arrival and departure
	// submissions.
	MinDescriptionLength = 30

	// MaxDocumentSizeBytes is the per-file ceiling for justification
	// documents (5 MB).
	MaxDocumentSizeBytes = 5 << 20
)

var allowedDocumentExts = []string{".jpg", ".jpeg", ".png", ".pdf"}

type ArrivalRequest struct {
	Description string `json:"description"`
}

func (r *ArrivalRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(strings.TrimSpace(r.Description)) < MinDescriptionLength {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must contain at least 30 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DepartureFile is one uploaded justification document.
type DepartureFile struct {
	File   multipart.File
	Header *multipart.FileHeader
}

type DepartureRequest struct {
	Description string          `json:"description"`
	Files       []DepartureFile `json:"-"`
}

func (r *DepartureRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(strings.TrimSpace(r.Description)) < MinDescriptionLength {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must contain at least 30 characters",
		})
	}

	if len(r.Files) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "justifications",
			Message: "at least one justification document is required",
		})
	}

	for _, f := range r.Files {
		if f.Header == nil {
			continue
		}
		ext := strings.ToLower(f.Header.Filename[strings.LastIndex(f.Header.Filename, ".")+1:])
		if !validator.IsInSlice("."+ext, allowedDocumentExts) {
			errs = append(errs, validator.ValidationError{
				Field:   "justifications",
				Message: "only jpeg, png, jpg and pdf files are accepted",
			})
			break
		}
		if f.Header.Size > MaxDocumentSizeBytes {
			errs = append(errs, validator.ValidationError{
				Field:   "justifications",
				Message: "each file must not exceed 5MB",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	UserID    *string `json:"user_id,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Statuses restricts to any of the given statuses (used by the
	// approvals inbox). Ignored when Status is set.
	Statuses []Status `json:"-"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 15
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: arrival_pending, arrival_approved, depart_pending, validated, rejected",
		})
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DocumentResponse struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
	UploadedAt string `json:"uploaded_at"`
}

type AttendanceResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	UserName      *string            `json:"user_name,omitempty"`
	UserBadgeCode *string            `json:"user_badge_code,omitempty"`
	Date          string             `json:"date"`
	ArrivalAt     string             `json:"arrival_at"`
	DepartureAt   *string            `json:"departure_at,omitempty"`
	Description   string             `json:"description"`
	Status        string             `json:"status"`
	HoursWorked   float64            `json:"hours_worked"`
	HoursOvertime float64            `json:"hours_overtime"`
	Documents     []DocumentResponse `json:"documents,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
