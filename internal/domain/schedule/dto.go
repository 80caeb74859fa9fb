package schedule

import (
	"github.com/boris2442/task-bml/internal/pkg/validator"
)

type UpsertScheduleRequest struct {
	UserID          string  `json:"-"`
	HoursPerDay     float64 `json:"hours_per_day"`
	WorkingWeekdays []int   `json:"working_weekdays"`
	ContractStart   *string `json:"contract_start,omitempty"` // YYYY-MM-DD
	ContractEnd     *string `json:"contract_end,omitempty"`   // YYYY-MM-DD
}

func (r *UpsertScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HoursPerDay <= 0 || r.HoursPerDay > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_per_day",
			Message: "hours_per_day must be between 0 and 24",
		})
	}

	if len(r.WorkingWeekdays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "working_weekdays",
			Message: "at least one working weekday is required",
		})
	}
	for _, d := range r.WorkingWeekdays {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "working_weekdays",
				Message: "weekdays must be between 0 (Sunday) and 6 (Saturday)",
			})
			break
		}
	}

	if r.ContractStart != nil && *r.ContractStart != "" {
		if _, valid := validator.IsValidDate(*r.ContractStart); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "contract_start",
				Message: "contract_start must be in YYYY-MM-DD format",
			})
		}
	}
	if r.ContractEnd != nil && *r.ContractEnd != "" {
		if _, valid := validator.IsValidDate(*r.ContractEnd); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "contract_end",
				Message: "contract_end must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateHolidayRequest struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type ScheduleResponse struct {
	UserID          string  `json:"user_id"`
	HoursPerDay     float64 `json:"hours_per_day"`
	WorkingWeekdays []int   `json:"working_weekdays"`
	ContractStart   *string `json:"contract_start,omitempty"`
	ContractEnd     *string `json:"contract_end,omitempty"`
}
