package attendance

// Status is the lifecycle state of an attendance record.
//
//	arrival_pending -> arrival_approved | rejected
//	arrival_approved -> depart_pending        (employee departure submission)
//	depart_pending  -> validated | rejected
//
// validated and rejected are terminal.
type Status string

const (
	StatusArrivalPending  Status = "arrival_pending"
	StatusArrivalApproved Status = "arrival_approved"
	StatusDepartPending   Status = "depart_pending"
	StatusValidated       Status = "validated"
	StatusRejected        Status = "rejected"
)

var transitions = map[Status][]Status{
	StatusArrivalPending:  {StatusArrivalApproved, StatusRejected},
	StatusArrivalApproved: {StatusDepartPending},
	StatusDepartPending:   {StatusValidated, StatusRejected},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known status value.
func (s Status) IsValid() bool {
	switch s {
	case StatusArrivalPending, StatusArrivalApproved, StatusDepartPending,
		StatusValidated, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// IsPendingApproval reports whether the record is waiting on an admin.
func (s Status) IsPendingApproval() bool {
	return s == StatusArrivalPending || s == StatusDepartPending
}

// OpenStatuses are statuses of a cycle whose departure has not been
// submitted yet: the record still blocks a second arrival for the same day.
func OpenStatuses() []Status {
	return []Status{StatusArrivalPending, StatusArrivalApproved}
}
