package approval

import "errors"

var (
	// ErrIllegalTransition is returned when an admin action does not match
	// the record's current status. No state change occurs.
	ErrIllegalTransition = errors.New("this attendance record cannot be processed in its current state")

	ErrCommentRequired = errors.New("a rejection comment of at least 10 characters is required")
)
