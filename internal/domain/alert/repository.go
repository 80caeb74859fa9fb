package alert

import (
	"context"
	"time"
)

type WorkAlertRepository interface {
	Create(ctx context.Context, a WorkAlert) (WorkAlert, error)

	// ExistsForUserAndPeriod reports whether an alert of the given type was
	// already written for the user and period. Used to deduplicate the
	// background producer's runs.
	ExistsForUserAndPeriod(ctx context.Context, userID, alertType string, periodStart, periodEnd time.Time) (bool, error)

	ListUnnotified(ctx context.Context) ([]WorkAlert, error)
	MarkNotified(ctx context.Context, id string) error
}
