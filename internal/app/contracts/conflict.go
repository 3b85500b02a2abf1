package contracts

import (
	"context"
	"time"

	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"

	"github.com/google/uuid"
)

// CheckConflictsInput pre-flights one candidate window against a set of
// target dates for a single resource.
type CheckConflictsInput struct {
	ResourceKind    models.ResourceKind
	ResourceID      uuid.UUID
	Dates           []time.Time
	Window          clockwin.Window
	ExcludePeriodID *uuid.UUID
}

// DateConflicts carries the colliding active periods found for one date.
type DateConflicts struct {
	Date      time.Time
	DayOfWeek clockwin.Weekday
	Conflicts []models.TimetablePeriod
}

type ConflictDetector interface {
	// Detect returns the active periods for the resource on the weekday whose
	// windows overlap the candidate window; an empty result means the
	// candidate may commit without double-booking at the instant of the
	// check. excludePeriodID skips self-comparison on updates.
	Detect(ctx context.Context, kind models.ResourceKind, resourceID uuid.UUID, dayOfWeek clockwin.Weekday, window clockwin.Window, excludePeriodID *uuid.UUID) ([]models.TimetablePeriod, error)

	// Preflight runs Detect for every date in the input, resolving each
	// date's weekday first. Results come back in input order.
	Preflight(ctx context.Context, input CheckConflictsInput) ([]DateConflicts, error)
}
