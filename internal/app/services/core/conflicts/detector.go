package conflicts

import (
	"context"
	"sync"

	"campus-service/internal/app/contracts"
	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/constvars"
	"campus-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// preflightConcurrency bounds the parallel per-date lookups a single
// pre-flight request may fan out.
const preflightConcurrency = 4

type conflictDetector struct {
	periods contracts.PeriodRepository
	logger  *zap.Logger
}

var (
	conflictDetectorInstance contracts.ConflictDetector
	onceConflictDetector     sync.Once
)

func NewConflictDetector(periods contracts.PeriodRepository, logger *zap.Logger) contracts.ConflictDetector {
	onceConflictDetector.Do(func() {
		conflictDetectorInstance = &conflictDetector{
			periods: periods,
			logger:  logger,
		}
	})
	return conflictDetectorInstance
}

func (d *conflictDetector) Detect(ctx context.Context, kind models.ResourceKind, resourceID uuid.UUID, dayOfWeek clockwin.Weekday, window clockwin.Window, excludePeriodID *uuid.UUID) ([]models.TimetablePeriod, error) {
	var (
		candidates []models.TimetablePeriod
		err        error
	)
	switch kind {
	case models.ResourceFacility:
		candidates, err = d.periods.FindActiveForFacility(ctx, resourceID, dayOfWeek)
	case models.ResourceTeacherAssignment:
		candidates, err = d.periods.FindActiveForAssignment(ctx, resourceID, dayOfWeek)
	default:
		return nil, exceptions.ErrInvalidResourceKind(nil)
	}
	if err != nil {
		return nil, err
	}

	var colliding []models.TimetablePeriod
	for _, candidate := range candidates {
		if excludePeriodID != nil && candidate.ID == *excludePeriodID {
			continue
		}
		if window.Overlaps(candidate.Window()) {
			colliding = append(colliding, candidate)
		}
	}
	if len(colliding) > 0 {
		d.logger.Info("overlapping periods found",
			zap.String(constvars.LoggingResourceIDKey, resourceID.String()),
			zap.Int(constvars.LoggingConflictsKey, len(colliding)),
		)
	}
	return colliding, nil
}

func (d *conflictDetector) Preflight(ctx context.Context, input contracts.CheckConflictsInput) ([]contracts.DateConflicts, error) {
	results := make([]contracts.DateConflicts, len(input.Dates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(preflightConcurrency)
	for i, date := range input.Dates {
		i, date := i, date
		group.Go(func() error {
			dayOfWeek := clockwin.WeekdayOf(date)
			colliding, err := d.Detect(groupCtx, input.ResourceKind, input.ResourceID, dayOfWeek, input.Window, input.ExcludePeriodID)
			if err != nil {
				return err
			}
			results[i] = contracts.DateConflicts{
				Date:      date,
				DayOfWeek: dayOfWeek,
				Conflicts: colliding,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
