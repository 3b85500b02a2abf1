package contracts

import (
	"context"

	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"

	"github.com/google/uuid"
)

type TimetableRepository interface {
	Insert(ctx context.Context, timetable *models.Timetable) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Timetable, error)
	FindByPatternID(ctx context.Context, patternID uuid.UUID) ([]models.Timetable, error)
	Update(ctx context.Context, timetable *models.Timetable) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type PeriodRepository interface {
	Insert(ctx context.Context, period *models.TimetablePeriod) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.TimetablePeriod, error)
	FindByTimetableID(ctx context.Context, timetableID uuid.UUID) ([]models.TimetablePeriod, error)
	FindActiveForFacility(ctx context.Context, facilityID uuid.UUID, dayOfWeek clockwin.Weekday) ([]models.TimetablePeriod, error)
	FindActiveForAssignment(ctx context.Context, assignmentID uuid.UUID, dayOfWeek clockwin.Weekday) ([]models.TimetablePeriod, error)
	Update(ctx context.Context, period *models.TimetablePeriod) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	SoftDeleteByTimetableID(ctx context.Context, timetableID uuid.UUID) error
}
