package contracts

import (
	"context"

	"campus-service/internal/app/models"
	"campus-service/internal/pkg/dto/requests"

	"github.com/google/uuid"
)

// PeriodCommitOutcome reports the result of a guarded period commit. When
// Conflicts is non-empty the commit was rejected and Period is nil.
type PeriodCommitOutcome struct {
	Period    *models.TimetablePeriod
	Conflicts []models.TimetablePeriod
}

type SchedulingUsecase interface {
	CreateTimetable(ctx context.Context, request requests.CreateTimetable) (*models.Timetable, error)
	GetTimetable(ctx context.Context, id uuid.UUID) (*models.Timetable, error)
	UpdateTimetable(ctx context.Context, id uuid.UUID, request requests.UpdateTimetable) (*models.Timetable, error)
	DeleteTimetable(ctx context.Context, id uuid.UUID) error

	CreatePeriod(ctx context.Context, timetableID uuid.UUID, request requests.CreatePeriod) (*PeriodCommitOutcome, error)
	UpdatePeriod(ctx context.Context, periodID uuid.UUID, request requests.UpdatePeriod) (*PeriodCommitOutcome, error)
	DeletePeriod(ctx context.Context, periodID uuid.UUID) error
	ListPeriods(ctx context.Context, timetableID uuid.UUID) ([]models.TimetablePeriod, error)

	CheckConflicts(ctx context.Context, request requests.CheckConflicts) ([]DateConflicts, error)
}
