package contracts

import (
	"context"
	"time"

	"campus-service/internal/app/models"
	"campus-service/internal/pkg/dto/requests"

	"github.com/google/uuid"
)

type PatternRepository interface {
	Insert(ctx context.Context, pattern *models.SchedulePattern) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SchedulePattern, error)
	List(ctx context.Context, filter requests.ListPatterns) ([]models.SchedulePattern, int, error)
	Update(ctx context.Context, pattern *models.SchedulePattern) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	InsertException(ctx context.Context, exception *models.ScheduleException) error
	FindExceptionByID(ctx context.Context, id uuid.UUID) (*models.ScheduleException, error)
	FindExceptionsByPatternID(ctx context.Context, patternID uuid.UUID) ([]models.ScheduleException, error)
	UpdateException(ctx context.Context, exception *models.ScheduleException) error
	SoftDeleteException(ctx context.Context, id uuid.UUID) error
}

type PatternUsecase interface {
	CreatePattern(ctx context.Context, request requests.CreatePattern) (*models.SchedulePattern, error)
	GetPattern(ctx context.Context, id uuid.UUID) (*models.SchedulePattern, error)
	ListPatterns(ctx context.Context, filter requests.ListPatterns) ([]models.SchedulePattern, int, error)
	UpdatePattern(ctx context.Context, id uuid.UUID, request requests.UpdatePattern) (*models.SchedulePattern, error)
	DeletePattern(ctx context.Context, id uuid.UUID) error

	CreateException(ctx context.Context, patternID uuid.UUID, request requests.CreateException) (*models.ScheduleException, error)
	UpdateException(ctx context.Context, exceptionID uuid.UUID, request requests.UpdateException) (*models.ScheduleException, error)
	DeleteException(ctx context.Context, exceptionID uuid.UUID) error
}

type OccurrenceUsecase interface {
	GenerateOccurrences(ctx context.Context, patternID uuid.UUID, from, to time.Time) ([]models.Occurrence, error)
}
