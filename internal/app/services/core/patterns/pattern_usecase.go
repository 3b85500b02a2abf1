package patterns

import (
	"context"
	"fmt"
	"sync"

	"campus-service/internal/app/contracts"
	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/constvars"
	"campus-service/internal/pkg/dto/requests"
	"campus-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type patternUsecase struct {
	patterns   contracts.PatternRepository
	timetables contracts.TimetableRepository
	redisRepo  contracts.RedisRepository
	logger     *zap.Logger
}

var (
	patternUsecaseInstance contracts.PatternUsecase
	oncePatternUsecase     sync.Once
)

func NewPatternUsecase(
	patterns contracts.PatternRepository,
	timetables contracts.TimetableRepository,
	redisRepo contracts.RedisRepository,
	logger *zap.Logger,
) contracts.PatternUsecase {
	oncePatternUsecase.Do(func() {
		patternUsecaseInstance = &patternUsecase{
			patterns:   patterns,
			timetables: timetables,
			redisRepo:  redisRepo,
			logger:     logger,
		}
	})
	return patternUsecaseInstance
}

func (u *patternUsecase) CreatePattern(ctx context.Context, request requests.CreatePattern) (*models.SchedulePattern, error) {
	days, err := parseDaysOfWeek(request.DaysOfWeek)
	if err != nil {
		return nil, err
	}
	startDate, err := clockwin.ParseDate(request.StartDate)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "startDate")
	}
	endDate, err := parseOptionalDate(request.EndDate)
	if err != nil {
		return nil, err
	}

	pattern := &models.SchedulePattern{
		Name:        request.Name,
		Description: request.Description,
		DaysOfWeek:  days,
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
		Recurrence:  models.RecurrenceKind(request.Recurrence),
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      models.StatusActive,
	}
	if err := validatePattern(pattern); err != nil {
		return nil, err
	}

	if err := u.patterns.Insert(ctx, pattern); err != nil {
		return nil, err
	}
	u.logger.Info("pattern created",
		zap.String(constvars.LoggingPatternIDKey, pattern.ID.String()),
	)
	return pattern, nil
}

func (u *patternUsecase) GetPattern(ctx context.Context, id uuid.UUID) (*models.SchedulePattern, error) {
	pattern, err := u.patterns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, exceptions.ErrPatternNotFound(id.String())
	}

	// read paths carry exceptions and referencing timetables eagerly
	pattern.Exceptions, err = u.patterns.FindExceptionsByPatternID(ctx, id)
	if err != nil {
		return nil, err
	}
	pattern.Timetables, err = u.timetables.FindByPatternID(ctx, id)
	if err != nil {
		return nil, err
	}
	return pattern, nil
}

func (u *patternUsecase) ListPatterns(ctx context.Context, filter requests.ListPatterns) ([]models.SchedulePattern, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	return u.patterns.List(ctx, filter)
}

func (u *patternUsecase) UpdatePattern(ctx context.Context, id uuid.UUID, request requests.UpdatePattern) (*models.SchedulePattern, error) {
	pattern, err := u.patterns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, exceptions.ErrPatternNotFound(id.String())
	}

	if request.Name != nil {
		pattern.Name = *request.Name
	}
	if request.Description != nil {
		pattern.Description = request.Description
	}
	if request.DaysOfWeek != nil {
		days, err := parseDaysOfWeek(request.DaysOfWeek)
		if err != nil {
			return nil, err
		}
		pattern.DaysOfWeek = days
	}
	if request.StartTime != nil {
		pattern.StartTime = *request.StartTime
	}
	if request.EndTime != nil {
		pattern.EndTime = *request.EndTime
	}
	if request.Recurrence != nil {
		pattern.Recurrence = models.RecurrenceKind(*request.Recurrence)
	}
	if request.StartDate != nil {
		startDate, err := clockwin.ParseDate(*request.StartDate)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, "startDate")
		}
		pattern.StartDate = startDate
	}
	if request.EndDate != nil {
		endDate, err := parseOptionalDate(request.EndDate)
		if err != nil {
			return nil, err
		}
		pattern.EndDate = endDate
	}

	// the merged result is what must hold the invariants, even when only one
	// side of a time or date pair was supplied
	if err := validatePattern(pattern); err != nil {
		return nil, err
	}

	if err := u.patterns.Update(ctx, pattern); err != nil {
		return nil, err
	}
	u.invalidateOccurrences(ctx, id)
	return pattern, nil
}

func (u *patternUsecase) DeletePattern(ctx context.Context, id uuid.UUID) error {
	// soft delete only; exceptions stay untouched and become unreachable
	// through their now-deleted parent
	if err := u.patterns.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.invalidateOccurrences(ctx, id)
	u.logger.Info("pattern soft-deleted",
		zap.String(constvars.LoggingPatternIDKey, id.String()),
	)
	return nil
}

func (u *patternUsecase) CreateException(ctx context.Context, patternID uuid.UUID, request requests.CreateException) (*models.ScheduleException, error) {
	pattern, err := u.patterns.FindByID(ctx, patternID)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, exceptions.ErrPatternNotFound(patternID.String())
	}

	exceptionDate, err := clockwin.ParseDate(request.ExceptionDate)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "exceptionDate")
	}
	alternativeDate, err := parseOptionalDate(request.AlternativeDate)
	if err != nil {
		return nil, err
	}

	exception := &models.ScheduleException{
		PatternID:        patternID,
		ExceptionDate:    exceptionDate,
		Reason:           request.Reason,
		AlternativeDate:  alternativeDate,
		AlternativeStart: request.AlternativeStart,
		AlternativeEnd:   request.AlternativeEnd,
		Status:           models.StatusActive,
	}
	if err := validateException(pattern, exception); err != nil {
		return nil, err
	}

	if err := u.patterns.InsertException(ctx, exception); err != nil {
		return nil, err
	}
	u.invalidateOccurrences(ctx, patternID)
	return exception, nil
}

func (u *patternUsecase) UpdateException(ctx context.Context, exceptionID uuid.UUID, request requests.UpdateException) (*models.ScheduleException, error) {
	exception, err := u.patterns.FindExceptionByID(ctx, exceptionID)
	if err != nil {
		return nil, err
	}
	if exception == nil {
		return nil, exceptions.ErrExceptionNotFound(exceptionID.String())
	}
	pattern, err := u.patterns.FindByID(ctx, exception.PatternID)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, exceptions.ErrPatternNotFound(exception.PatternID.String())
	}

	if request.ExceptionDate != nil {
		exceptionDate, err := clockwin.ParseDate(*request.ExceptionDate)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, "exceptionDate")
		}
		exception.ExceptionDate = exceptionDate
	}
	if request.Reason != nil {
		exception.Reason = request.Reason
	}
	if request.AlternativeDate != nil {
		alternativeDate, err := parseOptionalDate(request.AlternativeDate)
		if err != nil {
			return nil, err
		}
		exception.AlternativeDate = alternativeDate
	}
	if request.AlternativeStart != nil {
		exception.AlternativeStart = request.AlternativeStart
	}
	if request.AlternativeEnd != nil {
		exception.AlternativeEnd = request.AlternativeEnd
	}

	if err := validateException(pattern, exception); err != nil {
		return nil, err
	}

	if err := u.patterns.UpdateException(ctx, exception); err != nil {
		return nil, err
	}
	u.invalidateOccurrences(ctx, exception.PatternID)
	return exception, nil
}

func (u *patternUsecase) DeleteException(ctx context.Context, exceptionID uuid.UUID) error {
	exception, err := u.patterns.FindExceptionByID(ctx, exceptionID)
	if err != nil {
		return err
	}
	if exception == nil {
		return exceptions.ErrExceptionNotFound(exceptionID.String())
	}

	if err := u.patterns.SoftDeleteException(ctx, exceptionID); err != nil {
		return err
	}
	u.invalidateOccurrences(ctx, exception.PatternID)
	return nil
}

// invalidateOccurrences bumps the pattern's cache generation so every cached
// expansion for it is retired. A failed bump only means stale cache for one
// TTL, so it is logged and swallowed.
func (u *patternUsecase) invalidateOccurrences(ctx context.Context, patternID uuid.UUID) {
	key := fmt.Sprintf(constvars.RedisKeyOccurrenceGenerationFmt, patternID)
	if _, err := u.redisRepo.Increment(ctx, key); err != nil {
		u.logger.Warn("failed to bump occurrence cache generation",
			zap.String(constvars.LoggingPatternIDKey, patternID.String()),
			zap.Error(err),
		)
	}
}
