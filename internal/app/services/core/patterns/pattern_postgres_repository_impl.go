package patterns

import (
	"context"
	"database/sql"
	"sync"

	"campus-service/internal/app/contracts"
	"campus-service/internal/app/models"
	"campus-service/internal/pkg/dto/requests"
	"campus-service/internal/pkg/exceptions"
	"campus-service/internal/pkg/queries"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type patternPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	patternPostgresRepositoryInstance contracts.PatternRepository
	oncePatternPostgresRepository     sync.Once
)

func NewPatternPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PatternRepository {
	oncePatternPostgresRepository.Do(func() {
		instance := &patternPostgresRepository{
			DB:  db,
			Log: logger,
		}
		patternPostgresRepositoryInstance = instance
	})
	return patternPostgresRepositoryInstance
}

func (r *patternPostgresRepository) Insert(ctx context.Context, pattern *models.SchedulePattern) error {
	err := r.DB.QueryRowContext(
		ctx,
		queries.InsertPattern,
		pattern.Name,
		pattern.Description,
		pattern.DaysOfWeek,
		pattern.StartTime,
		pattern.EndTime,
		pattern.Recurrence,
		pattern.StartDate,
		pattern.EndDate,
		pattern.Status,
	).Scan(&pattern.ID, &pattern.CreatedAt, &pattern.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *patternPostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.SchedulePattern, error) {
	var pattern models.SchedulePattern
	err := r.DB.QueryRowContext(ctx, queries.GetPatternByID, id).Scan(
		&pattern.ID,
		&pattern.Name,
		&pattern.Description,
		&pattern.DaysOfWeek,
		&pattern.StartTime,
		&pattern.EndTime,
		&pattern.Recurrence,
		&pattern.StartDate,
		&pattern.EndDate,
		&pattern.Status,
		&pattern.CreatedAt,
		&pattern.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &pattern, nil
}

func (r *patternPostgresRepository) List(ctx context.Context, filter requests.ListPatterns) ([]models.SchedulePattern, int, error) {
	status := filter.Status
	if status == "" {
		status = string(models.StatusActive)
	}

	// NULL disables a date bound; empty string disables the recurrence filter.
	filterEnd := sql.NullString{String: filter.EndDate, Valid: filter.EndDate != ""}
	filterStart := sql.NullString{String: filter.StartDate, Valid: filter.StartDate != ""}

	var total int
	err := r.DB.QueryRowContext(ctx, queries.CountPatterns, status, filter.Recurrence, filterEnd, filterStart).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	rows, err := r.DB.QueryContext(ctx, queries.ListPatterns, status, filter.Recurrence, filterEnd, filterStart, filter.PageSize, offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var patterns []models.SchedulePattern
	for rows.Next() {
		var pattern models.SchedulePattern
		if err := rows.Scan(
			&pattern.ID,
			&pattern.Name,
			&pattern.Description,
			&pattern.DaysOfWeek,
			&pattern.StartTime,
			&pattern.EndTime,
			&pattern.Recurrence,
			&pattern.StartDate,
			&pattern.EndDate,
			&pattern.Status,
			&pattern.CreatedAt,
			&pattern.UpdatedAt,
		); err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		patterns = append(patterns, pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	return patterns, total, nil
}

func (r *patternPostgresRepository) Update(ctx context.Context, pattern *models.SchedulePattern) error {
	err := r.DB.QueryRowContext(
		ctx,
		queries.UpdatePattern,
		pattern.Name,
		pattern.Description,
		pattern.DaysOfWeek,
		pattern.StartTime,
		pattern.EndTime,
		pattern.Recurrence,
		pattern.StartDate,
		pattern.EndDate,
		pattern.ID,
	).Scan(&pattern.UpdatedAt)
	if err == sql.ErrNoRows {
		return exceptions.ErrPatternNotFound(pattern.ID.String())
	} else if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *patternPostgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, queries.SoftDeletePattern, id)
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if affected == 0 {
		return exceptions.ErrPatternNotFound(id.String())
	}
	return nil
}

func (r *patternPostgresRepository) InsertException(ctx context.Context, exception *models.ScheduleException) error {
	err := r.DB.QueryRowContext(
		ctx,
		queries.InsertException,
		exception.PatternID,
		exception.ExceptionDate,
		exception.Reason,
		exception.AlternativeDate,
		exception.AlternativeStart,
		exception.AlternativeEnd,
		exception.Status,
	).Scan(&exception.ID, &exception.CreatedAt, &exception.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *patternPostgresRepository) FindExceptionByID(ctx context.Context, id uuid.UUID) (*models.ScheduleException, error) {
	var exception models.ScheduleException
	err := r.DB.QueryRowContext(ctx, queries.GetExceptionByID, id).Scan(
		&exception.ID,
		&exception.PatternID,
		&exception.ExceptionDate,
		&exception.Reason,
		&exception.AlternativeDate,
		&exception.AlternativeStart,
		&exception.AlternativeEnd,
		&exception.Status,
		&exception.CreatedAt,
		&exception.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &exception, nil
}

func (r *patternPostgresRepository) FindExceptionsByPatternID(ctx context.Context, patternID uuid.UUID) ([]models.ScheduleException, error) {
	rows, err := r.DB.QueryContext(ctx, queries.GetExceptionsByPatternID, patternID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var result []models.ScheduleException
	for rows.Next() {
		var exception models.ScheduleException
		if err := rows.Scan(
			&exception.ID,
			&exception.PatternID,
			&exception.ExceptionDate,
			&exception.Reason,
			&exception.AlternativeDate,
			&exception.AlternativeStart,
			&exception.AlternativeEnd,
			&exception.Status,
			&exception.CreatedAt,
			&exception.UpdatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		result = append(result, exception)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return result, nil
}

func (r *patternPostgresRepository) UpdateException(ctx context.Context, exception *models.ScheduleException) error {
	err := r.DB.QueryRowContext(
		ctx,
		queries.UpdateException,
		exception.ExceptionDate,
		exception.Reason,
		exception.AlternativeDate,
		exception.AlternativeStart,
		exception.AlternativeEnd,
		exception.ID,
	).Scan(&exception.UpdatedAt)
	if err == sql.ErrNoRows {
		return exceptions.ErrExceptionNotFound(exception.ID.String())
	} else if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *patternPostgresRepository) SoftDeleteException(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, queries.SoftDeleteException, id)
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if affected == 0 {
		return exceptions.ErrExceptionNotFound(id.String())
	}
	return nil
}
