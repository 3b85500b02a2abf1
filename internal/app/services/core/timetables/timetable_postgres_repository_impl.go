package timetables

import (
	"context"
	"database/sql"
	"sync"

	"campus-service/internal/app/contracts"
	"campus-service/internal/app/models"
	"campus-service/internal/pkg/exceptions"
	"campus-service/internal/pkg/queries"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type timetablePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	timetablePostgresRepositoryInstance contracts.TimetableRepository
	onceTimetablePostgresRepository     sync.Once
)

func NewTimetablePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.TimetableRepository {
	onceTimetablePostgresRepository.Do(func() {
		instance := &timetablePostgresRepository{
			DB:  db,
			Log: logger,
		}
		timetablePostgresRepositoryInstance = instance
	})
	return timetablePostgresRepositoryInstance
}

func (r *timetablePostgresRepository) Insert(ctx context.Context, timetable *models.Timetable) error {
	err := r.DB.QueryRowContext(
		ctx,
		queries.InsertTimetable,
		timetable.ClassSectionID,
		timetable.CourseOfferingID,
		timetable.PatternID,
		timetable.StartDate,
		timetable.EndDate,
		timetable.Status,
	).Scan(&timetable.ID, &timetable.CreatedAt, &timetable.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *timetablePostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Timetable, error) {
	var timetable models.Timetable
	err := r.DB.QueryRowContext(ctx, queries.GetTimetableByID, id).Scan(
		&timetable.ID,
		&timetable.ClassSectionID,
		&timetable.CourseOfferingID,
		&timetable.PatternID,
		&timetable.StartDate,
		&timetable.EndDate,
		&timetable.Status,
		&timetable.CreatedAt,
		&timetable.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &timetable, nil
}

func (r *timetablePostgresRepository) FindByPatternID(ctx context.Context, patternID uuid.UUID) ([]models.Timetable, error) {
	rows, err := r.DB.QueryContext(ctx, queries.GetTimetablesByPatternID, patternID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var timetables []models.Timetable
	for rows.Next() {
		var timetable models.Timetable
		if err := rows.Scan(
			&timetable.ID,
			&timetable.ClassSectionID,
			&timetable.CourseOfferingID,
			&timetable.PatternID,
			&timetable.StartDate,
			&timetable.EndDate,
			&timetable.Status,
			&timetable.CreatedAt,
			&timetable.UpdatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		timetables = append(timetables, timetable)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return timetables, nil
}

func (r *timetablePostgresRepository) Update(ctx context.Context, timetable *models.Timetable) error {
	err := r.DB.QueryRowContext(
		ctx,
		queries.UpdateTimetable,
		timetable.ClassSectionID,
		timetable.CourseOfferingID,
		timetable.PatternID,
		timetable.StartDate,
		timetable.EndDate,
		timetable.ID,
	).Scan(&timetable.UpdatedAt)
	if err == sql.ErrNoRows {
		return exceptions.ErrTimetableNotFound(timetable.ID.String())
	} else if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *timetablePostgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, queries.SoftDeleteTimetable, id)
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if affected == 0 {
		return exceptions.ErrTimetableNotFound(id.String())
	}
	return nil
}
