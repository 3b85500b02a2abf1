package timetables

import (
	"context"
	"database/sql"
	"sync"

	"campus-service/internal/app/contracts"
	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/exceptions"
	"campus-service/internal/pkg/queries"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type periodPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	periodPostgresRepositoryInstance contracts.PeriodRepository
	oncePeriodPostgresRepository     sync.Once
)

func NewPeriodPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PeriodRepository {
	oncePeriodPostgresRepository.Do(func() {
		instance := &periodPostgresRepository{
			DB:  db,
			Log: logger,
		}
		periodPostgresRepositoryInstance = instance
	})
	return periodPostgresRepositoryInstance
}

func scanPeriod(scanner interface{ Scan(...interface{}) error }) (*models.TimetablePeriod, error) {
	var period models.TimetablePeriod
	err := scanner.Scan(
		&period.ID,
		&period.TimetableID,
		&period.DayOfWeek,
		&period.StartTime,
		&period.EndTime,
		&period.Kind,
		&period.FacilityID,
		&period.AssignmentID,
		&period.Recurring,
		&period.Metadata,
		&period.Status,
		&period.CreatedAt,
		&period.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *periodPostgresRepository) Insert(ctx context.Context, period *models.TimetablePeriod) error {
	err := r.DB.QueryRowContext(
		ctx,
		queries.InsertPeriod,
		period.TimetableID,
		period.DayOfWeek,
		period.StartTime,
		period.EndTime,
		period.Kind,
		period.FacilityID,
		period.AssignmentID,
		period.Recurring,
		period.Metadata,
		period.Status,
	).Scan(&period.ID, &period.CreatedAt, &period.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *periodPostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.TimetablePeriod, error) {
	period, err := scanPeriod(r.DB.QueryRowContext(ctx, queries.GetPeriodByID, id))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return period, nil
}

func (r *periodPostgresRepository) FindByTimetableID(ctx context.Context, timetableID uuid.UUID) ([]models.TimetablePeriod, error) {
	return r.queryPeriods(ctx, queries.GetPeriodsByTimetableID, timetableID)
}

func (r *periodPostgresRepository) FindActiveForFacility(ctx context.Context, facilityID uuid.UUID, dayOfWeek clockwin.Weekday) ([]models.TimetablePeriod, error) {
	return r.queryPeriods(ctx, queries.GetActivePeriodsByFacilityAndWeekday, facilityID, int(dayOfWeek))
}

func (r *periodPostgresRepository) FindActiveForAssignment(ctx context.Context, assignmentID uuid.UUID, dayOfWeek clockwin.Weekday) ([]models.TimetablePeriod, error) {
	return r.queryPeriods(ctx, queries.GetActivePeriodsByAssignmentAndWeekday, assignmentID, int(dayOfWeek))
}

func (r *periodPostgresRepository) queryPeriods(ctx context.Context, query string, args ...interface{}) ([]models.TimetablePeriod, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var periods []models.TimetablePeriod
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		periods = append(periods, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return periods, nil
}

func (r *periodPostgresRepository) Update(ctx context.Context, period *models.TimetablePeriod) error {
	err := r.DB.QueryRowContext(
		ctx,
		queries.UpdatePeriod,
		period.DayOfWeek,
		period.StartTime,
		period.EndTime,
		period.Kind,
		period.FacilityID,
		period.AssignmentID,
		period.Recurring,
		period.Metadata,
		period.ID,
	).Scan(&period.UpdatedAt)
	if err == sql.ErrNoRows {
		return exceptions.ErrPeriodNotFound(period.ID.String())
	} else if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *periodPostgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, queries.SoftDeletePeriod, id)
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if affected == 0 {
		return exceptions.ErrPeriodNotFound(id.String())
	}
	return nil
}

func (r *periodPostgresRepository) SoftDeleteByTimetableID(ctx context.Context, timetableID uuid.UUID) error {
	// zero affected rows is fine here, a timetable may have no periods yet
	if _, err := r.DB.ExecContext(ctx, queries.SoftDeletePeriodsByTimetableID, timetableID); err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}
