package queries

// The timetable_periods table carries the storage-level backstop for the
// conflict check: a btree_gist exclusion constraint keyed per resource and
// weekday over the minute range, so racing commits that both pass the
// application-level check cannot both land.
//
//	EXCLUDE USING gist (
//	    assignment_id WITH =, day_of_week WITH =,
//	    int4range(start_minute, end_minute) WITH &&
//	) WHERE (status = 'active')
//
// and the same shape over facility_id where it is not null.
const (
	InsertPeriod = `
		INSERT INTO timetable_periods (timetable_id, day_of_week, start_time, end_time, kind, facility_id, assignment_id, recurring, metadata, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	GetPeriodByID = `
		SELECT id, timetable_id, day_of_week, start_time, end_time, kind, facility_id, assignment_id, recurring, metadata, status, created_at, updated_at
		FROM timetable_periods
		WHERE id = $1 AND status = 'active'`

	GetPeriodsByTimetableID = `
		SELECT id, timetable_id, day_of_week, start_time, end_time, kind, facility_id, assignment_id, recurring, metadata, status, created_at, updated_at
		FROM timetable_periods
		WHERE timetable_id = $1 AND status = 'active'
		ORDER BY day_of_week, start_time`

	GetActivePeriodsByFacilityAndWeekday = `
		SELECT id, timetable_id, day_of_week, start_time, end_time, kind, facility_id, assignment_id, recurring, metadata, status, created_at, updated_at
		FROM timetable_periods
		WHERE facility_id = $1 AND day_of_week = $2 AND status = 'active'
		ORDER BY start_time`

	GetActivePeriodsByAssignmentAndWeekday = `
		SELECT id, timetable_id, day_of_week, start_time, end_time, kind, facility_id, assignment_id, recurring, metadata, status, created_at, updated_at
		FROM timetable_periods
		WHERE assignment_id = $1 AND day_of_week = $2 AND status = 'active'
		ORDER BY start_time`

	UpdatePeriod = `
		UPDATE timetable_periods
		SET day_of_week = $1, start_time = $2, end_time = $3, kind = $4, facility_id = $5, assignment_id = $6, recurring = $7, metadata = $8, updated_at = NOW()
		WHERE id = $9 AND status = 'active'
		RETURNING updated_at`

	SoftDeletePeriod = `
		UPDATE timetable_periods
		SET status = 'deleted', updated_at = NOW()
		WHERE id = $1 AND status = 'active'`

	SoftDeletePeriodsByTimetableID = `
		UPDATE timetable_periods
		SET status = 'deleted', updated_at = NOW()
		WHERE timetable_id = $1 AND status = 'active'`
)
