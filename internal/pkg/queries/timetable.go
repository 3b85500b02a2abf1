package queries

const (
	InsertTimetable = `
		INSERT INTO timetables (class_section_id, course_offering_id, pattern_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	GetTimetableByID = `
		SELECT id, class_section_id, course_offering_id, pattern_id, start_date, end_date, status, created_at, updated_at
		FROM timetables
		WHERE id = $1 AND status = 'active'`

	GetTimetablesByPatternID = `
		SELECT id, class_section_id, course_offering_id, pattern_id, start_date, end_date, status, created_at, updated_at
		FROM timetables
		WHERE pattern_id = $1 AND status = 'active'
		ORDER BY start_date`

	UpdateTimetable = `
		UPDATE timetables
		SET class_section_id = $1, course_offering_id = $2, pattern_id = $3, start_date = $4, end_date = $5, updated_at = NOW()
		WHERE id = $6 AND status = 'active'
		RETURNING updated_at`

	SoftDeleteTimetable = `
		UPDATE timetables
		SET status = 'deleted', updated_at = NOW()
		WHERE id = $1 AND status = 'active'`
)
