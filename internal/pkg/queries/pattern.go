package queries

const (
	InsertPattern = `
		INSERT INTO schedule_patterns (name, description, days_of_week, start_time, end_time, recurrence, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	GetPatternByID = `
		SELECT id, name, description, days_of_week, start_time, end_time, recurrence, start_date, end_date, status, created_at, updated_at
		FROM schedule_patterns
		WHERE id = $1 AND status = 'active'`

	UpdatePattern = `
		UPDATE schedule_patterns
		SET name = $1, description = $2, days_of_week = $3, start_time = $4, end_time = $5, recurrence = $6, start_date = $7, end_date = $8, updated_at = NOW()
		WHERE id = $9 AND status = 'active'
		RETURNING updated_at`

	SoftDeletePattern = `
		UPDATE schedule_patterns
		SET status = 'deleted', updated_at = NOW()
		WHERE id = $1 AND status = 'active'`

	// Date-range overlap filter: the pattern matches when its range touches
	// [$4 (filter start), $3 (filter end)] at any point; NULL filter bounds
	// disable the corresponding side.
	ListPatterns = `
		SELECT id, name, description, days_of_week, start_time, end_time, recurrence, start_date, end_date, status, created_at, updated_at
		FROM schedule_patterns
		WHERE status = $1
		  AND ($2 = '' OR recurrence = $2)
		  AND ($3::date IS NULL OR start_date <= $3::date)
		  AND ($4::date IS NULL OR end_date IS NULL OR end_date >= $4::date)
		ORDER BY start_date, name
		LIMIT $5 OFFSET $6`

	CountPatterns = `
		SELECT COUNT(*)
		FROM schedule_patterns
		WHERE status = $1
		  AND ($2 = '' OR recurrence = $2)
		  AND ($3::date IS NULL OR start_date <= $3::date)
		  AND ($4::date IS NULL OR end_date IS NULL OR end_date >= $4::date)`

	InsertException = `
		INSERT INTO schedule_exceptions (pattern_id, exception_date, reason, alternative_date, alternative_start, alternative_end, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	GetExceptionByID = `
		SELECT id, pattern_id, exception_date, reason, alternative_date, alternative_start, alternative_end, status, created_at, updated_at
		FROM schedule_exceptions
		WHERE id = $1 AND status = 'active'`

	GetExceptionsByPatternID = `
		SELECT id, pattern_id, exception_date, reason, alternative_date, alternative_start, alternative_end, status, created_at, updated_at
		FROM schedule_exceptions
		WHERE pattern_id = $1 AND status = 'active'
		ORDER BY exception_date`

	UpdateException = `
		UPDATE schedule_exceptions
		SET exception_date = $1, reason = $2, alternative_date = $3, alternative_start = $4, alternative_end = $5, updated_at = NOW()
		WHERE id = $6 AND status = 'active'
		RETURNING updated_at`

	SoftDeleteException = `
		UPDATE schedule_exceptions
		SET status = 'deleted', updated_at = NOW()
		WHERE id = $1 AND status = 'active'`
)
