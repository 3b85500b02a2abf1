package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

// Redis key formats shared by the scheduling core.
const (
	// occurrence cache generation counter per pattern; bumping it retires
	// every cached expansion for that pattern at once
	RedisKeyOccurrenceGenerationFmt = "campus:occgen:%s"
	// cached expansion: pattern id, generation, from, to
	RedisKeyOccurrenceCacheFmt = "campus:occ:%s:%d:%s:%s"
	// per-resource commit lock: resource kind, resource id, weekday ordinal
	RedisKeyResourceLockFmt = "campus:schedlock:%s:%s:%d"
)

// Success messages
const (
	PatternCreatedSuccess   = "schedule pattern created successfully"
	PatternUpdatedSuccess   = "schedule pattern updated successfully"
	PatternDeletedSuccess   = "schedule pattern deleted successfully"
	PatternGetSuccess       = "get schedule pattern successfully"
	PatternListSuccess      = "get schedule patterns successfully"
	ExceptionCreatedSuccess = "schedule exception created successfully"
	ExceptionUpdatedSuccess = "schedule exception updated successfully"
	ExceptionDeletedSuccess = "schedule exception deleted successfully"
	OccurrenceListSuccess   = "get schedule occurrences successfully"
	ConflictCheckSuccess    = "conflict check completed"
	TimetableCreatedSuccess = "timetable created successfully"
	TimetableUpdatedSuccess = "timetable updated successfully"
	TimetableDeletedSuccess = "timetable deleted successfully"
	TimetableGetSuccess     = "get timetable successfully"
	PeriodCreatedSuccess    = "timetable period created successfully"
	PeriodUpdatedSuccess    = "timetable period updated successfully"
	PeriodDeletedSuccess    = "timetable period deleted successfully"
	PeriodListSuccess       = "get timetable periods successfully"
)
