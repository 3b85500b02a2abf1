package constvars

// Validation messages mapper, keyed by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required":   "is required",
	"min":        "must be at least %s characters long",
	"max":        "maximum at %s characters long",
	"oneof":      "must be one of [%s]",
	"uuid":       "must be a valid UUID",
	"datetime":   "must match the layout %s",
	"dive":       "is invalid",
	"clock_time": "must be a 24-hour HH:MM time",
	"weekday":    "must be an upper-case weekday symbol (SUNDAY..SATURDAY)",
}

// Tags whose message embeds the tag parameter.
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"

	ErrClientPatternNotFound   = "schedule pattern not found"
	ErrClientExceptionNotFound = "schedule exception not found"
	ErrClientTimetableNotFound = "timetable not found"
	ErrClientPeriodNotFound    = "timetable period not found"

	ErrClientInvalidTimeWindow    = "start time must be a valid HH:MM time strictly before end time"
	ErrClientEmptyDaysOfWeek      = "at least one day of week is required"
	ErrClientInvalidDateRange     = "start date must not be after end date"
	ErrClientDateOutOfRange       = "the date falls outside the pattern's active range"
	ErrClientScheduleConflict     = "the resource is already booked in an overlapping time window"
	ErrClientResourceBeingUpdated = "another scheduling change for this resource is in progress, please retry"
)

// Error messages for developers
const (
	ErrDevInvalidInput          = "invalid input"
	ErrDevCannotParseJSON       = "cannot parse JSON"
	ErrDevCannotMarshalJSON     = "cannot marshal JSON"
	ErrDevValidationFailed      = "request validation failed"
	ErrDevInvalidRequestPayload = "invalid request payload"
	ErrDevInvalidFormat         = "invalid %s format"
	ErrDevURLParamIDValidation  = "URL param %s is not a valid id"

	ErrDevPatternNotFound   = "schedule pattern does not resolve"
	ErrDevExceptionNotFound = "schedule exception does not resolve"
	ErrDevTimetableNotFound = "timetable does not resolve"
	ErrDevPeriodNotFound    = "timetable period does not resolve"

	ErrDevInvalidTimeWindow   = "time window validation failed"
	ErrDevEmptyDaysOfWeek     = "daysOfWeek must be non-empty"
	ErrDevInvalidDateRange    = "startDate > endDate"
	ErrDevDateOutOfRange      = "date outside parent pattern range"
	ErrDevScheduleConflict    = "candidate period overlaps active periods"
	ErrDevResourceLockBusy    = "resource schedule lock not acquired"
	ErrDevInvalidWeekday      = "invalid weekday symbol"
	ErrDevInvalidRecurrence   = "invalid recurrence kind"
	ErrDevInvalidPeriodKind   = "invalid period kind"
	ErrDevInvalidResourceKind = "invalid resource kind"

	// Postgres
	ErrDevDBFailedToFindData   = "failed to find data in postgres"
	ErrDevDBFailedToInsertData = "failed to insert data into postgres"
	ErrDevDBFailedToUpdateData = "failed to update data in postgres"
	ErrDevDBFailedToDeleteData = "failed to delete data in postgres"

	// Redis
	ErrDevRedisSet       = "failed to set value in redis"
	ErrDevRedisGet       = "failed to get value %s from redis"
	ErrDevRedisDelete    = "failed to delete value from redis"
	ErrDevRedisIncrement = "failed to increment value in redis"
	ErrDevRedisUnlock    = "failed to release redis lock"
)
