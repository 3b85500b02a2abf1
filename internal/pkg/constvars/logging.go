package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingPatternIDKey    = "pattern_id"
	LoggingExceptionIDKey  = "exception_id"
	LoggingTimetableIDKey  = "timetable_id"
	LoggingPeriodIDKey     = "period_id"
	LoggingResourceKindKey = "resource_kind"
	LoggingResourceIDKey   = "resource_id"
	LoggingWeekdayKey      = "weekday"
	LoggingConflictsKey    = "conflicts"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "stored_value"
	LoggingLockExpectedValueKey  = "expected_value"
)
