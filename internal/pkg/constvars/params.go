package constvars

const (
	URLParamPatternID   = "pattern_id"
	URLParamExceptionID = "exception_id"
	URLParamTimetableID = "timetable_id"
	URLParamPeriodID    = "period_id"
)

const (
	URLQueryParamPage       = "page"
	URLQueryParamPageSize   = "page_size"
	URLQueryParamFrom       = "from"
	URLQueryParamTo         = "to"
	URLQueryParamStatus     = "status"
	URLQueryParamRecurrence = "recurrence"
	URLQueryParamStartDate  = "start_date"
	URLQueryParamEndDate    = "end_date"
)
