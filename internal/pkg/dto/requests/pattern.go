package requests

type CreatePattern struct {
	Name        string   `json:"name" validate:"required,max=160"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	DaysOfWeek  []string `json:"daysOfWeek" validate:"required,min=1,dive,weekday"`
	StartTime   string   `json:"startTime" validate:"required,clock_time"`
	EndTime     string   `json:"endTime" validate:"required,clock_time"`
	Recurrence  string   `json:"recurrence" validate:"required,oneof=DAILY WEEKLY BIWEEKLY MONTHLY CUSTOM"`
	StartDate   string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// UpdatePattern carries a partial replacement; nil fields keep their stored
// value and the merged result is re-validated by the usecase.
type UpdatePattern struct {
	Name        *string  `json:"name" validate:"omitempty,max=160"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	DaysOfWeek  []string `json:"daysOfWeek" validate:"omitempty,min=1,dive,weekday"`
	StartTime   *string  `json:"startTime" validate:"omitempty,clock_time"`
	EndTime     *string  `json:"endTime" validate:"omitempty,clock_time"`
	Recurrence  *string  `json:"recurrence" validate:"omitempty,oneof=DAILY WEEKLY BIWEEKLY MONTHLY CUSTOM"`
	StartDate   *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type ListPatterns struct {
	Page       int
	PageSize   int
	Status     string
	Recurrence string
	// Date-range overlap filter: patterns active at any point in
	// [StartDate, EndDate] match.
	StartDate string
	EndDate   string
}

type CreateException struct {
	ExceptionDate    string  `json:"exceptionDate" validate:"required,datetime=2006-01-02"`
	Reason           *string `json:"reason" validate:"omitempty,max=2000"`
	AlternativeDate  *string `json:"alternativeDate" validate:"omitempty,datetime=2006-01-02"`
	AlternativeStart *string `json:"alternativeStart" validate:"omitempty,clock_time"`
	AlternativeEnd   *string `json:"alternativeEnd" validate:"omitempty,clock_time"`
}

type UpdateException struct {
	ExceptionDate    *string `json:"exceptionDate" validate:"omitempty,datetime=2006-01-02"`
	Reason           *string `json:"reason" validate:"omitempty,max=2000"`
	AlternativeDate  *string `json:"alternativeDate" validate:"omitempty,datetime=2006-01-02"`
	AlternativeStart *string `json:"alternativeStart" validate:"omitempty,clock_time"`
	AlternativeEnd   *string `json:"alternativeEnd" validate:"omitempty,clock_time"`
}
