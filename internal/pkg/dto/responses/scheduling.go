package responses

import "github.com/goccy/go-json"

type SchedulePattern struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	DaysOfWeek  []string            `json:"daysOfWeek"`
	StartTime   string              `json:"startTime"`
	EndTime     string              `json:"endTime"`
	Recurrence  string              `json:"recurrence"`
	StartDate   string              `json:"startDate"`
	EndDate     *string             `json:"endDate,omitempty"`
	Status      string              `json:"status"`
	Exceptions  []ScheduleException `json:"exceptions,omitempty"`
	Timetables  []Timetable         `json:"timetables,omitempty"`
}

type ScheduleException struct {
	ID               string  `json:"id"`
	PatternID        string  `json:"patternId"`
	ExceptionDate    string  `json:"exceptionDate"`
	Reason           *string `json:"reason,omitempty"`
	AlternativeDate  *string `json:"alternativeDate,omitempty"`
	AlternativeStart *string `json:"alternativeStart,omitempty"`
	AlternativeEnd   *string `json:"alternativeEnd,omitempty"`
	Status           string  `json:"status"`
}

type Occurrence struct {
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	IsRescheduled bool    `json:"isRescheduled"`
	OriginalDate  *string `json:"originalDate,omitempty"`
	Reason        *string `json:"reason,omitempty"`
}

type Timetable struct {
	ID               string            `json:"id"`
	ClassSectionID   string            `json:"classSectionId"`
	CourseOfferingID string            `json:"courseOfferingId"`
	PatternID        *string           `json:"patternId,omitempty"`
	StartDate        string            `json:"startDate"`
	EndDate          string            `json:"endDate"`
	Status           string            `json:"status"`
	Periods          []TimetablePeriod `json:"periods,omitempty"`
}

type TimetablePeriod struct {
	ID           string          `json:"id"`
	TimetableID  string          `json:"timetableId"`
	DayOfWeek    string          `json:"dayOfWeek"`
	StartTime    string          `json:"startTime"`
	EndTime      string          `json:"endTime"`
	Kind         string          `json:"kind"`
	FacilityID   *string         `json:"facilityId,omitempty"`
	AssignmentID string          `json:"assignmentId"`
	Recurring    bool            `json:"recurring"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	Status       string          `json:"status"`
}

// DateConflicts groups the colliding periods found for one candidate date in
// a batch pre-flight check.
type DateConflicts struct {
	Date      string            `json:"date"`
	DayOfWeek string            `json:"dayOfWeek"`
	Conflicts []TimetablePeriod `json:"conflicts"`
}
