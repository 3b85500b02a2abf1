package requests

import "github.com/goccy/go-json"

type CreateTimetable struct {
	ClassSectionID   string  `json:"classSectionId" validate:"required,uuid"`
	CourseOfferingID string  `json:"courseOfferingId" validate:"required,uuid"`
	PatternID        *string `json:"patternId" validate:"omitempty,uuid"`
	StartDate        string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate          string  `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type UpdateTimetable struct {
	ClassSectionID   *string `json:"classSectionId" validate:"omitempty,uuid"`
	CourseOfferingID *string `json:"courseOfferingId" validate:"omitempty,uuid"`
	PatternID        *string `json:"patternId" validate:"omitempty,uuid"`
	StartDate        *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate          *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type CreatePeriod struct {
	DayOfWeek    string          `json:"dayOfWeek" validate:"required,weekday"`
	StartTime    string          `json:"startTime" validate:"required,clock_time"`
	EndTime      string          `json:"endTime" validate:"required,clock_time"`
	Kind         string          `json:"kind" validate:"required,oneof=LESSON EXAM BREAK MEETING OTHER"`
	FacilityID   *string         `json:"facilityId" validate:"omitempty,uuid"`
	AssignmentID string          `json:"assignmentId" validate:"required,uuid"`
	Recurring    bool            `json:"recurring"`
	Metadata     json.RawMessage `json:"metadata"`
}

type UpdatePeriod struct {
	DayOfWeek    *string         `json:"dayOfWeek" validate:"omitempty,weekday"`
	StartTime    *string         `json:"startTime" validate:"omitempty,clock_time"`
	EndTime      *string         `json:"endTime" validate:"omitempty,clock_time"`
	Kind         *string         `json:"kind" validate:"omitempty,oneof=LESSON EXAM BREAK MEETING OTHER"`
	FacilityID   *string         `json:"facilityId" validate:"omitempty,uuid"`
	AssignmentID *string         `json:"assignmentId" validate:"omitempty,uuid"`
	Recurring    *bool           `json:"recurring"`
	Metadata     json.RawMessage `json:"metadata"`
}

type CheckConflicts struct {
	ResourceKind    string   `json:"resourceKind" validate:"required,oneof=FACILITY TEACHER_ASSIGNMENT"`
	ResourceID      string   `json:"resourceId" validate:"required,uuid"`
	Dates           []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
	StartTime       string   `json:"startTime" validate:"required,clock_time"`
	EndTime         string   `json:"endTime" validate:"required,clock_time"`
	ExcludePeriodID *string  `json:"excludePeriodId" validate:"omitempty,uuid"`
}
