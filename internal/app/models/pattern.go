package models

import (
	"time"

	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/dto/responses"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RecurrenceKind string

const (
	RecurrenceDaily    RecurrenceKind = "DAILY"
	RecurrenceWeekly   RecurrenceKind = "WEEKLY"
	RecurrenceBiweekly RecurrenceKind = "BIWEEKLY"
	RecurrenceMonthly  RecurrenceKind = "MONTHLY"
	RecurrenceCustom   RecurrenceKind = "CUSTOM"
)

func (k RecurrenceKind) Valid() bool {
	switch k {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly, RecurrenceCustom:
		return true
	}
	return false
}

// RecordStatus implements the soft-delete flag every scheduling row carries.
// Deleted rows stay in the store for auditability.
type RecordStatus string

const (
	StatusActive  RecordStatus = "active"
	StatusDeleted RecordStatus = "deleted"
)

// SchedulePattern is a recurring schedule template: a weekday set, a daily
// HH:MM window and an optional bounding date range.
type SchedulePattern struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	DaysOfWeek  pq.Int64Array  `json:"days_of_week"`
	StartTime   string         `json:"start_time"`
	EndTime     string         `json:"end_time"`
	Recurrence  RecurrenceKind `json:"recurrence"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	Status      RecordStatus   `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Attached on read paths, not scanned from the patterns table.
	Exceptions []ScheduleException `json:"exceptions,omitempty"`
	Timetables []Timetable         `json:"timetables,omitempty"`
}

// HasWeekday reports whether the pattern fires on the given weekday.
func (p SchedulePattern) HasWeekday(d clockwin.Weekday) bool {
	for _, stored := range p.DaysOfWeek {
		if clockwin.Weekday(stored) == d {
			return true
		}
	}
	return false
}

// ContainsDate reports whether a calendar date falls inside the pattern's
// active range. An absent end date leaves the range open-ended.
func (p SchedulePattern) ContainsDate(date time.Time) bool {
	day := clockwin.DateOnly(date)
	if day.Before(clockwin.DateOnly(p.StartDate)) {
		return false
	}
	if p.EndDate != nil && day.After(clockwin.DateOnly(*p.EndDate)) {
		return false
	}
	return true
}

func (p SchedulePattern) ConvertIntoResponse() responses.SchedulePattern {
	days := make([]string, 0, len(p.DaysOfWeek))
	for _, stored := range p.DaysOfWeek {
		days = append(days, clockwin.Weekday(stored).String())
	}

	resp := responses.SchedulePattern{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		DaysOfWeek:  days,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Recurrence:  string(p.Recurrence),
		StartDate:   p.StartDate.Format(clockwin.DateLayout),
		Status:      string(p.Status),
	}
	if p.EndDate != nil {
		endDate := p.EndDate.Format(clockwin.DateLayout)
		resp.EndDate = &endDate
	}
	for _, exc := range p.Exceptions {
		resp.Exceptions = append(resp.Exceptions, exc.ConvertIntoResponse())
	}
	for _, tt := range p.Timetables {
		resp.Timetables = append(resp.Timetables, tt.ConvertIntoResponse())
	}
	return resp
}
