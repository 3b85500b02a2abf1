package models

import (
	"time"

	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type PeriodKind string

const (
	PeriodLesson  PeriodKind = "LESSON"
	PeriodExam    PeriodKind = "EXAM"
	PeriodBreak   PeriodKind = "BREAK"
	PeriodMeeting PeriodKind = "MEETING"
	PeriodOther   PeriodKind = "OTHER"
)

func (k PeriodKind) Valid() bool {
	switch k {
	case PeriodLesson, PeriodExam, PeriodBreak, PeriodMeeting, PeriodOther:
		return true
	}
	return false
}

// ResourceKind names the scarce entity a period occupies.
type ResourceKind string

const (
	ResourceFacility          ResourceKind = "FACILITY"
	ResourceTeacherAssignment ResourceKind = "TEACHER_ASSIGNMENT"
)

func (k ResourceKind) Valid() bool {
	return k == ResourceFacility || k == ResourceTeacherAssignment
}

// TimetablePeriod assigns a teacher-subject assignment, and optionally a
// facility, to a weekday and HH:MM window within its timetable's term.
type TimetablePeriod struct {
	ID           uuid.UUID       `json:"id"`
	TimetableID  uuid.UUID       `json:"timetable_id"`
	DayOfWeek    int             `json:"day_of_week"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	Kind         PeriodKind      `json:"kind"`
	FacilityID   *uuid.UUID      `json:"facility_id,omitempty"`
	AssignmentID uuid.UUID       `json:"assignment_id"`
	Recurring    bool            `json:"recurring"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	Status       RecordStatus    `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Window returns the period's clock window. Stored rows are validated on the
// way in, so a malformed window here is a programming error.
func (p TimetablePeriod) Window() clockwin.Window {
	w, err := clockwin.ParseWindow(p.StartTime, p.EndTime)
	if err != nil {
		panic(err)
	}
	return w
}

func (p TimetablePeriod) ConvertIntoResponse() responses.TimetablePeriod {
	resp := responses.TimetablePeriod{
		ID:           p.ID.String(),
		TimetableID:  p.TimetableID.String(),
		DayOfWeek:    clockwin.Weekday(p.DayOfWeek).String(),
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		Kind:         string(p.Kind),
		AssignmentID: p.AssignmentID.String(),
		Recurring:    p.Recurring,
		Metadata:     p.Metadata,
		Status:       string(p.Status),
	}
	if p.FacilityID != nil {
		facilityID := p.FacilityID.String()
		resp.FacilityID = &facilityID
	}
	return resp
}
