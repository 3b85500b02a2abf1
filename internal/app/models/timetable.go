package models

import (
	"time"

	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/dto/responses"

	"github.com/google/uuid"
)

// Timetable binds a class section to a course offering over a term's date
// range. Its periods are the concrete resource assignments.
type Timetable struct {
	ID               uuid.UUID    `json:"id"`
	ClassSectionID   uuid.UUID    `json:"class_section_id"`
	CourseOfferingID uuid.UUID    `json:"course_offering_id"`
	PatternID        *uuid.UUID   `json:"pattern_id,omitempty"`
	StartDate        time.Time    `json:"start_date"`
	EndDate          time.Time    `json:"end_date"`
	Status           RecordStatus `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`

	// Attached on read paths.
	Periods []TimetablePeriod `json:"periods,omitempty"`
}

func (t Timetable) ConvertIntoResponse() responses.Timetable {
	resp := responses.Timetable{
		ID:               t.ID.String(),
		ClassSectionID:   t.ClassSectionID.String(),
		CourseOfferingID: t.CourseOfferingID.String(),
		StartDate:        t.StartDate.Format(clockwin.DateLayout),
		EndDate:          t.EndDate.Format(clockwin.DateLayout),
		Status:           string(t.Status),
	}
	if t.PatternID != nil {
		patternID := t.PatternID.String()
		resp.PatternID = &patternID
	}
	for _, period := range t.Periods {
		resp.Periods = append(resp.Periods, period.ConvertIntoResponse())
	}
	return resp
}
