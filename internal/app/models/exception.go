package models

import (
	"time"

	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/dto/responses"

	"github.com/google/uuid"
)

// ScheduleException overrides a single occurrence of its parent pattern.
// Without alternative fields the date is cancelled; with an alternative date
// the occurrence moves there, borrowing the pattern's times for whichever
// side of the window the exception leaves unset.
type ScheduleException struct {
	ID               uuid.UUID    `json:"id"`
	PatternID        uuid.UUID    `json:"pattern_id"`
	ExceptionDate    time.Time    `json:"exception_date"`
	Reason           *string      `json:"reason,omitempty"`
	AlternativeDate  *time.Time   `json:"alternative_date,omitempty"`
	AlternativeStart *string      `json:"alternative_start,omitempty"`
	AlternativeEnd   *string      `json:"alternative_end,omitempty"`
	Status           RecordStatus `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// IsCancellation reports whether the exception skips the date entirely.
func (e ScheduleException) IsCancellation() bool {
	return e.AlternativeDate == nil
}

func (e ScheduleException) ConvertIntoResponse() responses.ScheduleException {
	resp := responses.ScheduleException{
		ID:               e.ID.String(),
		PatternID:        e.PatternID.String(),
		ExceptionDate:    e.ExceptionDate.Format(clockwin.DateLayout),
		Reason:           e.Reason,
		AlternativeStart: e.AlternativeStart,
		AlternativeEnd:   e.AlternativeEnd,
		Status:           string(e.Status),
	}
	if e.AlternativeDate != nil {
		altDate := e.AlternativeDate.Format(clockwin.DateLayout)
		resp.AlternativeDate = &altDate
	}
	return resp
}
