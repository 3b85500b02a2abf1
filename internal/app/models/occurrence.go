package models

import (
	"time"

	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/dto/responses"
)

// Occurrence is one concrete dated instance produced by expanding a pattern
// against its exceptions. It is derived, never persisted.
type Occurrence struct {
	Date          time.Time  `json:"date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	IsRescheduled bool       `json:"is_rescheduled"`
	OriginalDate  *time.Time `json:"original_date,omitempty"`
	Reason        *string    `json:"reason,omitempty"`
}

func (o Occurrence) ConvertIntoResponse() responses.Occurrence {
	resp := responses.Occurrence{
		Date:          o.Date.Format(clockwin.DateLayout),
		StartTime:     o.StartTime,
		EndTime:       o.EndTime,
		IsRescheduled: o.IsRescheduled,
		Reason:        o.Reason,
	}
	if o.OriginalDate != nil {
		orig := o.OriginalDate.Format(clockwin.DateLayout)
		resp.OriginalDate = &orig
	}
	return resp
}
