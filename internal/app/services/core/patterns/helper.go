package patterns

import (
	"sort"
	"time"

	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/exceptions"

	"github.com/lib/pq"
)

// parseDaysOfWeek maps weekday symbols onto their stored ordinals, dropping
// duplicates and keeping the result sorted for stable output.
func parseDaysOfWeek(symbols []string) (pq.Int64Array, error) {
	if len(symbols) == 0 {
		return nil, exceptions.ErrEmptyDaysOfWeek()
	}
	seen := make(map[clockwin.Weekday]bool, len(symbols))
	var days pq.Int64Array
	for _, symbol := range symbols {
		day, err := clockwin.ParseWeekday(symbol)
		if err != nil {
			return nil, exceptions.ErrInvalidWeekday(err)
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, int64(day))
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days, nil
}

// validatePattern re-checks the semantic invariants on a fully merged
// pattern: well-formed strictly ordered time window, non-empty weekday set,
// valid recurrence kind and startDate <= endDate.
func validatePattern(pattern *models.SchedulePattern) error {
	if _, err := clockwin.ParseWindow(pattern.StartTime, pattern.EndTime); err != nil {
		return exceptions.ErrInvalidTimeWindow(err)
	}
	if len(pattern.DaysOfWeek) == 0 {
		return exceptions.ErrEmptyDaysOfWeek()
	}
	for _, stored := range pattern.DaysOfWeek {
		if !clockwin.Weekday(stored).Valid() {
			return exceptions.ErrInvalidWeekday(nil)
		}
	}
	if !pattern.Recurrence.Valid() {
		return exceptions.ErrInvalidRecurrence(nil)
	}
	if pattern.EndDate != nil && clockwin.DateOnly(pattern.StartDate).After(clockwin.DateOnly(*pattern.EndDate)) {
		return exceptions.ErrInvalidDateRange()
	}
	return nil
}

// validateException checks an exception against its parent pattern: the
// exception date and any alternative date must fall in the pattern's active
// range, and the effective alternative window (missing sides borrowed from
// the pattern) must stay strictly ordered.
func validateException(pattern *models.SchedulePattern, exception *models.ScheduleException) error {
	if !pattern.ContainsDate(exception.ExceptionDate) {
		return exceptions.ErrDateOutOfPatternRange(exception.ExceptionDate.Format(clockwin.DateLayout))
	}
	if exception.AlternativeDate != nil && !pattern.ContainsDate(*exception.AlternativeDate) {
		return exceptions.ErrDateOutOfPatternRange(exception.AlternativeDate.Format(clockwin.DateLayout))
	}
	if exception.AlternativeStart != nil || exception.AlternativeEnd != nil {
		start := pattern.StartTime
		end := pattern.EndTime
		if exception.AlternativeStart != nil {
			start = *exception.AlternativeStart
		}
		if exception.AlternativeEnd != nil {
			end = *exception.AlternativeEnd
		}
		if _, err := clockwin.ParseWindow(start, end); err != nil {
			return exceptions.ErrInvalidTimeWindow(err)
		}
	}
	return nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := clockwin.ParseDate(*value)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "date")
	}
	return &parsed, nil
}
