package occurrences

import (
	"sort"
	"time"

	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"
)

// expand materialises a pattern into dated occurrences over [from, to],
// overlaying its active exceptions. Cancelled dates are dropped, rescheduled
// dates re-emit at their alternative date with the window sides the exception
// left unset borrowed from the pattern.
func expand(pattern *models.SchedulePattern, excs []models.ScheduleException, from, to time.Time) []models.Occurrence {
	from = clockwin.DateOnly(from)
	to = clockwin.DateOnly(to)

	// clamp the walk to the pattern's own active range
	walkFrom := from
	if patternStart := clockwin.DateOnly(pattern.StartDate); patternStart.After(walkFrom) {
		walkFrom = patternStart
	}
	walkTo := to
	if pattern.EndDate != nil {
		if patternEnd := clockwin.DateOnly(*pattern.EndDate); patternEnd.Before(walkTo) {
			walkTo = patternEnd
		}
	}

	overrides := make(map[time.Time]*models.ScheduleException, len(excs))
	for i := range excs {
		if excs[i].Status != models.StatusActive {
			continue
		}
		overrides[clockwin.DateOnly(excs[i].ExceptionDate)] = &excs[i]
	}

	var result []models.Occurrence
	for day := walkFrom; !day.After(walkTo); day = day.AddDate(0, 0, 1) {
		if !pattern.HasWeekday(clockwin.WeekdayOf(day)) {
			continue
		}
		if !cadenceMatches(pattern, day) {
			continue
		}
		if _, overridden := overrides[day]; overridden {
			continue
		}
		result = append(result, models.Occurrence{
			Date:      day,
			StartTime: pattern.StartTime,
			EndTime:   pattern.EndTime,
		})
	}

	// rescheduled dates land wherever their alternative points, which may be
	// outside the base walk, so they are emitted in a separate pass bounded
	// only by the requested window
	for _, exc := range overrides {
		if exc.IsCancellation() {
			continue
		}
		baseDate := clockwin.DateOnly(exc.ExceptionDate)
		if !pattern.ContainsDate(baseDate) || !pattern.HasWeekday(clockwin.WeekdayOf(baseDate)) || !cadenceMatches(pattern, baseDate) {
			continue
		}
		altDate := clockwin.DateOnly(*exc.AlternativeDate)
		if altDate.Before(from) || altDate.After(to) {
			continue
		}
		occurrence := models.Occurrence{
			Date:          altDate,
			StartTime:     pattern.StartTime,
			EndTime:       pattern.EndTime,
			IsRescheduled: true,
			OriginalDate:  &baseDate,
			Reason:        exc.Reason,
		}
		if exc.AlternativeStart != nil {
			occurrence.StartTime = *exc.AlternativeStart
		}
		if exc.AlternativeEnd != nil {
			occurrence.EndTime = *exc.AlternativeEnd
		}
		result = append(result, occurrence)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result
}

// cadenceMatches applies the recurrence stride on top of the weekday set.
// DAILY, WEEKLY and CUSTOM fire on every matching weekday; BIWEEKLY fires on
// alternating calendar weeks counted from the pattern's start week; MONTHLY
// fires on the first matching weekday of each month.
func cadenceMatches(pattern *models.SchedulePattern, day time.Time) bool {
	switch pattern.Recurrence {
	case models.RecurrenceBiweekly:
		weeks := int(weekStart(day).Sub(weekStart(pattern.StartDate)).Hours() / (24 * 7))
		return weeks%2 == 0
	case models.RecurrenceMonthly:
		return day.Day() <= 7
	default:
		return true
	}
}

// weekStart returns the Sunday opening the calendar week containing d.
func weekStart(d time.Time) time.Time {
	d = clockwin.DateOnly(d)
	return d.AddDate(0, 0, -int(clockwin.WeekdayOf(d)))
}
