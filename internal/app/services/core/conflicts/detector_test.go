package conflicts

import (
	"context"
	"testing"
	"time"

	"campus-service/internal/app/contracts"
	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPeriodRepository struct {
	periods []models.TimetablePeriod
}

func (r *stubPeriodRepository) Insert(context.Context, *models.TimetablePeriod) error { return nil }
func (r *stubPeriodRepository) FindByID(context.Context, uuid.UUID) (*models.TimetablePeriod, error) {
	return nil, nil
}
func (r *stubPeriodRepository) FindByTimetableID(context.Context, uuid.UUID) ([]models.TimetablePeriod, error) {
	return nil, nil
}
func (r *stubPeriodRepository) FindActiveForFacility(_ context.Context, facilityID uuid.UUID, dayOfWeek clockwin.Weekday) ([]models.TimetablePeriod, error) {
	var result []models.TimetablePeriod
	for _, period := range r.periods {
		if period.FacilityID != nil && *period.FacilityID == facilityID && clockwin.Weekday(period.DayOfWeek) == dayOfWeek {
			result = append(result, period)
		}
	}
	return result, nil
}
func (r *stubPeriodRepository) FindActiveForAssignment(_ context.Context, assignmentID uuid.UUID, dayOfWeek clockwin.Weekday) ([]models.TimetablePeriod, error) {
	var result []models.TimetablePeriod
	for _, period := range r.periods {
		if period.AssignmentID == assignmentID && clockwin.Weekday(period.DayOfWeek) == dayOfWeek {
			result = append(result, period)
		}
	}
	return result, nil
}
func (r *stubPeriodRepository) Update(context.Context, *models.TimetablePeriod) error { return nil }
func (r *stubPeriodRepository) SoftDelete(context.Context, uuid.UUID) error           { return nil }
func (r *stubPeriodRepository) SoftDeleteByTimetableID(context.Context, uuid.UUID) error {
	return nil
}

func mondayPeriod(assignmentID uuid.UUID, facilityID *uuid.UUID, start, end string) models.TimetablePeriod {
	return models.TimetablePeriod{
		ID:           uuid.New(),
		TimetableID:  uuid.New(),
		DayOfWeek:    int(clockwin.Monday),
		StartTime:    start,
		EndTime:      end,
		Kind:         models.PeriodLesson,
		FacilityID:   facilityID,
		AssignmentID: assignmentID,
		Recurring:    true,
		Status:       models.StatusActive,
	}
}

func mustWindow(t *testing.T, start, end string) clockwin.Window {
	t.Helper()
	w, err := clockwin.ParseWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestDetect(t *testing.T) {
	ctx := context.Background()
	assignmentID := uuid.New()
	facilityID := uuid.New()

	repo := &stubPeriodRepository{periods: []models.TimetablePeriod{
		mondayPeriod(assignmentID, &facilityID, "09:00", "10:00"),
	}}
	detector := &conflictDetector{periods: repo, logger: zap.NewNop()}

	t.Run("detects assignment overlap", func(t *testing.T) {
		colliding, err := detector.Detect(ctx, models.ResourceTeacherAssignment, assignmentID, clockwin.Monday, mustWindow(t, "09:30", "10:30"), nil)
		require.NoError(t, err)
		assert.Len(t, colliding, 1)
	})

	t.Run("detects facility overlap", func(t *testing.T) {
		colliding, err := detector.Detect(ctx, models.ResourceFacility, facilityID, clockwin.Monday, mustWindow(t, "09:30", "10:30"), nil)
		require.NoError(t, err)
		assert.Len(t, colliding, 1)
	})

	t.Run("touching windows do not collide", func(t *testing.T) {
		colliding, err := detector.Detect(ctx, models.ResourceTeacherAssignment, assignmentID, clockwin.Monday, mustWindow(t, "10:00", "11:00"), nil)
		require.NoError(t, err)
		assert.Empty(t, colliding)
	})

	t.Run("other weekday is clear", func(t *testing.T) {
		colliding, err := detector.Detect(ctx, models.ResourceTeacherAssignment, assignmentID, clockwin.Tuesday, mustWindow(t, "09:00", "10:00"), nil)
		require.NoError(t, err)
		assert.Empty(t, colliding)
	})

	t.Run("other resource is clear", func(t *testing.T) {
		colliding, err := detector.Detect(ctx, models.ResourceTeacherAssignment, uuid.New(), clockwin.Monday, mustWindow(t, "09:00", "10:00"), nil)
		require.NoError(t, err)
		assert.Empty(t, colliding)
	})

	t.Run("excluded period skips self-comparison", func(t *testing.T) {
		self := repo.periods[0].ID
		colliding, err := detector.Detect(ctx, models.ResourceTeacherAssignment, assignmentID, clockwin.Monday, mustWindow(t, "09:00", "10:00"), &self)
		require.NoError(t, err)
		assert.Empty(t, colliding)
	})

	t.Run("rejects unknown resource kind", func(t *testing.T) {
		_, err := detector.Detect(ctx, models.ResourceKind("ROOM"), assignmentID, clockwin.Monday, mustWindow(t, "09:00", "10:00"), nil)
		require.Error(t, err)
	})
}

func TestDetect_ContainedWindow(t *testing.T) {
	ctx := context.Background()
	assignmentID := uuid.New()
	repo := &stubPeriodRepository{periods: []models.TimetablePeriod{
		mondayPeriod(assignmentID, nil, "08:00", "12:00"),
	}}
	detector := &conflictDetector{periods: repo, logger: zap.NewNop()}

	colliding, err := detector.Detect(ctx, models.ResourceTeacherAssignment, assignmentID, clockwin.Monday, mustWindow(t, "09:00", "10:00"), nil)
	require.NoError(t, err)
	assert.Len(t, colliding, 1)
}

func TestPreflight(t *testing.T) {
	ctx := context.Background()
	assignmentID := uuid.New()
	repo := &stubPeriodRepository{periods: []models.TimetablePeriod{
		mondayPeriod(assignmentID, nil, "09:00", "10:00"),
	}}
	detector := &conflictDetector{periods: repo, logger: zap.NewNop()}

	// two Mondays with the busy slot, one Tuesday without
	input := contracts.CheckConflictsInput{
		ResourceKind: models.ResourceTeacherAssignment,
		ResourceID:   assignmentID,
		Dates: []time.Time{
			clockwin.MustDate("2024-01-01"),
			clockwin.MustDate("2024-01-02"),
			clockwin.MustDate("2024-01-08"),
		},
		Window: mustWindow(t, "09:30", "10:30"),
	}

	results, err := detector.Preflight(ctx, input)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, clockwin.Monday, results[0].DayOfWeek)
	assert.Len(t, results[0].Conflicts, 1)
	assert.Equal(t, clockwin.Tuesday, results[1].DayOfWeek)
	assert.Empty(t, results[1].Conflicts)
	assert.Equal(t, clockwin.Monday, results[2].DayOfWeek)
	assert.Len(t, results[2].Conflicts, 1)

	for i, date := range input.Dates {
		assert.True(t, results[i].Date.Equal(date), "results keep input order")
	}
}
