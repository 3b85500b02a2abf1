package scheduling

import (
	"context"
	"testing"
	"time"

	"campus-service/internal/app/contracts"
	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/dto/requests"
	"campus-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTimetableRepository struct {
	timetables map[uuid.UUID]*models.Timetable
}

func newFakeTimetableRepository() *fakeTimetableRepository {
	return &fakeTimetableRepository{timetables: make(map[uuid.UUID]*models.Timetable)}
}

func (r *fakeTimetableRepository) Insert(_ context.Context, timetable *models.Timetable) error {
	timetable.ID = uuid.New()
	stored := *timetable
	r.timetables[timetable.ID] = &stored
	return nil
}

func (r *fakeTimetableRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Timetable, error) {
	stored, ok := r.timetables[id]
	if !ok || stored.Status != models.StatusActive {
		return nil, nil
	}
	found := *stored
	return &found, nil
}

func (r *fakeTimetableRepository) FindByPatternID(_ context.Context, patternID uuid.UUID) ([]models.Timetable, error) {
	var result []models.Timetable
	for _, stored := range r.timetables {
		if stored.PatternID != nil && *stored.PatternID == patternID && stored.Status == models.StatusActive {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakeTimetableRepository) Update(_ context.Context, timetable *models.Timetable) error {
	stored, ok := r.timetables[timetable.ID]
	if !ok || stored.Status != models.StatusActive {
		return exceptions.ErrTimetableNotFound(timetable.ID.String())
	}
	updated := *timetable
	r.timetables[timetable.ID] = &updated
	return nil
}

func (r *fakeTimetableRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	stored, ok := r.timetables[id]
	if !ok || stored.Status != models.StatusActive {
		return exceptions.ErrTimetableNotFound(id.String())
	}
	stored.Status = models.StatusDeleted
	return nil
}

type fakePeriodRepository struct {
	periods map[uuid.UUID]*models.TimetablePeriod
}

func newFakePeriodRepository() *fakePeriodRepository {
	return &fakePeriodRepository{periods: make(map[uuid.UUID]*models.TimetablePeriod)}
}

func (r *fakePeriodRepository) Insert(_ context.Context, period *models.TimetablePeriod) error {
	period.ID = uuid.New()
	stored := *period
	r.periods[period.ID] = &stored
	return nil
}

func (r *fakePeriodRepository) FindByID(_ context.Context, id uuid.UUID) (*models.TimetablePeriod, error) {
	stored, ok := r.periods[id]
	if !ok || stored.Status != models.StatusActive {
		return nil, nil
	}
	found := *stored
	return &found, nil
}

func (r *fakePeriodRepository) FindByTimetableID(_ context.Context, timetableID uuid.UUID) ([]models.TimetablePeriod, error) {
	var result []models.TimetablePeriod
	for _, stored := range r.periods {
		if stored.TimetableID == timetableID && stored.Status == models.StatusActive {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakePeriodRepository) FindActiveForFacility(_ context.Context, facilityID uuid.UUID, dayOfWeek clockwin.Weekday) ([]models.TimetablePeriod, error) {
	var result []models.TimetablePeriod
	for _, stored := range r.periods {
		if stored.Status == models.StatusActive && stored.FacilityID != nil && *stored.FacilityID == facilityID && clockwin.Weekday(stored.DayOfWeek) == dayOfWeek {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakePeriodRepository) FindActiveForAssignment(_ context.Context, assignmentID uuid.UUID, dayOfWeek clockwin.Weekday) ([]models.TimetablePeriod, error) {
	var result []models.TimetablePeriod
	for _, stored := range r.periods {
		if stored.Status == models.StatusActive && stored.AssignmentID == assignmentID && clockwin.Weekday(stored.DayOfWeek) == dayOfWeek {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakePeriodRepository) Update(_ context.Context, period *models.TimetablePeriod) error {
	stored, ok := r.periods[period.ID]
	if !ok || stored.Status != models.StatusActive {
		return exceptions.ErrPeriodNotFound(period.ID.String())
	}
	updated := *period
	r.periods[period.ID] = &updated
	return nil
}

func (r *fakePeriodRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	stored, ok := r.periods[id]
	if !ok || stored.Status != models.StatusActive {
		return exceptions.ErrPeriodNotFound(id.String())
	}
	stored.Status = models.StatusDeleted
	return nil
}

func (r *fakePeriodRepository) SoftDeleteByTimetableID(_ context.Context, timetableID uuid.UUID) error {
	for _, stored := range r.periods {
		if stored.TimetableID == timetableID && stored.Status == models.StatusActive {
			stored.Status = models.StatusDeleted
		}
	}
	return nil
}

type fakeDetector struct {
	periods *fakePeriodRepository
}

func (d *fakeDetector) Detect(ctx context.Context, kind models.ResourceKind, resourceID uuid.UUID, dayOfWeek clockwin.Weekday, window clockwin.Window, excludePeriodID *uuid.UUID) ([]models.TimetablePeriod, error) {
	var candidates []models.TimetablePeriod
	var err error
	switch kind {
	case models.ResourceFacility:
		candidates, err = d.periods.FindActiveForFacility(ctx, resourceID, dayOfWeek)
	case models.ResourceTeacherAssignment:
		candidates, err = d.periods.FindActiveForAssignment(ctx, resourceID, dayOfWeek)
	default:
		return nil, exceptions.ErrInvalidResourceKind(nil)
	}
	if err != nil {
		return nil, err
	}
	var colliding []models.TimetablePeriod
	for _, candidate := range candidates {
		if excludePeriodID != nil && candidate.ID == *excludePeriodID {
			continue
		}
		if window.Overlaps(candidate.Window()) {
			colliding = append(colliding, candidate)
		}
	}
	return colliding, nil
}

func (d *fakeDetector) Preflight(ctx context.Context, input contracts.CheckConflictsInput) ([]contracts.DateConflicts, error) {
	results := make([]contracts.DateConflicts, 0, len(input.Dates))
	for _, date := range input.Dates {
		dayOfWeek := clockwin.WeekdayOf(date)
		colliding, err := d.Detect(ctx, input.ResourceKind, input.ResourceID, dayOfWeek, input.Window, input.ExcludePeriodID)
		if err != nil {
			return nil, err
		}
		results = append(results, contracts.DateConflicts{Date: date, DayOfWeek: dayOfWeek, Conflicts: colliding})
	}
	return results, nil
}

type fakeLocker struct {
	busyKeys map[string]bool
	acquired []string
	released []string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{busyKeys: make(map[string]bool)}
}

func (l *fakeLocker) TryLock(_ context.Context, key string, _ time.Duration) (bool, string, error) {
	if l.busyKeys[key] {
		return false, "", nil
	}
	l.acquired = append(l.acquired, key)
	return true, uuid.NewString(), nil
}

func (l *fakeLocker) Unlock(_ context.Context, key, _ string) error {
	l.released = append(l.released, key)
	return nil
}

func (l *fakeLocker) Refresh(context.Context, string, string, time.Duration) error { return nil }

type fixture struct {
	usecase    *schedulingUsecase
	timetables *fakeTimetableRepository
	periods    *fakePeriodRepository
	locker     *fakeLocker
}

func newFixture() *fixture {
	timetables := newFakeTimetableRepository()
	periods := newFakePeriodRepository()
	locker := newFakeLocker()
	usecase := &schedulingUsecase{
		timetables: timetables,
		periods:    periods,
		detector:   &fakeDetector{periods: periods},
		locker:     locker,
		logger:     zap.NewNop(),
		lockTTL:    10 * time.Second,
	}
	return &fixture{usecase: usecase, timetables: timetables, periods: periods, locker: locker}
}

func (f *fixture) createTimetable(t *testing.T) *models.Timetable {
	t.Helper()
	timetable, err := f.usecase.CreateTimetable(context.Background(), requests.CreateTimetable{
		ClassSectionID:   uuid.NewString(),
		CourseOfferingID: uuid.NewString(),
		StartDate:        "2024-01-01",
		EndDate:          "2024-06-30",
	})
	require.NoError(t, err)
	return timetable
}

func lessonRequest(assignmentID string, facilityID *string) requests.CreatePeriod {
	return requests.CreatePeriod{
		DayOfWeek:    "MONDAY",
		StartTime:    "09:00",
		EndTime:      "10:00",
		Kind:         "LESSON",
		FacilityID:   facilityID,
		AssignmentID: assignmentID,
		Recurring:    true,
	}
}

func TestSchedulingUsecase_Timetables(t *testing.T) {
	ctx := context.Background()

	t.Run("create and fetch round-trip", func(t *testing.T) {
		f := newFixture()
		created := f.createTimetable(t)

		found, err := f.usecase.GetTimetable(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ClassSectionID, found.ClassSectionID)
	})

	t.Run("rejects inverted term range", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.CreateTimetable(ctx, requests.CreateTimetable{
			ClassSectionID:   uuid.NewString(),
			CourseOfferingID: uuid.NewString(),
			StartDate:        "2024-06-30",
			EndDate:          "2024-01-01",
		})
		require.Error(t, err)
	})

	t.Run("update merging keeps range valid", func(t *testing.T) {
		f := newFixture()
		created := f.createTimetable(t)

		badEnd := "2023-01-01"
		_, err := f.usecase.UpdateTimetable(ctx, created.ID, requests.UpdateTimetable{EndDate: &badEnd})
		require.Error(t, err)
	})

	t.Run("delete cascades to periods", func(t *testing.T) {
		f := newFixture()
		created := f.createTimetable(t)

		outcome, err := f.usecase.CreatePeriod(ctx, created.ID, lessonRequest(uuid.NewString(), nil))
		require.NoError(t, err)
		require.NotNil(t, outcome.Period)

		require.NoError(t, f.usecase.DeleteTimetable(ctx, created.ID))

		_, err = f.usecase.GetTimetable(ctx, created.ID)
		require.Error(t, err)
		assert.Equal(t, models.StatusDeleted, f.periods.periods[outcome.Period.ID].Status)
	})
}

func TestSchedulingUsecase_CreatePeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("commits a clear period", func(t *testing.T) {
		f := newFixture()
		timetable := f.createTimetable(t)

		outcome, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(uuid.NewString(), nil))
		require.NoError(t, err)
		require.NotNil(t, outcome.Period)
		assert.Empty(t, outcome.Conflicts)
		assert.Equal(t, int(clockwin.Monday), outcome.Period.DayOfWeek)

		assert.Len(t, f.locker.acquired, 1)
		assert.Equal(t, f.locker.acquired, f.locker.released)
	})

	t.Run("rejects assignment double-booking", func(t *testing.T) {
		f := newFixture()
		timetable := f.createTimetable(t)
		assignmentID := uuid.NewString()

		first, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(assignmentID, nil))
		require.NoError(t, err)
		require.NotNil(t, first.Period)

		request := lessonRequest(assignmentID, nil)
		request.StartTime = "09:30"
		request.EndTime = "10:30"
		second, err := f.usecase.CreatePeriod(ctx, timetable.ID, request)
		require.NoError(t, err)
		assert.Nil(t, second.Period)
		require.Len(t, second.Conflicts, 1)
		assert.Equal(t, first.Period.ID, second.Conflicts[0].ID)
	})

	t.Run("rejects facility double-booking across assignments", func(t *testing.T) {
		f := newFixture()
		timetable := f.createTimetable(t)
		facilityID := uuid.NewString()

		first, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(uuid.NewString(), &facilityID))
		require.NoError(t, err)
		require.NotNil(t, first.Period)

		second, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(uuid.NewString(), &facilityID))
		require.NoError(t, err)
		assert.Nil(t, second.Period)
		assert.Len(t, second.Conflicts, 1)
	})

	t.Run("back-to-back windows commit", func(t *testing.T) {
		f := newFixture()
		timetable := f.createTimetable(t)
		assignmentID := uuid.NewString()

		_, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(assignmentID, nil))
		require.NoError(t, err)

		request := lessonRequest(assignmentID, nil)
		request.StartTime = "10:00"
		request.EndTime = "11:00"
		outcome, err := f.usecase.CreatePeriod(ctx, timetable.ID, request)
		require.NoError(t, err)
		assert.NotNil(t, outcome.Period)
	})

	t.Run("busy lock rejects the commit", func(t *testing.T) {
		f := newFixture()
		timetable := f.createTimetable(t)
		assignmentID := uuid.New()

		f.locker.busyKeys["campus:schedlock:TEACHER_ASSIGNMENT:"+assignmentID.String()+":1"] = true

		_, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(assignmentID.String(), nil))
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, 409, customErr.StatusCode)
		assert.Empty(t, f.periods.periods)
	})

	t.Run("busy facility lock releases the assignment lock", func(t *testing.T) {
		f := newFixture()
		timetable := f.createTimetable(t)
		facilityID := uuid.New()

		f.locker.busyKeys["campus:schedlock:FACILITY:"+facilityID.String()+":1"] = true

		facility := facilityID.String()
		_, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(uuid.NewString(), &facility))
		require.Error(t, err)
		assert.Len(t, f.locker.acquired, 1)
		assert.Equal(t, f.locker.acquired, f.locker.released)
	})

	t.Run("unknown timetable", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.CreatePeriod(ctx, uuid.New(), lessonRequest(uuid.NewString(), nil))
		require.Error(t, err)
	})
}

func TestSchedulingUsecase_UpdatePeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("moving a period does not collide with itself", func(t *testing.T) {
		f := newFixture()
		timetable := f.createTimetable(t)

		outcome, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(uuid.NewString(), nil))
		require.NoError(t, err)

		newStart := "09:30"
		newEnd := "10:30"
		moved, err := f.usecase.UpdatePeriod(ctx, outcome.Period.ID, requests.UpdatePeriod{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		require.NoError(t, err)
		require.NotNil(t, moved.Period)
		assert.Equal(t, "09:30", moved.Period.StartTime)
	})

	t.Run("moving onto another period is rejected", func(t *testing.T) {
		f := newFixture()
		timetable := f.createTimetable(t)
		assignmentID := uuid.NewString()

		_, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(assignmentID, nil))
		require.NoError(t, err)

		afternoon := lessonRequest(assignmentID, nil)
		afternoon.StartTime = "13:00"
		afternoon.EndTime = "14:00"
		second, err := f.usecase.CreatePeriod(ctx, timetable.ID, afternoon)
		require.NoError(t, err)

		clashStart := "09:30"
		clashEnd := "10:30"
		moved, err := f.usecase.UpdatePeriod(ctx, second.Period.ID, requests.UpdatePeriod{
			StartTime: &clashStart,
			EndTime:   &clashEnd,
		})
		require.NoError(t, err)
		assert.Nil(t, moved.Period)
		assert.Len(t, moved.Conflicts, 1)
	})

	t.Run("partial update collapsing the window is rejected", func(t *testing.T) {
		f := newFixture()
		timetable := f.createTimetable(t)

		outcome, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(uuid.NewString(), nil))
		require.NoError(t, err)

		badStart := "11:00"
		_, err = f.usecase.UpdatePeriod(ctx, outcome.Period.ID, requests.UpdatePeriod{StartTime: &badStart})
		require.Error(t, err)
	})

	t.Run("unknown period", func(t *testing.T) {
		f := newFixture()
		newStart := "09:30"
		_, err := f.usecase.UpdatePeriod(ctx, uuid.New(), requests.UpdatePeriod{StartTime: &newStart})
		require.Error(t, err)
	})
}

func TestSchedulingUsecase_CheckConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	timetable := f.createTimetable(t)
	assignmentID := uuid.NewString()

	_, err := f.usecase.CreatePeriod(ctx, timetable.ID, lessonRequest(assignmentID, nil))
	require.NoError(t, err)

	results, err := f.usecase.CheckConflicts(ctx, requests.CheckConflicts{
		ResourceKind: "TEACHER_ASSIGNMENT",
		ResourceID:   assignmentID,
		Dates:        []string{"2024-01-01", "2024-01-02"},
		StartTime:    "09:30",
		EndTime:      "10:30",
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Len(t, results[0].Conflicts, 1)
	assert.Empty(t, results[1].Conflicts)
}
