package patterns

import (
	"context"
	"testing"
	"time"

	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/dto/requests"
	"campus-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePatternRepository struct {
	patterns   map[uuid.UUID]*models.SchedulePattern
	exceptions map[uuid.UUID]*models.ScheduleException
}

func newFakePatternRepository() *fakePatternRepository {
	return &fakePatternRepository{
		patterns:   make(map[uuid.UUID]*models.SchedulePattern),
		exceptions: make(map[uuid.UUID]*models.ScheduleException),
	}
}

func (r *fakePatternRepository) Insert(_ context.Context, pattern *models.SchedulePattern) error {
	pattern.ID = uuid.New()
	pattern.CreatedAt = time.Now()
	pattern.UpdatedAt = pattern.CreatedAt
	stored := *pattern
	r.patterns[pattern.ID] = &stored
	return nil
}

func (r *fakePatternRepository) FindByID(_ context.Context, id uuid.UUID) (*models.SchedulePattern, error) {
	stored, ok := r.patterns[id]
	if !ok || stored.Status != models.StatusActive {
		return nil, nil
	}
	found := *stored
	return &found, nil
}

func (r *fakePatternRepository) List(_ context.Context, filter requests.ListPatterns) ([]models.SchedulePattern, int, error) {
	var result []models.SchedulePattern
	for _, stored := range r.patterns {
		if stored.Status != models.StatusActive {
			continue
		}
		if filter.Recurrence != "" && string(stored.Recurrence) != filter.Recurrence {
			continue
		}
		result = append(result, *stored)
	}
	return result, len(result), nil
}

func (r *fakePatternRepository) Update(_ context.Context, pattern *models.SchedulePattern) error {
	stored, ok := r.patterns[pattern.ID]
	if !ok || stored.Status != models.StatusActive {
		return exceptions.ErrPatternNotFound(pattern.ID.String())
	}
	pattern.UpdatedAt = time.Now()
	updated := *pattern
	r.patterns[pattern.ID] = &updated
	return nil
}

func (r *fakePatternRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	stored, ok := r.patterns[id]
	if !ok || stored.Status != models.StatusActive {
		return exceptions.ErrPatternNotFound(id.String())
	}
	stored.Status = models.StatusDeleted
	return nil
}

func (r *fakePatternRepository) InsertException(_ context.Context, exception *models.ScheduleException) error {
	exception.ID = uuid.New()
	stored := *exception
	r.exceptions[exception.ID] = &stored
	return nil
}

func (r *fakePatternRepository) FindExceptionByID(_ context.Context, id uuid.UUID) (*models.ScheduleException, error) {
	stored, ok := r.exceptions[id]
	if !ok || stored.Status != models.StatusActive {
		return nil, nil
	}
	found := *stored
	return &found, nil
}

func (r *fakePatternRepository) FindExceptionsByPatternID(_ context.Context, patternID uuid.UUID) ([]models.ScheduleException, error) {
	var result []models.ScheduleException
	for _, stored := range r.exceptions {
		if stored.PatternID == patternID && stored.Status == models.StatusActive {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakePatternRepository) UpdateException(_ context.Context, exception *models.ScheduleException) error {
	if _, ok := r.exceptions[exception.ID]; !ok {
		return exceptions.ErrExceptionNotFound(exception.ID.String())
	}
	updated := *exception
	r.exceptions[exception.ID] = &updated
	return nil
}

func (r *fakePatternRepository) SoftDeleteException(_ context.Context, id uuid.UUID) error {
	stored, ok := r.exceptions[id]
	if !ok || stored.Status != models.StatusActive {
		return exceptions.ErrExceptionNotFound(id.String())
	}
	stored.Status = models.StatusDeleted
	return nil
}

type fakeTimetableRepository struct {
	byPattern map[uuid.UUID][]models.Timetable
}

func (r *fakeTimetableRepository) Insert(context.Context, *models.Timetable) error { return nil }
func (r *fakeTimetableRepository) FindByID(context.Context, uuid.UUID) (*models.Timetable, error) {
	return nil, nil
}
func (r *fakeTimetableRepository) FindByPatternID(_ context.Context, patternID uuid.UUID) ([]models.Timetable, error) {
	return r.byPattern[patternID], nil
}
func (r *fakeTimetableRepository) Update(context.Context, *models.Timetable) error { return nil }
func (r *fakeTimetableRepository) SoftDelete(context.Context, uuid.UUID) error     { return nil }

type fakeRedisRepository struct {
	counters map[string]int64
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{counters: make(map[string]int64)}
}

func (r *fakeRedisRepository) Delete(context.Context, string) error { return nil }
func (r *fakeRedisRepository) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (r *fakeRedisRepository) Get(context.Context, string) (string, error) { return "", nil }
func (r *fakeRedisRepository) Increment(_ context.Context, key string) (int64, error) {
	r.counters[key]++
	return r.counters[key], nil
}
func (r *fakeRedisRepository) TrySetNX(context.Context, string, interface{}, time.Duration) (bool, error) {
	return true, nil
}
func (r *fakeRedisRepository) Expire(context.Context, string, time.Duration) error { return nil }

func (r *fakeRedisRepository) totalIncrements() int64 {
	var total int64
	for _, count := range r.counters {
		total += count
	}
	return total
}

func newTestPatternUsecase() (*patternUsecase, *fakePatternRepository, *fakeRedisRepository) {
	repo := newFakePatternRepository()
	redisRepo := newFakeRedisRepository()
	usecase := &patternUsecase{
		patterns:   repo,
		timetables: &fakeTimetableRepository{byPattern: make(map[uuid.UUID][]models.Timetable)},
		redisRepo:  redisRepo,
		logger:     zap.NewNop(),
	}
	return usecase, repo, redisRepo
}

func validCreateRequest() requests.CreatePattern {
	return requests.CreatePattern{
		Name:       "Algebra lecture",
		DaysOfWeek: []string{"MONDAY", "WEDNESDAY"},
		StartTime:  "09:00",
		EndTime:    "10:30",
		Recurrence: "WEEKLY",
		StartDate:  "2024-01-01",
	}
}

func TestPatternUsecase_CreatePattern(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active pattern", func(t *testing.T) {
		usecase, repo, _ := newTestPatternUsecase()

		created, err := usecase.CreatePattern(ctx, validCreateRequest())
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, models.StatusActive, created.Status)
		assert.ElementsMatch(t, []int64{1, 3}, []int64(created.DaysOfWeek))
		assert.Len(t, repo.patterns, 1)
	})

	t.Run("rejects end time before start time", func(t *testing.T) {
		usecase, _, _ := newTestPatternUsecase()

		request := validCreateRequest()
		request.StartTime = "14:00"
		request.EndTime = "13:00"

		_, err := usecase.CreatePattern(ctx, request)
		require.Error(t, err)
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		usecase, _, _ := newTestPatternUsecase()

		request := validCreateRequest()
		endDate := "2023-12-31"
		request.EndDate = &endDate

		_, err := usecase.CreatePattern(ctx, request)
		require.Error(t, err)
	})

	t.Run("rejects unknown weekday symbol", func(t *testing.T) {
		usecase, _, _ := newTestPatternUsecase()

		request := validCreateRequest()
		request.DaysOfWeek = []string{"FUNDAY"}

		_, err := usecase.CreatePattern(ctx, request)
		require.Error(t, err)
	})

	t.Run("deduplicates repeated weekdays", func(t *testing.T) {
		usecase, _, _ := newTestPatternUsecase()

		request := validCreateRequest()
		request.DaysOfWeek = []string{"MONDAY", "MONDAY", "FRIDAY"}

		created, err := usecase.CreatePattern(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 5}, []int64(created.DaysOfWeek))
	})
}

func TestPatternUsecase_GetPattern(t *testing.T) {
	ctx := context.Background()

	t.Run("returns not found for unknown id", func(t *testing.T) {
		usecase, _, _ := newTestPatternUsecase()

		_, err := usecase.GetPattern(ctx, uuid.New())
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, 404, customErr.StatusCode)
	})

	t.Run("attaches active exceptions", func(t *testing.T) {
		usecase, _, _ := newTestPatternUsecase()

		created, err := usecase.CreatePattern(ctx, validCreateRequest())
		require.NoError(t, err)

		_, err = usecase.CreateException(ctx, created.ID, requests.CreateException{
			ExceptionDate: "2024-01-08",
		})
		require.NoError(t, err)

		found, err := usecase.GetPattern(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, found.Exceptions, 1)
		assert.True(t, found.Exceptions[0].IsCancellation())
	})
}

func TestPatternUsecase_UpdatePattern(t *testing.T) {
	ctx := context.Background()

	t.Run("merges partial update and bumps cache generation", func(t *testing.T) {
		usecase, _, redisRepo := newTestPatternUsecase()

		created, err := usecase.CreatePattern(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.Zero(t, redisRepo.totalIncrements())

		newName := "Algebra lecture, spring"
		updated, err := usecase.UpdatePattern(ctx, created.ID, requests.UpdatePattern{Name: &newName})
		require.NoError(t, err)

		assert.Equal(t, newName, updated.Name)
		assert.Equal(t, created.StartTime, updated.StartTime)
		assert.Equal(t, int64(1), redisRepo.totalIncrements())
	})

	t.Run("rejects update that inverts the stored window", func(t *testing.T) {
		usecase, _, _ := newTestPatternUsecase()

		created, err := usecase.CreatePattern(ctx, validCreateRequest())
		require.NoError(t, err)

		// stored end is 10:30, moving start alone past it must fail
		badStart := "11:00"
		_, err = usecase.UpdatePattern(ctx, created.ID, requests.UpdatePattern{StartTime: &badStart})
		require.Error(t, err)
	})

	t.Run("rejects update of a deleted pattern", func(t *testing.T) {
		usecase, _, _ := newTestPatternUsecase()

		created, err := usecase.CreatePattern(ctx, validCreateRequest())
		require.NoError(t, err)
		require.NoError(t, usecase.DeletePattern(ctx, created.ID))

		newName := "after delete"
		_, err = usecase.UpdatePattern(ctx, created.ID, requests.UpdatePattern{Name: &newName})
		require.Error(t, err)
	})
}

func TestPatternUsecase_DeletePattern(t *testing.T) {
	ctx := context.Background()
	usecase, repo, redisRepo := newTestPatternUsecase()

	created, err := usecase.CreatePattern(ctx, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, usecase.DeletePattern(ctx, created.ID))

	assert.Equal(t, models.StatusDeleted, repo.patterns[created.ID].Status)
	assert.Equal(t, int64(1), redisRepo.totalIncrements())

	_, err = usecase.GetPattern(ctx, created.ID)
	require.Error(t, err)
}

func TestPatternUsecase_Exceptions(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*patternUsecase, *fakeRedisRepository, *models.SchedulePattern) {
		usecase, _, redisRepo := newTestPatternUsecase()
		request := validCreateRequest()
		endDate := "2024-03-31"
		request.EndDate = &endDate
		created, err := usecase.CreatePattern(ctx, request)
		require.NoError(t, err)
		return usecase, redisRepo, created
	}

	t.Run("creates a reschedule with its own window", func(t *testing.T) {
		usecase, redisRepo, pattern := setup(t)

		altDate := "2024-01-09"
		altStart := "11:00"
		altEnd := "12:00"
		exception, err := usecase.CreateException(ctx, pattern.ID, requests.CreateException{
			ExceptionDate:    "2024-01-08",
			AlternativeDate:  &altDate,
			AlternativeStart: &altStart,
			AlternativeEnd:   &altEnd,
		})
		require.NoError(t, err)

		assert.False(t, exception.IsCancellation())
		assert.Equal(t, int64(1), redisRepo.totalIncrements())
	})

	t.Run("rejects exception date outside the pattern range", func(t *testing.T) {
		usecase, _, pattern := setup(t)

		_, err := usecase.CreateException(ctx, pattern.ID, requests.CreateException{
			ExceptionDate: "2024-04-15",
		})
		require.Error(t, err)
	})

	t.Run("rejects alternative date outside the pattern range", func(t *testing.T) {
		usecase, _, pattern := setup(t)

		altDate := "2024-04-15"
		_, err := usecase.CreateException(ctx, pattern.ID, requests.CreateException{
			ExceptionDate:   "2024-01-08",
			AlternativeDate: &altDate,
		})
		require.Error(t, err)
	})

	t.Run("rejects alternative window that collapses", func(t *testing.T) {
		usecase, _, pattern := setup(t)

		// pattern start is 09:00; an alternative end before it with the
		// start side borrowed must fail
		altDate := "2024-01-09"
		altEnd := "08:00"
		_, err := usecase.CreateException(ctx, pattern.ID, requests.CreateException{
			ExceptionDate:   "2024-01-08",
			AlternativeDate: &altDate,
			AlternativeEnd:  &altEnd,
		})
		require.Error(t, err)
	})

	t.Run("updates and deletes an exception", func(t *testing.T) {
		usecase, redisRepo, pattern := setup(t)

		exception, err := usecase.CreateException(ctx, pattern.ID, requests.CreateException{
			ExceptionDate: "2024-01-08",
		})
		require.NoError(t, err)

		reason := "public holiday"
		updated, err := usecase.UpdateException(ctx, exception.ID, requests.UpdateException{Reason: &reason})
		require.NoError(t, err)
		require.NotNil(t, updated.Reason)
		assert.Equal(t, reason, *updated.Reason)

		require.NoError(t, usecase.DeleteException(ctx, exception.ID))
		assert.Equal(t, int64(3), redisRepo.totalIncrements())

		err = usecase.DeleteException(ctx, exception.ID)
		require.Error(t, err)
	})

	t.Run("rejects exception for unknown pattern", func(t *testing.T) {
		usecase, _, _ := newTestPatternUsecase()

		_, err := usecase.CreateException(ctx, uuid.New(), requests.CreateException{
			ExceptionDate: "2024-01-08",
		})
		require.Error(t, err)
	})
}

func TestSchedulePattern_ContainsDate(t *testing.T) {
	endDate := clockwin.MustDate("2024-03-31")
	pattern := models.SchedulePattern{
		StartDate: clockwin.MustDate("2024-01-01"),
		EndDate:   &endDate,
	}

	assert.True(t, pattern.ContainsDate(clockwin.MustDate("2024-01-01")))
	assert.True(t, pattern.ContainsDate(clockwin.MustDate("2024-03-31")))
	assert.False(t, pattern.ContainsDate(clockwin.MustDate("2023-12-31")))
	assert.False(t, pattern.ContainsDate(clockwin.MustDate("2024-04-01")))

	openEnded := models.SchedulePattern{StartDate: clockwin.MustDate("2024-01-01")}
	assert.True(t, openEnded.ContainsDate(clockwin.MustDate("2030-06-15")))
}
