package occurrences

import (
	"context"
	"strconv"
	"testing"
	"time"

	"campus-service/internal/app/contracts"
	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPatternRepository struct {
	pattern        *models.SchedulePattern
	excs           []models.ScheduleException
	exceptionReads int
}

func (r *stubPatternRepository) Insert(context.Context, *models.SchedulePattern) error { return nil }
func (r *stubPatternRepository) FindByID(_ context.Context, id uuid.UUID) (*models.SchedulePattern, error) {
	if r.pattern == nil || r.pattern.ID != id {
		return nil, nil
	}
	return r.pattern, nil
}
func (r *stubPatternRepository) List(context.Context, requests.ListPatterns) ([]models.SchedulePattern, int, error) {
	return nil, 0, nil
}
func (r *stubPatternRepository) Update(context.Context, *models.SchedulePattern) error { return nil }
func (r *stubPatternRepository) SoftDelete(context.Context, uuid.UUID) error           { return nil }
func (r *stubPatternRepository) InsertException(context.Context, *models.ScheduleException) error {
	return nil
}
func (r *stubPatternRepository) FindExceptionByID(context.Context, uuid.UUID) (*models.ScheduleException, error) {
	return nil, nil
}
func (r *stubPatternRepository) FindExceptionsByPatternID(context.Context, uuid.UUID) ([]models.ScheduleException, error) {
	r.exceptionReads++
	return r.excs, nil
}
func (r *stubPatternRepository) UpdateException(context.Context, *models.ScheduleException) error {
	return nil
}
func (r *stubPatternRepository) SoftDeleteException(context.Context, uuid.UUID) error { return nil }

type memoryRedisRepository struct {
	values map[string]string
}

func newMemoryRedisRepository() *memoryRedisRepository {
	return &memoryRedisRepository{values: make(map[string]string)}
}

func (r *memoryRedisRepository) Delete(_ context.Context, key string) error {
	delete(r.values, key)
	return nil
}
func (r *memoryRedisRepository) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(raw)
	return nil
}
func (r *memoryRedisRepository) Get(_ context.Context, key string) (string, error) {
	return r.values[key], nil
}
func (r *memoryRedisRepository) Increment(_ context.Context, key string) (int64, error) {
	current, _ := strconv.ParseInt(r.values[key], 10, 64)
	current++
	r.values[key] = strconv.FormatInt(current, 10)
	return current, nil
}
func (r *memoryRedisRepository) TrySetNX(context.Context, string, interface{}, time.Duration) (bool, error) {
	return true, nil
}
func (r *memoryRedisRepository) Expire(context.Context, string, time.Duration) error { return nil }

func newTestOccurrenceUsecase(repo contracts.PatternRepository, redisRepo contracts.RedisRepository) *occurrenceUsecase {
	return &occurrenceUsecase{
		patterns:  repo,
		redisRepo: redisRepo,
		logger:    zap.NewNop(),
		cacheTTL:  time.Minute,
	}
}

func TestGenerateOccurrences_NotFound(t *testing.T) {
	usecase := newTestOccurrenceUsecase(&stubPatternRepository{}, newMemoryRedisRepository())

	_, err := usecase.GenerateOccurrences(context.Background(), uuid.New(), clockwin.MustDate("2024-01-01"), clockwin.MustDate("2024-01-31"))
	require.Error(t, err)
}

func TestGenerateOccurrences_InvertedWindow(t *testing.T) {
	usecase := newTestOccurrenceUsecase(&stubPatternRepository{}, newMemoryRedisRepository())

	_, err := usecase.GenerateOccurrences(context.Background(), uuid.New(), clockwin.MustDate("2024-01-31"), clockwin.MustDate("2024-01-01"))
	require.Error(t, err)
}

func TestGenerateOccurrences_CachesExpansion(t *testing.T) {
	ctx := context.Background()
	pattern := mondayMorningPattern()
	pattern.ID = uuid.New()
	repo := &stubPatternRepository{pattern: pattern}
	redisRepo := newMemoryRedisRepository()
	usecase := newTestOccurrenceUsecase(repo, redisRepo)

	first, err := usecase.GenerateOccurrences(ctx, pattern.ID, clockwin.MustDate("2024-01-01"), clockwin.MustDate("2024-01-31"))
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Equal(t, 1, repo.exceptionReads)

	second, err := usecase.GenerateOccurrences(ctx, pattern.ID, clockwin.MustDate("2024-01-01"), clockwin.MustDate("2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, dates(first), dates(second))
	assert.Equal(t, 1, repo.exceptionReads, "second read should come from cache")
}

func TestGenerateOccurrences_GenerationBumpRetiresCache(t *testing.T) {
	ctx := context.Background()
	pattern := mondayMorningPattern()
	pattern.ID = uuid.New()
	repo := &stubPatternRepository{pattern: pattern}
	redisRepo := newMemoryRedisRepository()
	usecase := newTestOccurrenceUsecase(repo, redisRepo)

	_, err := usecase.GenerateOccurrences(ctx, pattern.ID, clockwin.MustDate("2024-01-01"), clockwin.MustDate("2024-01-31"))
	require.NoError(t, err)

	// simulate a pattern mutation: drop the weekday set and bump the
	// generation the way the pattern usecase does
	pattern.DaysOfWeek = pq.Int64Array{int64(clockwin.Friday)}
	_, err = redisRepo.Increment(ctx, "campus:occgen:"+pattern.ID.String())
	require.NoError(t, err)

	refreshed, err := usecase.GenerateOccurrences(ctx, pattern.ID, clockwin.MustDate("2024-01-01"), clockwin.MustDate("2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-05", "2024-01-12", "2024-01-19", "2024-01-26"}, dates(refreshed))
	assert.Equal(t, 2, repo.exceptionReads)
}
