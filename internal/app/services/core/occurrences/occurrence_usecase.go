package occurrences

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"campus-service/internal/app/contracts"
	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/constvars"
	"campus-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type occurrenceUsecase struct {
	patterns  contracts.PatternRepository
	redisRepo contracts.RedisRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

var (
	occurrenceUsecaseInstance contracts.OccurrenceUsecase
	onceOccurrenceUsecase     sync.Once
)

func NewOccurrenceUsecase(
	patterns contracts.PatternRepository,
	redisRepo contracts.RedisRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) contracts.OccurrenceUsecase {
	onceOccurrenceUsecase.Do(func() {
		occurrenceUsecaseInstance = &occurrenceUsecase{
			patterns:  patterns,
			redisRepo: redisRepo,
			logger:    logger,
			cacheTTL:  cacheTTL,
		}
	})
	return occurrenceUsecaseInstance
}

func (u *occurrenceUsecase) GenerateOccurrences(ctx context.Context, patternID uuid.UUID, from, to time.Time) ([]models.Occurrence, error) {
	if to.Before(from) {
		return nil, exceptions.ErrInvalidDateRange()
	}

	pattern, err := u.patterns.FindByID(ctx, patternID)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, exceptions.ErrPatternNotFound(patternID.String())
	}

	cacheKey := u.cacheKey(ctx, patternID, from, to)
	if cached, ok := u.readCache(ctx, cacheKey); ok {
		return cached, nil
	}

	excs, err := u.patterns.FindExceptionsByPatternID(ctx, patternID)
	if err != nil {
		return nil, err
	}

	result := expand(pattern, excs, from, to)

	if err := u.redisRepo.Set(ctx, cacheKey, result, u.cacheTTL); err != nil {
		u.logger.Warn("failed to cache occurrence expansion",
			zap.String(constvars.LoggingPatternIDKey, patternID.String()),
			zap.Error(err),
		)
	}
	return result, nil
}

// cacheKey embeds the pattern's current cache generation, so mutations
// retire stale expansions by bumping the counter instead of scanning keys.
func (u *occurrenceUsecase) cacheKey(ctx context.Context, patternID uuid.UUID, from, to time.Time) string {
	var generation int64
	raw, err := u.redisRepo.Get(ctx, fmt.Sprintf(constvars.RedisKeyOccurrenceGenerationFmt, patternID))
	if err == nil && raw != "" {
		if parsed, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
			generation = parsed
		}
	}
	return fmt.Sprintf(
		constvars.RedisKeyOccurrenceCacheFmt,
		patternID,
		generation,
		from.Format(clockwin.DateLayout),
		to.Format(clockwin.DateLayout),
	)
}

func (u *occurrenceUsecase) readCache(ctx context.Context, key string) ([]models.Occurrence, bool) {
	raw, err := u.redisRepo.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}
	var cached []models.Occurrence
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		u.logger.Warn("discarding malformed occurrence cache entry",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, false
	}
	return cached, true
}
