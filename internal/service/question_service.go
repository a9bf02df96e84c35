package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rohitmodi970/casual-quizing/internal/trivia"
)

const questionCacheKey = "quiz:questions:batch"

// QuestionSource fetches a normalized question batch. *trivia.Client is the
// production implementation.
type QuestionSource interface {
	Fetch(ctx context.Context) ([]trivia.Question, error)
}

// QuestionService serves question batches through a short-TTL Redis cache,
// shielding the upstream trivia provider from per-client rate limits.
type QuestionService struct {
	source QuestionSource
	rdb    *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(source QuestionSource, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		source: source,
		rdb:    rdb,
		ttl:    ttl,
		log:    log.With().Str("component", "question_service").Logger(),
	}
}

// GetBatch returns a question batch, served from cache when fresh. A cache
// read or write failure degrades to a direct fetch; only an upstream fetch
// failure is surfaced.
func (s *QuestionService) GetBatch(ctx context.Context) ([]trivia.Question, error) {
	cached, err := s.rdb.Get(ctx, questionCacheKey).Result()
	if err == nil {
		var questions []trivia.Question
		if jsonErr := json.Unmarshal([]byte(cached), &questions); jsonErr == nil {
			return questions, nil
		}
		// Corrupt cache entry; drop it and fall through to a live fetch.
		_ = s.rdb.Del(ctx, questionCacheKey).Err()
	} else if err != redis.Nil {
		s.log.Warn().Err(err).Msg("Question cache read failed")
	}

	questions, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}

	raw, err := json.Marshal(questions)
	if err == nil {
		if cacheErr := s.rdb.Set(ctx, questionCacheKey, raw, s.ttl).Err(); cacheErr != nil {
			s.log.Warn().Err(cacheErr).Msg("Question cache write failed")
		}
	}

	return questions, nil
}
