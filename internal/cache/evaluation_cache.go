// Package cache provides the evaluation result cache: byte-identical
// (question, answer, difficulty) triples short-circuit to the previously
// computed evaluation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"excel-interviewer/internal/model"

	"github.com/redis/go-redis/v9"
)

// Key derives the content-addressed cache key for an evaluation.
func Key(questionText, answer string, difficulty model.Difficulty) string {
	h := sha256.New()
	h.Write([]byte(questionText))
	h.Write([]byte{0})
	h.Write([]byte(answer))
	h.Write([]byte{0})
	h.Write([]byte(difficulty))
	return hex.EncodeToString(h.Sum(nil))
}

// EvaluationCache stores computed evaluations under content-addressed keys.
type EvaluationCache interface {
	// Get returns the cached evaluation or nil on miss.
	Get(ctx context.Context, key string) (*model.Evaluation, error)

	// Set stores the evaluation under the cache TTL.
	Set(ctx context.Context, key string, eval *model.Evaluation) error
}

type redisEvaluationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisEvaluationCache creates a Redis-backed evaluation cache. Redis TTL
// doubles as the eviction policy.
func NewRedisEvaluationCache(client *redis.Client, ttl time.Duration) EvaluationCache {
	return &redisEvaluationCache{client: client, ttl: ttl}
}

func (c *redisEvaluationCache) Get(ctx context.Context, key string) (*model.Evaluation, error) {
	data, err := c.client.Get(ctx, "eval:"+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var eval model.Evaluation
	if err := json.Unmarshal([]byte(data), &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

func (c *redisEvaluationCache) Set(ctx context.Context, key string, eval *model.Evaluation) error {
	data, err := json.Marshal(eval)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "eval:"+key, data, c.ttl).Err()
}
