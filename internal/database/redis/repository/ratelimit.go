package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assetflow/internal/core"
	"assetflow/internal/database/client"
	"assetflow/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// RateLimiterRepository 固定視窗計數，key = server:rate_limit:scope:subject
type RateLimiterRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
}

func NewRateLimiterRepository(trace *telemetry.Trace, client *client.RedisClient) *RateLimiterRepository {
	return &RateLimiterRepository{trace: trace, client: client.Client()}
}

// Consume 消耗一次配額；第一次呼叫以 SETNX 建立視窗。
// 超限時回傳 ErrRateLimitExceeded，remaining 為 0。
func (repository *RateLimiterRepository) Consume(
	contextValue context.Context,
	scope string,
	subject string,
	windowSeconds int64,
	limitCount int,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() {
		if errors.Is(returnedError, ErrRateLimitExceeded) {
			endSpan(nil)
			return
		}
		endSpan(returnedError)
	}()

	traceMetadata := core.TraceRateLimitMeta{
		Scope:     scope,
		Subject:   subject,
		Limit:     limitCount,
		WindowSec: windowSeconds,
		Op:        "consume",
	}
	defer func() {
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
	}()

	redisKey := buildKey(scope, subject)
	wasSet, setError := repository.client.SetNX(
		contextValue,
		redisKey,
		limitCount-1,
		time.Duration(windowSeconds)*time.Second,
	).Result()
	if setError != nil {
		return 0, 0, setError
	}
	if wasSet {
		if limitCount-1 < 0 {
			return 0, windowSeconds, ErrRateLimitExceeded
		}
		return limitCount - 1, windowSeconds, nil
	}

	pipeline := repository.client.TxPipeline()
	decrCommand := pipeline.Decr(contextValue, redisKey)
	ttlCommand := pipeline.TTL(contextValue, redisKey)
	if _, execError := pipeline.Exec(contextValue); execError != nil {
		return 0, 0, execError
	}
	if ttl := ttlCommand.Val(); ttl > 0 {
		timeToLiveSeconds = int64(ttl.Seconds())
	} else {
		// 視窗 key 遺失 TTL 時補上，避免永久封鎖
		_ = repository.client.Expire(contextValue, redisKey, time.Duration(windowSeconds)*time.Second).Err()
		timeToLiveSeconds = windowSeconds
	}

	newValue := decrCommand.Val()
	if newValue < 0 {
		return 0, timeToLiveSeconds, ErrRateLimitExceeded
	}
	return int(newValue), timeToLiveSeconds, nil
}

func buildKey(scope, subject string) string {
	return fmt.Sprintf("%s:%s:%s:%s", core.RedisKeyServerName, core.RedisKeyRateLimit, scope, subject)
}
