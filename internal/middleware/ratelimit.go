package middleware

import (
	"context"
	"errors"
	"strconv"

	"assetflow/config"
	"assetflow/internal/core"
	"assetflow/internal/database/redis/repository"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/pkg/response"
	"assetflow/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuotaConsumer 由 redis RateLimiterRepository 實作
type QuotaConsumer interface {
	Consume(ctx context.Context, scope, subject string, windowSeconds int64, limitCount int) (int, int64, error)
}

type RateLimit struct {
	logger   *zap.Logger
	trace    *telemetry.Trace
	metric   *telemetry.Metric
	conf     config.RateLimit
	consumer QuotaConsumer
}

func NewRateLimit(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	conf *config.Configuration,
	rateLimiterRepository *repository.RateLimiterRepository,
) *RateLimit {
	return &RateLimit{
		logger:   logger,
		trace:    trace,
		metric:   metric,
		conf:     conf.RateLimit,
		consumer: rateLimiterRepository,
	}
}

// Guard 以 client IP 為單位做固定視窗限流；Redis 失效時放行
func (middleware *RateLimit) Guard(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !middleware.conf.Enabled || middleware.conf.Limit <= 0 {
			c.Next()
			return
		}
		ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanRateLimitMiddleware))
		clientIP := c.ClientIP()

		remaining, ttlSec, err := middleware.consumer.Consume(
			ctx,
			scope,
			clientIP,
			middleware.conf.WindowSeconds,
			middleware.conf.Limit,
		)
		blocked := errors.Is(err, repository.ErrRateLimitExceeded)
		if err != nil && !blocked {
			middleware.logger.Warn("[RateLimit] consume failed, request allowed",
				zap.String("scope", scope),
				zap.Error(err),
			)
			end(nil)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(middleware.conf.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ttlSec > 0 {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(ttlSec, 10))
		}

		middleware.trace.ApplyTraceAttributes(span, core.TraceRateLimitMiddlewareMeta{
			Scope:       scope,
			ClientIP:    clientIP,
			ConfigLimit: middleware.conf.Limit,
			Remaining:   remaining,
			TTLSeconds:  ttlSec,
			Blocked:     blocked,
		})

		if blocked {
			if ttlSec > 0 {
				c.Header("Retry-After", strconv.FormatInt(ttlSec, 10))
			}
			middleware.metric.ObserveRateLimited(scope)
			err := cErr.RateLimitExceeded("rate limit exceeded")
			response.AbortWithError(c, err)
			end(err)
			return
		}
		end(nil)
		c.Next()
	}
}
