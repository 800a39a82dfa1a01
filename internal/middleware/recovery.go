package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"assetflow/config"
	"assetflow/internal/core"
	"assetflow/internal/database/fluentd/model"
	"assetflow/internal/database/fluentd/repository"
	cErr "assetflow/internal/pkg/error"
	res "assetflow/internal/pkg/response"
	"assetflow/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := time.Now()
		if startTime, exists := c.Get("requestDuration"); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		}
		requestUUID, err := uuid.NewV7()
		if err != nil {
			requestUUID = uuid.New()
		}
		requestID := requestUUID.String()

		// panic recover 必須在 c.Next() 之前註冊
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			duration := time.Since(requestTime)
			ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanRecoveryMiddleware))
			traceID := span.SpanContext().TraceID()

			meta := core.TracePanicMeta{
				Path:       c.Request.URL.Path,
				Method:     c.Request.Method,
				ClientIP:   c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
				DurationMs: float64(duration.Milliseconds()),
				Message:    toSafeString(fmt.Sprint(rec)),
				Stack:      toSafeStack(debug.Stack()),
				Status:     http.StatusInternalServerError,
			}
			middleware.trace.ApplyTraceAttributes(span, meta)

			middleware.logger.Error("[PANIC] Recovered",
				zap.String("path", meta.Path),
				zap.String("method", meta.Method),
				zap.String("client_ip", meta.ClientIP),
				zap.String("user_agent", meta.UserAgent),
				zap.Duration("duration", duration),
				zap.String("panic", meta.Message),
				zap.String("stacktrace", meta.Stack),
				zap.String("requestId", requestID),
				zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
			)

			appErr := cErr.InternalServer("unexpected panic")
			middleware.ship(ctx, c, requestID, appErr, meta.Message, duration)
			middleware.observeFail("panic")
			if !c.Writer.Written() {
				res.FailByErr(c, requestID, appErr)
			}
			end(appErr)
			c.Abort()
		}()

		c.Next()

		// 非 panic 的 gin errors，尚未回寫才處理
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(requestTime)
		ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanRecoveryMiddleware))
		traceID := span.SpanContext().TraceID()
		defer end(nil)

		for _, e := range c.Errors {
			var appErr *cErr.Error
			if !errors.As(e.Err, &appErr) {
				continue
			}
			middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
				Code:       appErr.ErrorCode(),
				Message:    appErr.Error(),
				Detail:     appErr.ErrorDesc(),
				DurationMs: float64(duration.Milliseconds()),
				Status:     appErr.HttpCode(),
			})
			fields := []zap.Field{
				zap.Int("code", appErr.ErrorCode()),
				zap.String("data", appErr.ErrorDesc()),
				zap.String("path", c.Request.URL.Path),
				zap.Duration("duration", duration),
				zap.String("requestId", requestID),
				zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
			}
			if appErr.HttpCode() >= http.StatusInternalServerError {
				middleware.logger.Error(appErr.Error(), fields...)
			} else {
				middleware.logger.Warn(appErr.Error(), fields...)
			}
			middleware.ship(ctx, c, requestID, appErr, appErr.ErrorDesc(), duration)
			middleware.observeFail(appErr.Error())
			res.FailByErr(c, requestID, appErr)
			c.Abort()
			return
		}

		// 其餘未知錯誤
		unknown := toSafeString(c.Errors.String())
		middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
			Code:       cErr.INTERNAL_ERROR,
			Message:    "unknown-error",
			Detail:     unknown,
			DurationMs: float64(duration.Milliseconds()),
			Status:     http.StatusInternalServerError,
		})
		middleware.logger.Error("[ERROR] unknown",
			zap.String("error", unknown),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)
		appErr := cErr.InternalServer(unknown)
		middleware.ship(ctx, c, requestID, appErr, unknown, duration)
		middleware.observeFail("unknown")
		res.Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, "unknown-error", "internal error")
		c.Abort()
	}
}

// ship 寫 Fluentd response log
func (middleware *Recovery) ship(ctx context.Context, c *gin.Context, requestID string, appErr *cErr.Error, detail string, duration time.Duration) {
	caller, _ := CallerFrom(c)
	err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:   requestID,
		ProjectName: middleware.config.App.Name,
		CallerEmail: caller.Email,
		Code:        appErr.ErrorCode(),
		StatusCode:  appErr.HttpCode(),
		Error:       detail,
		DurationMs:  duration.Milliseconds(),
		ResponseTS:  time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
		Version:     middleware.config.App.Version,
	})
	if err != nil {
		middleware.logger.Warn("[Response] fluentd post failed", zap.Error(err))
	}
}

func (middleware *Recovery) observeFail(reason string) {
	if middleware.metric == nil || middleware.metric.ResponseFailTotal == nil {
		return
	}
	middleware.metric.ResponseFailTotal.WithLabelValues(reason).Inc()
}

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}
