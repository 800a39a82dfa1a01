package middleware

import (
	"context"
	"fmt"
	"strings"

	"assetflow/internal/core"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/pkg/response"
	"assetflow/internal/service"
	"assetflow/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallerResolver 由 AuthService 實作
type CallerResolver interface {
	ParseToken(token string) (*core.Claims, error)
	ResolveCaller(ctx context.Context, email string) (core.Caller, error)
}

type Auth struct {
	logger   *zap.Logger
	trace    *telemetry.Trace
	resolver CallerResolver
}

func NewAuth(logger *zap.Logger, trace *telemetry.Trace, authService *service.AuthService) *Auth {
	return &Auth{
		logger:   logger,
		trace:    trace,
		resolver: authService,
	}
}

// Require 驗證 Bearer token，並檢查呼叫者角色；未帶 roles 時只要求登入
func (m *Auth) Require(roles ...core.Role) gin.HandlerFunc {
	required := make([]string, len(roles))
	for i, r := range roles {
		required[i] = string(r)
	}
	return func(c *gin.Context) {
		ctx, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanAuthMiddleware))
		meta := core.TraceAuthMiddlewareMeta{Required: required}

		fail := func(status string, err error) {
			meta.Status = status
			m.trace.ApplyTraceAttributes(span, meta)
			traceID := span.SpanContext().TraceID()
			m.logger.Warn("[Auth] rejected",
				zap.String("status", status),
				zap.String("email", meta.Email),
				zap.String("path", c.Request.URL.Path),
				zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
			)
			response.AbortWithError(c, err)
			end(err)
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			fail("missing_token", cErr.Unauthorized("unauthorized access"))
			return
		}
		claims, err := m.resolver.ParseToken(token)
		if err != nil {
			fail("invalid_token", err)
			return
		}
		meta.Email = claims.Email

		caller, err := m.resolver.ResolveCaller(ctx, claims.Email)
		if err != nil {
			fail("resolve_failed", err)
			return
		}
		meta.Role = string(caller.Role)

		if len(roles) > 0 && !hasRole(caller.Role, roles) {
			fail("forbidden", cErr.Forbidden("forbidden access"))
			return
		}

		meta.Status = "success"
		m.trace.ApplyTraceAttributes(span, meta)
		c.Set(core.ContextCallerKey, caller)
		end(nil)
		c.Next()
	}
}

// CallerFrom 取出 Require 寫入的呼叫者
func CallerFrom(c *gin.Context) (core.Caller, bool) {
	v, ok := c.Get(core.ContextCallerKey)
	if !ok {
		return core.Caller{}, false
	}
	caller, ok := v.(core.Caller)
	return caller, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func hasRole(role core.Role, roles []core.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
