package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"assetflow/config"
	"assetflow/internal/core"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/service"
	"assetflow/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthHandler(t *testing.T) {
	status := service.NewHealthService()
	h := NewHealthHandler(status, &config.Configuration{App: config.App{Name: "assetflow", Version: "1.2.3"}})

	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/version", h.Version)
	r.GET("/health-check", h.Check)
	r.GET("/health/liveness", h.Liveness)
	r.GET("/health/readiness", h.Readiness)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Project is running...", w.Body.String())

	w = get("/version")
	var version map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &version))
	assert.Equal(t, "assetflow", version["name"])
	assert.Equal(t, "1.2.3", version["version"])
	assert.Contains(t, version, "uptimeSeconds")

	w = get("/health-check")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":"ok"`)

	assert.Equal(t, http.StatusOK, get("/health/liveness").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get("/health/readiness").Code)

	status.SetReady(true)
	assert.Equal(t, http.StatusOK, get("/health/readiness").Code)
}

func TestCallerOf(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := callerOf(c)
	var appErr *cErr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HttpCode())

	c.Set(core.ContextCallerKey, core.Caller{Email: "hr@corp.io", Role: core.RoleHRManager})
	caller, err := callerOf(c)
	require.NoError(t, err)
	assert.Equal(t, core.RoleHRManager, caller.Role)
}

// 未經 Auth 的請求不應進到 service
func TestHandlersRejectMissingCaller(t *testing.T) {
	trace := &telemetry.Trace{}
	person := NewPersonHandler(trace, nil)
	asset := NewAssetHandler(trace, nil)

	var last error
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		if len(c.Errors) > 0 {
			last = c.Errors.Last().Err
		}
	})
	r.POST("/users", person.Register)
	r.POST("/assets", asset.Create)

	for _, path := range []string{"/users", "/assets"} {
		last = nil
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(httptest.NewRecorder(), req)

		var appErr *cErr.Error
		require.True(t, errors.As(last, &appErr), path)
		assert.Equal(t, cErr.UNAUTHORIZED, appErr.ErrorCode(), path)
	}
}
