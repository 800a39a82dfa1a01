package middleware

import (
	"strings"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewCors,
	NewCompress,
	NewLogger,
	NewRecovery,
	NewTraceEntry,
	NewAuth,
	NewRateLimit,
	NewResponse,
)

// 這些路徑不做 tracing / request log / 回應封裝
func skipObservability(endpoint string) bool {
	return endpoint == "/" ||
		strings.HasPrefix(endpoint, "/swagger") ||
		strings.HasPrefix(endpoint, "/metrics") ||
		strings.HasPrefix(endpoint, "/version") ||
		strings.HasPrefix(endpoint, "/health") ||
		strings.HasPrefix(endpoint, "/debug/pprof")
}
