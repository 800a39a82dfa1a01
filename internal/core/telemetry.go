package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
type TraceSpanName string

const (
	SpanLoggerMiddleware    TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware  TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware      TraceSpanName = "cors_middleware"
	SpanResponseMiddleware  TraceSpanName = "response_middleware"
	SpanAuthMiddleware      TraceSpanName = "auth_middleware"
	SpanRateLimitMiddleware TraceSpanName = "ratelimit_middleware"
	SpanStripeGateway       TraceSpanName = "stripe.payment_intents"
	SpanInventoryJob        TraceSpanName = "cron.inventory_snapshot"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal       MetricName = "requests_total"
	MetricHttpRequestDuration     MetricName = "request_duration_seconds"
	MetricResponseSuccessTotal    MetricName = "response_success_total"
	MetricResponseFailTotal       MetricName = "response_fail_total"
	MetricRequestTransitionsTotal MetricName = "asset_request_transitions_total"
	MetricAssetsOutOfStock        MetricName = "assets_out_of_stock"
	MetricRequestsPending         MetricName = "asset_requests_pending"
	MetricRateLimitTotal          MetricName = "rate_limited_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelScope    MetricLabelName = "scope"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

// 供 Redis 限流 Consume 使用
type TraceRateLimitMeta struct {
	Scope     string `trace:"rl.scope"`
	Subject   string `trace:"rl.subject"`
	Limit     int    `trace:"rl.limit_count"`
	WindowSec int64  `trace:"rl.window_sec"`
	Remaining int    `trace:"rl.remaining,omitempty"`
	TTL       int64  `trace:"rl.ttl_sec,omitempty"`
	Op        string `trace:"rl.op"`
}

type TraceRateLimitMiddlewareMeta struct {
	Scope       string `trace:"ratelimit.scope"`
	ClientIP    string `trace:"ratelimit.client_ip"`
	ConfigLimit int    `trace:"ratelimit.config.limit"`
	Remaining   int    `trace:"ratelimit.remaining"`
	TTLSeconds  int64  `trace:"ratelimit.ttl_sec"`
	Blocked     bool   `trace:"ratelimit.blocked"`
}

type TraceAuthMiddlewareMeta struct {
	Email    string   `trace:"auth.email,omitempty"`
	Role     string   `trace:"auth.role,omitempty"`
	Required []string `trace:"auth.required_roles,omitempty"`
	Status   string   `trace:"auth.status"`
}

type TraceListMeta struct {
	Op          string         `trace:"list.op"`
	Filter      map[string]any `trace:"filter,omitempty"`
	ResultCount int            `trace:"result.count"`
}

type TraceAssetRequestMeta struct {
	Op        string `trace:"asset_request.op"`
	RequestID string `trace:"asset_request.id,omitempty"`
	AssetID   string `trace:"asset_request.asset_id,omitempty"`
	Employee  string `trace:"asset_request.employee,omitempty"`
	From      string `trace:"asset_request.from,omitempty"`
	To        string `trace:"asset_request.to,omitempty"`
	Delta     int    `trace:"asset_request.quantity_delta"`
}

type TracePaymentMeta struct {
	Op            string `trace:"payment.op"`
	Email         string `trace:"payment.email,omitempty"`
	PackageID     string `trace:"payment.package_id,omitempty"`
	Amount        int64  `trace:"payment.amount"`
	Currency      string `trace:"payment.currency,omitempty"`
	TransactionID string `trace:"payment.transaction_id,omitempty"`
	Status        string `trace:"payment.status,omitempty"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}
