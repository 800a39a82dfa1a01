package telemetry

import (
	"assetflow/config"
	"assetflow/internal/core"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ProviderSet = wire.NewSet(NewTrace, NewMetric)

// Metric struct，未啟用時所有欄位為 nil
type Metric struct {
	HttpRequestsTotal       *prometheus.CounterVec
	HttpRequestDuration     *prometheus.HistogramVec
	ResponseSuccessTotal    *prometheus.CounterVec
	ResponseFailTotal       *prometheus.CounterVec
	RequestTransitionsTotal *prometheus.CounterVec
	RateLimitedTotal        *prometheus.CounterVec
	AssetsOutOfStock        prometheus.Gauge
	RequestsPending         prometheus.Gauge
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	name := func(m core.MetricName) string {
		return config.App.Name + "_" + string(m)
	}
	return &Metric{
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name(core.MetricHttpRequestDuration),
				Help:    "API request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		ResponseSuccessTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricResponseSuccessTotal),
				Help: "Successful responses",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		ResponseFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricResponseFailTotal),
				Help: "Failed responses by reason",
			},
			labelNames(core.MetricLabelReason),
		),
		RequestTransitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricRequestTransitionsTotal),
				Help: "Asset request status transitions",
			},
			labelNames(core.MetricLabelStatus),
		),
		RateLimitedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricRateLimitTotal),
				Help: "Requests rejected by the rate limiter",
			},
			labelNames(core.MetricLabelScope),
		),
		AssetsOutOfStock: promauto.NewGauge(prometheus.GaugeOpts{
			Name: name(core.MetricAssetsOutOfStock),
			Help: "Assets whose quantity is zero",
		}),
		RequestsPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: name(core.MetricRequestsPending),
			Help: "Asset requests waiting for a decision",
		}),
	}
}

func (m *Metric) ObserveTransition(status core.RequestStatus) {
	if m == nil || m.RequestTransitionsTotal == nil {
		return
	}
	m.RequestTransitionsTotal.WithLabelValues(string(status)).Inc()
}

func (m *Metric) ObserveRateLimited(scope string) {
	if m == nil || m.RateLimitedTotal == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(scope).Inc()
}

func (m *Metric) SetInventory(outOfStock, pending int64) {
	if m == nil || m.AssetsOutOfStock == nil || m.RequestsPending == nil {
		return
	}
	m.AssetsOutOfStock.Set(float64(outOfStock))
	m.RequestsPending.Set(float64(pending))
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
