package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestPrettifyFuncName(t *testing.T) {
	cases := map[string]string{
		"assetflow/internal/service.(*AssetService).List":            "AssetService.List",
		"assetflow/internal/handler.(*AssetHandler).Create-fm":       "AssetHandler.Create",
		"assetflow/internal/service.(*PaymentService).Confirm.func1": "PaymentService.Confirm",
	}
	for in, want := range cases {
		assert.Equal(t, want, prettifyFuncName(in), in)
	}
}

type sampleMeta struct {
	Op      string            `trace:"sample.op"`
	Count   int               `trace:"sample.count"`
	Skipped string            `trace:"sample.skipped,omitempty"`
	Tags    []string          `trace:"sample.tags"`
	Labels  map[string]string `trace:"sample.label"`
}

func TestApplyTraceAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tr := &Trace{
		TracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)),
		ServiceName:    "test",
	}

	_, span, end := tr.WithSpan(context.Background(), "sample")
	tr.ApplyTraceAttributes(span, sampleMeta{
		Op:     "list",
		Count:  3,
		Tags:   []string{"a", "b"},
		Labels: map[string]string{"env": "test"},
	})
	end(nil)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "sample", spans[0].Name())

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		got[kv.Key] = kv.Value
	}
	assert.Equal(t, "list", got["sample.op"].AsString())
	assert.Equal(t, int64(3), got["sample.count"].AsInt64())
	assert.Equal(t, []string{"a", "b"}, got["sample.tags"].AsStringSlice())
	assert.Equal(t, "test", got["sample.label.env"].AsString())
	_, present := got["sample.skipped"]
	assert.False(t, present)
}

func TestWithSpanNamesFromCaller(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tr := &Trace{
		TracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)),
		ServiceName:    "test",
	}

	_, _, end := tr.WithSpan(context.Background())
	end(nil)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "TestWithSpanNamesFromCaller", spans[0].Name())
}

func TestNilTraceUsesNoop(t *testing.T) {
	tr := &Trace{}
	ctx, span, end := tr.WithSpan(context.Background())
	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
	end(nil)
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(0).Description())
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}
