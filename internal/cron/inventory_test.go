package cron

import (
	"context"
	"errors"
	"testing"

	"assetflow/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubSnapshotter struct {
	calls int
	err   error
}

func (s *stubSnapshotter) Snapshot(ctx context.Context) (int64, int64, error) {
	s.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, 0, errors.New("missing deadline")
	}
	return 2, 5, s.err
}

func TestInventoryJobRun(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	snap := &stubSnapshotter{}
	job := NewInventoryJob(zap.New(core), &telemetry.Trace{}, snap)

	job.Run()

	assert.Equal(t, 1, snap.calls)
	entries := logs.FilterMessage("[Cron] inventory snapshot").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.EqualValues(t, 2, fields["out_of_stock"])
		assert.EqualValues(t, 5, fields["pending"])
	}
}

func TestInventoryJobLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	snap := &stubSnapshotter{err: errors.New("mongo down")}
	job := NewInventoryJob(zap.New(core), &telemetry.Trace{}, snap)

	job.Run()

	assert.Equal(t, 1, logs.FilterMessage("[Cron] inventory snapshot failed").Len())
}
