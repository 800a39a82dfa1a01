package cron

import (
	"context"

	"assetflow/internal/core"
	"assetflow/internal/telemetry"

	"go.uber.org/zap"
)

// InventorySnapshotter 由 service.InventoryService 實作
type InventorySnapshotter interface {
	Snapshot(ctx context.Context) (outOfStock int64, pending int64, err error)
}

// InventoryJob 定期刷新缺貨與待審數量 gauge
type InventoryJob struct {
	logger    *zap.Logger
	trace     *telemetry.Trace
	inventory InventorySnapshotter
}

func NewInventoryJob(logger *zap.Logger, trace *telemetry.Trace, inventory InventorySnapshotter) *InventoryJob {
	return &InventoryJob{logger: logger, trace: trace, inventory: inventory}
}

// Run implements cron.Job.
func (j *InventoryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	ctx, _, end := j.trace.WithSpan(ctx, string(core.SpanInventoryJob))
	outOfStock, pending, err := j.inventory.Snapshot(ctx)
	end(err)
	if err != nil {
		j.logger.Warn("[Cron] inventory snapshot failed", zap.Error(err))
		return
	}
	j.logger.Debug("[Cron] inventory snapshot",
		zap.Int64("out_of_stock", outOfStock),
		zap.Int64("pending", pending),
	)
}
