package service

import (
	"context"

	"assetflow/internal/telemetry"
)

// InventoryService 定期更新庫存相關 gauge
type InventoryService struct {
	trace    *telemetry.Trace
	metric   *telemetry.Metric
	assets   AssetStore
	requests AssetRequestStore
}

func NewInventoryService(trace *telemetry.Trace, metric *telemetry.Metric, assets AssetStore, requests AssetRequestStore) *InventoryService {
	return &InventoryService{trace: trace, metric: metric, assets: assets, requests: requests}
}

// Snapshot 回傳缺貨資產數與待審申請數
func (s *InventoryService) Snapshot(ctx context.Context) (outOfStock int64, pending int64, err error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	if outOfStock, err = s.assets.CountOutOfStock(ctx); err != nil {
		return 0, 0, storeError(err, "", "CountOutOfStock")
	}
	if pending, err = s.requests.CountPending(ctx); err != nil {
		return 0, 0, storeError(err, "", "CountPending")
	}
	s.metric.SetInventory(outOfStock, pending)
	return outOfStock, pending, nil
}
