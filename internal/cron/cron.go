package cron

import (
	"context"
	"time"

	"assetflow/config"
	"assetflow/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(
	NewCron,
	NewInventoryJob,
	wire.Bind(new(InventorySnapshotter), new(*service.InventoryService)),
)

type Cron struct {
	logger       *zap.Logger
	server       *cron.Cron
	conf         *config.Configuration
	inventoryJob *InventoryJob
}

// NewCron .
func NewCron(logger *zap.Logger, conf *config.Configuration, inventoryJob *InventoryJob) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	return &Cron{
		logger:       logger,
		server:       server,
		conf:         conf,
		inventoryJob: inventoryJob,
	}
}

func (c *Cron) Run() error {
	if _, err := c.server.AddJob(c.conf.Cron.InventorySpec, c.inventoryJob); err != nil {
		return err
	}
	// 啟動時先跑一次，gauge 不必等第一個排程
	go c.inventoryJob.Run()

	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	stopped := c.server.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// jobTimeout 單次 job 的上限
const jobTimeout = 30 * time.Second
