package client

import (
	"context"
	"time"

	"assetflow/config"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// FluentdPoster is the subset of the Fluentd forward client the log repository needs.
type FluentdPoster interface {
	Post(ctx context.Context, tag string, message any) error
	Close() error
}

// FluentdClient implements FluentdPoster using fluent-logger-golang.
type FluentdClient struct {
	client *fluent.Fluent
}

// NewFluentdClient returns a noop poster when no Fluentd host is configured.
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (FluentdPoster, func(), error) {
	if !config.Fluentd.Enabled() {
		logger.Info("fluentd disabled, request logs stay local")
		return NoopClient{}, func() {}, nil
	}
	prefix := config.App.Name
	if config.Fluentd.TagPrefix != "" {
		prefix = config.Fluentd.TagPrefix
	}
	var timeout time.Duration
	if config.Fluentd.Timeout > 0 {
		timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}

	f, err := fluent.New(fluent.Config{
		FluentHost: config.Fluentd.Host,
		FluentPort: config.Fluentd.Port,
		Timeout:    timeout,
		TagPrefix:  prefix,
		Async:      true,
	})
	if err != nil {
		logger.Error("failed to create fluentd client", zap.Error(err))
		return nil, nil, err
	}
	c := &FluentdClient{client: f}
	cleanup := func() {
		if err := c.Close(); err != nil {
			logger.Error("failed to close fluentd client", zap.Error(err))
		}
	}
	return c, cleanup, nil
}

func (c *FluentdClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Post sends a record; the TagPrefix is prepended by the fluent client.
func (c *FluentdClient) Post(_ context.Context, tag string, message any) error {
	return c.client.Post(tag, message)
}

// NoopClient disabled mode
type NoopClient struct{}

func (NoopClient) Post(context.Context, string, any) error { return nil }
func (NoopClient) Close() error                            { return nil }
