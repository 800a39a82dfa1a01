package repository

import (
	"context"
	"encoding/json"
	"time"

	"assetflow/config"
	"assetflow/internal/core"
	"assetflow/internal/database/client"
	"assetflow/internal/database/fluentd/model"
)

const loggedAtLayout = "2006-01-02 15:04:05.999999 UTC"

// LogRepository 發送 Request/Response Log 到 Fluentd
type LogRepository struct {
	poster  client.FluentdPoster
	version string
	now     func() time.Time
}

func NewLogRepository(config *config.Configuration, poster client.FluentdPoster) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{poster: poster, version: version, now: time.Now}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if req.LoggedAt == "" {
		req.LoggedAt = repository.now().UTC().Format(loggedAtLayout)
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	return repository.post(ctx, core.FluentdRequest, req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if resp.LoggedAt == "" {
		resp.LoggedAt = repository.now().UTC().Format(loggedAtLayout)
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	return repository.post(ctx, core.FluentdResponse, resp)
}

// fluent 以 msgpack 編碼 map 最穩定，先經 json 轉成 map[string]any
func (repository *LogRepository) post(ctx context.Context, tag core.FluentdSubTag, record any) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var message map[string]any
	if err := json.Unmarshal(b, &message); err != nil {
		return err
	}
	return repository.poster.Post(ctx, string(tag), message)
}
