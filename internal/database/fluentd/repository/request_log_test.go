package repository

import (
	"context"
	"testing"
	"time"

	"assetflow/config"
	"assetflow/internal/database/fluentd/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPost struct {
	tag     string
	message map[string]any
}

type fakePoster struct {
	posts []recordedPost
}

func (f *fakePoster) Post(_ context.Context, tag string, message any) error {
	f.posts = append(f.posts, recordedPost{tag: tag, message: message.(map[string]any)})
	return nil
}

func (f *fakePoster) Close() error { return nil }

func TestLogRequestFillsDefaults(t *testing.T) {
	poster := &fakePoster{}
	repo := NewLogRepository(&config.Configuration{App: config.App{Version: "2.1.0"}}, poster)
	repo.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	require.NoError(t, repo.LogRequest(context.Background(), model.RequestLog{
		RequestID: "abc",
		Path:      "/assets",
		Method:    "GET",
	}))

	require.Len(t, poster.posts, 1)
	got := poster.posts[0]
	assert.Equal(t, "request_log", got.tag)
	assert.Equal(t, "abc", got.message["request_id"])
	assert.Equal(t, "2.1.0", got.message["version"])
	assert.Equal(t, "2026-01-02 03:04:05 UTC", got.message["logged_at"])
}

func TestLogResponseKeepsExplicitVersion(t *testing.T) {
	poster := &fakePoster{}
	repo := NewLogRepository(&config.Configuration{}, poster)

	require.NoError(t, repo.LogResponse(context.Background(), model.ResponseLog{
		RequestID:  "r1",
		StatusCode: 201,
		Version:    "custom",
	}))

	require.Len(t, poster.posts, 1)
	assert.Equal(t, "response_log", poster.posts[0].tag)
	assert.Equal(t, "custom", poster.posts[0].message["version"])
	assert.EqualValues(t, 201, poster.posts[0].message["status_code"])
}
