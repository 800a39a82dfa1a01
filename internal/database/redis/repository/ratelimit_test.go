package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "assetflow:rate_limit:jwt:10.0.0.1", buildKey("jwt", "10.0.0.1"))
}
