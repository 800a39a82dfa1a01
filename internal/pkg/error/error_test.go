package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromKeepsApplicationErrors(t *testing.T) {
	original := InvalidState("asset out of stock")
	wrapped := fmt.Errorf("decide: %w", original)

	got := From(wrapped)

	assert.Same(t, original, got)
	assert.Equal(t, http.StatusBadRequest, got.HttpCode())
	assert.Equal(t, INVALID_STATE, got.ErrorCode())
	assert.Equal(t, "asset out of stock", got.ErrorDesc())
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	got := From(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, got.HttpCode())
	assert.Equal(t, INTERNAL_ERROR, got.ErrorCode())
	assert.Equal(t, "boom", got.ErrorDesc())
}

func TestMapHttpStatusToError(t *testing.T) {
	cases := map[int]int{
		http.StatusBadRequest:      BAD_REQUEST_BODY,
		http.StatusUnauthorized:    UNAUTHORIZED,
		http.StatusForbidden:       FORBIDDEN,
		http.StatusNotFound:        NOT_FOUND,
		http.StatusTooManyRequests: RATE_LIMIT_EXCEEDED,
		http.StatusTeapot:          INTERNAL_ERROR,
	}
	for status, code := range cases {
		assert.Equal(t, code, MapHttpStatusToError(status, "x").ErrorCode(), "status %d", status)
	}
}
