package routes

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/rm-hull/clawdash/internal"
)

func TestUpstreamStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"refresh failed", &internal.RefreshError{Err: errors.New("boom")}, http.StatusUnauthorized},
		{"wrapped refresh failed", errors.Wrap(&internal.RefreshError{Err: errors.New("boom")}, "listing"), http.StatusUnauthorized},
		{"no refresh token", internal.ErrNoRefreshToken, http.StatusUnauthorized},
		{"client error", &internal.HTTPStatusError{StatusCode: http.StatusNotFound}, http.StatusNotFound},
		{"server error", &internal.HTTPStatusError{StatusCode: http.StatusServiceUnavailable}, http.StatusBadGateway},
		{"foreign link", internal.ErrForeignLink, http.StatusBadGateway},
		{"transport error", errors.New("connection refused"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, upstreamStatus(tt.err))
		})
	}
}

func TestSessionExpired(t *testing.T) {
	assert.True(t, sessionExpired(internal.ErrNoRefreshToken))
	assert.True(t, sessionExpired(&internal.RefreshError{Err: errors.New("boom")}))
	assert.False(t, sessionExpired(&internal.HTTPStatusError{StatusCode: http.StatusUnauthorized}))
	assert.False(t, sessionExpired(nil))
}
