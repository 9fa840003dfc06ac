package routes

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/rm-hull/clawdash/internal"
)

// sessionExpired reports whether err means the stored session is gone.
func sessionExpired(err error) bool {
	var refreshErr *internal.RefreshError
	return errors.As(err, &refreshErr) || errors.Is(err, internal.ErrNoRefreshToken)
}

// upstreamStatus maps a client error to the status the gateway reports for it.
func upstreamStatus(err error) int {
	var stErr *internal.HTTPStatusError
	switch {
	case sessionExpired(err):
		return http.StatusUnauthorized
	case errors.As(err, &stErr) && stErr.StatusCode < 500:
		return stErr.StatusCode
	default:
		return http.StatusBadGateway
	}
}
