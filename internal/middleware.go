package internal

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Doer dispatches a pending request and returns its response, or an error for
// transport failures and non-2xx statuses.
type Doer func(ctx context.Context, p *PendingRequest) (*Response, error)

// Middleware wraps a Doer. Pre-send work happens before calling next, post-receive
// work after it returns.
type Middleware func(next Doer) Doer

// Chain composes mws around final, the first middleware being the outermost.
func Chain(final Doer, mws ...Middleware) Doer {
	for i := len(mws) - 1; i >= 0; i-- {
		final = mws[i](final)
	}
	return final
}

// BearerAuth attaches the session's current access token. Requests go out untouched
// when there is no token.
func BearerAuth(session Session) Middleware {
	return func(next Doer) Doer {
		return func(ctx context.Context, p *PendingRequest) (*Response, error) {
			if !p.Request.Anonymous {
				if token := session.AccessToken(); token != "" {
					p.Request.Header.Set("Authorization", "Bearer "+token)
				}
			}
			return next(ctx, p)
		}
	}
}

// RequestID tags every request with an X-Request-Id, keeping the one already set
// so that a replay shares the id of its first attempt.
func RequestID() Middleware {
	return func(next Doer) Doer {
		return func(ctx context.Context, p *PendingRequest) (*Response, error) {
			if p.Request.Header.Get("X-Request-Id") == "" {
				p.Request.Header.Set("X-Request-Id", uuid.NewString())
			}
			return next(ctx, p)
		}
	}
}

func LogRequests() Middleware {
	return func(next Doer) Doer {
		return func(ctx context.Context, p *PendingRequest) (*Response, error) {
			start := time.Now()
			resp, err := next(ctx, p)
			log.Printf("%s %s (%s attempt, request id %s) -> %s in %s",
				p.Request.Method, p.Request.Path, p.Attempt, p.Request.Header.Get("X-Request-Id"),
				outcome(resp, err), time.Since(start).Round(time.Millisecond))
			return resp, err
		}
	}
}

func Instrument() Middleware {
	return func(next Doer) Doer {
		return func(ctx context.Context, p *PendingRequest) (*Response, error) {
			resp, err := next(ctx, p)
			requestsTotal.WithLabelValues(p.Request.Method, outcome(resp, err), p.Attempt.String()).Inc()
			return resp, err
		}
	}
}

func outcome(resp *Response, err error) string {
	var stErr *HTTPStatusError
	switch {
	case err == nil && resp != nil:
		return strconv.Itoa(resp.StatusCode)
	case errors.As(err, &stErr):
		return strconv.Itoa(stErr.StatusCode)
	default:
		return "error"
	}
}

func bearerToken(header http.Header) string {
	token, ok := strings.CutPrefix(header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return token
}
