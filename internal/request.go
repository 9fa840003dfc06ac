package internal

import (
	"net/http"
	neturl "net/url"

	"github.com/cockroachdb/errors"
)

// Request describes an outbound call relative to the client's base URL.
type Request struct {
	Method string
	Path   string
	Query  neturl.Values
	Header http.Header

	// Body is JSON encoded on every dispatch, so a replay sends the same bytes.
	// []byte is sent as-is, RawBody carries its own content type.
	Body any

	// Anonymous requests never carry a bearer token and are never refreshed.
	Anonymous bool
}

type RawBody struct {
	ContentType string
	Data        []byte
}

func (r *Request) clone() *Request {
	out := *r
	out.Header = r.Header.Clone()
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	if r.Query != nil {
		out.Query = make(neturl.Values, len(r.Query))
		for key, values := range r.Query {
			out.Query[key] = append([]string(nil), values...)
		}
	}
	return &out
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "failed to unmarshal response")
	}
	return nil
}

// Attempt counts dispatches of one logical request. There are only two values, so
// a request can be replayed at most once.
type Attempt uint8

const (
	FirstAttempt Attempt = iota
	ReplayAttempt
)

func (a Attempt) String() string {
	if a == ReplayAttempt {
		return "replay"
	}
	return "first"
}

// PendingRequest is a request in flight together with its attempt number.
type PendingRequest struct {
	Request *Request
	Attempt Attempt
}

// Replay returns the single permitted re-dispatch of p. It returns false when p is
// already a replay.
func (p *PendingRequest) Replay() (*PendingRequest, bool) {
	if p.Attempt != FirstAttempt {
		return nil, false
	}
	return &PendingRequest{Request: p.Request.clone(), Attempt: ReplayAttempt}, true
}
