package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	neturl "net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/kofalt/go-memoize"
	"golang.org/x/sync/singleflight"

	"github.com/rm-hull/clawdash/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultBaseURL = "http://localhost:8000/api"

const (
	loginPath    = "/auth/login/"
	registerPath = "/auth/register/"
	refreshPath  = "/auth/refresh/"
	mePath       = "/auth/me/"
)

var (
	ErrForeignLink    = errors.New("link points outside the API base URL")
	ErrNoRefreshToken = errors.New("no refresh token")
	ErrLoggedOut      = errors.New("logged out")
	ErrNotLoggedIn    = errors.New("not logged in")
)

// HTTPStatusError is returned when the remote server responds with a non-2xx status.
type HTTPStatusError struct {
	Method     string
	URL        string
	Status     string
	StatusCode int
	Message    string
	Header     http.Header
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http status response from %s %s: %s", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("http status response from %s %s: %s: %s", e.Method, e.URL, e.Status, e.Message)
}

// RefreshError is what a caller sees when a 401 could not be recovered because the
// token refresh itself failed. The session has already been cleared by then.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return "token refresh failed: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err carries an HTTP response with the given status code.
func IsStatus(err error, code int) bool {
	var stErr *HTTPStatusError
	return errors.As(err, &stErr) && stErr.StatusCode == code
}

// State is the authentication state of a client's session.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateRefreshing:
		return "refreshing"
	default:
		return "anonymous"
	}
}

type ClientOptions struct {
	BaseURL     string
	Session     Session
	Timeout     time.Duration
	Transport   http.RoundTripper
	LogRequests bool

	// OnLogout fires once whenever the session is torn down, either explicitly or
	// because a 401 could not be recovered.
	OnLogout func(reason error)

	// Middleware is wrapped around the built-in pipeline, first entry outermost.
	Middleware []Middleware

	// ProfileTTL controls how long Me() results are memoized.
	ProfileTTL time.Duration
}

type Client struct {
	baseURL    *neturl.URL
	session    Session
	httpClient *http.Client
	onLogout   func(reason error)
	pipeline   Doer
	flights    singleflight.Group
	refreshing atomic.Int32
	memo       *memoize.Memoizer

	mu         sync.Mutex
	superseded tokenSwap
}

// tokenSwap records which access token the last refresh replaced, and with what.
type tokenSwap struct {
	from, to string
}

func NewClient(opts ClientOptions) (*Client, error) {
	base, err := normalizeBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	session := opts.Session
	if session == nil {
		session = NewMemorySession()
	}

	profileTTL := opts.ProfileTTL
	if profileTTL <= 0 {
		profileTTL = time.Minute
	}

	c := &Client{
		baseURL:    base,
		session:    session,
		httpClient: &http.Client{Timeout: timeout, Transport: opts.Transport},
		onLogout:   opts.OnLogout,
		memo:       memoize.NewMemoizer(profileTTL, 5*time.Minute),
	}

	mws := make([]Middleware, 0, len(opts.Middleware)+5)
	mws = append(mws, opts.Middleware...)
	mws = append(mws, RequestID(), c.refreshOnUnauthorized, BearerAuth(session), Instrument())
	if opts.LogRequests {
		mws = append(mws, LogRequests())
	}
	c.pipeline = Chain(c.send, mws...)

	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Session() Session {
	return c.session
}

// State derives the session state. Refreshing wins while any refresh is in flight.
func (c *Client) State() State {
	if c.refreshing.Load() > 0 {
		return StateRefreshing
	}
	if c.session.AccessToken() != "" {
		return StateAuthenticated
	}
	return StateAnonymous
}

// Do dispatches req through the middleware pipeline. The caller's request is never
// mutated; a 401 is recovered at most once per call.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	pending := &PendingRequest{Request: req.clone(), Attempt: FirstAttempt}
	if pending.Request.Method == "" {
		pending.Request.Method = http.MethodGet
	}
	return c.pipeline(ctx, pending)
}

func (c *Client) Get(ctx context.Context, path string, query neturl.Values, out any) error {
	return c.call(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, &Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.call(ctx, &Request{Method: http.MethodDelete, Path: path}, out)
}

func (c *Client) call(ctx context.Context, req *Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	return resp.Decode(out)
}

// refreshOnUnauthorized is the post-receive hook: a first-attempt 401 triggers one
// token refresh followed by one replay through the full pipeline.
func (c *Client) refreshOnUnauthorized(next Doer) Doer {
	return func(ctx context.Context, p *PendingRequest) (*Response, error) {
		resp, err := next(ctx, p)
		if err == nil || p.Request.Anonymous || !IsStatus(err, http.StatusUnauthorized) {
			return resp, err
		}

		replay, ok := p.Replay()
		if !ok {
			return nil, err
		}

		accessToken, refreshErr := c.freshAccessToken(ctx, bearerToken(p.Request.Header))
		if refreshErr != nil {
			return nil, refreshErr
		}

		replay.Request.Header.Set("Authorization", "Bearer "+accessToken)
		replaysTotal.Inc()
		return c.pipeline(ctx, replay)
	}
}

// freshAccessToken returns an access token newer than sent. Concurrent callers
// holding the same refresh token share a single refresh call, and callers that
// sent a token this client already refreshed away reuse that refresh's result.
func (c *Client) freshAccessToken(ctx context.Context, sent string) (string, error) {
	if current := c.session.AccessToken(); sent != "" && c.replacedBy(sent) == current && current != "" {
		log.Printf("Access token was refreshed while the request was in flight, replaying with current token")
		return current, nil
	}

	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		refreshTotal.WithLabelValues("no_refresh_token").Inc()
		c.forceLogout(ErrNoRefreshToken)
		return "", ErrNoRefreshToken
	}

	value, err, shared := c.flights.Do(refreshToken, func() (any, error) {
		c.refreshing.Add(1)
		defer c.refreshing.Add(-1)
		return c.tokenRefresh(context.WithoutCancel(ctx), refreshToken)
	})
	if err != nil {
		return "", err
	}
	if shared {
		log.Printf("Joined an in-flight token refresh")
	}
	return value.(string), nil
}

// tokenRefresh exchanges the refresh token for a new access token through the bare
// transport. Any failure tears the session down.
func (c *Client) tokenRefresh(ctx context.Context, refreshToken string) (string, error) {
	previous := c.session.AccessToken()
	fail := func(err error) (string, error) {
		refreshTotal.WithLabelValues("failed").Inc()
		log.Printf("Token refresh failed, forcing logout: %v", err)
		refreshErr := &RefreshError{Err: err}
		c.forceLogout(refreshErr)
		return "", refreshErr
	}

	resp, err := c.send(ctx, &PendingRequest{
		Request: &Request{
			Method:    http.MethodPost,
			Path:      refreshPath,
			Body:      models.TokenRefreshRequest{Refresh: refreshToken},
			Anonymous: true,
		},
		Attempt: ReplayAttempt,
	})
	if err != nil {
		return fail(err)
	}

	var data models.TokenRefreshResponse
	if err := resp.Decode(&data); err != nil {
		return fail(err)
	}
	if strings.TrimSpace(data.Access) == "" {
		return fail(errors.New("refresh response did not contain an access token"))
	}

	if data.Refresh != "" {
		err = c.session.SetTokens(data.Access, data.Refresh)
	} else {
		err = c.session.SetAccessToken(data.Access)
	}
	if err != nil {
		return fail(errors.Wrap(err, "failed to store refreshed token"))
	}

	c.mu.Lock()
	c.superseded = tokenSwap{from: previous, to: data.Access}
	c.mu.Unlock()

	refreshTotal.WithLabelValues("ok").Inc()
	log.Printf("Token refresh completed successfully")
	return data.Access, nil
}

// replacedBy returns the token the last refresh swapped in for token, if any.
func (c *Client) replacedBy(token string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.superseded.from != token {
		return ""
	}
	return c.superseded.to
}

func (c *Client) forceLogout(reason error) {
	logoutsTotal.WithLabelValues(logoutReason(reason)).Inc()
	c.mu.Lock()
	c.superseded = tokenSwap{}
	c.mu.Unlock()
	if err := c.session.Clear(); err != nil {
		log.Printf("failed to clear session: %v", err)
	}
	c.memo.Storage.Flush()
	if c.onLogout != nil {
		c.onLogout(reason)
	}
}

func logoutReason(reason error) string {
	var refreshErr *RefreshError
	switch {
	case errors.Is(reason, ErrLoggedOut):
		return "explicit"
	case errors.Is(reason, ErrNoRefreshToken):
		return "no_refresh_token"
	case errors.As(reason, &refreshErr):
		return "refresh_failed"
	default:
		return "other"
	}
}

// send is the innermost Doer: it performs exactly one HTTP exchange.
func (c *Client) send(ctx context.Context, p *PendingRequest) (*Response, error) {
	req := p.Request
	url := c.resolve(req.Path, req.Query)

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to perform %s %s", req.Method, url)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close body: %v", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode > 299 {
		return nil, &HTTPStatusError{
			Method:     req.Method,
			URL:        url,
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Header.Get("Content-Type"), data),
			Header:     resp.Header,
			Body:       data,
		}
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *Client) resolve(path string, query neturl.Values) string {
	target := *c.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String()
}

// relativeLink turns an absolute DRF next/previous link back into a path and query
// under the base URL. Links to any other origin are refused, so the bearer token
// never leaves the API host.
func (c *Client) relativeLink(link string) (string, neturl.Values, error) {
	u, err := neturl.Parse(link)
	if err != nil {
		return "", nil, errors.Wrapf(err, "invalid link %q", link)
	}
	if u.Host != "" && (!strings.EqualFold(u.Scheme, c.baseURL.Scheme) || !strings.EqualFold(u.Host, c.baseURL.Host)) {
		return "", nil, errors.Wrapf(ErrForeignLink, "refusing to follow %s", link)
	}

	basePath := strings.TrimRight(c.baseURL.Path, "/")
	if u.Path != basePath && !strings.HasPrefix(u.Path, basePath+"/") {
		return "", nil, errors.Wrapf(ErrForeignLink, "refusing to follow %s", link)
	}
	return strings.TrimPrefix(u.Path, basePath), u.Query(), nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(b), "application/json", nil
	case RawBody:
		return bytes.NewReader(b.Data), b.ContentType, nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to marshal request body")
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func normalizeBaseURL(raw string) (*neturl.URL, error) {
	base := strings.TrimSpace(raw)
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}

	u, err := neturl.Parse(base)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base URL")
	}
	if u.Host == "" {
		return nil, errors.Newf("invalid base URL %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
