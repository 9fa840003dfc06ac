package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func call(s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestIssuedTokensAreAccepted(t *testing.T) {
	s := New(Options{})
	s.AddUser("ada@example.com", "secret")

	pair, ok := s.IssueTokens("ada@example.com")
	require.True(t, ok)

	w := call(s, http.MethodGet, "/api/auth/me/", pair.Access, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@example.com")

	_, ok = s.IssueTokens("nobody@example.com")
	assert.False(t, ok)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	s := New(Options{})
	s.AddUser("ada@example.com", "secret")
	pair, _ := s.IssueTokens("ada@example.com")

	w := call(s, http.MethodGet, "/api/auth/me/", pair.Refresh, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_not_valid")
}

func TestMissingCredentials(t *testing.T) {
	s := New(Options{})

	w := call(s, http.MethodGet, "/api/workspaces/", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "credentials were not provided")
	assert.Equal(t, 1, s.Calls("/workspaces/"))
}

func TestExpiredTokenRejected(t *testing.T) {
	s := New(Options{AccessTTL: time.Nanosecond})
	s.AddUser("ada@example.com", "secret")
	pair, _ := s.IssueTokens("ada@example.com")
	time.Sleep(time.Second)

	w := call(s, http.MethodGet, "/api/auth/me/", pair.Access, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExpireAndRevoke(t *testing.T) {
	s := New(Options{})
	s.AddUser("ada@example.com", "secret")
	pair, _ := s.IssueTokens("ada@example.com")

	s.ExpireAccessTokens()
	assert.Equal(t, http.StatusUnauthorized, call(s, http.MethodGet, "/api/auth/me/", pair.Access, "").Code)

	w := call(s, http.MethodPost, "/api/auth/refresh/", "", `{"refresh":"`+pair.Refresh+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access"`)
	assert.NotContains(t, w.Body.String(), `"refresh"`)

	s.RevokeRefreshTokens()
	w = call(s, http.MethodPost, "/api/auth/refresh/", "", `{"refresh":"`+pair.Refresh+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRotatedRefreshTokenIsSingleUse(t *testing.T) {
	s := New(Options{RotateRefresh: true})
	s.AddUser("ada@example.com", "secret")
	pair, _ := s.IssueTokens("ada@example.com")

	body := `{"refresh":"` + pair.Refresh + `"}`
	w := call(s, http.MethodPost, "/api/auth/refresh/", "", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"refresh"`)

	w = call(s, http.MethodPost, "/api/auth/refresh/", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListingsPagination(t *testing.T) {
	s := New(Options{PageSize: 2})
	s.AddUser("ada@example.com", "secret")
	pair, _ := s.IssueTokens("ada@example.com")

	w := call(s, http.MethodGet, "/api/jobapply/listings/", pair.Access, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":5`)
	assert.Contains(t, w.Body.String(), "page=2")

	w = call(s, http.MethodGet, "/api/jobapply/listings/?page=9", pair.Access, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
