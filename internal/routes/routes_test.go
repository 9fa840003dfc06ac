package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rm-hull/clawdash/internal"
	"github.com/rm-hull/clawdash/internal/fakeapi"
	"github.com/rm-hull/clawdash/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func setupGateway(t *testing.T, login bool) (*fakeapi.Server, *internal.Client, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := fakeapi.New(fakeapi.Options{})
	server.AddUser("ada@example.com", "secret")
	upstream := httptest.NewServer(server.Handler())
	t.Cleanup(upstream.Close)

	client, err := internal.NewClient(internal.ClientOptions{BaseURL: upstream.URL + "/api"})
	require.NoError(t, err)
	if login {
		_, err = client.Login(context.Background(), "ada@example.com", "secret")
		require.NoError(t, err)
	}

	r := gin.New()
	v1 := r.Group("/v1")
	v1.GET("/session", Session(client))
	v1.GET("/jobs/stats", JobStats(client))
	v1.Any("/api/*path", Proxy(client))
	return server, client, r
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProxyAddsBearerToken(t *testing.T) {
	server, client, r := setupGateway(t, true)

	w := serve(r, http.MethodGet, "/v1/api/workspaces/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var workspaces []models.Workspace
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &workspaces))
	assert.Len(t, workspaces, 2)
	assert.Equal(t, []string{"Bearer " + client.Session().AccessToken()}, server.AuthHeaders("/workspaces/"))
}

func TestProxyRecoversExpiredToken(t *testing.T) {
	server, _, r := setupGateway(t, true)
	server.ExpireAccessTokens()

	w := serve(r, http.MethodGet, "/v1/api/workspaces/1/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, server.Calls("/auth/refresh/"))
}

func TestProxyRelaysUpstreamErrors(t *testing.T) {
	_, _, r := setupGateway(t, true)

	w := serve(r, http.MethodGet, "/v1/api/workspaces/99/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, w.Body.String())
}

func TestProxyForwardsBody(t *testing.T) {
	_, _, r := setupGateway(t, true)

	w := serve(r, http.MethodPatch, "/v1/api/auth/profile/", `{"company_name":"Acme"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "Acme", user.CompanyName)
}

func TestProxyReportsExpiredSession(t *testing.T) {
	server, client, r := setupGateway(t, true)
	server.ExpireAccessTokens()
	server.RevokeRefreshTokens()

	w := serve(r, http.MethodGet, "/v1/api/workspaces/", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "log in again")
	assert.Equal(t, internal.StateAnonymous, client.State())
}

func TestProxyWithoutPath(t *testing.T) {
	_, _, r := setupGateway(t, true)

	w := serve(r, http.MethodGet, "/v1/api/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionInfo(t *testing.T) {
	_, _, r := setupGateway(t, true)

	w := serve(r, http.MethodGet, "/v1/session", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "authenticated", resp.State)
	assert.True(t, resp.HasRefreshToken)
	require.NotNil(t, resp.SecondsRemaining)
	assert.Greater(t, *resp.SecondsRemaining, 0)
}

func TestSessionInfoAnonymous(t *testing.T) {
	_, _, r := setupGateway(t, false)

	w := serve(r, http.MethodGet, "/v1/session", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "anonymous", resp.State)
	assert.False(t, resp.HasRefreshToken)
	assert.Nil(t, resp.AccessExpiresAt)
}

func TestJobStats(t *testing.T) {
	server, _, r := setupGateway(t, true)
	server.ExpireAccessTokens()

	w := serve(r, http.MethodGet, "/v1/jobs/stats?bucket_size=25", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.JobStatistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 5, stats.TotalListings)
	assert.Equal(t, 3, stats.TotalApplications)
	assert.Equal(t, 91.0, stats.HighestScore)
	assert.Equal(t, []int{101}, stats.TopListings)
	assert.Equal(t, map[string]int{"75-99": 1, "50-74": 2, "25-49": 2}, stats.ScoreDistribution)

	// listings and applications are fetched concurrently and share one refresh
	assert.Equal(t, 1, server.Calls("/auth/refresh/"))
}

func TestJobStatsBadParameter(t *testing.T) {
	_, _, r := setupGateway(t, true)

	w := serve(r, http.MethodGet, "/v1/jobs/stats?min_score=lots", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobStatsNotLoggedIn(t *testing.T) {
	_, _, r := setupGateway(t, false)

	w := serve(r, http.MethodGet, "/v1/jobs/stats", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
