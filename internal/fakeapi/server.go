// Package fakeapi is an in-process stand-in for the dashboard backend. It issues
// real HS256 JWTs and lets callers expire or revoke them on demand, which makes
// the refresh-and-replay behaviour of the client observable.
package fakeapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rm-hull/clawdash/internal/models"
)

type Options struct {
	// Prefix is the path the API is mounted on, "/api" by default.
	Prefix        string
	Secret        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	RotateRefresh bool
	PageSize      int
}

type account struct {
	user      models.User
	password  string
	skillKeys map[string]string
}

type Server struct {
	opts   Options
	secret []byte
	engine *gin.Engine

	mu                sync.Mutex
	accounts          map[string]*account
	nextUserID        int
	accessGeneration  int
	refreshGeneration int
	usedRefresh       map[string]bool
	calls             map[string]int
	authHeaders       map[string][]string
	refreshDelay      time.Duration

	workspaces   []models.Workspace
	listings     []models.JobListing
	applications []models.JobApplication
}

func New(opts Options) *Server {
	if opts.Prefix == "" {
		opts.Prefix = "/api"
	}
	if opts.Secret == "" {
		opts.Secret = "fakeapi-secret"
	}
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = 5 * time.Minute
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 24 * time.Hour
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 2
	}

	s := &Server{
		opts:         opts,
		secret:       []byte(opts.Secret),
		accounts:     make(map[string]*account),
		nextUserID:   1,
		usedRefresh:  make(map[string]bool),
		calls:        make(map[string]int),
		authHeaders:  make(map[string][]string),
		workspaces:   fixtureWorkspaces(),
		listings:     fixtureListings(),
		applications: fixtureApplications(),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.count)

	api := r.Group(s.opts.Prefix)

	auth := api.Group("/auth")
	auth.POST("/login/", s.login)
	auth.POST("/register/", s.register)
	auth.POST("/refresh/", s.refresh)
	auth.POST("/verify/", s.verify)
	auth.GET("/me/", s.authenticated, s.me)
	auth.PATCH("/profile/", s.authenticated, s.updateProfile)
	auth.POST("/change-password/", s.authenticated, s.changePassword)
	auth.PUT("/api-keys/", s.authenticated, s.updateAPIKeys)
	auth.GET("/skill-api-keys/", s.authenticated, s.skillAPIKeys)
	auth.PUT("/skill-api-keys/", s.authenticated, s.updateSkillAPIKeys)

	workspaces := api.Group("/workspaces", s.authenticated)
	workspaces.GET("/", s.listWorkspaces)
	workspaces.GET("/:id/", s.getWorkspace)
	workspaces.GET("/:id/status_check/", s.workspaceStatus)

	jobs := api.Group("/jobapply", s.authenticated)
	jobs.GET("/dashboard/", s.jobDashboard)
	jobs.GET("/listings/", s.listListings)
	jobs.GET("/applications/", s.listApplications)

	return r
}

// count records every call and the Authorization header it carried, keyed by the
// path below the mount prefix.
func (s *Server) count(c *gin.Context) {
	path := strings.TrimPrefix(c.Request.URL.Path, s.opts.Prefix)

	s.mu.Lock()
	s.calls[path]++
	s.authHeaders[path] = append(s.authHeaders[path], c.GetHeader("Authorization"))
	s.mu.Unlock()

	c.Next()
}

// AddUser creates an account that can log in with the given credentials.
func (s *Server) AddUser(email, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password, "", "")
}

func (s *Server) addUserLocked(email, password, firstName, lastName string) models.User {
	now := time.Now().UTC()
	user := models.User{
		ID:        s.nextUserID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextUserID++
	s.accounts[strings.ToLower(email)] = &account{user: user, password: password}
	return user
}

// IssueTokens signs a token pair for an existing account without going through
// login, so callers can seed a session directly.
func (s *Server) IssueTokens(email string) (models.TokenPair, bool) {
	s.mu.Lock()
	acct, ok := s.accounts[strings.ToLower(email)]
	s.mu.Unlock()
	if !ok {
		return models.TokenPair{}, false
	}

	access, refresh, err := s.issuePair(acct.user.ID)
	if err != nil {
		return models.TokenPair{}, false
	}
	return models.TokenPair{Access: access, Refresh: refresh}, true
}

// ExpireAccessTokens invalidates every access token issued so far.
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessGeneration++
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshGeneration++
}

// SetRefreshDelay holds each refresh call for d before answering.
func (s *Server) SetRefreshDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDelay = d
}

func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// AuthHeaders returns the Authorization header of every call to path, in order.
func (s *Server) AuthHeaders(path string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authHeaders[path]...)
}

func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
	s.authHeaders = make(map[string][]string)
}

func (s *Server) SetListings(listings []models.JobListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = listings
}

func (s *Server) SetApplications(applications []models.JobApplication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications = applications
}
