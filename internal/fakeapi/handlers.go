package fakeapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rm-hull/clawdash/internal/models"
)

const userKey = "user"

func tokenNotValid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"detail": "Given token not valid for any token type",
		"code":   "token_not_valid",
	})
}

func (s *Server) authenticated(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}

	claims, err := s.verifyToken(raw, accessType)
	if err != nil {
		tokenNotValid(c)
		return
	}

	acct := s.accountByID(claims.UserID)
	if acct == nil {
		tokenNotValid(c)
		return
	}
	c.Set(userKey, acct)
	c.Next()
}

func (s *Server) accountByID(id int) *account {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.accounts {
		if acct.user.ID == id {
			return acct
		}
	}
	return nil
}

func currentAccount(c *gin.Context) *account {
	return c.MustGet(userKey).(*account)
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[strings.ToLower(req.Email)]
	s.mu.Unlock()
	if !ok || acct.password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
		return
	}

	access, refresh, err := s.issuePair(acct.user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.TokenPair{Access: access, Refresh: refresh})
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"email": []string{"This field is required."}})
		return
	}
	if req.Password != req.PasswordConfirm {
		c.JSON(http.StatusBadRequest, gin.H{"password_confirm": []string{"Passwords do not match."}})
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[strings.ToLower(req.Email)]; exists {
		s.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"email": []string{"user with this email already exists."}})
		return
	}
	user := s.addUserLocked(req.Email, req.Password, req.FirstName, req.LastName)
	s.mu.Unlock()

	access, refresh, err := s.issuePair(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, models.RegisterResponse{
		User:      user,
		TokenPair: models.TokenPair{Access: access, Refresh: refresh},
	})
}

func (s *Server) refresh(c *gin.Context) {
	s.mu.Lock()
	delay := s.refreshDelay
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	var req models.TokenRefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"refresh": []string{"This field is required."}})
		return
	}

	claims, err := s.verifyToken(req.Refresh, refreshType)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}

	access, refresh, err := s.issuePair(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if !s.opts.RotateRefresh {
		c.JSON(http.StatusOK, models.TokenRefreshResponse{Access: access})
		return
	}

	s.mu.Lock()
	s.usedRefresh[claims.ID] = true
	s.mu.Unlock()
	c.JSON(http.StatusOK, models.TokenRefreshResponse{Access: access, Refresh: refresh})
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	user := currentAccount(c).user
	s.mu.Unlock()
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	acct := currentAccount(c)
	s.mu.Lock()
	if update.FirstName != nil {
		acct.user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		acct.user.LastName = *update.LastName
	}
	if update.CompanyName != nil {
		acct.user.CompanyName = *update.CompanyName
	}
	acct.user.UpdatedAt = time.Now().UTC()
	user := acct.user
	s.mu.Unlock()

	c.JSON(http.StatusOK, user)
}

func (s *Server) changePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	acct := currentAccount(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if acct.password != req.OldPassword {
		c.JSON(http.StatusBadRequest, gin.H{"old_password": []string{"Old password is incorrect."}})
		return
	}
	if req.NewPassword != req.NewPasswordConfirm {
		c.JSON(http.StatusBadRequest, gin.H{"new_password_confirm": []string{"Passwords do not match."}})
		return
	}
	acct.password = req.NewPassword
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Password updated successfully."})
}

// verify accepts any live token of either type, like simplejwt's TokenVerifyView.
func (s *Server) verify(c *gin.Context) {
	var req models.TokenVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"token": []string{"This field is required."}})
		return
	}
	if _, err := s.verifyToken(req.Token, accessType); err != nil {
		if _, err := s.verifyToken(req.Token, refreshType); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired", "code": "token_not_valid"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) updateAPIKeys(c *gin.Context) {
	var update models.APIKeysUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	acct := currentAccount(c)
	s.mu.Lock()
	if update.AnthropicAPIKey != nil {
		acct.user.HasAnthropicKey = *update.AnthropicAPIKey != ""
	}
	if update.OpenAIAPIKey != nil {
		acct.user.HasOpenAIKey = *update.OpenAIAPIKey != ""
	}
	user := acct.user
	s.mu.Unlock()

	c.JSON(http.StatusOK, models.APIKeysResponse{
		Message:         "API keys updated successfully",
		HasAnthropicKey: user.HasAnthropicKey,
		HasOpenAIKey:    user.HasOpenAIKey,
	})
}

func (s *Server) skillAPIKeys(c *gin.Context) {
	acct := currentAccount(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := models.SkillAPIKeys{Keys: fixtureSkillKeys()}
	for i := range resp.Keys {
		if acct.skillKeys[resp.Keys[i].Key] != "" {
			resp.Keys[i].IsConfigured = true
			resp.ConfiguredCount++
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) updateSkillAPIKeys(c *gin.Context) {
	var update models.SkillAPIKeysUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keys must be a dictionary"})
		return
	}

	acct := currentAccount(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	if acct.skillKeys == nil {
		acct.skillKeys = make(map[string]string)
	}
	for key, value := range update.Keys {
		if value == "" {
			delete(acct.skillKeys, key)
		} else {
			acct.skillKeys[key] = value
		}
	}

	configured := make([]string, 0, len(acct.skillKeys))
	for key := range acct.skillKeys {
		configured = append(configured, key)
	}
	sort.Strings(configured)
	c.JSON(http.StatusOK, models.SkillAPIKeysUpdated{
		Message:        "Skill API keys updated successfully",
		ConfiguredKeys: configured,
	})
}

func (s *Server) listWorkspaces(c *gin.Context) {
	s.mu.Lock()
	workspaces := append([]models.Workspace(nil), s.workspaces...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, workspaces)
}

func (s *Server) findWorkspace(c *gin.Context) (*models.Workspace, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workspaces {
		if s.workspaces[i].ID == id {
			ws := s.workspaces[i]
			return &ws, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	return nil, false
}

func (s *Server) getWorkspace(c *gin.Context) {
	if ws, ok := s.findWorkspace(c); ok {
		c.JSON(http.StatusOK, ws)
	}
}

func (s *Server) workspaceStatus(c *gin.Context) {
	ws, ok := s.findWorkspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.WorkspaceStatus{
		Status:          ws.Status,
		IsRunning:       ws.IsRunning,
		LastHealthCheck: ws.LastHealthCheck,
		ErrorMessage:    ws.ErrorMessage,
	})
}

func (s *Server) jobDashboard(c *gin.Context) {
	s.mu.Lock()
	listings := append([]models.JobListing(nil), s.listings...)
	applications := append([]models.JobApplication(nil), s.applications...)
	s.mu.Unlock()

	dashboard := models.JobDashboard{
		TotalListings:      len(listings),
		TotalApplications:  len(applications),
		RecentListings:     listings,
		RecentApplications: applications,
	}
	sum := 0.0
	for _, listing := range listings {
		sum += listing.MatchScore
	}
	if len(listings) > 0 {
		dashboard.AvgMatchScore = sum / float64(len(listings))
	}
	for _, app := range applications {
		switch app.Status {
		case models.ApplicationApplied:
			dashboard.AppliedCount++
		case models.ApplicationInterview:
			dashboard.InterviewCount++
		case models.ApplicationFailed:
			dashboard.FailedCount++
		}
	}
	c.JSON(http.StatusOK, dashboard)
}

// listListings serves a DRF style page with an absolute next link.
func (s *Server) listListings(c *gin.Context) {
	minScore, _ := strconv.ParseFloat(c.Query("min_score"), 64)
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid page."})
		return
	}

	s.mu.Lock()
	matching := make([]models.JobListing, 0, len(s.listings))
	for _, listing := range s.listings {
		if listing.MatchScore >= minScore && !listing.Dismissed {
			matching = append(matching, listing)
		}
	}
	s.mu.Unlock()

	size := s.opts.PageSize
	start := (page - 1) * size
	if start > len(matching) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid page."})
		return
	}
	end := min(start+size, len(matching))

	result := models.Page[models.JobListing]{
		Count:   len(matching),
		Results: matching[start:end],
	}
	if end < len(matching) {
		next := pageLink(c, page+1)
		result.Next = &next
	}
	if page > 1 {
		prev := pageLink(c, page-1)
		result.Previous = &prev
	}
	c.JSON(http.StatusOK, result)
}

func pageLink(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	query := c.Request.URL.Query()
	query.Set("page", strconv.Itoa(page))
	return fmt.Sprintf("%s://%s%s?%s", scheme, c.Request.Host, c.Request.URL.Path, query.Encode())
}

func (s *Server) listApplications(c *gin.Context) {
	s.mu.Lock()
	applications := append([]models.JobApplication(nil), s.applications...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, applications)
}
