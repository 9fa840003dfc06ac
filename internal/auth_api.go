package internal

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rm-hull/clawdash/internal/models"
)

const (
	profileKey    = "me"
	verifyPath    = "/auth/verify/"
	skillKeysPath = "/auth/skill-api-keys/"
)

var ErrNoExpiry = errors.New("access token has no expiry claim")

// Login exchanges credentials for a token pair and stores it in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	resp, err := c.Do(ctx, &Request{
		Method:    http.MethodPost,
		Path:      loginPath,
		Body:      models.LoginRequest{Email: strings.TrimSpace(email), Password: password},
		Anonymous: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}

	var pair models.TokenPair
	if err := resp.Decode(&pair); err != nil {
		return nil, err
	}
	if err := c.storeTokens(pair); err != nil {
		return nil, err
	}

	log.Printf("Logged in as %s", email)
	return &pair, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	if req.PasswordConfirm == "" {
		req.PasswordConfirm = req.Password
	}

	resp, err := c.Do(ctx, &Request{
		Method:    http.MethodPost,
		Path:      registerPath,
		Body:      req,
		Anonymous: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "registration failed")
	}

	var data models.RegisterResponse
	if err := resp.Decode(&data); err != nil {
		return nil, err
	}
	if err := c.storeTokens(data.TokenPair); err != nil {
		return nil, err
	}

	log.Printf("Registered and logged in as %s", data.User.Email)
	return &data, nil
}

func (c *Client) storeTokens(pair models.TokenPair) error {
	if pair.Access == "" || pair.Refresh == "" {
		return errors.New("authentication response did not contain a token pair")
	}
	if err := c.session.SetTokens(pair.Access, pair.Refresh); err != nil {
		return errors.Wrap(err, "failed to store session")
	}
	c.memo.Storage.Flush()
	return nil
}

// Logout clears the session and fires the logout callback.
func (c *Client) Logout() {
	c.forceLogout(ErrLoggedOut)
}

// Me returns the current user, memoized for the client's profile TTL.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	if c.session.AccessToken() == "" && c.session.RefreshToken() == "" {
		return nil, ErrNotLoggedIn
	}

	value, err, cached := c.memo.Memoize(profileKey, func() (any, error) {
		var user models.User
		if err := c.Get(ctx, mePath, nil, &user); err != nil {
			return nil, err
		}
		return &user, nil
	})
	if err != nil {
		return nil, err
	}
	if cached {
		log.Printf("Using cached profile")
	}
	return value.(*models.User), nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.Patch(ctx, "/auth/profile/", update, &user); err != nil {
		return nil, err
	}
	c.memo.Storage.Flush()
	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.Post(ctx, "/auth/change-password/", models.ChangePasswordRequest{
		OldPassword:        oldPassword,
		NewPassword:        newPassword,
		NewPasswordConfirm: newPassword,
	}, nil)
}

// VerifyToken asks the server whether token is still valid. An empty token checks
// the session's current access token.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	if token == "" {
		token = c.session.AccessToken()
	}
	if token == "" {
		return ErrNotLoggedIn
	}
	_, err := c.Do(ctx, &Request{
		Method:    http.MethodPost,
		Path:      verifyPath,
		Body:      models.TokenVerifyRequest{Token: token},
		Anonymous: true,
	})
	return err
}

func (c *Client) UpdateAPIKeys(ctx context.Context, update models.APIKeysUpdate) (*models.APIKeysResponse, error) {
	var out models.APIKeysResponse
	if err := c.Put(ctx, "/auth/api-keys/", update, &out); err != nil {
		return nil, err
	}
	c.memo.Storage.Flush()
	return &out, nil
}

func (c *Client) SkillAPIKeys(ctx context.Context) (*models.SkillAPIKeys, error) {
	var out models.SkillAPIKeys
	if err := c.Get(ctx, skillKeysPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSkillAPIKeys(ctx context.Context, keys map[string]string) (*models.SkillAPIKeysUpdated, error) {
	var out models.SkillAPIKeysUpdated
	if err := c.Put(ctx, skillKeysPath, models.SkillAPIKeysUpdate{Keys: keys}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AccessTokenExpiry reads the exp claim of the current access token without
// verifying its signature.
func (c *Client) AccessTokenExpiry() (time.Time, error) {
	token := c.session.AccessToken()
	if token == "" {
		return time.Time{}, ErrNotLoggedIn
	}
	return TokenExpiry(token)
}

func TokenExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, errors.Wrap(err, "failed to parse access token")
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// RefreshIfExpiring refreshes the access token ahead of time when it expires within
// the given window. A failed refresh ends the session just like a failed 401 recovery.
func (c *Client) RefreshIfExpiring(ctx context.Context, within time.Duration) (bool, error) {
	expiry, err := c.AccessTokenExpiry()
	switch {
	case errors.Is(err, ErrNotLoggedIn):
		if c.session.RefreshToken() == "" {
			return false, err
		}
	case err != nil:
		return false, err
	case time.Until(expiry) >= within:
		return false, nil
	}

	log.Printf("Access token has either expired or is expiring soon, refreshing...")
	if _, err := c.freshAccessToken(ctx, ""); err != nil {
		return false, err
	}
	return true, nil
}
