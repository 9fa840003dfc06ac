package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rm-hull/clawdash/internal"
)

type SessionResponse struct {
	State            string     `json:"state"`
	BaseURL          string     `json:"base_url"`
	AccessExpiresAt  *time.Time `json:"access_expires_at,omitempty"`
	HasRefreshToken  bool       `json:"has_refresh_token"`
	SecondsRemaining *int       `json:"seconds_remaining,omitempty"`
}

func Session(client *internal.Client) func(c *gin.Context) {
	return func(c *gin.Context) {
		resp := SessionResponse{
			State:           client.State().String(),
			BaseURL:         client.BaseURL(),
			HasRefreshToken: client.Session().RefreshToken() != "",
		}

		if expiry, err := client.AccessTokenExpiry(); err == nil {
			remaining := int(time.Until(expiry).Seconds())
			resp.AccessExpiresAt = &expiry
			resp.SecondsRemaining = &remaining
		}

		c.JSON(http.StatusOK, resp)
	}
}
