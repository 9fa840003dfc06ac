package cmd

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rm-hull/clawdash/internal/fakeapi"
)

// DevServer runs the in-process fake backend with a single seeded account.
func DevServer(port int, email, password string, accessTTL time.Duration, rotate bool) error {
	server := fakeapi.New(fakeapi.Options{
		AccessTTL:     accessTTL,
		RotateRefresh: rotate,
	})
	user := server.AddUser(email, password)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting fake dashboard API on port %d (user %d: %s, access TTL %s)", port, user.ID, user.Email, accessTTL)
	if err := server.Run(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("fake dashboard API failed to start on port %d: %v", port, err)
	}
	return nil
}
