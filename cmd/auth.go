package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/rm-hull/clawdash/internal"
	"github.com/rm-hull/clawdash/internal/models"
)

type WhoAmIResponse struct {
	Profile         string       `json:"profile"`
	BaseURL         string       `json:"base_url"`
	State           string       `json:"state"`
	AccessExpiresAt *time.Time   `json:"access_expires_at,omitempty"`
	User            *models.User `json:"user,omitempty"`
}

// readPassword falls back to the first line of r when no password was given.
func readPassword(password string, r io.Reader) (string, error) {
	if password != "" {
		return password, nil
	}
	if env := os.Getenv("CLAWDASH_PASSWORD"); env != "" {
		return env, nil
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "failed to read password")
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no password given")
	}
	return line, nil
}

func Login(ctx context.Context, opts Options, email, password string) error {
	password, err := readPassword(password, os.Stdin)
	if err != nil {
		return err
	}

	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.client.Login(ctx, email, password); err != nil {
		return err
	}
	fmt.Printf("Logged in to %s as %s (profile: %s)\n", a.client.BaseURL(), email, a.cfg.Profile)
	return nil
}

func Register(ctx context.Context, opts Options, req models.RegisterRequest) error {
	password, err := readPassword(req.Password, os.Stdin)
	if err != nil {
		return err
	}
	req.Password = password

	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.client.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s (user id %d, profile: %s)\n", resp.User.Email, resp.User.ID, a.cfg.Profile)
	return nil
}

func Logout(opts Options) error {
	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	a.client.Logout()
	return nil
}

func WhoAmI(ctx context.Context, opts Options) error {
	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	resp := WhoAmIResponse{
		Profile: a.cfg.Profile,
		BaseURL: a.client.BaseURL(),
		State:   a.client.State().String(),
	}
	if expiry, err := a.client.AccessTokenExpiry(); err == nil {
		resp.AccessExpiresAt = &expiry
	}

	user, err := a.client.Me(ctx)
	switch {
	case errors.Is(err, internal.ErrNotLoggedIn):
	case err != nil:
		return err
	default:
		resp.User = user
	}
	// Me may have refreshed or torn down the session
	resp.State = a.client.State().String()

	return printJSON(resp)
}

func Profiles(opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	profiles, err := internal.ListProfiles(db)
	if err != nil {
		return err
	}
	return printJSON(profiles)
}
