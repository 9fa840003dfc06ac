package cmd

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/rm-hull/godx"

	"github.com/rm-hull/clawdash/internal"
	"github.com/rm-hull/clawdash/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options are the flags shared by every command. Empty values fall back to the
// loaded configuration.
type Options struct {
	ConfigFile  string
	APIURL      string
	DBPath      string
	Profile     string
	LogRequests bool
}

type app struct {
	cfg    *config.Config
	db     *sql.DB
	store  *internal.SessionStore
	client *internal.Client
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.Printf("failed to close session store: %v", err)
	}
}

func loadConfig(opts Options) (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	if opts.Profile != "" {
		cfg.Profile = opts.Profile
	}
	if opts.LogRequests {
		cfg.LogRequests = true
	}
	return cfg, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrapf(err, "failed to create database directory %s", dir)
		}
	}

	db, err := internal.Connect(dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize database")
	}

	if err := internal.Migrate(dbPath); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to migrate SQL")
	}
	return db, nil
}

// bootstrap initialises shared resources used by every command that talks to
// the dashboard: configuration, the session database and the authenticated client.
func bootstrap(opts Options) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	store, err := internal.OpenSessionStore(db, cfg.Profile, cfg.APIURL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	client, err := internal.NewClient(internal.ClientOptions{
		BaseURL:     cfg.APIURL,
		Session:     store,
		Timeout:     cfg.Timeout,
		LogRequests: cfg.LogRequests,
		OnLogout: func(reason error) {
			log.Printf("Session for profile %s ended: %v", cfg.Profile, reason)
		},
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create client")
	}

	return &app{cfg: cfg, db: db, store: store, client: client}, nil
}

func banner() {
	godx.GitVersion()
	godx.EnvironmentVars()
	godx.UserInfo()
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
