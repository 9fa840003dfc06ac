package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	APIURL      string        `yaml:"api_url"      env:"CLAWDASH_API_URL"      env-default:"http://localhost:8000/api"`
	DBPath      string        `yaml:"db_path"      env:"CLAWDASH_DB_PATH"      env-default:"./data/clawdash.db"`
	Profile     string        `yaml:"profile"      env:"CLAWDASH_PROFILE"      env-default:"default"`
	Timeout     time.Duration `yaml:"timeout"      env:"CLAWDASH_TIMEOUT"      env-default:"30s"`
	LogRequests bool          `yaml:"log_requests" env:"CLAWDASH_LOG_REQUESTS" env-default:"false"`
}

// Load reads the YAML file at path when one is given (or named by CLAWDASH_CONFIG),
// then overlays the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CLAWDASH_CONFIG")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config file %q stat failed", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Profile == "" {
		return errors.New("profile must not be empty")
	}
	if c.Timeout < 0 {
		return errors.Newf("timeout must not be negative: %s", c.Timeout)
	}
	return nil
}
