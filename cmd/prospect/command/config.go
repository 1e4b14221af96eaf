package command

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
)

type Config struct {
	LogLevel  string `json:"log_level"  env:"PROSPECT_LOG_LEVEL"`
	Backup    bool   `json:"backup"     env:"PROSPECT_BACKUP"`
	BackupDir string `json:"backup_dir" env:"PROSPECT_BACKUP_DIR"`
	SaveDir   string `json:"save_dir"   env:"PROSPECT_SAVE_DIR"`
	AssumeYes bool   `json:"assume_yes" env:"PROSPECT_ASSUME_YES"`
}

// DefaultConfig backs up before every save and asks before every change.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Backup:   true,
	}
}

// LoadConfig layers an optional JSON file and the environment over the
// defaults. Flags are applied by the caller.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if _, err := c.Level(); err != nil {
		el.Add(err)
	}

	if c.BackupDir != "" {
		if info, err := os.Stat(c.BackupDir); err == nil && !info.IsDir() {
			el.Add(fmt.Errorf("backup_dir %s is not a directory", c.BackupDir))
		}
	}

	if c.SaveDir != "" {
		info, err := os.Stat(c.SaveDir)
		if err != nil {
			el.Add(fmt.Errorf("save_dir: %w", err))
		} else if !info.IsDir() {
			el.Add(fmt.Errorf("save_dir %s is not a directory", c.SaveDir))
		}
	}

	return el.Err()
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("parsing log_level: %w", err)
	}
	return l, nil
}
