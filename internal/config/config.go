package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName   = "wavenote"
	envPrefix = "WAVENOTE_"
	logFile   = "wavenote.log"
)

type Config struct {
	Icons           string  `koanf:"icons" default:"nerd" validate:"oneof=nerd unicode none"`
	DefaultMIMEType string  `koanf:"default_mime_type" default:"audio/mpeg" validate:"required"`
	AutoPlay        bool    `koanf:"autoplay"`
	SeekStepMs      int     `koanf:"seek_step_ms" default:"5000" validate:"gte=100,lte=600000"`
	TimeUpdateMs    int     `koanf:"time_update_ms" default:"250" validate:"gte=20,lte=5000"`
	Volume          float64 `koanf:"volume" default:"1" validate:"gte=0,lte=1"`
	MPRIS           bool    `koanf:"mpris" default:"true"`   // media keys over D-Bus (Linux)
	History         bool    `koanf:"history" default:"true"` // remember which notes were heard
	HistoryKeep     int     `koanf:"history_keep" default:"500" validate:"gte=1"`

	Log LogConfig `koanf:"log"`
}

// LogConfig controls where diagnostics go. The terminal belongs to the
// player, so logs default to a file.
type LogConfig struct {
	Level  string `koanf:"level" default:"info" validate:"oneof=trace debug info warn error disabled"`
	Output string `koanf:"output" default:"file" validate:"oneof=file stderr none"`
	File   string `koanf:"file"` // empty means $XDG_STATE_HOME/wavenote/wavenote.log
}

// Load reads configuration. Sources in increasing priority: defaults,
// $XDG_CONFIG_HOME/wavenote/config.toml, ./config.toml, explicit (if not
// empty), then WAVENOTE_* environment variables. A .env file in the working
// directory is loaded into the environment first.
func Load(explicit string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "parse %s", path)
			}
		}
	}
	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "set defaults")
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	cfg.Icons = strings.ToLower(strings.TrimSpace(cfg.Icons))
	cfg.DefaultMIMEType = strings.ToLower(strings.TrimSpace(cfg.DefaultMIMEType))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Output = strings.ToLower(strings.TrimSpace(cfg.Log.Output))
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// SeekStep returns the arrow-key seek distance.
func (c *Config) SeekStep() time.Duration {
	return time.Duration(c.SeekStepMs) * time.Millisecond
}

// TimeUpdateInterval returns the position reporting cadence.
func (c *Config) TimeUpdateInterval() time.Duration {
	return time.Duration(c.TimeUpdateMs) * time.Millisecond
}

// LogPath returns the log file path, creating its directory if needed.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.File), 0o755); err != nil {
			return "", errors.Wrap(err, "create log directory")
		}
		return c.Log.File, nil
	}
	path, err := xdg.StateFile(filepath.Join(appName, logFile))
	if err != nil {
		return "", errors.Wrap(err, "resolve log path")
	}
	return path, nil
}

func getConfigPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		"config.toml",
	}
}

// envKey maps WAVENOTE_LOG_LEVEL to log.level and WAVENOTE_SEEK_STEP_MS to
// seek_step_ms.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
