package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName   = "spotiqueue"
	envPrefix = "SPOTIQUEUE_"

	DefaultDeviceName   = "spotiqueue"
	DefaultLoginTimeout = 30 * time.Second
	DefaultBitrate      = 320
	DefaultBuffer       = 100 * time.Millisecond
	DefaultLoadTimeout  = 15 * time.Second
)

type Config struct {
	DeviceName   string        `koanf:"device_name"`   // device name shown in Spotify Connect
	LoginTimeout time.Duration `koanf:"login_timeout"` // e.g. "30s"

	Player  PlayerConfig  `koanf:"player"`
	Log     LogConfig     `koanf:"log"`
	History HistoryConfig `koanf:"history"`
}

// PlayerConfig holds audio output settings.
type PlayerConfig struct {
	Bitrate int           `koanf:"bitrate"` // preferred Ogg Vorbis bitrate: 96, 160, 320 (default: 320)
	Volume  *float64      `koanf:"volume"`  // 0.0-1.0 (default: 1.0)
	Buffer  time.Duration `koanf:"buffer"`  // speaker buffer (default: 100ms)

	LoadTimeout time.Duration `koanf:"load_timeout"` // per-track fetch and decode limit (default: 15s)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // logrus level name (default: "info")
	Format string `koanf:"format"` // "text" or "json" (default: "text")
	File   bool   `koanf:"file"`   // write to a dated file instead of stderr
	Dir    string `koanf:"dir"`    // log directory (default: $XDG_STATE_HOME/spotiqueue/logs)
}

// HistoryConfig holds play history settings.
type HistoryConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Path    string `koanf:"path"`    // default: $XDG_DATA_HOME/spotiqueue/history.db
}

// Load reads the config files in priority order, then environment
// overrides such as SPOTIQUEUE_PLAYER__BITRATE=160.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths())
}

// LoadFrom reads the given config files (last wins) and the environment.
// Missing files are skipped.
func LoadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := &Config{
		DeviceName:   DefaultDeviceName,
		LoginTimeout: DefaultLoginTimeout,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Log.Dir = expandPath(cfg.Log.Dir)
	cfg.History.Path = expandPath(cfg.History.Path)

	if cfg.DeviceName == "" {
		cfg.DeviceName = DefaultDeviceName
	}
	if cfg.LoginTimeout <= 0 {
		cfg.LoginTimeout = DefaultLoginTimeout
	}

	return cfg, nil
}

// envKey maps SPOTIQUEUE_PLAYER__BITRATE to player.bitrate.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/spotiqueue/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./spotiqueue.toml (pwd, highest priority)
		"spotiqueue.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPlayerConfig returns the player configuration with defaults applied.
func (c *Config) GetPlayerConfig() PlayerConfig {
	cfg := c.Player

	switch cfg.Bitrate {
	case 96, 160, 320:
	default:
		cfg.Bitrate = DefaultBitrate
	}
	if cfg.Volume == nil || *cfg.Volume < 0 || *cfg.Volume > 1 {
		v := 1.0
		cfg.Volume = &v
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = DefaultLoadTimeout
	}

	return cfg
}

// HistoryEnabled returns true unless history is explicitly disabled.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// HistoryPath returns the history database path, creating its directory
// under $XDG_DATA_HOME when no path is configured.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	return xdg.DataFile(filepath.Join(appName, "history.db"))
}

// LogDir returns the directory for log files.
func (c *Config) LogDir() string {
	if c.Log.Dir != "" {
		return c.Log.Dir
	}
	return filepath.Join(xdg.StateHome, appName, "logs")
}
