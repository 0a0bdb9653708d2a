// Package config loads todot settings from TOML, environment and flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/WillyV3/todot/internal/todo"
)

const (
	// AppName is the directory name used under the user config and data dirs.
	AppName = "todot"

	// ConfigFile is the config file name inside the config directory.
	ConfigFile = "config.toml"

	// LogFile is the log file name inside the data directory.
	LogFile = "todot.log"

	DefaultLogLevel    = "info"
	DefaultDialTimeout = 5 * time.Second
)

// Config holds all settings. An empty ServerAddress selects local file
// persistence.
type Config struct {
	ServerAddress string `toml:"server_address"`
	DataDir       string `toml:"data_dir"`
	LogLevel      string `toml:"log_level"`
	DialTimeout   string `toml:"dial_timeout"`

	// Path is the config file that was read, empty when none existed.
	Path string `toml:"-"`

	timeout time.Duration
}

// Flags carries command-line overrides. Empty fields are not applied.
type Flags struct {
	ServerAddress string
	DataDir       string
	LogLevel      string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:     DefaultDataDir(),
		LogLevel:    DefaultLogLevel,
		DialTimeout: DefaultDialTimeout.String(),
		timeout:     DefaultDialTimeout,
	}
}

// Load builds the config in priority order:
// 1. Defaults
// 2. Config file at path (DefaultConfigPath when path is empty)
// 3. Environment variables
// 4. Flags
//
// A missing config file is not an error. A malformed one is reported as a
// *todo.PersistenceError of KindConfig while the returned config still holds
// usable values from the other layers.
func Load(path string, flags Flags) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath()
	}

	var fileErr error
	if err := loadConfigFile(cfg, path); err != nil {
		fileErr = &todo.PersistenceError{Op: "load config " + path, Kind: todo.KindConfig, Err: err}
	}

	loadFromEnv(cfg)
	applyFlags(cfg, flags)

	if err := cfg.finalize(); err != nil {
		return cfg, errors.Join(fileErr, &todo.PersistenceError{Op: "load config", Kind: todo.KindConfig, Err: err})
	}
	if fileErr != nil {
		return cfg, fileErr
	}
	return cfg, nil
}

// loadConfigFile decodes path over cfg. The file is optional.
func loadConfigFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	fileCfg := *cfg
	if _, err := toml.DecodeFile(path, &fileCfg); err != nil {
		return err
	}
	*cfg = fileCfg
	cfg.Path = path
	return nil
}

func applyFlags(cfg *Config, flags Flags) {
	if flags.ServerAddress != "" {
		cfg.ServerAddress = flags.ServerAddress
	}
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
}

// finalize expands paths and validates derived values.
func (c *Config) finalize() error {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	c.DataDir = expandPath(c.DataDir)
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	c.timeout = DefaultDialTimeout
	if c.DialTimeout == "" {
		return nil
	}
	d, err := time.ParseDuration(c.DialTimeout)
	if err != nil {
		return fmt.Errorf("dial_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("dial_timeout must be positive, got %s", c.DialTimeout)
	}
	c.timeout = d
	return nil
}

// Remote reports whether the task list lives on a peer.
func (c *Config) Remote() bool {
	return c.ServerAddress != ""
}

// Timeout returns the bound for a single remote call.
func (c *Config) Timeout() time.Duration {
	if c.timeout <= 0 {
		return DefaultDialTimeout
	}
	return c.timeout
}

// LogPath returns the log file location inside the data directory.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, LogFile)
}
