// Package config loads the tasks configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/text/language"

	"github.com/amonks/tasks/internal/kv"
	"github.com/amonks/tasks/internal/logging"
	"github.com/amonks/tasks/internal/paths"
	"github.com/amonks/tasks/task"
)

// ErrInvalidLocale is returned when the list locale is not a BCP 47 tag.
var ErrInvalidLocale = errors.New("invalid locale")

// Config represents the config.toml file after environment overrides.
type Config struct {
	Storage Storage `toml:"storage"`
	List    List    `toml:"list"`
	Log     Log     `toml:"log"`
}

// Storage selects where tasks are kept.
type Storage struct {
	// Backend is "file" or "sqlite".
	Backend kv.Backend `toml:"backend" env:"TASKS_STORAGE_BACKEND"`

	// Path is the store directory for the file backend, or the database
	// file for the sqlite backend. A leading "~" is expanded.
	Path string `toml:"path" env:"TASKS_STORAGE_PATH"`
}

// List configures listing.
type List struct {
	// Locale drives title collation.
	Locale string `toml:"locale" env:"TASKS_LOCALE"`

	// Filter is the default priority tab.
	Filter task.Filter `toml:"filter" env:"TASKS_FILTER"`
}

// Log configures diagnostics written to stderr.
type Log struct {
	Level string `toml:"level" env:"TASKS_LOG_LEVEL"`
}

// Load reads the config file at path, applies TASKS_* environment overrides,
// fills defaults and validates the result. An empty path means the default
// global config file. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		defaultPath, err := paths.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	backend, err := kv.ParseBackend(string(c.Storage.Backend))
	if err != nil {
		return err
	}
	c.Storage.Backend = backend

	if c.Storage.Path == "" {
		stateDir, err := paths.DefaultStateDir()
		if err != nil {
			return err
		}
		c.Storage.Path = stateDir
		if backend == kv.BackendSQLite {
			c.Storage.Path = filepath.Join(stateDir, "tasks.db")
		}
	}
	expanded, err := paths.ExpandHome(c.Storage.Path)
	if err != nil {
		return err
	}
	c.Storage.Path = expanded

	if c.List.Locale == "" {
		c.List.Locale = task.DefaultLocale.String()
	}
	if c.List.Filter == "" {
		c.List.Filter = task.FilterAll
	}
	if c.Log.Level == "" {
		c.Log.Level = logging.DefaultLevel
	}
	return nil
}

// Validate checks every setting, normalizing case where it is lenient.
func (c *Config) Validate() error {
	backend, err := kv.ParseBackend(string(c.Storage.Backend))
	if err != nil {
		return fmt.Errorf("storage.backend: %w", err)
	}
	c.Storage.Backend = backend

	if _, err := c.Locale(); err != nil {
		return fmt.Errorf("list.locale: %w", err)
	}

	filter, err := task.ParseFilter(string(c.List.Filter))
	if err != nil {
		return fmt.Errorf("list.filter: %w", err)
	}
	c.List.Filter = filter

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Locale returns the parsed collation locale.
func (c *Config) Locale() (language.Tag, error) {
	tag, err := language.Parse(c.List.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("%w %q: %w", ErrInvalidLocale, c.List.Locale, err)
	}
	return tag, nil
}

// OpenStore opens the configured storage backend.
func (c *Config) OpenStore() (kv.Store, error) {
	return kv.Open(c.Storage.Backend, c.Storage.Path)
}
