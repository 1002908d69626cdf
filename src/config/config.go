package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Zaphoood/histedit/src/history"
	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_CLIPBOARD_CLEAR_DELAY = 10
	configDirName                 = "histedit"
	configFileName                = "config.yaml"
)

type Keys struct {
	Undo []string `yaml:"undo"`
	Redo []string `yaml:"redo"`
}

type Config struct {
	// Maximum number of history entries kept per document
	Capacity int    `yaml:"capacity"`
	LogFile  string `yaml:"log_file"`
	// Seconds after which text copied with :yank is cleared from the clipboard. 0 disables clearing.
	ClipboardClearDelay int  `yaml:"clipboard_clear_delay"`
	Keys                Keys `yaml:"keys"`
}

func Default() Config {
	return Config{
		Capacity:            history.DefaultCapacity,
		ClipboardClearDelay: DEFAULT_CLIPBOARD_CLEAR_DELAY,
		Keys: Keys{
			Undo: []string{"ctrl+z"},
			Redo: []string{"ctrl+y", "ctrl+r"},
		},
	}
}

// DefaultPath returns the location of the config file in the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Load reads the config file at path on top of the defaults. If path is empty,
// the default location is used. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()
	if len(path) == 0 {
		var err error
		path, err = DefaultPath()
		if err != nil {
			// Without a config dir there is nothing to load
			return c, nil
		}
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("Failed to read config '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(content, &c); err != nil {
		return c, fmt.Errorf("Failed to parse config '%s': %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("Invalid config '%s': %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return history.ConfigurationError{Capacity: c.Capacity}
	}
	if c.ClipboardClearDelay < 0 {
		return fmt.Errorf("clipboard_clear_delay must not be negative, got %d", c.ClipboardClearDelay)
	}
	if len(c.Keys.Undo) == 0 {
		return errors.New("keys.undo must contain at least one key")
	}
	if len(c.Keys.Redo) == 0 {
		return errors.New("keys.redo must contain at least one key")
	}
	return nil
}
