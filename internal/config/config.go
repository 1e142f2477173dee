// Package config loads and saves the per-user settings file (config.json).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type Config struct {
	// APIURL is the Task Store base URL.
	APIURL string `json:"apiUrl,omitempty"`
	// Timeout bounds each store request, as a Go duration ("10s").
	Timeout string `json:"timeout,omitempty"`
	// DebugLog is a file the TUI writes request logs to. Empty disables logging.
	DebugLog string `json:"debugLog,omitempty"`
	// Theme is light, dark or auto.
	Theme string `json:"theme,omitempty"`
}

// UnknownKeyError is returned by Set for keys that are not settings.
type UnknownKeyError struct {
	Key string
}

func (e UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key %q (valid: %s)", e.Key, strings.Join(Keys(), ", "))
}

var setters = map[string]func(*Config, string) error{
	"apiUrl": func(c *Config, v string) error {
		if v != "" {
			u, err := url.Parse(v)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("apiUrl must be an http(s) URL, got %q", v)
			}
		}
		c.APIURL = v
		return nil
	},
	"timeout": func(c *Config, v string) error {
		if v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return fmt.Errorf("timeout must be a positive duration, got %q", v)
			}
		}
		c.Timeout = v
		return nil
	},
	"debugLog": func(c *Config, v string) error {
		c.DebugLog = v
		return nil
	},
	"theme": func(c *Config, v string) error {
		switch v {
		case "", "light", "dark", "auto":
			c.Theme = v
			return nil
		}
		return fmt.Errorf("theme must be light, dark or auto, got %q", v)
	},
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set validates and assigns one setting. An empty value clears it.
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return UnknownKeyError{Key: key}
	}
	return set(c, strings.TrimSpace(value))
}

// TimeoutDuration parses Timeout, returning 0 when it is unset or invalid.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.Timeout))
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

func ConfigDir() (string, error) {
	// Override keeps tests away from ~/.todo.
	if v := strings.TrimSpace(os.Getenv("TODO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todo"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads config.json. A missing file yields an empty Config.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp name + rename so concurrent writers (CLI and TUI) never leave a torn file.
	return atomicWriteFile(dir, "config.json.*.tmp", path, append(b, '\n'), 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
