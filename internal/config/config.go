// Package config loads the gh-pulls configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

var mergeMethods = []string{"merge", "squash", "rebase"}

// Config holds user preferences. Flags override environment variables,
// which override the file, which overrides the defaults.
type Config struct {
	Host        string   `toml:"host"`
	Repo        string   `toml:"repo"`
	PerPage     int      `toml:"per_page"`
	MergeMethod string   `toml:"merge_method"`
	Color       bool     `toml:"color"`
	LogLevel    string   `toml:"log_level"`
	IgnoreBots  bool     `toml:"ignore_bots"`
	IgnoreUsers []string `toml:"ignore_users"`
	MaxPages    int      `toml:"max_pages"`
	ConfigPath  string   `toml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		PerPage:     30,
		MergeMethod: "merge",
		Color:       true,
		LogLevel:    "warn",
		IgnoreBots:  true,
	}
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gh-pulls", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gh-pulls", "config.toml")
}

// Load reads configPath, or the default location when empty, and applies
// environment overrides. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg.ConfigPath = configPath

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if _, err := toml.DecodeFile(configPath, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GH_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("GH_PULLS_REPO"); v != "" {
		c.Repo = v
	}
	if v := os.Getenv("GH_PULLS_MERGE_METHOD"); v != "" {
		c.MergeMethod = v
	}
	if v := os.Getenv("GH_PULLS_IGNORE_USERS"); v != "" {
		c.IgnoreUsers = splitAndTrim(v, ",")
	}
	if v := os.Getenv("GH_PULLS_PER_PAGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GH_PULLS_PER_PAGE %q: %w", v, err)
		}
		c.PerPage = n
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Color = false
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.PerPage < 1 || c.PerPage > 100 {
		return fmt.Errorf("per_page must be between 1 and 100, got %d", c.PerPage)
	}
	if !slices.Contains(mergeMethods, c.MergeMethod) {
		return fmt.Errorf("merge_method must be one of %s, got %q", strings.Join(mergeMethods, ", "), c.MergeMethod)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max_pages must not be negative, got %d", c.MaxPages)
	}
	return nil
}

// IsIgnored reports whether login is configured as ignored.
func (c *Config) IsIgnored(login string) bool {
	return slices.Contains(c.IgnoreUsers, login)
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
