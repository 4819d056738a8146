package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything tally reads from config.toml.
type Config struct {
	APIURL         string
	ItemsPerPage   int
	RequestTimeout time.Duration
	RefreshEvery   time.Duration // zero disables periodic refresh
	LogDir         string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/tally/config.toml"
	defaultAPIURL         = "http://localhost:5001/api"
	defaultItemsPerPage   = 5
	defaultRequestTimeout = 5 * time.Second
	defaultLogDir         = "~/.local/share/tally/logs"
	defaultLogLevel       = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		ItemsPerPage:   defaultItemsPerPage,
		RequestTimeout: defaultRequestTimeout,
		LogDir:         mustExpand(defaultLogDir),
		LogLevel:       defaultLogLevel,
	}
}

// DefaultPath returns the config location used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the tally config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string `toml:"api_url"`
		ItemsPerPage          *int   `toml:"items_per_page"`
		RequestTimeoutSeconds *int   `toml:"request_timeout_seconds"`
		RefreshSeconds        *int   `toml:"refresh_seconds"`
		LogDir                string `toml:"log_dir"`
		LogLevel              string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.ItemsPerPage != nil && *raw.ItemsPerPage > 0 {
		cfg.ItemsPerPage = *raw.ItemsPerPage
	}
	if raw.RequestTimeoutSeconds != nil && *raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(*raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.RefreshSeconds != nil {
		if *raw.RefreshSeconds < 0 {
			return Config{}, fmt.Errorf("parse config: refresh_seconds must not be negative")
		}
		cfg.RefreshEvery = time.Duration(*raw.RefreshSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	return cfg, nil
}

// LogPath returns the path of tally's own log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/tally.log")
	}
	return filepath.Join(c.LogDir, "tally.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
