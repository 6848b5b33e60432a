package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/CrestNiraj12/feedthread/app"
)

// EnvPrefix prefixes every environment override, e.g. FEEDTHREAD_API_BASE_URL.
const EnvPrefix = "FEEDTHREAD_"

// Config holds application-level configuration.
type Config struct {
	API struct {
		BaseURL       string  `koanf:"base_url"`       // e.g. "https://social.example"
		TokenPath     string  `koanf:"token_path"`     // File containing the bearer token
		AllowInsecure bool    `koanf:"allow_insecure"` // Permit plain http (local backends)
		RatePerSecond float64 `koanf:"rate_per_second"`
		Burst         int     `koanf:"burst"`
	} `koanf:"api"`

	Feed struct {
		Source   string `koanf:"source"` // "group:<id>" or "page:<id>"
		PageSize int    `koanf:"page_size"`
	} `koanf:"feed"`

	Thread struct {
		PageSize       int           `koanf:"page_size"`
		ReplyPageSize  int           `koanf:"reply_page_size"`
		HoverHideDelay time.Duration `koanf:"hover_hide_delay"`
	} `koanf:"thread"`

	Log struct {
		Level string `koanf:"level"`
		Path  string `koanf:"path"`
	} `koanf:"log"`

	UI struct {
		StatePath string `koanf:"state_path"`
	} `koanf:"ui"`
}

// Load builds the configuration from defaults, an optional TOML file, a .env
// file in the working directory and FEEDTHREAD_* environment variables, in
// increasing order of precedence. An empty path tries the default location.
func Load(path string) (Config, error) {
	dir, err := defaultDir()
	if err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(dir), "."), nil); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, "config.toml")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("config file %s: %w", path, statErr)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps FEEDTHREAD_API_BASE_URL to api.base_url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

func defaults(dir string) map[string]any {
	return map[string]any{
		"api.base_url":            "https://social.example",
		"api.token_path":          filepath.Join(dir, "token"),
		"api.allow_insecure":      false,
		"api.rate_per_second":     5.0,
		"api.burst":               5,
		"feed.source":             "",
		"feed.page_size":          20,
		"thread.page_size":        10,
		"thread.reply_page_size":  5,
		"thread.hover_hide_delay": "300ms",
		"log.level":               "info",
		"log.path":                filepath.Join(dir, "feedthread.log"),
		"ui.state_path":           filepath.Join(dir, "ui_state.json"),
	}
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "feedthread"), nil
}

func (c *Config) normalize() error {
	parsed, err := url.Parse(strings.TrimSpace(c.API.BaseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid api.base_url: must be an absolute URL")
	}
	if parsed.Scheme != "https" && !(parsed.Scheme == "http" && c.API.AllowInsecure) {
		return fmt.Errorf("invalid api.base_url: only https is allowed")
	}
	c.API.BaseURL = strings.TrimRight(parsed.String(), "/")

	if c.API.RatePerSecond <= 0 {
		return fmt.Errorf("invalid api.rate_per_second: must be positive")
	}
	if c.API.Burst < 1 {
		c.API.Burst = 1
	}
	if c.Feed.PageSize < 1 || c.Thread.PageSize < 1 || c.Thread.ReplyPageSize < 1 {
		return fmt.Errorf("page sizes must be at least 1")
	}
	if c.Thread.HoverHideDelay <= 0 {
		return fmt.Errorf("invalid thread.hover_hide_delay: must be positive")
	}
	if c.Feed.Source != "" {
		if _, err := ParseFeedSource(c.Feed.Source); err != nil {
			return err
		}
	}
	return nil
}

// ParseFeedSource parses "group:<id>" or "page:<id>".
func ParseFeedSource(s string) (app.FeedSource, error) {
	kind, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	kind = strings.ToLower(strings.TrimSpace(kind))
	id = strings.TrimSpace(id)
	if !ok || id == "" || (kind != "group" && kind != "page") {
		return app.FeedSource{}, fmt.Errorf("invalid feed source %q: want group:<id> or page:<id>", s)
	}
	return app.FeedSource{Kind: kind, ID: id}, nil
}

// UIState is persisted between runs.
type UIState struct {
	FeedSource string `json:"feed_source"`
	LastPostID string `json:"last_post_id,omitempty"`
}

// LoadUIState reads persisted UI state. A missing file yields the zero state.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return UIState{}, nil
		}
		return UIState{}, fmt.Errorf("reading ui state: %w", err)
	}
	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		return UIState{}, fmt.Errorf("parsing ui state: %w", err)
	}
	return st, nil
}

// SaveUIState writes UI state, creating the parent directory if needed.
func SaveUIState(path string, st UIState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("serializing ui state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing ui state: %w", err)
	}
	return nil
}
