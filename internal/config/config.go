package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Environment overrides. The token in particular should not have to live in
// a file on shared machines.
const (
	EnvEndpoint = "LINKBOARD_ENDPOINT"
	EnvToken    = "LINKBOARD_TOKEN"
)

// Config holds application configuration.
type Config struct {
	// Endpoint is the wiki.js GraphQL endpoint URL
	Endpoint string `json:"endpoint"`

	// Token is the bearer token sent with every request.
	// Supplied and trusted as-is; there is no session management.
	Token string `json:"token,omitempty"`

	// PageID is the wiki page holding the link board
	PageID int `json:"page_id"`

	// Locale is the page locale re-sent on every update
	Locale string `json:"locale,omitempty"`

	// CheckConflicts enables the last-modified guard: an edit fails with
	// CONFLICT when the remote page changed since it was last seen locally.
	// Off by default; the base contract is plain read-modify-write.
	CheckConflicts bool `json:"check_conflicts,omitempty"`

	// HTTPTimeoutSecs overrides the transport's request timeout.
	// 0 means the transport default.
	HTTPTimeoutSecs int `json:"http_timeout_secs,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Locale: "en",
	}
}

// Load loads configuration from baseDir/config.json and applies environment
// overrides. Returns default config if the file doesn't exist. The baseDir
// parameter allows tests to use t.TempDir() instead of ~/.linkboard.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	cfg = Merge(DefaultConfig(), cfg)

	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}
	return cfg, nil
}

// Validate reports whether the config can reach a wiki page at all.
// Returns a human-readable description of the first missing field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint is not configured (set it in config.json or " + EnvEndpoint + ")")
	}
	if strings.TrimSpace(c.Token) == "" {
		return errors.New("token is not configured (set it in config.json or " + EnvToken + ")")
	}
	if c.PageID <= 0 {
		return errors.New("page_id is not configured")
	}
	return nil
}

// Save writes the configuration to baseDir/config.json with restrictive
// permissions; the file carries a bearer token.
func Save(baseDir string, cfg *Config) error {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(baseDir, "config.json"), append(data, '\n'), 0600)
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.Endpoint = overlay.Endpoint
	if result.Endpoint == "" {
		result.Endpoint = base.Endpoint
	}
	result.Token = overlay.Token
	if result.Token == "" {
		result.Token = base.Token
	}
	result.PageID = overlay.PageID
	if result.PageID == 0 {
		result.PageID = base.PageID
	}
	result.Locale = overlay.Locale
	if result.Locale == "" {
		result.Locale = base.Locale
	}
	result.HTTPTimeoutSecs = overlay.HTTPTimeoutSecs
	if result.HTTPTimeoutSecs == 0 {
		result.HTTPTimeoutSecs = base.HTTPTimeoutSecs
	}

	result.CheckConflicts = base.CheckConflicts || overlay.CheckConflicts

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
