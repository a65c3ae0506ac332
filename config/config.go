// Package config loads and saves the application configuration from the
// XDG config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"mariner/log"
	"mariner/panel"
	"mariner/tabs"
)

const ConfigFileName = "config.toml"

// GetConfigDir returns the path to the application's configuration
// directory, ~/.config/mariner/.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "mariner"), nil
}

// TabOpenWhere says where a newly opened tab lands in the ring.
type TabOpenWhere string

const (
	TabOpenAfterCurrent  TabOpenWhere = "after-current"
	TabOpenBeforeCurrent TabOpenWhere = "before-current"
	TabOpenFirst         TabOpenWhere = "first"
	TabOpenLast          TabOpenWhere = "last"
)

// PanelSetup is the persisted per-panel configuration.
type PanelSetup struct {
	ListFormat    string `toml:"list_format,omitempty"`
	UserFormat    string `toml:"user_format,omitempty"`
	BriefCols     int    `toml:"brief_cols,omitempty"`
	SortField     string `toml:"sort_field,omitempty"`
	SortReverse   bool   `toml:"sort_reverse,omitempty"`
	CaseSensitive bool   `toml:"case_sensitive,omitempty"`
	Codepage      string `toml:"codepage,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	// ShowHidden lists dotfiles.
	ShowHidden bool `toml:"show_hidden,omitempty"`
	// ScrollPages makes line moves that cross the window edge jump half a page.
	ScrollPages bool `toml:"scroll_pages,omitempty"`
	// TorbenFJMode stages Home/End jumps via the page middle.
	TorbenFJMode bool `toml:"torben_fj_mode,omitempty"`
	// QSearchCase is "panel", "sensitive" or "insensitive".
	QSearchCase string `toml:"qsearch_case,omitempty"`
	// TabOpenWhere places new tabs: after-current, before-current, first, last.
	TabOpenWhere TabOpenWhere `toml:"tab_open_where,omitempty"`
	// HistoryLimit caps the per-panel directory history. Zero keeps the default.
	HistoryLimit int `toml:"history_limit,omitempty"`
	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	// Defaults to true when not set.
	TelemetryEnabled *bool `toml:"telemetry_enabled,omitempty"`

	Panels map[string]PanelSetup `toml:"panels,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		QSearchCase:  "panel",
		TabOpenWhere: TabOpenAfterCurrent,
		HistoryLimit: 100,
		Panels: map[string]PanelSetup{
			"left":  {ListFormat: "full", SortField: "name"},
			"right": {ListFormat: "full", SortField: "name"},
		},
	}
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return true
	}
	return *c.TelemetryEnabled
}

// QSearchMode maps the configured string onto the panel mode.
func (c *Config) QSearchMode() panel.QSearchMode {
	switch c.QSearchCase {
	case "sensitive":
		return panel.QSearchCaseSensitive
	case "insensitive":
		return panel.QSearchCaseInsensitive
	default:
		return panel.QSearchPanelCase
	}
}

// PanelSetupFor returns the setup for a panel name, converted to the panel
// package's types. Unknown panels and bad values fall back to defaults.
func (c *Config) PanelSetupFor(name string) panel.Setup {
	ps := c.Panels[name]
	s := panel.Setup{
		UserFormat:    ps.UserFormat,
		BriefCols:     ps.BriefCols,
		SortField:     ps.SortField,
		SortReverse:   ps.SortReverse,
		CaseSensitive: ps.CaseSensitive,
		Codepage:      ps.Codepage,
	}
	if s.SortField == "" {
		s.SortField = "name"
	}
	switch ps.ListFormat {
	case "brief":
		s.ListFormat = panel.ListBrief
	case "long":
		s.ListFormat = panel.ListLong
	case "user":
		s.ListFormat = panel.ListUser
	default:
		s.ListFormat = panel.ListFull
	}
	return s
}

// LoadConfigFrom reads a config file. A missing file yields the defaults
// without an error; a malformed one is an error.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads the config from the standard location, falling back to
// the defaults on any error.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}
	cfg, err := LoadConfigFrom(filepath.Join(configDir, ConfigFileName))
	if err != nil {
		log.ErrorLog.Printf("%v", err)
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig writes the configuration to the standard location.
func SaveConfig(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return SaveConfigTo(filepath.Join(configDir, ConfigFileName), cfg)
}

// SaveConfigTo writes the configuration to an explicit path.
func SaveConfigTo(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Direction converts the configured tab-open position into a ring
// direction.
func (w TabOpenWhere) Direction() tabs.Direction {
	switch w {
	case TabOpenBeforeCurrent:
		return tabs.Prev
	case TabOpenFirst:
		return tabs.First
	case TabOpenLast:
		return tabs.Last
	default:
		return tabs.Next
	}
}
