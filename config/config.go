package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spiffcs/widgets/internal/calendar"
	"github.com/spiffcs/widgets/internal/constants"
	"github.com/spiffcs/widgets/internal/overlay"
	"github.com/spiffcs/widgets/internal/update"
	"github.com/spiffcs/widgets/internal/widget"
)

// Config represents the application configuration
type Config struct {
	DefaultFormat string `yaml:"default_format,omitempty" json:"default_format,omitempty"`
	DefaultSize   string `yaml:"default_size,omitempty" json:"default_size,omitempty"`
	// Locale selects the duration units; "en" uses y/m/d, anything else 年/月/天.
	Locale string `yaml:"locale,omitempty" json:"locale,omitempty"`
	// DocumentsDir holds widget data files and downloaded scripts.
	DocumentsDir string `yaml:"documents_dir,omitempty" json:"documents_dir,omitempty"`
	// DaysWidget names the anniversary data file, without extension.
	DaysWidget string `yaml:"days_widget,omitempty" json:"days_widget,omitempty"`

	Fetch   *FetchOverrides   `yaml:"fetch,omitempty" json:"fetch,omitempty"`
	Notes   *NotesOverrides   `yaml:"notes,omitempty" json:"notes,omitempty"`
	Overlay *OverlayOverrides `yaml:"overlay,omitempty" json:"overlay,omitempty"`

	Scripts []update.Script `yaml:"scripts,omitempty" json:"scripts,omitempty"`
}

// FetchOverrides tunes remote requests and script updates
type FetchOverrides struct {
	Timeout *string `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Workers *int    `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// NotesOverrides points the notes widget at a Budibase instance
type NotesOverrides struct {
	BaseURL *string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	RowID   *string `yaml:"row_id,omitempty" json:"row_id,omitempty"`
}

// OverlayOverrides - wallpaper overlay canvas and content
type OverlayOverrides struct {
	Width    *int     `yaml:"width,omitempty" json:"width,omitempty"`
	Height   *int     `yaml:"height,omitempty" json:"height,omitempty"`
	Scale    *float64 `yaml:"scale,omitempty" json:"scale,omitempty"`
	Accent   *string  `yaml:"accent,omitempty" json:"accent,omitempty"`
	Alpha    *float64 `yaml:"alpha,omitempty" json:"alpha,omitempty"`
	FontPath *string  `yaml:"font_path,omitempty" json:"font_path,omitempty"`
	Title    *string  `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle *string  `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Value    *string  `yaml:"value,omitempty" json:"value,omitempty"`
	Heading  *string  `yaml:"heading,omitempty" json:"heading,omitempty"`
}

// Script names published by default.
const (
	ScriptDays      = "my-days"
	ScriptNotes     = "my-notes"
	ScriptLockDate  = "LockDate"
	ScriptWallpaper = "wallpaper"
	ScriptBootstrap = "__START_NEW__"
)

// DefaultScripts returns the published widget scripts.
func DefaultScripts() []update.Script {
	names := []string{ScriptDays, ScriptNotes, ScriptLockDate, ScriptWallpaper, ScriptBootstrap}
	scripts := make([]update.Script, 0, len(names))
	for _, n := range names {
		scripts = append(scripts, update.Script{
			Name: n,
			URL:  constants.ScriptBaseURL + update.FileName(n),
		})
	}
	return scripts
}

// GetScripts returns the configured scripts, falling back to the defaults.
// Scripts without a URL get the published location for their name.
func (c *Config) GetScripts() []update.Script {
	if len(c.Scripts) == 0 {
		return DefaultScripts()
	}
	scripts := make([]update.Script, 0, len(c.Scripts))
	for _, s := range c.Scripts {
		if s.URL == "" {
			s.URL = constants.ScriptBaseURL + update.FileName(s.Name)
		}
		scripts = append(scripts, s)
	}
	return scripts
}

// GetSize returns the default widget size, medium if unset or invalid.
func (c *Config) GetSize() widget.Size {
	if s, err := widget.ParseSize(c.DefaultSize); err == nil {
		return s
	}
	return widget.SizeMedium
}

// GetUnits returns the duration units for the configured locale.
func (c *Config) GetUnits() calendar.Units {
	return calendar.UnitsFor(c.Locale)
}

// GetDaysWidget returns the anniversary data file name.
func (c *Config) GetDaysWidget() string {
	if c.DaysWidget == "" {
		return ScriptDays
	}
	return c.DaysWidget
}

// GetFetchTimeout returns the per-request timeout.
func (c *Config) GetFetchTimeout() time.Duration {
	if c.Fetch != nil && c.Fetch.Timeout != nil {
		if d, err := time.ParseDuration(*c.Fetch.Timeout); err == nil && d > 0 {
			return d
		}
	}
	return constants.DefaultFetchTimeout
}

// GetUpdateWorkers returns the number of concurrent script downloads.
func (c *Config) GetUpdateWorkers() int {
	if c.Fetch != nil && c.Fetch.Workers != nil && *c.Fetch.Workers > 0 {
		return *c.Fetch.Workers
	}
	return constants.DefaultUpdateWorkers
}

// GetNotesBaseURL returns the Budibase host.
func (c *Config) GetNotesBaseURL() string {
	if c.Notes != nil && c.Notes.BaseURL != nil && *c.Notes.BaseURL != "" {
		return *c.Notes.BaseURL
	}
	return constants.NotesBaseURL
}

// GetNotesRowID returns the row holding the note.
func (c *Config) GetNotesRowID() string {
	if c.Notes != nil && c.Notes.RowID != nil && *c.Notes.RowID != "" {
		return *c.Notes.RowID
	}
	return constants.NotesRowID
}

// GetOverlayOptions returns overlay options with user overrides merged with
// defaults
func (c *Config) GetOverlayOptions() overlay.Options {
	opts := overlay.DefaultOptions()
	o := c.Overlay
	if o == nil {
		return opts
	}
	if o.Width != nil {
		opts.Width = *o.Width
	}
	if o.Height != nil {
		opts.Height = *o.Height
	}
	if o.Scale != nil {
		opts.Scale = *o.Scale
	}
	if o.Accent != nil {
		opts.Accent = *o.Accent
	}
	if o.Alpha != nil {
		opts.Alpha = *o.Alpha
	}
	if o.FontPath != nil {
		opts.FontPath = *o.FontPath
	}
	if o.Title != nil {
		opts.Title = *o.Title
	}
	if o.Subtitle != nil {
		opts.Subtitle = *o.Subtitle
	}
	if o.Value != nil {
		opts.Value = *o.Value
	}
	if o.Heading != nil {
		opts.Heading = *o.Heading
	}
	return opts
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "." + constants.AppName
	}
	return filepath.Join(configDir, constants.AppName)
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return constants.LocalConfigFile
}

// ConfigFileExists returns true if the config file exists on disk
func ConfigFileExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Load loads the configuration from disk.
// It first loads the global config from the user config directory, then
// merges any local .widgets.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), LocalConfigPath())
}

// LoadFrom is Load with explicit global and local paths. Missing files are
// skipped.
func LoadFrom(globalPath, localPath string) (*Config, error) {
	// Start with defaults
	cfg := &Config{
		DefaultFormat: "table",
	}

	// Load global config if it exists
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	// Load local config if it exists and merge on top
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}

		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}

		cfg = mergeConfig(cfg, &localCfg)
	}

	// Set defaults if still empty
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{
		DefaultFormat: pick(local.DefaultFormat, global.DefaultFormat),
		DefaultSize:   pick(local.DefaultSize, global.DefaultSize),
		Locale:        pick(local.Locale, global.Locale),
		DocumentsDir:  pick(local.DocumentsDir, global.DocumentsDir),
		DaysWidget:    pick(local.DaysWidget, global.DaysWidget),
		Scripts:       global.Scripts,
	}
	if len(local.Scripts) > 0 {
		result.Scripts = local.Scripts
	}

	result.Fetch = mergeFetch(global.Fetch, local.Fetch)
	result.Notes = mergeNotes(global.Notes, local.Notes)
	result.Overlay = mergeOverlay(global.Overlay, local.Overlay)
	return result
}

func pick(local, global string) string {
	if local != "" {
		return local
	}
	return global
}

// override returns local when set, otherwise global.
func override[T any](global, local *T) *T {
	if local != nil {
		return local
	}
	return global
}

func mergeFetch(global, local *FetchOverrides) *FetchOverrides {
	if global == nil && local == nil {
		return nil
	}
	g, l := derefOr(global), derefOr(local)
	return &FetchOverrides{
		Timeout: override(g.Timeout, l.Timeout),
		Workers: override(g.Workers, l.Workers),
	}
}

func mergeNotes(global, local *NotesOverrides) *NotesOverrides {
	if global == nil && local == nil {
		return nil
	}
	g, l := derefOr(global), derefOr(local)
	return &NotesOverrides{
		BaseURL: override(g.BaseURL, l.BaseURL),
		RowID:   override(g.RowID, l.RowID),
	}
}

func mergeOverlay(global, local *OverlayOverrides) *OverlayOverrides {
	if global == nil && local == nil {
		return nil
	}
	g, l := derefOr(global), derefOr(local)
	return &OverlayOverrides{
		Width:    override(g.Width, l.Width),
		Height:   override(g.Height, l.Height),
		Scale:    override(g.Scale, l.Scale),
		Accent:   override(g.Accent, l.Accent),
		Alpha:    override(g.Alpha, l.Alpha),
		FontPath: override(g.FontPath, l.FontPath),
		Title:    override(g.Title, l.Title),
		Subtitle: override(g.Subtitle, l.Subtitle),
		Value:    override(g.Value, l.Value),
		Heading:  override(g.Heading, l.Heading),
	}
}

func derefOr[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// Save saves the configuration to the global config file
func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

// SaveFile writes the configuration to path
func (c *Config) SaveFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return SaveTo(path, string(data))
}

// Keys lists the values `config set` accepts.
var Keys = []string{"format", "size", "locale", "documents_dir", "days_widget", "timeout", "workers", "notes.base_url", "notes.row_id"}

// Set validates and applies a single value by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api_key", "app_id", "table_id":
		return fmt.Errorf("credentials cannot be stored in config files. Use 'widgets notes set-key' instead")
	case "format":
		switch value {
		case "table", "json", "yaml", "markdown":
		default:
			return fmt.Errorf("invalid format: %s (must be table, json, yaml or markdown)", value)
		}
		c.DefaultFormat = value
	case "size":
		s, err := widget.ParseSize(value)
		if err != nil {
			return err
		}
		c.DefaultSize = s.String()
	case "locale":
		c.Locale = value
	case "documents_dir":
		c.DocumentsDir = value
	case "days_widget":
		if strings.ContainsAny(value, `/\`) || value == "" {
			return fmt.Errorf("invalid widget name: %q", value)
		}
		c.DaysWidget = value
	case "timeout":
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			return fmt.Errorf("invalid timeout: %s (e.g. 15s)", value)
		}
		if c.Fetch == nil {
			c.Fetch = &FetchOverrides{}
		}
		c.Fetch.Timeout = &value
	case "workers":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n <= 0 {
			return fmt.Errorf("invalid workers: %s (must be a positive integer)", value)
		}
		if c.Fetch == nil {
			c.Fetch = &FetchOverrides{}
		}
		c.Fetch.Workers = &n
	case "notes.base_url":
		if c.Notes == nil {
			c.Notes = &NotesOverrides{}
		}
		c.Notes.BaseURL = &value
	case "notes.row_id":
		if c.Notes == nil {
			c.Notes = &NotesOverrides{}
		}
		c.Notes.RowID = &value
	default:
		return fmt.Errorf("unknown config key: %s (available: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	opts := overlay.DefaultOptions()
	timeout := constants.DefaultFetchTimeout.String()
	workers := constants.DefaultUpdateWorkers
	baseURL := constants.NotesBaseURL
	rowID := constants.NotesRowID

	return &Config{
		DefaultFormat: "table",
		DefaultSize:   widget.SizeMedium.String(),
		Locale:        "zh",
		DaysWidget:    ScriptDays,
		Fetch: &FetchOverrides{
			Timeout: &timeout,
			Workers: &workers,
		},
		Notes: &NotesOverrides{
			BaseURL: &baseURL,
			RowID:   &rowID,
		},
		Overlay: &OverlayOverrides{
			Width:    &opts.Width,
			Height:   &opts.Height,
			Scale:    &opts.Scale,
			Accent:   &opts.Accent,
			Alpha:    &opts.Alpha,
			Title:    &opts.Title,
			Subtitle: &opts.Subtitle,
			Value:    &opts.Value,
			Heading:  &opts.Heading,
		},
		Scripts: DefaultScripts(),
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	// Get absolute path for local config
	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# Widgets configuration file
# See: widgets config defaults  (for all available options)

# Output format for 'widgets days': table, json, yaml or markdown
default_format: table

# Preview size: small, medium, large, accessoryCircular,
# accessoryRectangular or accessoryInline
default_size: medium

# Duration units: zh (年/月/天) or en (y/m/d)
locale: zh

# Where widget data and downloaded scripts live (optional)
# documents_dir: ~/widgets

# Remote requests (optional)
# fetch:
#   timeout: 15s
#   workers: 4

# Credentials for the notes widget are not stored here.
# Run: widgets notes set-key
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), constants.SecretFilePerm); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
