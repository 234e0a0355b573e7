package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDatabasePath = "data.db"
	defaultWorkbookPath = "reports/data_report.xlsx"
	defaultSheet        = "Raw Data"
	defaultSince        = "2020-01-01"
	defaultBate         = "u"
	defaultTopicPrefix  = "price_curves"
	defaultClientID     = "curvedash"
)

// Config holds the application configuration
type Config struct {
	DatabasePath string         `yaml:"database_path,omitempty"`
	Workbook     WorkbookConfig `yaml:"workbook,omitempty"`
	ReportPath   string         `yaml:"report_path,omitempty"`
	Since        string         `yaml:"since,omitempty"`   // Earliest assessment date to load (YYYY-MM-DD)
	Symbols      []string       `yaml:"symbols,omitempty"` // Assessment symbols to keep, empty keeps all
	Bate         string         `yaml:"bate,omitempty"`    // Assessment bate code
	MQTT         MQTTConfig     `yaml:"mqtt,omitempty"`
}

// WorkbookConfig locates the raw price table in an xlsx export
type WorkbookConfig struct {
	Path  string `yaml:"path,omitempty"`
	Sheet string `yaml:"sheet,omitempty"`
}

// MQTTConfig holds MQTT broker settings for publishing curve changes
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
	ClientID    string `yaml:"client_id,omitempty"`
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Since != "" {
		if _, err := time.Parse("2006-01-02", cfg.Since); err != nil {
			return nil, fmt.Errorf("invalid since date %q: %w", cfg.Since, err)
		}
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetDatabasePath returns the SQLite database path, defaulting to data.db
func (c *Config) GetDatabasePath() string {
	if c.DatabasePath == "" {
		return defaultDatabasePath
	}
	return c.DatabasePath
}

// GetWorkbookPath returns the xlsx file to import from
func (c *Config) GetWorkbookPath() string {
	if c.Workbook.Path == "" {
		return defaultWorkbookPath
	}
	return c.Workbook.Path
}

// GetSheet returns the sheet holding raw prices
func (c *Config) GetSheet() string {
	if c.Workbook.Sheet == "" {
		return defaultSheet
	}
	return c.Workbook.Sheet
}

// GetReportPath returns where the report workbook is written, falling back to the workbook path
func (c *Config) GetReportPath() string {
	if c.ReportPath != "" {
		return c.ReportPath
	}
	return c.GetWorkbookPath()
}

// GetSince returns the earliest assessment date to load
func (c *Config) GetSince() time.Time {
	s := c.Since
	if s == "" {
		s = defaultSince
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// GetBate returns the assessment bate code, defaulting to "u"
func (c *Config) GetBate() string {
	if c.Bate == "" {
		return defaultBate
	}
	return c.Bate
}

// GetTopicPrefix returns the MQTT topic prefix
func (m MQTTConfig) GetTopicPrefix() string {
	if m.TopicPrefix == "" {
		return defaultTopicPrefix
	}
	return m.TopicPrefix
}

// GetClientID returns the MQTT client ID
func (m MQTTConfig) GetClientID() string {
	if m.ClientID == "" {
		return defaultClientID
	}
	return m.ClientID
}
