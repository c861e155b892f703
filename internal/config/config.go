package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config models acquiacli.yml.
type Config struct {
	API struct {
		Endpoint string `yaml:"endpoint"`
		Key      string `yaml:"key"`
		Secret   string `yaml:"secret"`
	} `yaml:"api"`
	Tasks struct {
		// PollIntervalSeconds is the pause between task status reads.
		PollIntervalSeconds int `yaml:"poll_interval_seconds"`
		// MaxAttempts bounds the polling loop; 0 polls forever.
		MaxAttempts int `yaml:"max_attempts"`
	} `yaml:"tasks"`
	Drush struct {
		Binary    string `yaml:"binary"`
		ConfigSet string `yaml:"config_set"`
	} `yaml:"drush"`
	Report struct {
		Timezone   string `yaml:"timezone"`
		DateFormat string `yaml:"date_format"`
	} `yaml:"report"`
}

// Load reads and validates config from the config directory.
func Load(dir string) (*Config, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config %s not found; run acquiacli auth login first", path)
		}
		return nil, err
	}
	return FromYAML(data)
}

// LoadOptional returns defaults if the config file does not exist.
func LoadOptional(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return fmt.Errorf("config.api.endpoint is required")
	}
	if c.Tasks.PollIntervalSeconds <= 0 {
		return fmt.Errorf("config.tasks.poll_interval_seconds must be positive")
	}
	if c.Tasks.MaxAttempts < 0 {
		return fmt.Errorf("config.tasks.max_attempts must not be negative")
	}
	if c.Drush.Binary == "" {
		return fmt.Errorf("config.drush.binary is required")
	}
	if c.Drush.ConfigSet == "" {
		return fmt.Errorf("config.drush.config_set is required")
	}
	if c.Report.DateFormat == "" {
		return fmt.Errorf("config.report.date_format is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config.report.timezone: %w", err)
	}
	return nil
}

// Location resolves the configured report timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Report.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Report.Timezone)
}

// PollInterval returns the task polling pause as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Tasks.PollIntervalSeconds) * time.Second
}

// Path returns the config file path for a config directory.
func Path(dir string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "acquiacli.yml")
}

// Save writes the config YAML into the config directory, creating the
// directory if needed. Credentials live here, so the file is 0600.
func Save(dir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(Path(dir), data, 0o600)
}

// Default returns the default Config struct.
func Default() *Config {
	var cfg Config
	_ = yaml.Unmarshal([]byte(defaultTemplate), &cfg)
	return &cfg
}

// FromYAML parses and validates config from raw YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromFile reads YAML config from the given path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}

const defaultTemplate = `api:
  endpoint: https://cloudapi.acquia.com/v1
  key: ""
  secret: ""

tasks:
  poll_interval_seconds: 1
  max_attempts: 300

drush:
  binary: drush
  config_set: sync

report:
  timezone: ""
  date_format: "2006-01-02 15:04:05"
`
