package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output table formats
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrNegativeCost  = errors.New("cost per kWh must not be negative")
)

// Config holds the application configuration
type Config struct {
	Seed          uint64       `yaml:"seed,omitempty"`         // 0 picks a seed from the clock
	CostPerKWh    float64      `yaml:"cost_per_kwh,omitempty"` // Price of saved energy (fallback: 0.2)
	Output        OutputConfig `yaml:"output,omitempty"`
	Chart         ChartConfig  `yaml:"chart,omitempty"`
	MetricsFile   string       `yaml:"metrics_file,omitempty"` // Prometheus textfile, empty disables
	MQTT          MQTTConfig   `yaml:"mqtt,omitempty"`
	HomeAssistant HAConfig     `yaml:"home_assistant,omitempty"`
	Kafka         KafkaConfig  `yaml:"kafka,omitempty"`
	Server        ServerConfig `yaml:"server,omitempty"`
}

// OutputConfig controls where the per-hour table is written
type OutputConfig struct {
	Path   string `yaml:"path,omitempty"`
	Format string `yaml:"format,omitempty"` // "csv" or "sqlite"
}

// ChartConfig controls chart rendering
type ChartConfig struct {
	Path     string `yaml:"path,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`                 // e.g., "localhost:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // default "hvacsim"
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`       // e.g., "http://yourdomain.local:5050"
	Token    string `yaml:"token"`     // Long-lived access token
	EntityID string `yaml:"entity_id"` // e.g., "sensor.hvac_energy_saved"
}

// KafkaConfig holds Kafka producer configuration
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers,omitempty"`
	Topic   string   `yaml:"topic,omitempty"` // default "hvacsim.hours"
}

// ServerConfig holds the HTTP API configuration
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
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

// Default returns a config with every default spelled out
func Default() *Config {
	cfg := &Config{}
	cfg.CostPerKWh = cfg.GetCostPerKWh()
	cfg.Output.Format = cfg.GetOutputFormat()
	cfg.Output.Path = cfg.GetOutputPath()
	cfg.Chart.Path = cfg.GetChartPath()
	cfg.MQTT.TopicPrefix = cfg.GetTopicPrefix()
	cfg.Kafka.Topic = cfg.GetKafkaTopic()
	cfg.Server.Addr = cfg.GetServerAddr()
	return cfg
}

// Validate checks values that would otherwise fail late in a run
func (c *Config) Validate() error {
	if c.CostPerKWh < 0 {
		return ErrNegativeCost
	}
	switch c.Output.Format {
	case "", FormatCSV, FormatSQLite:
	default:
		return fmt.Errorf("%w: %s (available: csv, sqlite)", ErrUnknownFormat, c.Output.Format)
	}
	return nil
}

// GetCostPerKWh returns the energy price with a default of 0.2
func (c *Config) GetCostPerKWh() float64 {
	if c.CostPerKWh <= 0 {
		return 0.2
	}
	return c.CostPerKWh
}

// GetOutputFormat returns the table format, defaulting to csv
func (c *Config) GetOutputFormat() string {
	if c.Output.Format == "" {
		return FormatCSV
	}
	return c.Output.Format
}

// GetOutputPath returns the table path, with a default that matches the format
func (c *Config) GetOutputPath() string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	if c.GetOutputFormat() == FormatSQLite {
		return "energy_data.db"
	}
	return "energy_data.csv"
}

// GetChartPath returns where the chart PNG is written
func (c *Config) GetChartPath() string {
	if c.Chart.Path == "" {
		return "energy_chart.png"
	}
	return c.Chart.Path
}

// GetTopicPrefix returns the MQTT topic prefix
func (c *Config) GetTopicPrefix() string {
	if c.MQTT.TopicPrefix == "" {
		return "hvacsim"
	}
	return c.MQTT.TopicPrefix
}

// GetKafkaTopic returns the Kafka topic for hour records
func (c *Config) GetKafkaTopic() string {
	if c.Kafka.Topic == "" {
		return "hvacsim.hours"
	}
	return c.Kafka.Topic
}

// GetServerAddr returns the HTTP listen address
func (c *Config) GetServerAddr() string {
	if c.Server.Addr == "" {
		return ":8080"
	}
	return c.Server.Addr
}
