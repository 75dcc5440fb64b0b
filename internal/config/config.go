package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/amosWeiskopf/linksmith/internal/models"
	"github.com/amosWeiskopf/linksmith/pkg/fetcher"
)

// EnvPrefix prefixes every environment override, e.g. LINKSMITH_OUTPUT_FOLDER
const EnvPrefix = "LINKSMITH"

// Config holds all application configuration
type Config struct {
	// Fetch configuration
	Fetch FetchConfig `mapstructure:"fetch"`

	// Extraction configuration
	Extract ExtractConfig `mapstructure:"extract"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// FetchConfig holds HTTP client configuration
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ExtractConfig holds link extraction configuration
type ExtractConfig struct {
	MaxLinks int `mapstructure:"max_links"`
}

// OutputConfig holds destination configuration
type OutputConfig struct {
	Folder   string `mapstructure:"folder"`
	Filename string `mapstructure:"filename"`
	Format   string `mapstructure:"format"` // "csv", "json" or "markdown"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // "json" or "text"
	OutputPath string `mapstructure:"output_path"`
}

// Load loads configuration from file and environment. An empty configPath
// searches the default locations; a missing file there is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("linksmith")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.linksmith")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Fetch defaults
	v.SetDefault("fetch.timeout", "0s")
	v.SetDefault("fetch.user_agent", "")

	// Extraction defaults
	v.SetDefault("extract.max_links", 100)

	// Output defaults
	v.SetDefault("output.folder", ".")
	v.SetDefault("output.filename", "links.csv")
	v.SetDefault("output.format", string(models.FormatCSV))

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output_path", "stderr")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Extract.MaxLinks <= 0 {
		return fmt.Errorf("extract.max_links must be positive")
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative")
	}
	if !isKnownFormat(c.Output.Format) {
		return fmt.Errorf("output.format must be one of csv, json, markdown (got %q)", c.Output.Format)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text (got %q)", c.Logging.Format)
	}
	return nil
}

// FetchOptions returns the fetcher options described by the config
func (c *Config) FetchOptions() fetcher.Options {
	return fetcher.Options{
		Timeout:   c.Fetch.Timeout,
		UserAgent: c.Fetch.UserAgent,
	}
}

// Request builds the extraction request for sourceURL
func (c *Config) Request(sourceURL string) models.ExtractionRequest {
	return models.ExtractionRequest{
		URL:          strings.TrimSpace(sourceURL),
		OutputFolder: c.Output.Folder,
		Filename:     c.Output.Filename,
		MaxLinks:     c.Extract.MaxLinks,
		Format:       models.Format(c.Output.Format),
	}
}

func isKnownFormat(format string) bool {
	for _, f := range models.Formats {
		if string(f) == format {
			return true
		}
	}
	return false
}
