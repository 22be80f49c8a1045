package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/JuulLabs-OSS/loogi-http/internal/logger"
	"github.com/JuulLabs-OSS/loogi-http/middleware"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level of the CLI.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// LogRequests enables one summary line per request.
	LogRequests bool `mapstructure:"log_requests" yaml:"log_requests"`
	// RequestLogLevel is the level of the request summary lines.
	RequestLogLevel string `mapstructure:"request_log_level" yaml:"request_log_level"`
	// Timeout bounds each request (e.g., "10s"). Empty or "0" disables it.
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
	// BaseURL is the URL relative request URLs are resolved against.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// UserAgent is sent with requests that carry no User-Agent.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// Headers are sent with every request.
	Headers map[string]string `mapstructure:"headers" yaml:"headers"`
	// OutputFormat selects how responses are printed: json, yaml or raw.
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	// MaxLogLength caps the body bytes written by debug traces (e.g., "64KB").
	MaxLogLength string `mapstructure:"max_log_length" yaml:"max_log_length"`
	// RedirectLimit is the number of redirects followed per request.
	RedirectLimit int `mapstructure:"redirect_limit" yaml:"redirect_limit"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `yaml:"-"`
	// ParsedRequestLogLevel is the parsed level of request summary lines.
	ParsedRequestLogLevel zapcore.Level `yaml:"-"`
	// ParsedTimeout is the parsed request timeout.
	ParsedTimeout time.Duration `yaml:"-"`
	// ParsedMaxLogLength is the parsed debug body limit in bytes.
	ParsedMaxLogLength uint64 `yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".loogi-http.yaml"

	// DefaultFilePermissions sets the permissions of written configuration files: (rw-r--r--).
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultMaxLogLength is the default body limit of debug traces.
	DefaultMaxLogLength = "1MB"

	// OutputFormatJSON prints the status, headers and the body as indented JSON.
	OutputFormatJSON = "json"
	// OutputFormatYAML prints the whole response as a YAML document.
	OutputFormatYAML = "yaml"
	// OutputFormatRaw prints the body only, as received.
	OutputFormatRaw = "raw"
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownRequestLogLevel indicates that the request log level is not recognized.
	ErrUnknownRequestLogLevel = errors.New("unknown request log level")
	// ErrInvalidTimeout indicates that the timeout is negative.
	ErrInvalidTimeout = errors.New("timeout cannot be negative")
	// ErrInvalidBaseURL indicates that the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("base_url must be an absolute http or https URL")
	// ErrUnknownOutputFormat indicates that the output format is not supported.
	ErrUnknownOutputFormat = errors.New("unknown output format")
	// ErrInvalidMaxLogLength indicates that the debug body limit is zero.
	ErrInvalidMaxLogLength = errors.New("max_log_length must be positive")
	// ErrInvalidRedirectLimit indicates that the redirect limit is negative.
	ErrInvalidRedirectLimit = errors.New("redirect_limit cannot be negative")
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		RequestLogLevel: "info",
		UserAgent:       middleware.DefaultUserAgent,
		Headers:         map[string]string{},
		OutputFormat:    OutputFormatJSON,
		MaxLogLength:    DefaultMaxLogLength,
		RedirectLimit:   middleware.DefaultRedirectLimit,
	}
}

// LoadConfig loads configuration settings from a YAML file.
// A missing default file yields Default(); a missing explicit file is an error.
func LoadConfig(configFilename string) (*Config, error) {
	explicit := configFilename != ""
	if !explicit {
		configFilename = DefaultConfigFilename
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_requests", defaults.LogRequests)
	v.SetDefault("request_log_level", defaults.RequestLogLevel)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("output_format", defaults.OutputFormat)
	v.SetDefault("max_log_length", defaults.MaxLogLength)
	v.SetDefault("redirect_limit", defaults.RedirectLimit)
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	parsedRequestLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.RequestLogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownRequestLogLevel, cfg.RequestLogLevel)
	}

	cfg.ParsedRequestLogLevel = parsedRequestLogLevel

	timeout := strings.TrimSpace(cfg.Timeout)
	if timeout != "" && timeout != "0" {
		cfg.ParsedTimeout, err = time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("failed to parse timeout: %w", err)
		}

		if cfg.ParsedTimeout < 0 {
			return ErrInvalidTimeout
		}
	}

	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		parsed, parseErr := url.Parse(baseURL)
		if parseErr != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("%w: '%s'", ErrInvalidBaseURL, cfg.BaseURL)
		}
	}

	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	switch cfg.OutputFormat {
	case "":
		cfg.OutputFormat = OutputFormatJSON
	case OutputFormatJSON, OutputFormatYAML, OutputFormatRaw:
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownOutputFormat, cfg.OutputFormat)
	}

	maxLogLength := strings.TrimSpace(cfg.MaxLogLength)
	if maxLogLength == "" {
		maxLogLength = DefaultMaxLogLength
	}

	cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
	if err != nil {
		return fmt.Errorf("failed to parse max log length: %w", err)
	}

	if cfg.ParsedMaxLogLength == 0 {
		return ErrInvalidMaxLogLength
	}

	if cfg.RedirectLimit < 0 {
		return ErrInvalidRedirectLimit
	}

	return nil
}

// WriteDefaultConfig writes Default() to configFilename. Existing files are not overwritten.
func WriteDefaultConfig(configFilename string) error {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	content, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	file, err := os.OpenFile(configFilename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if _, err = file.Write(content); err != nil {
		_ = file.Close()

		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
