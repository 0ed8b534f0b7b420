// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Audit() AuditConfig
	Report() ReportConfig

	// Audit Setters
	SetAuditConcurrency(int)
	SetAuditMaxElements(int)
	SetAuditTimeout(time.Duration)

	// Report Setters
	SetReportFormat(string)
	SetReportOutput(string)
	SetReportMinSeverity(string)
	SetReportOverlayDir(string)
}

// Config holds the entire application configuration. Sections are exported
// for viper's decoder; callers go through the Interface getters.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	AuditCfg  AuditConfig  `mapstructure:"audit" yaml:"audit"`
	ReportCfg ReportConfig `mapstructure:"report" yaml:"report"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Audit() AuditConfig   { return c.AuditCfg }
func (c *Config) Report() ReportConfig { return c.ReportCfg }

// --- Interface Method Implementations (Setters) ---

// Audit Setters
func (c *Config) SetAuditConcurrency(n int)       { c.AuditCfg.Concurrency = n }
func (c *Config) SetAuditMaxElements(n int)       { c.AuditCfg.MaxElements = n }
func (c *Config) SetAuditTimeout(d time.Duration) { c.AuditCfg.Timeout = d }

// Report Setters
func (c *Config) SetReportFormat(f string)      { c.ReportCfg.Format = f }
func (c *Config) SetReportOutput(o string)      { c.ReportCfg.Output = o }
func (c *Config) SetReportMinSeverity(s string) { c.ReportCfg.MinSeverity = s }
func (c *Config) SetReportOverlayDir(d string)  { c.ReportCfg.OverlayDir = d }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// AuditConfig controls how inputs are fed to the analysis engine.
type AuditConfig struct {
	// Concurrency is the number of inputs analyzed at once.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
	// MaxElements caps the elements analyzed per input. 0 means unlimited.
	MaxElements int `mapstructure:"max_elements" yaml:"max_elements"`
	// Timeout bounds each input. 0 disables the limit.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	Format      string `mapstructure:"format" yaml:"format"`
	Output      string `mapstructure:"output" yaml:"output"`
	MinSeverity string `mapstructure:"min_severity" yaml:"min_severity"`
	// OverlayDir enables PNG issue overlays when set.
	OverlayDir string `mapstructure:"overlay_dir" yaml:"overlay_dir"`
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}
	validLogFormats = []string{"console", "json"}
	validFormats    = []string{"text", "json", "yaml", "sarif"}
	validSeverities = []string{"high", "medium", "low"}
)

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "clarity")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// -- Audit --
	v.SetDefault("audit.concurrency", 4)
	v.SetDefault("audit.max_elements", 500)
	v.SetDefault("audit.timeout", "30s")

	// -- Report --
	v.SetDefault("report.format", "text")
	v.SetDefault("report.output", "stdout")
	v.SetDefault("report.min_severity", "low")
	v.SetDefault("report.overlay_dir", "")
}

// EnvPrefix is the prefix of environment variable overrides, e.g. CLARITY_AUDIT_CONCURRENCY.
const EnvPrefix = "CLARITY"

// BindEnvironment makes every key overridable through CLARITY_* variables.
// Keys must have a default (see SetDefaults) for Unmarshal to pick them up.
func BindEnvironment(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.LoggerCfg.Validate(); err != nil {
		return fmt.Errorf("logger configuration invalid: %w", err)
	}
	if err := c.AuditCfg.Validate(); err != nil {
		return fmt.Errorf("audit configuration invalid: %w", err)
	}
	if err := c.ReportCfg.Validate(); err != nil {
		return fmt.Errorf("report configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the logger settings.
func (l *LoggerConfig) Validate() error {
	if !oneOf(l.Level, validLogLevels) {
		return fmt.Errorf("level must be one of %s", strings.Join(validLogLevels, ", "))
	}
	if !oneOf(l.Format, validLogFormats) {
		return fmt.Errorf("format must be one of %s", strings.Join(validLogFormats, ", "))
	}
	if l.LogFile != "" && l.MaxSize <= 0 {
		return fmt.Errorf("max_size must be positive when log_file is set")
	}
	return nil
}

// Validate checks the audit settings.
func (a *AuditConfig) Validate() error {
	if a.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be a positive integer")
	}
	if a.MaxElements < 0 {
		return fmt.Errorf("max_elements must not be negative")
	}
	if a.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// Validate checks the report settings.
func (r *ReportConfig) Validate() error {
	if !oneOf(r.Format, validFormats) {
		return fmt.Errorf("format must be one of %s", strings.Join(validFormats, ", "))
	}
	if r.MinSeverity != "" && !oneOf(r.MinSeverity, validSeverities) {
		return fmt.Errorf("min_severity must be one of %s", strings.Join(validSeverities, ", "))
	}
	return nil
}

func oneOf(value string, allowed []string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
