// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// FormDefaults prefill the calculator form.
type FormDefaults struct {
	Capital float64 `mapstructure:"capital"`
	RiskPct float64 `mapstructure:"risk_pct"`
	TPPct   float64 `mapstructure:"tp_pct"`
	SLPct   float64 `mapstructure:"sl_pct"`
}

type Config struct {
	DebugLogging bool         `mapstructure:"debug_logging"`
	LogFile      string       `mapstructure:"log_file"`
	Locale       string       `mapstructure:"locale"`
	TopN         int          `mapstructure:"top_n"`
	ExportDir    string       `mapstructure:"export_dir"`
	MetricsAddr  string       `mapstructure:"metrics_addr"`
	Defaults     FormDefaults `mapstructure:"defaults"`
}

const (
	DefaultLocale    = "en-US"
	DefaultTopN      = 5
	DefaultLogFile   = "logs/levcalc.log"
	DefaultExportDir = "exports"

	EnvPrefix = "LEVCALC"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogFile:   DefaultLogFile,
		Locale:    DefaultLocale,
		TopN:      DefaultTopN,
		ExportDir: DefaultExportDir,
		Defaults: FormDefaults{
			Capital: 1,
			RiskPct: 1,
			TPPct:   1,
			SLPct:   0.5,
		},
	}
}

// LoadConfig reads the file at path, overlays LEVCALC_* environment
// variables and validates the result. An empty path or a missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	defaults := map[string]interface{}{
		"debug_logging":     def.DebugLogging,
		"log_file":          def.LogFile,
		"locale":            def.Locale,
		"top_n":             def.TopN,
		"export_dir":        def.ExportDir,
		"metrics_addr":      def.MetricsAddr,
		"defaults.capital":  def.Defaults.Capital,
		"defaults.risk_pct": def.Defaults.RiskPct,
		"defaults.tp_pct":   def.Defaults.TPPct,
		"defaults.sl_pct":   def.Defaults.SLPct,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config error: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.TopN <= 0 {
		return errors.New("invalid top_n")
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}
	if strings.TrimSpace(cfg.LogFile) == "" {
		return errors.New("log_file is empty")
	}
	if strings.TrimSpace(cfg.ExportDir) == "" {
		return errors.New("export_dir is empty")
	}
	return nil
}
