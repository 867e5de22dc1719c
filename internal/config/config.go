// Package config loads zplforge's runtime configuration from a YAML file
// plus environment variable overrides, layered through viper/mapstructure.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration object.
type Config struct {
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
	App     AppConfig     `mapstructure:"app"`
}

// RenderConfig holds render defaults and font settings read from
// configuration. The CLI's flags keep their own defaults rather than taking
// them from here, and nothing in this module loads fonts from FontDir or
// RegisteredFonts.
type RenderConfig struct {
	DefaultResolution int      `mapstructure:"default_resolution"`
	DefaultUnit       string   `mapstructure:"default_unit"`
	DefaultFormat     string   `mapstructure:"default_format"`
	FontDir           string   `mapstructure:"font_dir"`
	RegisteredFonts   []string `mapstructure:"registered_fonts"`
}

// LoggingConfig configures the logging subsystem; MaxSize/MaxBackups/
// MaxAge are in lumberjack's usual units (MB, count, days).
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// AppConfig carries environment/build identification for log enrichment.
type AppConfig struct {
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// Load reads zplforge.yaml from the current directory (or from
// $HOME/.config/zplforge) overlaid with ZPLFORGE_-prefixed environment variables,
// falling back entirely to defaults when no config file is present.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("zplforge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/zplforge")

	v.SetEnvPrefix("ZPLFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("render.default_resolution", 203)
	v.SetDefault("render.default_unit", "in")
	v.SetDefault("render.default_format", "png")
	v.SetDefault("render.font_dir", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
}
