// Package settings carries the runtime configuration for the extractor
// commands, loaded from an optional YAML file and DGX_* environment
// variables.
package settings

import (
	"fmt"

	"github.com/spf13/viper"

	"dgextractor/internal/unwrap"
)

// Settings is the full runtime configuration.
type Settings struct {
	SevenZipPath  string      `mapstructure:"seven_zip_path"`
	MaxUnwrapHops int         `mapstructure:"max_unwrap_hops"`
	DatabasePath  string      `mapstructure:"database_path"`
	Log           LogSettings `mapstructure:"log"`
}

// LogSettings controls the process logger.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads settings from an optional YAML file and the environment.
// Environment variables win over file values.
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetDefault("seven_zip_path", "")
	v.SetDefault("max_unwrap_hops", unwrap.DefaultMaxHops)
	v.SetDefault("database_path", "dgextractor.db")
	v.SetDefault("log.level", "error")
	v.SetDefault("log.format", "text")

	v.AutomaticEnv()
	v.BindEnv("seven_zip_path", "DGX_SEVEN_ZIP_PATH")
	v.BindEnv("max_unwrap_hops", "DGX_MAX_UNWRAP_HOPS")
	v.BindEnv("database_path", "DGX_DATABASE_PATH")
	v.BindEnv("log.level", "DGX_LOG_LEVEL")
	v.BindEnv("log.format", "DGX_LOG_FORMAT")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("unable to read settings file. %v", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("unable to parse settings. %v", err)
	}
	return settings, nil
}
