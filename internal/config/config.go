package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DatabasePath string `mapstructure:"database_path"`
	Port         int    `mapstructure:"port"`
	Environment  string `mapstructure:"environment"`
	LogDir       string `mapstructure:"log_dir"`
}

func Default() Config {
	return Config{
		DatabasePath: "tasks.db",
		Port:         5000,
		Environment:  "development",
		LogDir:       "logs",
	}
}

// Load reads configuration from NEXATASK_* environment variables and an
// optional config file, over the package defaults. With an empty path only
// the working directory is searched and a missing file is fine; an explicit
// path must exist.
func Load(path string) (Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("database_path", defaults.DatabasePath)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("environment", defaults.Environment)
	v.SetDefault("log_dir", defaults.LogDir)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NEXATASK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
