package client

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "HTTPSEQ"

// LoadConfig reads a Config from an optional YAML file plus the
// environment. A .env file in the working directory is loaded first if
// present; environment variables use the HTTPSEQ_ prefix with underscores
// for nesting (HTTPSEQ_LOG_LEVEL, HTTPSEQ_USER_AGENT, ...). path may be
// empty to configure from the environment alone.
func LoadConfig(path string) (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Known keys must be registered for env-only configuration to reach
	// Unmarshal.
	v.SetDefault("user_agent", "")
	v.SetDefault("timeout", "0s")
	v.SetDefault("trace", false)
	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "")
	v.SetDefault("log.output", "")
	v.SetDefault("log.no_color", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
