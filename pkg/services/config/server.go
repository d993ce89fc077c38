package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ServerSettings configures the HTTP surface.
type ServerSettings struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
}

// LoadServerSettings reads server settings from the optional config file
// and the BOARD_PULSE_* environment, falling back to defaults.
func LoadServerSettings(path string) (*ServerSettings, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("cache_ttl", 5*time.Minute)

	v.SetEnvPrefix("BOARD_PULSE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg ServerSettings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server settings: %w", err)
	}
	return &cfg, nil
}
