package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every command (migrate, verify, reconcile, consolidate) reads the same set.
type Config struct {
	// Env: development | production — controls log formatting only.
	Env string `mapstructure:"APP_ENV"`

	// DatabasePath is the single SQLite file everything operates on.
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	// Epsilon is the tolerance (in currency units) used when comparing stored
	// money aggregates against recomputed ledger sums. Line-item arithmetic
	// accumulated rounding noise historically, so exact equality is too strict.
	Epsilon float64 `mapstructure:"LEDGER_EPSILON"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_PATH", "jabon.db")
	viper.SetDefault("LEDGER_EPSILON", 0.01)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
