// Package config loads and validates stockroom configuration via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config captures all application configuration knobs loaded via Viper.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Inventory InventoryConfig `mapstructure:"inventory"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// SnapshotConfig sets where and how repository snapshots are persisted.
type SnapshotConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// InventoryConfig governs the warehouse caller.
type InventoryConfig struct {
	LowStockThreshold int    `mapstructure:"low_stock_threshold"`
	SeedFile          string `mapstructure:"seed_file"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STOCKROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the application cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Snapshot.Path) == "" {
		return fmt.Errorf("snapshot.path must not be empty")
	}
	switch c.Snapshot.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("snapshot.format must be json or yaml, got %q", c.Snapshot.Format)
	}
	if c.Inventory.LowStockThreshold < 0 {
		return fmt.Errorf("inventory.low_stock_threshold must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.development", false)
	v.SetDefault("snapshot.path", "data/inventory.json")
	v.SetDefault("snapshot.format", "json")
	v.SetDefault("inventory.low_stock_threshold", 5)
	v.SetDefault("inventory.seed_file", "")
}
