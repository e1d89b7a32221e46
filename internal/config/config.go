package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

// DockConfig carries the fixed reference sets a dispatch dock-in must pick
// from, plus the demo-data switch.
type DockConfig struct {
	Transporters []string
	Consignors   []string
	Consignees   []string
	SeedDemo     bool
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Dock        DockConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Dock: DockConfig{
			Transporters: parseList(v.GetString("DOCK_TRANSPORTERS")),
			Consignors:   parseList(v.GetString("DOCK_CONSIGNORS")),
			Consignees:   parseList(v.GetString("DOCK_CONSIGNEES")),
			SeedDemo:     v.GetBool("DOCK_SEED_DEMO"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.Dock.Transporters) == 0 {
		cfg.Dock.Transporters = []string{
			"DHL Logistics",
			"FedEx Freight",
			"Blue Dart Express",
			"Maersk Line",
			"TCI Freight",
		}
	}
	if len(cfg.Dock.Consignors) == 0 {
		cfg.Dock.Consignors = []string{
			"ABC Manufacturing Ltd",
			"Global Tech Supplies",
			"Sunrise Agro",
			"Zenith Components",
		}
	}
	if len(cfg.Dock.Consignees) == 0 {
		cfg.Dock.Consignees = []string{
			"Retail Giant Corp",
			"City Distribution Center",
			"Westside Warehouse",
			"Eastern Exports",
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", cfg.HTTP.Port)
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
