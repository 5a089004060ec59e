package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/transitops/fleetassign/core/assign"
	"github.com/transitops/fleetassign/core/metrics"
	"github.com/transitops/fleetassign/core/monitoring"
	"github.com/transitops/fleetassign/infra/notify"
)

type Config struct {
	Store      StoreConfig           `json:"store"`
	Params     ParamsConfig          `json:"params"`
	Weights    assign.Weights        `json:"weights"`
	Thresholds monitoring.Thresholds `json:"thresholds"`
	Metrics    metrics.Config        `json:"metrics"`
	Notifier   NotifierConfig        `json:"notifier"`
	Planner    PlannerConfig         `json:"planner"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	Path string `json:"path"`
}

func (c *StoreConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "fleetassign.db"
	}
}

// NotifierConfig selects the outbound notifier.
type NotifierConfig struct {
	Enabled bool          `json:"enabled"`
	MQTT    notify.Config `json:"mqtt"`
}

// PlannerConfig drives the long-running planning mode.
type PlannerConfig struct {
	// PrometheusAddr is the listen address of the /metrics endpoint.
	PrometheusAddr string `json:"prometheus_addr"`
	// IntervalMinutes is the delay between two planning passes.
	IntervalMinutes int `json:"interval_minutes"`
}

func (c *PlannerConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":2112"
	}
	if c.IntervalMinutes == 0 {
		c.IntervalMinutes = 60
	}
}

func (c PlannerConfig) Validate() error {
	if c.IntervalMinutes < 0 {
		return fmt.Errorf("interval_minutes must not be negative")
	}
	return nil
}

// Load reads the configuration file, applies FA_ environment overrides
// and fills in defaults. An empty path yields the default configuration.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("FA_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fa_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Store.SetDefaults()
	cfg.Params.SetDefaults()
	cfg.Thresholds.SetDefaults()
	cfg.Planner.SetDefaults()
	cfg.Notifier.MQTT.SetDefaults()
	if zero := (assign.Weights{}); cfg.Weights == zero {
		cfg.Weights = assign.DefaultWeights()
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Planner.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
