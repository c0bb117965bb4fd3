package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// knownTiers lists the food ranking tiers that may be disabled.
var knownTiers = map[string]bool{
	"medical_safety":    true,
	"nutrition_quality": true,
	"ayurveda":          true,
	"variety":           true,
	"preference":        true,
	"practical":         true,
}

// Config holds the engine's runtime configuration.
type Config struct {
	DBPath            string   `json:"db_path"`
	ListenAddr        string   `json:"listen_addr"`
	PlanDays          int      `json:"plan_days"`
	DisabledRankTiers []string `json:"disabled_rank_tiers"`
	LogLevel          string   `json:"log_level"`
}

// Load reads a JSON config file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DisabledTiers returns the disabled ranking tiers as the set the food
// engine consumes. Nil when nothing is disabled.
func (c *Config) DisabledTiers() map[string]bool {
	if len(c.DisabledRankTiers) == 0 {
		return nil
	}
	out := make(map[string]bool, len(c.DisabledRankTiers))
	for _, tier := range c.DisabledRankTiers {
		out[tier] = true
	}
	return out
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":9700"
	}
	if c.PlanDays == 0 {
		c.PlanDays = 7
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "db_path is required")
	}
	if c.PlanDays < 1 || c.PlanDays > 30 {
		problems = append(problems, "plan_days must be between 1 and 30")
	}
	for _, tier := range c.DisabledRankTiers {
		if !knownTiers[tier] {
			problems = append(problems, fmt.Sprintf("unknown ranking tier %q", tier))
		}
	}
	if c.disables("medical_safety") {
		problems = append(problems, "the medical_safety tier cannot be disabled")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return &domain.EngineError{
			Code:    domain.ErrConfigInvalid.Code,
			Message: fmt.Sprintf("%s: %v", domain.ErrConfigInvalid.Message, problems),
		}
	}
	return nil
}

func (c *Config) disables(tier string) bool {
	for _, t := range c.DisabledRankTiers {
		if t == tier {
			return true
		}
	}
	return false
}
