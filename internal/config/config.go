package config

import (
	"os"
	"strconv"

	"emvenn/domain/run"
	"emvenn/domain/sampling"
	"emvenn/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Paths      PathConfig
}

// SimulationConfig holds the Monte Carlo driver settings
type SimulationConfig struct {
	LowerBound float64
	UpperBound float64
	TrialCount int
	TentMode   bool
	Workers    int
	// Resolution bounds the tent bisection error; 0 reuses TrialCount
	Resolution int
	// Seed 0 means a time-derived seed is chosen per run
	Seed int64
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings; URL may be empty, in
// which case runs are kept in memory only
type DatabaseConfig struct {
	URL string
}

// PathConfig holds file system paths
type PathConfig struct {
	// TemplateFile is the 6-way Venn diagram SVG template
	TemplateFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Simulation: SimulationConfig{
			LowerBound: getEnvFloatOrDefault("LOWER_BOUND", 0.0),
			UpperBound: getEnvFloatOrDefault("UPPER_BOUND", 1.0),
			TrialCount: getEnvIntOrDefault("TRIAL_COUNT", 1_000_000),
			TentMode:   getEnvBoolOrDefault("TENT_MODE", true),
			Workers:    getEnvIntOrDefault("WORKERS", 1),
			Resolution: getEnvIntOrDefault("BISECTION_RESOLUTION", 0),
			Seed:       getEnvInt64OrDefault("SEED", 0),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Paths: PathConfig{
			TemplateFile: getEnvOrDefault("VENN_TEMPLATE", "assets/6waydiagram.svg"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Parameters converts the simulation settings to domain run parameters
func (c SimulationConfig) Parameters() run.Parameters {
	return run.Parameters{
		Interval:   sampling.Interval{Lower: c.LowerBound, Upper: c.UpperBound},
		TrialCount: c.TrialCount,
		TentMode:   c.TentMode,
		Workers:    c.Workers,
		Resolution: c.Resolution,
		Seed:       c.Seed,
	}
}

func validateConfig(config *Config) error {
	s := config.Simulation
	if s.TrialCount <= 0 {
		return errors.ConfigInvalid("TRIAL_COUNT must be positive")
	}
	if s.UpperBound <= s.LowerBound {
		return errors.ConfigInvalid("UPPER_BOUND must exceed LOWER_BOUND")
	}
	if s.Workers <= 0 {
		return errors.ConfigInvalid("WORKERS must be positive")
	}
	if s.Resolution < 0 {
		return errors.ConfigInvalid("BISECTION_RESOLUTION must be non-negative")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
