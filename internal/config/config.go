package config

import (
	"os"
	"strconv"

	"modeleval/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Ops      OpsConfig
	Data     DataConfig
	Eval     EvalConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// OpsConfig holds the health/pprof sidecar server settings
type OpsConfig struct {
	Port    string
	Enabled bool
}

// DataConfig holds data ingestion settings
type DataConfig struct {
	File            string
	PredictorColumn string
	TargetColumn    string
}

// EvalConfig holds default thresholds for the metric engines
type EvalConfig struct {
	BuyThreshold  float64
	SellThreshold float64
	Theta         float64
	KSMaxParallel int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			Enabled: os.Getenv("DATABASE_URL") != "",
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
		},
		Data: DataConfig{
			File:            getEnvOrDefault("DATA_FILE", ""),
			PredictorColumn: getEnvOrDefault("PREDICTOR_COLUMN", "predictor"),
			TargetColumn:    getEnvOrDefault("TARGET_COLUMN", "target"),
		},
		Eval: EvalConfig{
			BuyThreshold:  getEnvFloatOrDefault("BUY_THRESHOLD", 0.0),
			SellThreshold: getEnvFloatOrDefault("SELL_THRESHOLD", 0.0),
			Theta:         getEnvFloatOrDefault("ROC_THETA", 0.0),
			KSMaxParallel: int64(getEnvIntOrDefault("KS_MAX_PARALLEL", 8)),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Eval.KSMaxParallel < 1 {
		return errors.ConfigInvalid("KS_MAX_PARALLEL must be >= 1")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
