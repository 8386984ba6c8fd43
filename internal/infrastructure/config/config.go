package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the dropout predictor.
type Config struct {
	ModelPath      string
	Environment    string
	LogLevel       string
	LogFormat      string
	OTLPEndpoint   string
	HTTPPort       int
	GRPCPort       int
	GRPCReflection bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 5000),
		GRPCPort:       getEnvInt("GRPC_PORT", 5001),
		ModelPath:      getEnv("MODEL_PATH", "class_svc.json"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
	}
}

// Validate reports configuration the service cannot start with.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.HTTPPort == c.GRPCPort {
		return fmt.Errorf("HTTP and gRPC ports must differ, both are %d", c.HTTPPort)
	}
	if c.ModelPath == "" {
		return fmt.Errorf("model path is required")
	}
	return nil
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// TracingEnabled reports whether an OTLP collector is configured.
func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
