package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edurisk/dropout-predictor/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "GRPC_PORT", "MODEL_PATH", "ENVIRONMENT",
		"LOG_LEVEL", "LOG_FORMAT", "OTEL_EXPORTER_OTLP_ENDPOINT", "GRPC_REFLECTION",
	} {
		t.Setenv(key, "")
	}
	// Empty strings count as set, so only the numeric and boolean fallbacks apply.
	cfg := config.Load()

	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, 5001, cfg.GRPCPort)
	assert.False(t, cfg.GRPCReflection)
	assert.False(t, cfg.TracingEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("GRPC_PORT", "9090")
	t.Setenv("MODEL_PATH", "/models/class_svc.yaml")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("GRPC_REFLECTION", "true")

	cfg := config.Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, "/models/class_svc.yaml", cfg.ModelPath)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.TracingEnabled())
	assert.True(t, cfg.GRPCReflection)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, ":9090", cfg.GRPCAddress())
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("GRPC_REFLECTION", "maybe")

	cfg := config.Load()

	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.False(t, cfg.GRPCReflection)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{HTTPPort: 5000, GRPCPort: 5001, ModelPath: "class_svc.json"}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{"zero http port", func(c *config.Config) { c.HTTPPort = 0 }, "invalid HTTP port"},
		{"http port too large", func(c *config.Config) { c.HTTPPort = 70000 }, "invalid HTTP port"},
		{"negative grpc port", func(c *config.Config) { c.GRPCPort = -1 }, "invalid gRPC port"},
		{"same ports", func(c *config.Config) { c.GRPCPort = c.HTTPPort }, "must differ"},
		{"empty model path", func(c *config.Config) { c.ModelPath = "" }, "model path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
