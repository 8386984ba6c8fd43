package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/edurisk/dropout-predictor/internal/infrastructure/config"
	grpcpresentation "github.com/edurisk/dropout-predictor/internal/presentation/grpc"
	"github.com/edurisk/dropout-predictor/internal/presentation/middleware"
	"github.com/edurisk/dropout-predictor/internal/presentation/rest"
	"github.com/edurisk/dropout-predictor/internal/presentation/web"
	"github.com/edurisk/dropout-predictor/pkg/observability"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction form, health checks and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "HTTP listen port (env HTTP_PORT)")
	cmd.Flags().IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "gRPC health listen port (env GRPC_PORT)")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: serviceName,
	})

	logger.Info("starting dropout-predictor",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"model_path", cfg.ModelPath,
	)

	// Initialize tracing.
	if cfg.TracingEnabled() {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: serviceName,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer meterProvider.Shutdown(context.Background())

	// Wire the use case. The classifier is loaded once here and shared by every request.
	predictDropout, err := newPredictDropout(cfg, meterProvider.Meter(serviceName), logger)
	if err != nil {
		return err
	}

	// HTTP server (form, health checks, metrics).
	webHandler, err := web.NewHandler(predictDropout, logger)
	if err != nil {
		return err
	}
	healthHandler := rest.NewHealthHandler(predictDropout, logger)

	httpMux := http.NewServeMux()
	webHandler.RegisterRoutes(httpMux)
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      newHTTPHandler(httpMux, logger),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// gRPC server (health only).
	grpcServer := grpcpresentation.NewServer(predictDropout, cfg.GRPCAddress(), cfg.GRPCReflection, logger)

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("dropout-predictor started",
		"http_address", cfg.HTTPAddress(),
		"grpc_address", cfg.GRPCAddress(),
		"environment", cfg.Environment,
		"model_available", predictDropout.Available(),
	)

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	logger.Info("shutting down dropout-predictor")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("dropout-predictor stopped")
	return serveErr
}

// newHTTPHandler wraps mux so that recovered panics are still logged with
// their request ID.
func newHTTPHandler(mux http.Handler, logger *slog.Logger) http.Handler {
	return middleware.Chain(mux,
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(logger),
		middleware.RecoverMiddleware(logger),
	)
}
