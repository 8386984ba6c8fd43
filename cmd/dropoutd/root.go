package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"

	"github.com/edurisk/dropout-predictor/internal/application/usecase"
	"github.com/edurisk/dropout-predictor/internal/domain/model"
	"github.com/edurisk/dropout-predictor/internal/domain/port"
	"github.com/edurisk/dropout-predictor/internal/domain/service"
	"github.com/edurisk/dropout-predictor/internal/infrastructure/config"
	"github.com/edurisk/dropout-predictor/internal/infrastructure/ml"
)

const serviceName = "dropout-predictor"

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "dropoutd",
		Short:         "Student dropout risk prediction service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `dropoutd serves an HTML form that collects student attributes and
predicts dropout risk with a pre-trained linear classifier.

Running dropoutd without a sub-command is the same as "dropoutd serve".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	root.PersistentFlags().StringVar(&cfg.ModelPath, "model", cfg.ModelPath,
		"path to the classifier artifact (env MODEL_PATH)")
	root.Flags().IntVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "HTTP listen port (env HTTP_PORT)")

	root.AddCommand(
		newServeCmd(cfg),
		newPredictCmd(cfg),
		newSchemaCmd(),
		newVersionCmd(),
	)
	return root
}

// newPredictDropout loads the classifier and builds the use case. A load
// failure is logged and leaves the use case without a classifier.
func newPredictDropout(cfg *config.Config, meter metric.Meter, logger *slog.Logger) (*usecase.PredictDropout, error) {
	var classifier port.Classifier
	c, err := ml.LoadClassifier(cfg.ModelPath, model.FeatureCount, logger)
	if err != nil {
		logger.Error("failed to load classifier, predictions disabled",
			"path", cfg.ModelPath,
			"error", err,
		)
	} else {
		classifier = c
	}
	return usecase.NewPredictDropout(classifier, service.NewFeatureAssembler(), meter, logger)
}
