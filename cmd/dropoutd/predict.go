package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/edurisk/dropout-predictor/internal/application/dto"
	"github.com/edurisk/dropout-predictor/internal/domain/model"
	"github.com/edurisk/dropout-predictor/internal/infrastructure/config"
	"github.com/edurisk/dropout-predictor/internal/presentation/web"
	"github.com/edurisk/dropout-predictor/pkg/observability"
)

// errPredictionRejected is returned after the user-facing message has been
// printed, so the process exits non-zero.
var errPredictionRejected = errors.New("prediction did not succeed")

func newPredictCmd(cfg *config.Config) *cobra.Command {
	values := make(map[model.Field]*string, len(model.RequiredFields()))

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run a single prediction from the command line",
		Example: `  dropoutd predict --gender 1 --age 18 --number-of-failures 3 --final-grade 5 \
    --parental-status 1 --absences 30 --study-time 1 --activities 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := make(model.FormInput, len(values))
			for f, v := range values {
				if cmd.Flags().Changed(flagName(f)) {
					input[f] = *v
				}
			}
			return runPredict(cmd, cfg, input)
		},
	}

	for _, f := range model.RequiredFields() {
		values[f] = cmd.Flags().String(flagName(f), "", fmt.Sprintf("value of the %s form field", f))
	}
	return cmd
}

func runPredict(cmd *cobra.Command, cfg *config.Config, input model.FormInput) error {
	logger := observability.NewLogger(observability.LogConfig{
		Output: cmd.ErrOrStderr(),
		Level:  "warn",
		Format: "text",
	})

	predictDropout, err := newPredictDropout(cfg, noop.NewMeterProvider().Meter(serviceName), logger)
	if err != nil {
		return err
	}

	resp, err := predictDropout.Execute(cmd.Context(), dto.PredictDropoutRequest{Input: input})
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), web.MessageFor(err))
		return fmt.Errorf("%w: %w", errPredictionRejected, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Prediction: "+resp.DisplayText)
	return nil
}

// flagName turns a form field name such as Number_of_Failures into number-of-failures.
func flagName(f model.Field) string {
	return strings.ReplaceAll(strings.ToLower(f.String()), "_", "-")
}
