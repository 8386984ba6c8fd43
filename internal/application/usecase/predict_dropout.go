package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/edurisk/dropout-predictor/internal/application/dto"
	"github.com/edurisk/dropout-predictor/internal/domain/model"
	"github.com/edurisk/dropout-predictor/internal/domain/port"
	"github.com/edurisk/dropout-predictor/internal/domain/service"
	"github.com/edurisk/dropout-predictor/internal/domain/valueobject"
)

var (
	// ErrArtifactUnavailable is returned for every request when no classifier was loaded.
	ErrArtifactUnavailable = errors.New("classifier artifact unavailable")
	// ErrPredictionFailed wraps any failure raised while invoking the classifier.
	ErrPredictionFailed = errors.New("prediction failed")
)

// Outcome values recorded on the predictions counter.
const (
	outcomeAtRisk              = "at_risk"
	outcomeContinuing          = "continuing"
	outcomeInvalidInput        = "invalid_input"
	outcomeArtifactUnavailable = "artifact_unavailable"
	outcomePredictionFailed    = "prediction_failed"
)

// PredictDropout is the use case that assembles a feature vector from form
// input and classifies it. It is built once at startup and never mutated.
type PredictDropout struct {
	classifier  port.Classifier
	assembler   *service.FeatureAssembler
	logger      *slog.Logger
	tracer      trace.Tracer
	predictions metric.Int64Counter
	duration    metric.Float64Histogram
	now         func() time.Time
}

// Option configures a PredictDropout.
type Option func(*PredictDropout)

// WithTracerProvider sets the provider used for prediction spans instead of
// the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(uc *PredictDropout) {
		uc.tracer = tp.Tracer(tracerName)
	}
}

const tracerName = "github.com/edurisk/dropout-predictor/internal/application/usecase"

// NewPredictDropout creates a new PredictDropout use case. A nil classifier
// puts the use case in degraded mode: every Execute returns ErrArtifactUnavailable.
func NewPredictDropout(
	classifier port.Classifier,
	assembler *service.FeatureAssembler,
	meter metric.Meter,
	logger *slog.Logger,
	opts ...Option,
) (*PredictDropout, error) {
	predictions, err := meter.Int64Counter("dropout_predictions_total",
		metric.WithDescription("Prediction requests by outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create predictions counter: %w", err)
	}
	duration, err := meter.Float64Histogram("dropout_prediction_duration_seconds",
		metric.WithDescription("Time spent assembling and classifying one request."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	uc := &PredictDropout{
		classifier:  classifier,
		assembler:   assembler,
		logger:      logger,
		tracer:      otel.Tracer(tracerName),
		predictions: predictions,
		duration:    duration,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc, nil
}

// Available reports whether a classifier is loaded.
func (uc *PredictDropout) Available() bool {
	return uc.classifier != nil
}

// Execute validates and assembles the input, invokes the classifier and maps
// its class to a label. Errors match ErrArtifactUnavailable,
// service.ErrInvalidInput or ErrPredictionFailed.
func (uc *PredictDropout) Execute(ctx context.Context, req dto.PredictDropoutRequest) (dto.PredictionResponse, error) {
	start := uc.now()
	id := req.RequestID
	if id == uuid.Nil {
		id = uuid.New()
	}

	ctx, span := uc.tracer.Start(ctx, "PredictDropout.Execute",
		trace.WithAttributes(attribute.String("prediction.id", id.String())),
	)
	defer span.End()

	logger := uc.logger.With(slog.String("prediction_id", id.String()))

	resp, outcome, err := uc.execute(ctx, id, req.Input, logger)

	span.SetAttributes(attribute.String("prediction.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	uc.predictions.Add(ctx, 1, attrs)
	uc.duration.Record(ctx, uc.now().Sub(start).Seconds(), attrs)

	return resp, err
}

func (uc *PredictDropout) execute(
	ctx context.Context,
	id uuid.UUID,
	input model.FormInput,
	logger *slog.Logger,
) (dto.PredictionResponse, string, error) {
	// 1. Short-circuit before touching the input when no model is loaded.
	if uc.classifier == nil {
		logger.Warn("prediction rejected, classifier artifact unavailable")
		return dto.PredictionResponse{}, outcomeArtifactUnavailable, ErrArtifactUnavailable
	}

	// 2. Assemble the feature vector.
	vec, err := uc.assembler.Assemble(input)
	if err != nil {
		logger.Info("prediction rejected, invalid input", slog.String("error", err.Error()))
		return dto.PredictionResponse{}, outcomeInvalidInput, err
	}

	// 3. Invoke the classifier.
	class, err := uc.classify(ctx, vec)
	if err != nil {
		logger.Error("prediction failed", slog.String("error", err.Error()))
		return dto.PredictionResponse{}, outcomePredictionFailed, err
	}

	// 4. Map the raw class to a label.
	risk := valueobject.DropoutRiskFromClass(class)
	outcome := outcomeContinuing
	if risk.IsAtRisk() {
		outcome = outcomeAtRisk
	}
	logger.Info("prediction served",
		slog.String("label", risk.String()),
		slog.Float64("class", class),
	)

	return dto.NewPredictionResponse(id, risk, uc.now()), outcome, nil
}

// classify runs the classifier on a single row. A panic inside the
// classifier is reported as ErrPredictionFailed.
func (uc *PredictDropout) classify(ctx context.Context, vec model.FeatureVector) (class float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: classifier panicked: %v", ErrPredictionFailed, r)
		}
	}()

	classes, err := uc.classifier.Predict(ctx, vec.Row())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}
	if len(classes) != 1 {
		return 0, fmt.Errorf("%w: classifier returned %d results for 1 row", ErrPredictionFailed, len(classes))
	}
	return classes[0], nil
}
