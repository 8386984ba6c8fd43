package ml

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// LinearClassifier implements port.Classifier for linear SVC and logistic
// regression artifacts. It is immutable after construction and safe for
// concurrent use.
type LinearClassifier struct {
	kind         string
	coefficients []float64
	intercept    float64
	threshold    float64
}

// NewLinearClassifier builds a classifier from a validated artifact.
func NewLinearClassifier(a *Artifact) (*LinearClassifier, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	threshold := 0.5
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	coefficients := make([]float64, len(a.Coefficients))
	copy(coefficients, a.Coefficients)
	return &LinearClassifier{
		kind:         a.Kind,
		coefficients: coefficients,
		intercept:    a.Intercept,
		threshold:    threshold,
	}, nil
}

// Width returns the number of columns the classifier expects per row.
func (c *LinearClassifier) Width() int {
	return len(c.coefficients)
}

// Kind returns the artifact kind the classifier was built from.
func (c *LinearClassifier) Kind() string {
	return c.kind
}

// Predict returns class 1 or 0 for each row.
func (c *LinearClassifier) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to predict")
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(row) != len(c.coefficients) {
			return nil, fmt.Errorf("row %d has %d features, classifier expects %d",
				i, len(row), len(c.coefficients))
		}
		out[i] = c.classify(c.decision(row))
	}
	return out, nil
}

// decision is the signed distance w·x + b.
func (c *LinearClassifier) decision(row []float64) float64 {
	sum := c.intercept
	for j, w := range c.coefficients {
		sum += w * row[j]
	}
	return sum
}

func (c *LinearClassifier) classify(z float64) float64 {
	switch c.kind {
	case KindLogistic:
		if sigmoid(z) >= c.threshold {
			return 1
		}
		return 0
	default:
		if z > 0 {
			return 1
		}
		return 0
	}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// LoadClassifier loads the artifact at path and builds a classifier from it.
// A width that differs from expectedWidth is logged but not rejected; every
// prediction will then fail the row width check.
func LoadClassifier(path string, expectedWidth int, logger *slog.Logger) (*LinearClassifier, error) {
	a, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	c, err := NewLinearClassifier(a)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	if c.Width() != expectedWidth {
		logger.Warn("classifier width does not match feature schema",
			slog.String("path", path),
			slog.Int("classifier_width", c.Width()),
			slog.Int("schema_width", expectedWidth),
		)
	}
	logger.Info("classifier loaded",
		slog.String("path", path),
		slog.String("kind", c.Kind()),
		slog.Int("width", c.Width()),
	)
	return c, nil
}
