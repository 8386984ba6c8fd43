package ml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultArtifactPath is the well-known filename the service loads at startup.
const DefaultArtifactPath = "class_svc.json"

// ErrArtifactNotFound is returned when the artifact file does not exist.
var ErrArtifactNotFound = errors.New("classifier artifact not found")

// Model kinds understood by LoadArtifact.
const (
	KindLinearSVC = "linear_svc"
	KindLogistic  = "logistic"
)

// Artifact is the serialized form of a trained linear classifier.
// YAML and JSON encodings are both accepted.
type Artifact struct {
	Threshold    *float64  `yaml:"threshold"`
	Kind         string    `yaml:"kind"`
	FeatureNames []string  `yaml:"feature_names"`
	Coefficients []float64 `yaml:"coefficients"`
	Intercept    float64   `yaml:"intercept"`
}

// Validate checks the artifact is internally consistent.
func (a *Artifact) Validate() error {
	switch a.Kind {
	case KindLinearSVC, KindLogistic:
	case "":
		return fmt.Errorf("artifact kind is required")
	default:
		return fmt.Errorf("unsupported artifact kind: %s", a.Kind)
	}
	if len(a.Coefficients) == 0 {
		return fmt.Errorf("artifact has no coefficients")
	}
	if len(a.FeatureNames) > 0 && len(a.FeatureNames) != len(a.Coefficients) {
		return fmt.Errorf("artifact lists %d feature names for %d coefficients",
			len(a.FeatureNames), len(a.Coefficients))
	}
	if a.Threshold != nil && a.Kind != KindLogistic {
		return fmt.Errorf("threshold is only valid for %s artifacts", KindLogistic)
	}
	return nil
}

// DecodeArtifact parses and validates an artifact document.
func DecodeArtifact(r io.Reader) (*Artifact, error) {
	var a Artifact
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("artifact is empty")
		}
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadArtifact reads the artifact at path.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	a, err := DecodeArtifact(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	return a, nil
}
