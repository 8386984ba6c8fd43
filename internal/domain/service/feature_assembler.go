package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/edurisk/dropout-predictor/internal/domain/model"
)

// ErrInvalidInput is matched by every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// Reason classifies why a form field was rejected.
type Reason int

const (
	ReasonMissing Reason = iota + 1
	ReasonNotNumeric
)

// String returns the string representation.
func (r Reason) String() string {
	switch r {
	case ReasonMissing:
		return "missing"
	case ReasonNotNumeric:
		return "not a number"
	default:
		return "unknown"
	}
}

// FieldIssue describes a single rejected form field.
type FieldIssue struct {
	Value  string
	Field  model.Field
	Reason Reason
}

// ValidationError is returned by FeatureAssembler.Assemble when one or more
// required fields are missing or not numeric. Issues are in form order.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Reason))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, ", "))
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// scalarSlots maps each directly copied form field to its schema slot.
var scalarSlots = map[model.Field]model.Slot{
	model.FieldGender:           model.SlotGender,
	model.FieldAge:              model.SlotAge,
	model.FieldNumberOfFailures: model.SlotNumberOfFailures,
	model.FieldFinalGrade:       model.SlotFinalGrade,
	model.FieldAbsences:         model.SlotAbsences,
	model.FieldStudyTime:        model.SlotStudyTime,
	model.FieldActivities:       model.SlotActivities,
}

// parentalStatusSlots is the one-hot layout of Parental_Status. Codes not
// listed leave every parental slot at zero.
var parentalStatusSlots = map[float64]model.Slot{
	1: model.SlotParentalStatusA,
	2: model.SlotParentalStatusB,
}

// FeatureAssembler is a domain service that turns submitted form values into
// the classifier's dense input vector.
type FeatureAssembler struct{}

// NewFeatureAssembler creates a new FeatureAssembler instance.
func NewFeatureAssembler() *FeatureAssembler {
	return &FeatureAssembler{}
}

// Assemble parses every required field and places it in the vector.
// Slots with no form-driven mapping stay at zero. On failure the returned
// error is a *ValidationError and the vector is the zero value.
func (a *FeatureAssembler) Assemble(in model.FormInput) (model.FeatureVector, error) {
	values := make(map[model.Field]float64, len(model.RequiredFields()))
	var issues []FieldIssue

	for _, field := range model.RequiredFields() {
		raw, ok := in.Lookup(field)
		if !ok || strings.TrimSpace(raw) == "" {
			issues = append(issues, FieldIssue{Field: field, Reason: ReasonMissing, Value: raw})
			continue
		}
		v, err := parseNumber(raw)
		if err != nil {
			issues = append(issues, FieldIssue{Field: field, Reason: ReasonNotNumeric, Value: raw})
			continue
		}
		values[field] = v
	}

	if len(issues) > 0 {
		return model.FeatureVector{}, &ValidationError{Issues: issues}
	}

	var vec model.FeatureVector
	for field, slot := range scalarSlots {
		vec[slot] = values[field]
	}
	if slot, ok := parentalStatusSlots[values[model.FieldParentalStatus]]; ok {
		vec[slot] = 1.0
	}

	return vec, nil
}

// parseNumber accepts any finite float literal, surrounding whitespace allowed.
func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", raw)
	}
	return v, nil
}
