package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edurisk/dropout-predictor/internal/domain/model"
	"github.com/edurisk/dropout-predictor/internal/presentation/middleware"
	"github.com/edurisk/dropout-predictor/internal/presentation/web"
)

// writeAbsencesArtifact writes a classifier that flags a student as at risk
// once absences exceed ten.
func writeAbsencesArtifact(t *testing.T) string {
	t.Helper()
	coefficients := make([]float64, model.FeatureCount)
	coefficients[model.SlotAbsences] = 1

	body, err := json.Marshal(map[string]any{
		"kind":          "linear_svc",
		"feature_names": model.FeatureNames(),
		"coefficients":  coefficients,
		"intercept":     -10,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "class_svc.json")
	require.NoError(t, os.WriteFile(path, body, 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func predictArgs(artifact, absences string) []string {
	return []string{
		"predict", "--model", artifact,
		"--gender", "1",
		"--age", "18",
		"--number-of-failures", "3",
		"--final-grade", "5",
		"--parental-status", "1",
		"--absences", absences,
		"--study-time", "1",
		"--activities", "0",
	}
}

func TestPredictCommand(t *testing.T) {
	artifact := writeAbsencesArtifact(t)

	tests := []struct {
		name     string
		absences string
		expected string
	}{
		{"many absences", "30", "Prediction: YES (Student may Dropout)"},
		{"few absences", "2", "Prediction: NO (Student will Continue)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, predictArgs(artifact, tt.absences)...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strings.TrimSpace(out))
		})
	}
}

func TestPredictCommand_InvalidInput(t *testing.T) {
	artifact := writeAbsencesArtifact(t)

	out, err := execute(t, predictArgs(artifact, "lots")...)
	require.ErrorIs(t, err, errPredictionRejected)
	assert.Equal(t, web.MessageInvalidInput, strings.TrimSpace(out))
}

func TestPredictCommand_MissingFlag(t *testing.T) {
	artifact := writeAbsencesArtifact(t)

	out, err := execute(t, "predict", "--model", artifact, "--age", "18")
	require.ErrorIs(t, err, errPredictionRejected)
	assert.Equal(t, web.MessageInvalidInput, strings.TrimSpace(out))
}

func TestPredictCommand_MissingArtifact(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.json")

	out, err := execute(t, predictArgs(missing, "30")...)
	require.ErrorIs(t, err, errPredictionRejected)
	assert.Equal(t, web.MessageArtifactUnavailable, strings.TrimSpace(out))
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, model.FeatureCount+1)
	assert.Contains(t, lines[1], "Gender")
	assert.Contains(t, lines[len(lines)-1], model.SlotHealth3.String())
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    dev")
	assert.Contains(t, out, "Go Version:")
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "number-of-failures", flagName(model.FieldNumberOfFailures))
	assert.Equal(t, "gender", flagName(model.FieldGender))
}

func TestHTTPHandler_LogsRecoveredPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	newHTTPHandler(mux, logger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	requestID := rec.Header().Get(middleware.RequestIDHeader)
	require.NotEmpty(t, requestID)

	records := make(map[string]map[string]any)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records[record["msg"].(string)] = record
	}

	require.Contains(t, records, "request", "request was not logged:\n%s", buf.String())
	assert.Equal(t, float64(http.StatusInternalServerError), records["request"]["status"])
	assert.Equal(t, requestID, records["request"]["request_id"])

	require.Contains(t, records, "panic serving request")
	assert.Equal(t, requestID, records["panic serving request"]["request_id"])
}
