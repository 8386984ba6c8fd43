package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/edurisk/dropout-predictor/internal/application/dto"
	"github.com/edurisk/dropout-predictor/internal/application/usecase"
	"github.com/edurisk/dropout-predictor/internal/domain/model"
	"github.com/edurisk/dropout-predictor/internal/domain/service"
	"github.com/edurisk/dropout-predictor/internal/presentation/middleware"
)

//go:embed templates/index.html
var templateFS embed.FS

// User-facing messages rendered into the form's result placeholder.
const (
	MessageInvalidInput        = "Error: Please ensure all fields are filled with valid numbers."
	MessageArtifactUnavailable = "Error: Model could not be loaded. Check server logs."
	MessagePredictionFailed    = "Prediction Error. Please check server logs for details."
)

// maxFormMemory bounds the multipart form held in memory.
const maxFormMemory = 1 << 20

// fieldView describes one input of the form.
type fieldView struct {
	Name  string
	Label string
	Hint  string
	Value string
}

type pageData struct {
	PredictionText string
	Fields         []fieldView
}

var fieldLabels = map[model.Field][2]string{
	model.FieldGender:           {"Gender", "0 or 1"},
	model.FieldAge:              {"Age", "years"},
	model.FieldNumberOfFailures: {"Number of failures", "past class failures"},
	model.FieldFinalGrade:       {"Final grade", ""},
	model.FieldParentalStatus:   {"Parental status", "category code, 1 = A, 2 = B"},
	model.FieldAbsences:         {"Absences", "school absences"},
	model.FieldStudyTime:        {"Study time", "weekly study time code"},
	model.FieldActivities:       {"Activities", "extra-curricular, 0 = no, 1 = yes"},
}

// Handler serves the prediction form.
type Handler struct {
	predict *usecase.PredictDropout
	tmpl    *template.Template
	logger  *slog.Logger
}

// NewHandler parses the embedded template and creates the form handler.
func NewHandler(predict *usecase.PredictDropout, logger *slog.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse form template: %w", err)
	}
	return &Handler{
		predict: predict,
		tmpl:    tmpl,
		logger:  logger,
	}, nil
}

// RegisterRoutes registers the form endpoints on the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /predict", h.Predict)
}

// Index renders the empty form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, nil, "")
}

// Predict runs a prediction for the submitted form and re-renders the form
// with the result or an error message.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	// A body that cannot be parsed carries no fields; the use case still
	// decides between ArtifactUnavailable and InvalidInput.
	input := model.FormInput{}
	if err := parseForm(r); err != nil {
		h.logger.Info("failed to parse prediction form", "error", err)
	} else {
		input = dto.FormInputFromValues(r.PostForm)
	}
	req := dto.PredictDropoutRequest{Input: input}
	if id, ok := middleware.RequestIDFromContext(r.Context()); ok {
		req.RequestID = id
	}

	resp, err := h.predict.Execute(r.Context(), req)
	if err != nil {
		h.render(w, input, MessageFor(err))
		return
	}
	h.render(w, input, "Prediction: "+resp.DisplayText)
}

// parseForm reads urlencoded and multipart/form-data bodies into r.PostForm.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

// MessageFor maps a PredictDropout error to the message shown to the user.
func MessageFor(err error) string {
	switch {
	case errors.Is(err, usecase.ErrArtifactUnavailable):
		return MessageArtifactUnavailable
	case errors.Is(err, service.ErrInvalidInput):
		return MessageInvalidInput
	default:
		return MessagePredictionFailed
	}
}

func (h *Handler) render(w http.ResponseWriter, input model.FormInput, message string) {
	data := pageData{PredictionText: message}
	for _, f := range model.RequiredFields() {
		labels := fieldLabels[f]
		value, _ := input.Lookup(f)
		data.Fields = append(data.Fields, fieldView{
			Name:  f.String(),
			Label: labels[0],
			Hint:  labels[1],
			Value: value,
		})
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		h.logger.Error("failed to render form", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
