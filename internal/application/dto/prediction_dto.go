package dto

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/edurisk/dropout-predictor/internal/domain/model"
	"github.com/edurisk/dropout-predictor/internal/domain/valueobject"
)

// PredictDropoutRequest is the input DTO for the PredictDropout use case.
type PredictDropoutRequest struct {
	Input     model.FormInput
	RequestID uuid.UUID
}

// PredictionResponse is the output DTO returned after a prediction.
type PredictionResponse struct {
	PredictedAt time.Time `json:"predicted_at"`
	Label       string    `json:"label"`
	DisplayText string    `json:"display_text"`
	ID          uuid.UUID `json:"id"`
	AtRisk      bool      `json:"at_risk"`
}

// NewPredictionResponse maps a label to the response DTO.
func NewPredictionResponse(id uuid.UUID, risk valueobject.DropoutRisk, at time.Time) PredictionResponse {
	return PredictionResponse{
		ID:          id,
		Label:       risk.String(),
		DisplayText: risk.DisplayText(),
		AtRisk:      risk.IsAtRisk(),
		PredictedAt: at,
	}
}

// FormInputFromValues picks the required fields out of submitted form values.
// Fields that were not submitted are left out so the assembler reports them
// as missing.
func FormInputFromValues(values url.Values) model.FormInput {
	in := make(model.FormInput, len(model.RequiredFields()))
	for _, f := range model.RequiredFields() {
		if vs, ok := values[f.String()]; ok && len(vs) > 0 {
			in[f] = vs[0]
		}
	}
	return in
}
