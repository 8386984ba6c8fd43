package port

import "context"

// Classifier defines the port for a pre-trained binary classifier.
type Classifier interface {
	// Predict returns one raw class per input row. Implementations check row
	// width against their own coefficient count and nothing else.
	Predict(ctx context.Context, rows [][]float64) ([]float64, error)
}
