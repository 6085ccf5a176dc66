// Package embedding turns text into fixed-length float vectors and owns the
// lifecycle of the shared encoder.
package embedding

import (
	"context"
	"fmt"
	"math"
)

// Encoder maps text to a vector of fixed dimensionality.
type Encoder interface {
	// Encode returns the embedding for text.
	Encode(ctx context.Context, text string) ([]float32, error)
	// Dimensions is the length of every vector Encode returns.
	Dimensions() int
	// Name identifies the backend and model, e.g. "gemini:text-embedding-004".
	Name() string
}

// EncodeError is returned when an encoder fails to embed text.
type EncodeError struct {
	Backend string
	Message string
	Cause   error
}

func (e *EncodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s encoder: %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s encoder: %s", e.Backend, e.Message)
}

func (e *EncodeError) Unwrap() error {
	return e.Cause
}

// CosineSimilarity returns the cosine of the angle between a and b. ok is
// false when the vectors are empty, differ in length, or either has zero norm.
func CosineSimilarity(a, b []float32) (similarity float64, ok bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
