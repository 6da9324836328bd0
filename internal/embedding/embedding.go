package embedding

import (
	"context"
	"errors"
	"math"
)

// ErrEmptyInput is returned when there is no text to embed.
var ErrEmptyInput = errors.New("no input text to embed")

// Embedder turns text into fixed-dimensional vectors. Implementations must
// return one vector per input string, in order.
type Embedder interface {
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
}

// Cosine computes cosine similarity between two vectors. Mismatched
// dimensions or a zero vector yield 0 rather than an error.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Mean computes the element-wise mean of a non-empty vector set. Vectors
// shorter than the first are treated as zero-padded.
func Mean(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}

	mean := make([]float64, len(vectors[0]))
	for _, vec := range vectors {
		for i, v := range vec {
			if i >= len(mean) {
				break
			}
			mean[i] += v
		}
	}

	n := float64(len(vectors))
	for i := range mean {
		mean[i] /= n
	}
	return mean
}
