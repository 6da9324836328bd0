package embedding

import (
	"context"
	"math"
	"math/rand"
)

// StaticEmbedder produces deterministic pseudo-embeddings seeded by the text
// itself. Identical strings always map to identical unit vectors, so exact
// phrase matches still score 1.0 under cosine similarity. It keeps the
// service runnable in development without embedding credentials; it carries
// no real semantics.
type StaticEmbedder struct {
	dim int
}

// NewStaticEmbedder creates a StaticEmbedder with the given dimensionality.
func NewStaticEmbedder(dim int) *StaticEmbedder {
	if dim <= 0 {
		dim = 384
	}
	return &StaticEmbedder{dim: dim}
}

// EmbedStrings returns one deterministic unit vector per input.
func (e *StaticEmbedder) EmbedStrings(_ context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = e.embed(text)
	}
	return vectors, nil
}

func (e *StaticEmbedder) embed(text string) []float64 {
	var seed int64
	for _, c := range text {
		seed = seed*31 + int64(c)
	}

	rng := rand.New(rand.NewSource(seed))
	vec := make([]float64, e.dim)
	var norm float64
	for i := range vec {
		vec[i] = rng.NormFloat64()
		norm += vec[i] * vec[i]
	}

	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
