package embedding

import (
	"context"
	"math"
	"testing"
)

func TestCosineSelfSimilarity(t *testing.T) {
	vec := []float64{0.3, -1.2, 4.5, 0.01}
	got := Cosine(vec, vec)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("self similarity = %f, want 1.0", got)
	}
}

func TestCosineZeroVector(t *testing.T) {
	if got := Cosine([]float64{0, 0, 0}, []float64{1, 2, 3}); got != 0 {
		t.Fatalf("zero vector similarity = %f, want 0", got)
	}
}

func TestCosineDimensionMismatch(t *testing.T) {
	if got := Cosine([]float64{1, 2}, []float64{1, 2, 3}); got != 0 {
		t.Fatalf("mismatched dims similarity = %f, want 0", got)
	}
}

func TestCosineOppositeVectors(t *testing.T) {
	got := Cosine([]float64{1, 0}, []float64{-1, 0})
	if math.Abs(got+1.0) > 1e-9 {
		t.Fatalf("opposite similarity = %f, want -1.0", got)
	}
}

func TestMean(t *testing.T) {
	got := Mean([][]float64{{1, 2, 3}, {3, 4, 5}})
	want := []float64{2, 3, 4}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("mean[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestMeanEmpty(t *testing.T) {
	if got := Mean(nil); got != nil {
		t.Fatalf("mean of empty set = %v, want nil", got)
	}
}

func TestStaticEmbedderDeterministic(t *testing.T) {
	e := NewStaticEmbedder(64)
	ctx := context.Background()

	first, err := e.EmbedStrings(ctx, []string{"what's my mood"})
	if err != nil {
		t.Fatalf("EmbedStrings err: %v", err)
	}
	second, err := e.EmbedStrings(ctx, []string{"what's my mood"})
	if err != nil {
		t.Fatalf("EmbedStrings err: %v", err)
	}

	if sim := Cosine(first[0], second[0]); math.Abs(sim-1.0) > 1e-9 {
		t.Fatalf("identical strings similarity = %f, want 1.0", sim)
	}
}

func TestStaticEmbedderUnitNorm(t *testing.T) {
	e := NewStaticEmbedder(128)
	vecs, err := e.EmbedStrings(context.Background(), []string{"hello", "suggest a movie"})
	if err != nil {
		t.Fatalf("EmbedStrings err: %v", err)
	}

	for i, vec := range vecs {
		var norm float64
		for _, v := range vec {
			norm += v * v
		}
		if math.Abs(math.Sqrt(norm)-1.0) > 1e-9 {
			t.Fatalf("vector %d norm = %f, want 1.0", i, math.Sqrt(norm))
		}
	}
}

func TestStaticEmbedderEmptyInput(t *testing.T) {
	e := NewStaticEmbedder(32)
	if _, err := e.EmbedStrings(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input batch")
	}
}
