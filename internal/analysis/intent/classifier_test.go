package intent

import (
	"context"
	"testing"

	"github.com/aurachat/aura/backend/internal/embedding"
)

func newTestClassifier(t *testing.T, threshold float64) *Classifier {
	t.Helper()
	c, err := NewClassifier(context.Background(), embedding.NewStaticEmbedder(256), threshold)
	if err != nil {
		t.Fatalf("NewClassifier err: %v", err)
	}
	return c
}

func TestClassifyExactMoodPhrase(t *testing.T) {
	c := newTestClassifier(t, 0.72)

	// An exact reference phrase has cosine self-similarity 1.0 and must
	// clear any threshold below 1.
	result, err := c.Classify(context.Background(), "what's my mood")
	if err != nil {
		t.Fatalf("Classify err: %v", err)
	}
	if result.Label != Mood {
		t.Fatalf("label = %s, want mood", result.Label)
	}
	if result.Score < 0.999 {
		t.Fatalf("score = %f, want ~1.0", result.Score)
	}
}

func TestClassifyExactMoviePhrase(t *testing.T) {
	c := newTestClassifier(t, 0.72)

	result, err := c.Classify(context.Background(), "suggest a movie for me")
	if err != nil {
		t.Fatalf("Classify err: %v", err)
	}
	if result.Label != Movie {
		t.Fatalf("label = %s, want movie", result.Label)
	}
}

func TestClassifyUnrelatedMessage(t *testing.T) {
	c := newTestClassifier(t, 0.72)

	result, err := c.Classify(context.Background(), "tell me about quantum computing")
	if err != nil {
		t.Fatalf("Classify err: %v", err)
	}
	if result.Label != None {
		t.Fatalf("label = %s, want none", result.Label)
	}
}

func TestClassifyEmptyMessage(t *testing.T) {
	c := newTestClassifier(t, 0.72)

	result, err := c.Classify(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Classify err: %v", err)
	}
	if result.Label != None || result.Score != 0 {
		t.Fatalf("got %+v, want {none 0}", result)
	}
}

func TestClassifyThresholdMonotonic(t *testing.T) {
	// Raising the threshold may only move labels toward none, never away.
	messages := []string{
		"what's my mood",
		"recommend a movie",
		"tell me about quantum computing",
	}
	thresholds := []float64{0.5, 0.72, 0.95, 0.999999}

	for _, msg := range messages {
		sawNone := false
		for _, th := range thresholds {
			c := newTestClassifier(t, th)
			result, err := c.Classify(context.Background(), msg)
			if err != nil {
				t.Fatalf("Classify err: %v", err)
			}
			if result.Label == None {
				sawNone = true
			} else if sawNone {
				t.Fatalf("message %q regained label %s at threshold %f", msg, result.Label, th)
			}
		}
	}
}

// constEmbedder maps every text to the same vector, forcing both phrase
// sets to score 1.0.
type constEmbedder struct{}

func (constEmbedder) EmbedStrings(_ context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = []float64{1, 0, 0}
	}
	return vectors, nil
}

func TestClassifyMoodWinsTieBreak(t *testing.T) {
	c, err := NewClassifier(context.Background(), constEmbedder{}, 0.72)
	if err != nil {
		t.Fatalf("NewClassifier err: %v", err)
	}

	// Both sets clear the threshold; mood is evaluated first and wins.
	result, err := c.Classify(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Classify err: %v", err)
	}
	if result.Label != Mood {
		t.Fatalf("label = %s, want mood", result.Label)
	}
}
