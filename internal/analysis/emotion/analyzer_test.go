package emotion

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// axisEmbedder is a deterministic test double: each emotion gets one vector
// axis and every known keyword contributes to its axis. Real deployments use
// a text-embedding model; the analyzer only needs vectors it can compare.
type axisEmbedder struct{}

var axisKeywords = map[string]int{
	"joy": 0, "happy": 0, "glad": 0, "wonderful": 0,
	"sadness": 1, "sad": 1, "failed": 1, "heavy": 1, "miserable": 1,
	"anger": 2, "angry": 2, "furious": 2,
	"fear": 3, "afraid": 3, "scared": 3,
	"surprise": 4, "surprised": 4, "unexpected": 4,
	"love": 5, "adore": 5,
	"neutral": 6, "fine": 6, "okay": 6,
}

func (axisEmbedder) EmbedStrings(_ context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec := make([]float64, 7)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,!?'\"")
			if axis, ok := axisKeywords[word]; ok {
				vec[axis]++
			}
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(context.Background(), axisEmbedder{})
	if err != nil {
		t.Fatalf("NewAnalyzer err: %v", err)
	}
	return a
}

func TestAnalyzeSadUtterances(t *testing.T) {
	a := newTestAnalyzer(t)

	result, err := a.Analyze(context.Background(), []string{
		"I failed my exam",
		"everything feels heavy",
	})
	if err != nil {
		t.Fatalf("Analyze err: %v", err)
	}

	if result.Dominant != Sadness {
		t.Fatalf("dominant = %s, want sadness", result.Dominant)
	}
	if result.Confidence <= 0 {
		t.Fatalf("confidence = %f, want > 0", result.Confidence)
	}
}

func TestAnalyzeMixedUtterancesRanksSecondary(t *testing.T) {
	a := newTestAnalyzer(t)

	result, err := a.Analyze(context.Background(), []string{
		"i am sad and heavy and a little angry",
	})
	if err != nil {
		t.Fatalf("Analyze err: %v", err)
	}

	if result.Dominant != Sadness {
		t.Fatalf("dominant = %s, want sadness", result.Dominant)
	}
	if result.Secondary[0].Label != Anger {
		t.Fatalf("secondary[0] = %s, want anger", result.Secondary[0].Label)
	}
	if result.Secondary[0].Score > result.Confidence {
		t.Fatalf("secondary score %f exceeds dominant %f", result.Secondary[0].Score, result.Confidence)
	}
	if result.Secondary[1].Score > result.Secondary[0].Score {
		t.Fatal("secondary candidates out of order")
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := newTestAnalyzer(t)

	if _, err := a.Analyze(context.Background(), nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestAnalyzeGibberishStillProducesLabel(t *testing.T) {
	a := newTestAnalyzer(t)

	// Malformed-but-non-empty input is never rejected; the analyzer always
	// reports a best-effort label.
	result, err := a.Analyze(context.Background(), []string{"xyzzy plugh"})
	if err != nil {
		t.Fatalf("Analyze err: %v", err)
	}
	if result.Dominant == "" {
		t.Fatal("expected a dominant label for gibberish input")
	}
}
