package emotion

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aurachat/aura/backend/internal/embedding"
)

// ErrEmptyInput is returned when there are no utterances to analyze.
var ErrEmptyInput = errors.New("no utterances to analyze")

// Candidate is one ranked emotion label with its similarity score.
type Candidate struct {
	Label string
	Score float64
}

// Result is the outcome of analyzing a batch of utterances.
type Result struct {
	Dominant   string
	Confidence float64
	Secondary  [2]Candidate
}

// Analyzer scores utterance batches against the fixed emotion label set.
// Label embeddings are computed once at construction and never mutated.
type Analyzer struct {
	embedder embedding.Embedder
	labels   []string
	vectors  [][]float64
}

// NewAnalyzer embeds the emotion label set up front.
func NewAnalyzer(ctx context.Context, embedder embedding.Embedder) (*Analyzer, error) {
	labels := Labels()
	vectors, err := embedder.EmbedStrings(ctx, labels)
	if err != nil {
		return nil, fmt.Errorf("failed to embed emotion labels: %w", err)
	}

	return &Analyzer{embedder: embedder, labels: labels, vectors: vectors}, nil
}

// Analyze embeds every utterance, averages the embeddings into a single
// vector, and ranks the label set by cosine similarity against that mean.
// Averaging before comparing trades per-utterance granularity for robustness
// against short noisy turns.
func (a *Analyzer) Analyze(ctx context.Context, utterances []string) (Result, error) {
	if len(utterances) == 0 {
		return Result{}, ErrEmptyInput
	}

	vectors, err := a.embedder.EmbedStrings(ctx, utterances)
	if err != nil {
		return Result{}, fmt.Errorf("failed to embed utterances: %w", err)
	}

	mean := embedding.Mean(vectors)

	ranked := make([]Candidate, len(a.labels))
	for i, label := range a.labels {
		ranked[i] = Candidate{Label: label, Score: embedding.Cosine(mean, a.vectors[i])}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	result := Result{Dominant: ranked[0].Label, Confidence: ranked[0].Score}
	if len(ranked) > 1 {
		result.Secondary[0] = ranked[1]
	}
	if len(ranked) > 2 {
		result.Secondary[1] = ranked[2]
	}
	return result, nil
}
