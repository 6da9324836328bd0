package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/aurachat/aura/backend/internal/embedding"
)

// Label identifies which response strategy a message should take.
type Label string

const (
	Mood  Label = "mood"
	Movie Label = "movie"
	None  Label = "none"
)

// Result carries the winning label and its best cosine score.
type Result struct {
	Label Label
	Score float64
}

// PhraseSet pairs reference phrases with their pre-computed embeddings.
// Built once at startup and read-only afterwards.
type PhraseSet struct {
	Name    string
	Phrases []string
	vectors [][]float64
}

// newPhraseSet embeds the reference phrases in one batch.
func newPhraseSet(ctx context.Context, embedder embedding.Embedder, name string, phrases []string) (*PhraseSet, error) {
	vectors, err := embedder.EmbedStrings(ctx, phrases)
	if err != nil {
		return nil, fmt.Errorf("failed to embed %s phrase set: %w", name, err)
	}

	return &PhraseSet{Name: name, Phrases: phrases, vectors: vectors}, nil
}

// maxSimilarity returns the top-1 cosine similarity of vec against the set.
func (p *PhraseSet) maxSimilarity(vec []float64) float64 {
	best := -1.0
	for _, ref := range p.vectors {
		if sim := embedding.Cosine(vec, ref); sim > best {
			best = sim
		}
	}
	return best
}

// Classifier scores incoming messages against the mood and movie phrase sets.
type Classifier struct {
	embedder  embedding.Embedder
	mood      *PhraseSet
	movie     *PhraseSet
	threshold float64
}

// NewClassifier embeds both reference phrase sets up front. The threshold is
// the minimum top-1 similarity for a specialized intent to win.
func NewClassifier(ctx context.Context, embedder embedding.Embedder, threshold float64) (*Classifier, error) {
	mood, err := newPhraseSet(ctx, embedder, "mood", MoodPhrases())
	if err != nil {
		return nil, err
	}

	movie, err := newPhraseSet(ctx, embedder, "movie", MoviePhrases())
	if err != nil {
		return nil, err
	}

	return &Classifier{
		embedder:  embedder,
		mood:      mood,
		movie:     movie,
		threshold: threshold,
	}, nil
}

// Classify embeds the message and reports the best-matching intent. A blank
// message classifies as None with zero confidence rather than failing.
// Mood is checked before movie: when both sets clear the threshold, mood
// wins. This evaluation order is deliberate, inherited behavior.
func (c *Classifier) Classify(ctx context.Context, message string) (Result, error) {
	if strings.TrimSpace(message) == "" {
		return Result{Label: None, Score: 0}, nil
	}

	vectors, err := c.embedder.EmbedStrings(ctx, []string{message})
	if err != nil {
		return Result{}, fmt.Errorf("failed to embed message: %w", err)
	}

	vec := vectors[0]
	moodScore := c.mood.maxSimilarity(vec)
	movieScore := c.movie.maxSimilarity(vec)

	if moodScore > c.threshold {
		return Result{Label: Mood, Score: moodScore}, nil
	}
	if movieScore > c.threshold {
		return Result{Label: Movie, Score: movieScore}, nil
	}

	score := moodScore
	if movieScore > score {
		score = movieScore
	}
	return Result{Label: None, Score: score}, nil
}
