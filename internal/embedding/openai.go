package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/aurachat/aura/backend/internal/config"
)

// OpenAIEmbedder calls the OpenAI embeddings API. It exists as an alternate
// backend for deployments without Ark access.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder builds an OpenAI-backed embedder from configuration.
func NewOpenAIEmbedder(cfg config.EmbeddingConfig) (*OpenAIEmbedder, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai embedding provider")
	}

	return &OpenAIEmbedder{
		client: openai.NewClient(cfg.OpenAIAPIKey),
		model:  openai.EmbeddingModel(cfg.OpenAIModel),
	}, nil
}

// EmbedStrings embeds a batch of texts in a single API request.
func (e *OpenAIEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding call failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embedding returned %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float64, len(resp.Data))
	for i, item := range resp.Data {
		vec := make([]float64, len(item.Embedding))
		for j, v := range item.Embedding {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
