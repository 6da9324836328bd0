package embedding

import (
	"context"
	"fmt"

	arkembed "github.com/cloudwego/eino-ext/components/embedding/ark"
	"github.com/cloudwego/eino/components/embedding"

	"github.com/aurachat/aura/backend/internal/config"
)

// ArkEmbedder wraps the Ark embedding model behind the Embedder interface.
type ArkEmbedder struct {
	inner embedding.Embedder
}

// NewArkEmbedder builds an Ark-backed embedder from configuration.
func NewArkEmbedder(ctx context.Context, cfg config.EmbeddingConfig) (*ArkEmbedder, error) {
	inner, err := arkembed.NewEmbedder(ctx, &arkembed.EmbeddingConfig{
		APIKey:    cfg.ArkAPIKey,
		AccessKey: cfg.ArkAccessKey,
		SecretKey: cfg.ArkSecretKey,
		Model:     cfg.ArkModel,
		BaseURL:   cfg.ArkBaseURL,
		Region:    cfg.ArkRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ark embedder: %w", err)
	}

	return &ArkEmbedder{inner: inner}, nil
}

// EmbedStrings embeds a batch of texts via the Ark API.
func (e *ArkEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	vectors, err := e.inner.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("ark embedding call failed: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("ark embedding returned %d vectors for %d inputs", len(vectors), len(texts))
	}
	return vectors, nil
}
