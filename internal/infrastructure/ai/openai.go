// Package ai provides embedding generation backed by OpenAI-compatible APIs.
package ai

import (
	"context"
	"errors"
	"fmt"

	catalogapp "github.com/bizgrid/backend/internal/application/catalog"
	infraconfig "github.com/bizgrid/backend/internal/infrastructure/config"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var _ catalogapp.EmbeddingGenerator = (*OpenAIEmbeddingGenerator)(nil)

// OpenAIEmbeddingGenerator produces text embeddings through the OpenAI API.
// Any OpenAI-compatible endpoint works via the base URL override.
type OpenAIEmbeddingGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIEmbeddingGenerator creates a generator from configuration
func NewOpenAIEmbeddingGenerator(cfg *infraconfig.AIConfig) (*OpenAIEmbeddingGenerator, error) {
	if cfg == nil {
		return nil, errors.New("AI configuration is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key is required")
	}

	var client openai.Client
	if cfg.BaseURL != "" {
		client = openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
		)
	} else {
		client = openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
		)
	}

	return &OpenAIEmbeddingGenerator{
		client: client,
		model:  cfg.EmbeddingModel,
	}, nil
}

// Generate returns the embedding vector for the given text
func (g *OpenAIEmbeddingGenerator) Generate(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("text is required")
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		Model: openai.EmbeddingModel(g.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embedding response contained no data")
	}

	raw := resp.Data[0].Embedding
	vector := make([]float32, len(raw))
	for i, v := range raw {
		vector[i] = float32(v)
	}
	return vector, nil
}
