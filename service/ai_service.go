package service

import (
	"context"
	"fmt"

	"github.com/openfreight/docintel/config"
)

const (
	PROVIDER_OPENAI = "openai"
	PROVIDER_GEMINI = "gemini"
)

// Embedder turns texts into vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// LLMService produces one completion for a system and user prompt pair.
type LLMService interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// NewEmbedder builds the configured provider's embedding client.
func NewEmbedder(cfg *config.Config) (Embedder, error) {
	switch cfg.AIProvider {
	case PROVIDER_OPENAI:
		return NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.EmbeddingModel, 0), nil
	case PROVIDER_GEMINI:
		return NewGeminiService(cfg.GeminiAPIKey, cfg.Model, cfg.EmbeddingModel, 0)
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.AIProvider)
	}
}

// NewLLM builds a completion client with a fixed sampling temperature.
func NewLLM(cfg *config.Config, temperature float32) (LLMService, error) {
	switch cfg.AIProvider {
	case PROVIDER_OPENAI:
		return NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.EmbeddingModel, temperature), nil
	case PROVIDER_GEMINI:
		return NewGeminiService(cfg.GeminiAPIKey, cfg.Model, cfg.EmbeddingModel, temperature)
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.AIProvider)
	}
}
