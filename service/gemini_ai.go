package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// EMBED_BATCH_SIZE is the maximum number of contents accepted by a single
// batch embedding request.
const EMBED_BATCH_SIZE = 100

type GeminiService struct {
	client         *genai.Client
	model          string
	embeddingModel string
	temperature    float32
}

func NewGeminiService(apiKey, model, embeddingModel string, temperature float32) (*GeminiService, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{
		client:         client,
		model:          model,
		embeddingModel: embeddingModel,
		temperature:    temperature,
	}, nil
}

func (s *GeminiService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := s.client.EmbeddingModel(s.embeddingModel)
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += EMBED_BATCH_SIZE {
		end := start + EMBED_BATCH_SIZE
		if end > len(texts) {
			end = len(texts)
		}

		batch := em.NewBatch()
		for _, text := range texts[start:end] {
			batch = batch.AddContent(genai.Text(text))
		}
		res, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to embed contents: %w", err)
		}
		if len(res.Embeddings) != end-start {
			return nil, fmt.Errorf("expected %d embeddings, got %d", end-start, len(res.Embeddings))
		}
		for _, embedding := range res.Embeddings {
			vectors = append(vectors, embedding.Values)
		}
	}
	return vectors, nil
}

func (s *GeminiService) Complete(ctx context.Context, system, user string) (string, error) {
	model := s.client.GenerativeModel(s.model)
	model.SetTemperature(s.temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no response generated")
	}
	return sb.String(), nil
}
