package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/openfreight/docintel/database"
	"github.com/openfreight/docintel/metrics"
	"github.com/openfreight/docintel/types"
	"github.com/rs/zerolog"
)

// CONTEXT_SEPARATOR joins retrieved chunks in the ask prompt.
const CONTEXT_SEPARATOR = "\n\n---\n\n"

// RAGService answers questions and extracts structured records from
// indexed documents.
type RAGService struct {
	store               database.VectorDatabase
	askLLM              LLMService
	extractLLM          LLMService
	topK                int
	similarityThreshold float64
	log                 zerolog.Logger
	metrics             *metrics.Metrics
}

func NewRAGService(
	config types.RAGServiceConfig,
	store database.VectorDatabase,
	askLLM LLMService,
	extractLLM LLMService,
	log zerolog.Logger,
	m *metrics.Metrics,
) *RAGService {
	return &RAGService{
		store:               store,
		askLLM:              askLLM,
		extractLLM:          extractLLM,
		topK:                config.TopK,
		similarityThreshold: config.SimilarityThreshold,
		log:                 log.With().Str("component", "rag").Logger(),
		metrics:             m,
	}
}

// Ask retrieves the most relevant chunks for the question and, when the
// best similarity clears the threshold, asks the model for an answer
// grounded in the retrieved context plus the full document text. Below
// the threshold no model call is made.
func (s *RAGService) Ask(ctx context.Context, docID, question string) (*types.AskResponse, error) {
	start := time.Now()
	results, err := s.store.Retrieve(ctx, docID, question, s.topK)
	if err != nil {
		return nil, err
	}
	s.metrics.RetrievalDuration.Observe(time.Since(start).Seconds())

	best := 0.0
	for _, result := range results {
		if result.Score > best {
			best = result.Score
		}
	}

	if len(results) == 0 || best < s.similarityThreshold {
		s.log.Info().Str("doc_id", docID).Float64("best_score", best).Msg("no chunk cleared the similarity threshold")
		s.metrics.QuestionsTotal.WithLabelValues("below_threshold").Inc()
		return &types.AskResponse{
			Answer:          NOT_FOUND_ANSWER,
			SourceText:      nil,
			ConfidenceScore: round4(best),
		}, nil
	}

	fullText, err := s.store.FullText(ctx, docID)
	if err != nil {
		return nil, err
	}

	contexts := make([]string, len(results))
	sum := 0.0
	for i, result := range results {
		contexts[i] = result.Text
		sum += result.Score
	}

	user := fmt.Sprintf(askUserPromptTemplate, strings.Join(contexts, CONTEXT_SEPARATOR), fullText, question)
	answer, err := s.askLLM.Complete(ctx, askSystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	sourceText := results[0].Text
	s.metrics.QuestionsTotal.WithLabelValues("answered").Inc()
	return &types.AskResponse{
		Answer:          strings.TrimSpace(answer),
		SourceText:      &sourceText,
		ConfidenceScore: round4(sum / float64(len(results))),
	}, nil
}

// Extract runs the shipment schema prompt over the full document text.
// A model response that fails to parse as JSON is returned as the
// fallback branch of the result, not as an error.
func (s *RAGService) Extract(ctx context.Context, docID string) (*types.ExtractResult, error) {
	fullText, err := s.store.FullText(ctx, docID)
	if err != nil {
		return nil, err
	}

	raw, err := s.extractLLM.Complete(ctx, extractSystemPrompt, fmt.Sprintf(extractUserPromptTemplate, fullText))
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	trimmed := strings.TrimSpace(raw)
	cleaned := stripCodeFences(trimmed)

	var record types.ShipmentRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		s.log.Warn().Err(err).Str("doc_id", docID).Msg("model output was not valid JSON")
		s.metrics.ExtractionsTotal.WithLabelValues("fallback").Inc()
		return &types.ExtractResult{
			RawResponse: trimmed,
			Err:         EXTRACT_PARSE_ERROR,
		}, nil
	}

	s.metrics.ExtractionsTotal.WithLabelValues("parsed").Inc()
	return &types.ExtractResult{Record: &record}, nil
}

// stripCodeFences drops markdown fence lines when the model wrapped its
// JSON in a code block. Responses that do not open with a fence pass
// through untouched.
func stripCodeFences(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// round4 rounds to 4 decimal places for response payloads.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
