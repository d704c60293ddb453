package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/openfreight/docintel/config"
	"github.com/openfreight/docintel/types"
	"github.com/rs/zerolog"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const (
	BATCH_SIZE       = 200
	DOC_ID_LENGTH    = 12
	DOC_CLASS_PREFIX = "Doc_"
	FULL_TEXT_LIMIT  = 10000
)

type WeaviateStore struct {
	client   *weaviate.Client
	embedder Embedder
	log      zerolog.Logger
}

func NewWeaviateStore(cfg config.WeaviateStoreConfig, embedder Embedder, log zerolog.Logger) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	wcfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		wcfg.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
		wcfg.Headers = map[string]string{
			"X-Weaviate-Api-Key":     cfg.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	client, err := weaviate.NewClient(wcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}

	return &WeaviateStore{
		client:   client,
		embedder: embedder,
		log:      log.With().Str("component", "index").Logger(),
	}, nil
}

// newDocID mirrors uuid4().hex truncation: 12 lowercase hex chars.
func newDocID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:DOC_ID_LENGTH]
}

func classNameForDoc(docID string) string {
	return DOC_CLASS_PREFIX + docID
}

func docClassObject(className string) *models.Class {
	return &models.Class{
		Class: className,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "docId", DataType: []string{"text"}},
			{Name: "filename", DataType: []string{"text"}},
			{Name: "chunkIndex", DataType: []string{"int"}},
		},
		// Vectors are computed by the embedder, not by Weaviate modules.
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
		VectorIndexConfig: map[string]interface{}{
			"distance": "cosine",
		},
	}
}

func (s *WeaviateStore) StoreDocument(ctx context.Context, chunks []types.Chunk) (string, error) {
	if len(chunks) == 0 {
		return "", fmt.Errorf("no chunks to store")
	}

	docID := newDocID()
	className := classNameForDoc(docID)

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	// Embed everything before touching the index so a provider failure
	// cannot leave a half-written class behind.
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return "", fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return "", fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	err = s.client.Schema().ClassCreator().WithClass(docClassObject(className)).Do(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create class %s: %w", className, err)
	}

	if err := s.insertBatches(ctx, className, docID, chunks, vectors); err != nil {
		if delErr := s.client.Schema().ClassDeleter().WithClassName(className).Do(context.Background()); delErr != nil {
			s.log.Warn().Err(delErr).Str("class", className).Msg("failed to clean up class after insert failure")
		}
		return "", err
	}

	s.log.Info().Str("doc_id", docID).Int("chunks", len(chunks)).Msg("document indexed")
	return docID, nil
}

func (s *WeaviateStore) insertBatches(ctx context.Context, className, docID string, chunks []types.Chunk, vectors [][]float32) error {
	total := len(chunks)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			properties := map[string]interface{}{
				"content":    chunks[j].Text,
				"docId":      docID,
				"filename":   chunks[j].Filename,
				"chunkIndex": chunks[j].ChunkIndex,
			}
			batcher = batcher.WithObjects(&models.Object{
				Class:      className,
				Properties: properties,
				Vector:     vectors[j],
			})
		}

		resp, err := batcher.Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %w", i, end, err)
		}
		for _, obj := range resp {
			if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
				return fmt.Errorf("failed to insert batch %d-%d: %s", i, end, obj.Result.Errors.Error[0].Message)
			}
		}

		s.log.Debug().Str("doc_id", docID).Int("from", i).Int("to", end).Int("total", total).Msg("inserted batch")
	}
	return nil
}

func (s *WeaviateStore) Retrieve(ctx context.Context, docID, query string, topK int) ([]types.RetrievalResult, error) {
	className := classNameForDoc(docID)
	exists, err := s.classExists(ctx, className)
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", types.ErrDocumentNotFound, docID)
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for query", len(vectors))
	}

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "chunkIndex"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}
	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vectors[0])

	response, err := s.client.GraphQL().Get().
		WithClassName(className).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(topK).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if response.Errors != nil {
		return nil, fmt.Errorf("search failed: %v", response.Errors[0].Message)
	}

	var results []types.RetrievalResult
	if data, ok := response.Data["Get"].(map[string]interface{})[className].([]interface{}); ok {
		for _, item := range data {
			if obj, ok := item.(map[string]interface{}); ok {
				result := types.RetrievalResult{
					Text:       obj["content"].(string),
					ChunkIndex: int(obj["chunkIndex"].(float64)),
				}
				if additional, ok := obj["_additional"].(map[string]interface{}); ok {
					// Cosine distance to similarity
					result.Score = 1.0 - additional["distance"].(float64)
				}
				results = append(results, result)
			}
		}
	}
	return results, nil
}

func (s *WeaviateStore) FullText(ctx context.Context, docID string) (string, error) {
	className := classNameForDoc(docID)
	exists, err := s.classExists(ctx, className)
	if err != nil {
		return "", fmt.Errorf("failed to get schema: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", types.ErrDocumentNotFound, docID)
	}

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "chunkIndex"},
	}
	response, err := s.client.GraphQL().Get().
		WithClassName(className).
		WithFields(fields...).
		WithLimit(FULL_TEXT_LIMIT).
		Do(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch chunks: %w", err)
	}
	if response.Errors != nil {
		return "", fmt.Errorf("failed to fetch chunks: %v", response.Errors[0].Message)
	}

	var chunks []types.Chunk
	if data, ok := response.Data["Get"].(map[string]interface{})[className].([]interface{}); ok {
		for _, item := range data {
			if obj, ok := item.(map[string]interface{}); ok {
				chunks = append(chunks, types.Chunk{
					Text:       obj["content"].(string),
					ChunkIndex: int(obj["chunkIndex"].(float64)),
				})
			}
		}
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	return strings.Join(texts, "\n\n"), nil
}

func (s *WeaviateStore) classExists(ctx context.Context, className string) (bool, error) {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return false, err
	}
	for _, class := range schema.Classes {
		if class.Class == className {
			return true, nil
		}
	}
	return false, nil
}
