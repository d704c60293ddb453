package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openfreight/docintel/database"
	"github.com/openfreight/docintel/metrics"
	"github.com/openfreight/docintel/types"
	"github.com/rs/zerolog"
)

// UPLOAD_MESSAGE is returned to the client after a successful ingest.
const UPLOAD_MESSAGE = "Document uploaded and indexed successfully."

// FileService persists uploads on disk and runs the ingest pipeline.
type FileService struct {
	uploadDir string
	parser    *ParserService
	chunker   *ChunkerService
	store     database.VectorDatabase
	log       zerolog.Logger
	metrics   *metrics.Metrics
}

func NewFileService(
	uploadDir string,
	parser *ParserService,
	chunker *ChunkerService,
	store database.VectorDatabase,
	log zerolog.Logger,
	m *metrics.Metrics,
) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileService{
		uploadDir: uploadDir,
		parser:    parser,
		chunker:   chunker,
		store:     store,
		log:       log.With().Str("component", "ingest").Logger(),
		metrics:   m,
	}, nil
}

// UploadDocument validates, saves and ingests a multipart upload.
func (s *FileService) UploadDocument(ctx context.Context, file *multipart.FileHeader) (*types.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && ext != ".docx" && ext != ".txt" {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFileType, ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.uploadDir, timestampedName(file.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	// The parser reopens the file from disk, so flush it first.
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return s.IngestFile(ctx, path, file.Filename)
}

// IngestFile parses, chunks and indexes a document already on disk.
// filename is the logical name stored with every chunk.
func (s *FileService) IngestFile(ctx context.Context, path, filename string) (*types.UploadResponse, error) {
	start := time.Now()

	sections, err := s.parser.ParseDocument(path)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, types.ErrNoExtractableText
	}

	chunks, err := s.chunker.ChunkSections(sections, filename)
	if err != nil {
		return nil, err
	}

	docID, err := s.store.StoreDocument(ctx, chunks)
	if err != nil {
		return nil, err
	}

	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	s.metrics.DocumentsIngested.WithLabelValues(fileType).Inc()
	s.metrics.ChunksIndexed.Add(float64(len(chunks)))
	s.metrics.IngestDuration.Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("doc_id", docID).
		Str("filename", filename).
		Int("sections", len(sections)).
		Int("chunks", len(chunks)).
		Msg("document ingested")

	return &types.UploadResponse{
		DocID:     docID,
		Filename:  filename,
		NumChunks: len(chunks),
		Message:   UPLOAD_MESSAGE,
	}, nil
}

// timestampedName builds the on-disk name originalname_<unixts>.ext with
// unsafe characters replaced.
func timestampedName(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	filename := fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext)

	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, filename)
}
