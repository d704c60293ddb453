package service

import (
	"fmt"

	"github.com/openfreight/docintel/types"
	"github.com/tmc/langchaingo/textsplitter"
)

// chunkSeparators are tried in order; the splitter falls through to the
// next one whenever a piece still exceeds the chunk size.
var chunkSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// ChunkerService splits labeled sections into overlapping chunks sized
// for embedding.
type ChunkerService struct {
	splitter textsplitter.RecursiveCharacter
}

func NewChunkerService(config types.ChunkerServiceConfig) *ChunkerService {
	return &ChunkerService{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(config.ChunkSize),
			textsplitter.WithChunkOverlap(config.ChunkOverlap),
			textsplitter.WithSeparators(chunkSeparators),
		),
	}
}

// ChunkSections splits each section independently, in order, and numbers
// the chunks consecutively across the whole document.
func (s *ChunkerService) ChunkSections(sections []types.Section, filename string) ([]types.Chunk, error) {
	var chunks []types.Chunk
	for _, section := range sections {
		pieces, err := s.splitter.SplitText(section.String())
		if err != nil {
			return nil, fmt.Errorf("failed to split section %d: %w", section.Position, err)
		}
		for _, piece := range pieces {
			chunks = append(chunks, types.Chunk{
				Text:       piece,
				Filename:   filename,
				ChunkIndex: len(chunks),
			})
		}
	}
	return chunks, nil
}
