package service

import (
	"strings"
	"testing"

	"github.com/openfreight/docintel/types"
)

func TestChunkSectionsNumbersAcrossSections(t *testing.T) {
	chunker := NewChunkerService(types.ChunkerServiceConfig{ChunkSize: 1000, ChunkOverlap: 200})
	sections := []types.Section{
		{Label: "Text", Text: "Short paragraph.", Position: 0},
		{Label: "Table 1", Text: "Rate | 1850", Position: 1},
	}

	chunks, err := chunker.ChunkSections(sections, "tender.docx")
	if err != nil {
		t.Fatalf("chunk: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d index = %d", i, chunk.ChunkIndex)
		}
		if chunk.Filename != "tender.docx" {
			t.Errorf("chunk %d filename = %q", i, chunk.Filename)
		}
	}
	if !strings.HasPrefix(chunks[0].Text, "[Text]\n") {
		t.Errorf("chunk 0 should carry its section label: %q", chunks[0].Text)
	}
	if !strings.HasPrefix(chunks[1].Text, "[Table 1]\n") {
		t.Errorf("chunk 1 should carry its section label: %q", chunks[1].Text)
	}
}

func TestChunkSectionsSplitsLongSection(t *testing.T) {
	chunker := NewChunkerService(types.ChunkerServiceConfig{ChunkSize: 120, ChunkOverlap: 20})
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("The carrier must confirm the delivery appointment. ")
	}
	sections := []types.Section{
		{Label: "Text", Text: strings.TrimSpace(sb.String()), Position: 0},
	}

	chunks, err := chunker.ChunkSections(sections, "terms.txt")
	if err != nil {
		t.Fatalf("chunk: %v", err)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected the section to split, got %d chunks", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d index = %d", i, chunk.ChunkIndex)
		}
		if strings.TrimSpace(chunk.Text) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestChunkSectionsEmptyInput(t *testing.T) {
	chunker := NewChunkerService(types.ChunkerServiceConfig{ChunkSize: 1000, ChunkOverlap: 200})

	chunks, err := chunker.ChunkSections(nil, "empty.txt")
	if err != nil {
		t.Fatalf("chunk: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}
