package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openfreight/docintel/types"
	"github.com/rs/zerolog"
)

// LABEL_TEXT marks free-text sections. Labels are prefixed to the section
// text before chunking, so they travel with the indexed content.
const LABEL_TEXT = "Text"

func pageTextLabel(page int) string {
	return fmt.Sprintf("Page %d – Text", page)
}

func pageTableLabel(page int) string {
	return fmt.Sprintf("Page %d – Table", page)
}

func tableLabel(n int) string {
	return fmt.Sprintf("Table %d", n)
}

// ParserService turns uploaded documents into labeled sections
type ParserService struct {
	log zerolog.Logger
}

func NewParserService(log zerolog.Logger) *ParserService {
	return &ParserService{
		log: log.With().Str("component", "parser").Logger(),
	}
}

// ParseDocument dispatches on the file extension. An empty slice with a
// nil error means the file was readable but held no extractable text.
func (s *ParserService) ParseDocument(path string) ([]types.Section, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return s.parsePDF(path)
	case ".docx":
		return s.parseDOCX(path)
	case ".txt":
		return s.parseTXT(path)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFileType, ext)
	}
}

func (s *ParserService) parseTXT(path string) ([]types.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read txt file: %w", err)
	}

	var sections []types.Section
	for _, block := range strings.Split(string(data), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		sections = append(sections, types.Section{
			Label:    LABEL_TEXT,
			Text:     block,
			Position: len(sections),
		})
	}
	return sections, nil
}

// cleanText strips artifacts that PDF extraction leaves behind.
func cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
		"  ":     " ",  // Multiple spaces to single space
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}

	return strings.TrimSpace(cleaned)
}
