package service

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/openfreight/docintel/types"
)

// Minimal WordprocessingML mapping. Field paths match direct children
// only, so table-cell paragraphs never leak into the body paragraph
// list.
type docxDocument struct {
	Body docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
	Tables     []docxTable     `xml:"tbl"`
}

type docxParagraph struct {
	Runs []string `xml:"r>t"`
}

func (p docxParagraph) text() string {
	return strings.Join(p.Runs, "")
}

type docxTable struct {
	Rows []docxTableRow `xml:"tr"`
}

type docxTableRow struct {
	Cells []docxTableCell `xml:"tc"`
}

type docxTableCell struct {
	Paragraphs []docxParagraph `xml:"p"`
}

func (c docxTableCell) text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.text())
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func (s *ParserService) parseDOCX(path string) ([]types.Section, error) {
	doc, err := readDocxDocument(path)
	if err != nil {
		return nil, err
	}

	var sections []types.Section

	// Tables come first and are numbered by archive order, so a table
	// skipped for being empty still consumes its number.
	for i, table := range doc.Body.Tables {
		lines := make([]string, 0, len(table.Rows))
		for _, row := range table.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, cell.text())
			}
			lines = append(lines, strings.Join(cells, " | "))
		}
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if text == "" {
			continue
		}
		sections = append(sections, types.Section{
			Label:    tableLabel(i + 1),
			Text:     text,
			Position: len(sections),
		})
	}

	// Consecutive non-empty paragraphs form one section; an empty
	// paragraph closes the run.
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		sections = append(sections, types.Section{
			Label:    LABEL_TEXT,
			Text:     strings.Join(current, "\n"),
			Position: len(sections),
		})
		current = nil
	}
	for _, para := range doc.Body.Paragraphs {
		text := strings.TrimSpace(para.text())
		if text == "" {
			flush()
			continue
		}
		current = append(current, text)
	}
	flush()

	return sections, nil
}

// readDocxDocument pulls word/document.xml out of the docx archive.
func readDocxDocument(path string) (*docxDocument, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx file: %w", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open document.xml: %w", err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read document.xml: %w", err)
		}
		var doc docxDocument
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse document.xml: %w", err)
		}
		return &doc, nil
	}
	return nil, fmt.Errorf("docx archive has no word/document.xml")
}
