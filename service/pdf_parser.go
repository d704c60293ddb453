package service

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/openfreight/docintel/types"
)

// Horizontal gap thresholds in PDF points. A gap wider than pdfWordGap
// separates words inside a cell; one wider than pdfCellGap starts a new
// cell. A run of at least minTableRows consecutive multi-cell rows is
// treated as a table.
const (
	pdfWordGap   = 2.0
	pdfCellGap   = 18.0
	minTableRows = 2
)

func (s *ParserService) parsePDF(path string) ([]types.Section, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var sections []types.Section
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			s.log.Warn().Err(err).Int("page", pageNum).Msg("row extraction failed, falling back to plain text")
			sections = s.appendPlainPage(sections, page, pageNum)
			continue
		}

		sections = appendPageSections(sections, rows, pageNum)
	}
	return sections, nil
}

// appendPlainPage extracts a page without position data. Pages that fail
// both extraction paths are skipped.
func (s *ParserService) appendPlainPage(sections []types.Section, page pdf.Page, pageNum int) []types.Section {
	content, err := page.GetPlainText(nil)
	if err != nil {
		s.log.Warn().Err(err).Int("page", pageNum).Msg("skipping unreadable page")
		return sections
	}
	text := cleanText(content)
	if text == "" {
		return sections
	}
	return append(sections, types.Section{
		Label:    pageTextLabel(pageNum),
		Text:     text,
		Position: len(sections),
	})
}

// appendPageSections emits one section per detected table followed by a
// single free-text section holding everything else on the page. Lines
// whose entire content already appears as a table cell are dropped from
// the free text so the same value is not indexed twice.
func appendPageSections(sections []types.Section, rows []*pdf.Row, pageNum int) []types.Section {
	tables, freeLines := pageContent(rows)

	tableCells := make(map[string]bool)
	for _, table := range tables {
		lines := make([]string, 0, len(table))
		for _, cells := range table {
			for _, cell := range cells {
				tableCells[cell] = true
			}
			lines = append(lines, strings.Join(cells, " | "))
		}
		text := cleanText(strings.Join(lines, "\n"))
		if text == "" {
			continue
		}
		sections = append(sections, types.Section{
			Label:    pageTableLabel(pageNum),
			Text:     text,
			Position: len(sections),
		})
	}

	var kept []string
	for _, line := range freeLines {
		if tableCells[line] {
			continue
		}
		kept = append(kept, line)
	}
	if text := cleanText(strings.Join(kept, "\n")); text != "" {
		sections = append(sections, types.Section{
			Label:    pageTextLabel(pageNum),
			Text:     text,
			Position: len(sections),
		})
	}
	return sections
}

// pageContent partitions a page's rows into tables and free lines. Rows
// that cluster into more than one cell are collected into runs; a run of
// minTableRows or more becomes a table, shorter runs fall back to free
// lines.
func pageContent(rows []*pdf.Row) (tables [][][]string, freeLines []string) {
	var run [][]string

	flush := func() {
		if len(run) >= minTableRows {
			table := make([][]string, len(run))
			copy(table, run)
			tables = append(tables, table)
		} else {
			for _, cells := range run {
				freeLines = append(freeLines, strings.Join(cells, " "))
			}
		}
		run = nil
	}

	for _, row := range rows {
		cells := rowCells(row)
		if len(cells) == 0 {
			continue
		}
		if len(cells) > 1 {
			run = append(run, cells)
			continue
		}
		flush()
		freeLines = append(freeLines, cells[0])
	}
	flush()

	return tables, freeLines
}

// rowCells clusters a row's positioned texts into cells. Content within a
// row arrives sorted left to right.
func rowCells(row *pdf.Row) []string {
	var cells []string
	var current strings.Builder
	prevEnd := 0.0

	for i, text := range row.Content {
		if i > 0 {
			gap := text.X - prevEnd
			if gap > pdfCellGap {
				if cell := strings.TrimSpace(current.String()); cell != "" {
					cells = append(cells, cell)
				}
				current.Reset()
			} else if gap > pdfWordGap {
				current.WriteString(" ")
			}
		}
		current.WriteString(text.S)
		prevEnd = text.X + text.W
	}
	if cell := strings.TrimSpace(current.String()); cell != "" {
		cells = append(cells, cell)
	}
	return cells
}
