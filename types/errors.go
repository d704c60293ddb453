package types

import "errors"

var (
	// ErrUnsupportedFileType is returned when the upload extension is
	// not one of .pdf, .docx, .txt.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrNoExtractableText is returned when parsing yields no sections.
	ErrNoExtractableText = errors.New("no text could be extracted from the document")

	// ErrDocumentNotFound is returned when no index exists for a doc id.
	ErrDocumentNotFound = errors.New("document not found")
)
