package types

import "errors"

// ErrNoText means the PDF opened fine but none of its pages produced text.
var ErrNoText = errors.New("no text found in document")

// UploadedFile is a file persisted in the upload directory under its sanitized name.
type UploadedFile struct {
	Name string `json:"name"`
	Path string `json:"-"`
	Size int64  `json:"size"`
}

// Extraction is the outcome of pulling text out of an uploaded PDF.
// Exactly one of Text or Reason is meaningful, see Available.
type Extraction struct {
	Text   string
	Reason error
}

func Extracted(text string) Extraction {
	return Extraction{Text: text}
}

func Unavailable(reason error) Extraction {
	if reason == nil {
		reason = ErrNoText
	}
	return Extraction{Reason: reason}
}

func (e Extraction) Available() bool {
	return e.Reason == nil && e.Text != ""
}

type DocumentChunk struct {
	Content string // Chunk text, whitespace trimmed
	Index   int    // Position of the chunk in the document
}

// DocumentServiceConfig contains configuration options for text chunking
type DocumentServiceConfig struct {
	MaxChunkSize int    // Maximum size for text chunks, in characters
	OverlapSize  int    // Size of overlap between chunks
	Separator    string // Separator the text is split on before merging
}
