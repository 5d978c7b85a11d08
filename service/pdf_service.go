package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
	"github.com/tieubaoca/pdf-ask/logger"
	"github.com/tieubaoca/pdf-ask/types"
)

// PDFService handles PDF processing operations
type PDFService struct {
	maxChunkSize int    // Maximum size of each text chunk
	overlapSize  int    // Size of overlap between chunks
	separator    string // Separator used to cut text before merging
}

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	MaxChunkSize: 1000,
	OverlapSize:  0,
	Separator:    "\n\n",
}

// NewPDFService creates a new PDF service with configurable chunk sizes
func NewPDFService(config types.DocumentServiceConfig) *PDFService {
	if config.Separator == "" {
		config.Separator = DefaultDocumentServiceConfig.Separator
	}
	return &PDFService{
		maxChunkSize: config.MaxChunkSize,
		overlapSize:  config.OverlapSize,
		separator:    config.Separator,
	}
}

// ExtractText reads every page of a PDF in order and joins the page texts,
// each followed by a newline. A single unreadable page makes the whole
// document unavailable.
// Parameters:
//   - filePath: Path to the PDF file
//
// Returns:
//   - types.Extraction: the text, or the reason no text is available.
//     Failures are reported through the result and never as an error.
func (s *PDFService) ExtractText(filePath string) (result types.Extraction) {
	// ledongthuc/pdf panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			result = types.Unavailable(fmt.Errorf("failed to parse PDF: %v", r))
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return types.Unavailable(fmt.Errorf("failed to open PDF: %w", err))
	}
	defer f.Close()

	var text strings.Builder
	totalPages := r.NumPage()
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return types.Unavailable(fmt.Errorf("failed to extract page %d: %w", pageNum, err))
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	if strings.TrimSpace(text.String()) == "" {
		return types.Unavailable(types.ErrNoText)
	}
	return types.Extracted(text.String())
}

// SplitText cuts text on the separator and greedily merges the pieces back
// into chunks of at most maxChunkSize characters. A single piece longer than
// the limit is kept whole.
func (s *PDFService) SplitText(text string) []types.DocumentChunk {
	var splits []string
	for _, piece := range strings.Split(text, s.separator) {
		if piece != "" {
			splits = append(splits, piece)
		}
	}

	var chunks []types.DocumentChunk
	emit := func(parts []string) {
		content := strings.TrimSpace(strings.Join(parts, s.separator))
		if content == "" {
			return
		}
		chunks = append(chunks, types.DocumentChunk{
			Content: content,
			Index:   len(chunks),
		})
	}

	sepLen := utf8.RuneCountInString(s.separator)
	joinCost := func(current []string) int {
		if len(current) > 0 {
			return sepLen
		}
		return 0
	}

	var current []string
	total := 0
	for _, piece := range splits {
		pieceLen := utf8.RuneCountInString(piece)
		if total+pieceLen+joinCost(current) > s.maxChunkSize {
			if total > s.maxChunkSize {
				logger.WithFields(logrus.Fields{
					"size":  total,
					"limit": s.maxChunkSize,
				}).Debug("Created a chunk longer than the limit")
			}
			if len(current) > 0 {
				emit(current)
				// drop pieces from the front until what is left fits as overlap
				for total > s.overlapSize || (total > 0 && total+pieceLen+joinCost(current) > s.maxChunkSize) {
					dropped := utf8.RuneCountInString(current[0])
					if len(current) > 1 {
						dropped += sepLen
					}
					total -= dropped
					current = current[1:]
				}
			}
		}
		current = append(current, piece)
		total += pieceLen
		if len(current) > 1 {
			total += sepLen
		}
	}
	emit(current)

	return chunks
}
