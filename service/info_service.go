package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tieubaoca/pdf-ask/logger"
	"github.com/tieubaoca/pdf-ask/types"
)

// InfoService answers a message, optionally enriched with text from an uploaded PDF.
type InfoService struct {
	files        *FileService
	pdf          *PDFService
	ai           AIService
	excerptChars int
	timeout      time.Duration
}

type InfoServiceOption func(*InfoService)

// WithExcerptChars sets how much of the PDF text reaches the prompt.
func WithExcerptChars(n int) InfoServiceOption {
	return func(s *InfoService) {
		s.excerptChars = n
	}
}

// WithTimeout bounds each model call. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) InfoServiceOption {
	return func(s *InfoService) {
		s.timeout = d
	}
}

func NewInfoService(files *FileService, pdf *PDFService, ai AIService, opts ...InfoServiceOption) *InfoService {
	s := &InfoService{
		files:        files,
		pdf:          pdf,
		ai:           ai,
		excerptChars: DefaultExcerptChars,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer saves and reads the optional PDF, builds the prompt and returns the
// first generated candidate. Only upload write failures and model errors are
// returned; a PDF that cannot be read is treated as absent.
func (s *InfoService) Answer(ctx context.Context, req types.InfoRequest) (string, error) {
	logger.WithFields(logrus.Fields{"msg": req.Message}).Info("Received message")

	extraction := types.Unavailable(nil)
	uploaded, err := s.files.SaveUpload(req.File)
	if err != nil {
		return "", err
	}
	if uploaded != nil {
		extraction = s.ProcessDocument(uploaded.Path)
	}

	return s.Generate(ctx, BuildPrompt(req.Message, extraction, s.excerptChars))
}

// ProcessDocument extracts text from a saved PDF and logs how many chunks it splits into.
func (s *InfoService) ProcessDocument(path string) types.Extraction {
	extraction := s.pdf.ExtractText(path)
	if !extraction.Available() {
		logger.WithFields(logrus.Fields{
			"path":   path,
			"reason": extraction.Reason.Error(),
		}).Warn("Failed to process PDF")
		return extraction
	}

	// TODO: feed the best matching chunks into the prompt instead of a fixed excerpt
	chunks := s.pdf.SplitText(extraction.Text)
	logger.WithFields(logrus.Fields{
		"path":   path,
		"chunks": len(chunks),
	}).Info("PDF processed")
	return extraction
}

// Generate sends prompt as a single element batch and picks the first candidate.
func (s *InfoService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logger.Info("Generating response from LLM...")
	result, err := s.ai.Generate(ctx, []string{prompt})
	if err != nil {
		return "", err
	}

	text := result.FirstText()
	logger.WithFields(logrus.Fields{"response": text}).Info("Response generated")
	return text, nil
}
