package service

import "github.com/tieubaoca/pdf-ask/types"

const (
	pdfContextHeader = "\n\nAdditional context from uploaded PDF:\n"
	excerptMarker    = "..."

	DefaultExcerptChars = 500
)

// BuildPrompt appends an excerpt of the extracted PDF text to the user message.
// The marker is appended even when the text is shorter than the excerpt.
func BuildPrompt(msg string, extraction types.Extraction, excerptChars int) string {
	if !extraction.Available() {
		return msg
	}
	return msg + pdfContextHeader + excerpt(extraction.Text, excerptChars) + excerptMarker
}

// excerpt returns the first n characters of text, counted in runes.
func excerpt(text string, n int) string {
	if n < 0 {
		n = 0
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
