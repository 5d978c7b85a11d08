package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/pdf-ask/logger"
	"github.com/tieubaoca/pdf-ask/testutil"
	"github.com/tieubaoca/pdf-ask/types"
)

type fakeAI struct {
	prompts  []string
	result   *types.LLMResult
	err      error
	deadline bool
}

func (f *fakeAI) Generate(ctx context.Context, prompts []string) (*types.LLMResult, error) {
	f.prompts = append(f.prompts, prompts...)
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func reply(text string) *types.LLMResult {
	return &types.LLMResult{Generations: [][]types.Generation{{{Text: text}}}}
}

func newTestInfoService(t *testing.T, ai AIService, opts ...InfoServiceOption) *InfoService {
	t.Helper()
	logger.SetOutput(io.Discard)
	files, err := NewFileService(t.TempDir())
	require.NoError(t, err)
	return NewInfoService(files, NewPDFService(DefaultDocumentServiceConfig), ai, opts...)
}

func TestAnswerMessageOnly(t *testing.T) {
	ai := &fakeAI{result: reply("generated")}
	s := newTestInfoService(t, ai)

	got, err := s.Answer(context.Background(), types.InfoRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "generated", got)
	assert.Equal(t, []string{"hello"}, ai.prompts)
	assert.False(t, ai.deadline)
}

func TestAnswerWithPDF(t *testing.T) {
	ai := &fakeAI{result: reply("ok")}
	s := newTestInfoService(t, ai)

	pdfText := "Quarterly numbers are up"
	_, err := s.Answer(context.Background(), types.InfoRequest{
		Message: "summarize",
		File:    fileHeader(t, "report.pdf", testutil.BuildPDF(pdfText)),
	})
	require.NoError(t, err)
	require.Len(t, ai.prompts, 1)

	prompt := ai.prompts[0]
	assert.True(t, strings.HasPrefix(prompt, "summarize\n\nAdditional context from uploaded PDF:\n"))
	assert.Contains(t, prompt, pdfText)
	assert.True(t, strings.HasSuffix(prompt, "..."))
}

func TestAnswerIgnoresNonPDF(t *testing.T) {
	ai := &fakeAI{result: reply("ok")}
	s := newTestInfoService(t, ai)

	_, err := s.Answer(context.Background(), types.InfoRequest{
		Message: "just text",
		File:    fileHeader(t, "notes.txt", testutil.BuildPDF("hidden")),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"just text"}, ai.prompts)
}

func TestAnswerTextlessPDFSameAsNoPDF(t *testing.T) {
	ai := &fakeAI{result: reply("ok")}
	s := newTestInfoService(t, ai)

	_, err := s.Answer(context.Background(), types.InfoRequest{
		Message: "scan",
		File:    fileHeader(t, "scan.pdf", testutil.BuildPDF("", "")),
	})
	require.NoError(t, err)

	_, err = s.Answer(context.Background(), types.InfoRequest{
		Message: "scan",
		File:    fileHeader(t, "broken.pdf", []byte("garbage")),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"scan", "scan"}, ai.prompts)
}

func TestAnswerNoGenerations(t *testing.T) {
	for name, result := range map[string]*types.LLMResult{
		"nil result":  nil,
		"no batches":  {},
		"empty batch": {Generations: [][]types.Generation{{}}},
	} {
		t.Run(name, func(t *testing.T) {
			s := newTestInfoService(t, &fakeAI{result: result})
			got, err := s.Answer(context.Background(), types.InfoRequest{Message: "x"})
			require.NoError(t, err)
			assert.Equal(t, types.NoInformation, got)
		})
	}
}

func TestAnswerPropagatesModelError(t *testing.T) {
	boom := errors.New("401 unauthorized")
	s := newTestInfoService(t, &fakeAI{err: boom})

	_, err := s.Answer(context.Background(), types.InfoRequest{Message: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestAnswerOptions(t *testing.T) {
	ai := &fakeAI{result: reply("ok")}
	s := newTestInfoService(t, ai, WithTimeout(time.Minute), WithExcerptChars(4))

	doc := testutil.BuildPDF("abcdefgh")
	_, err := s.Answer(context.Background(), types.InfoRequest{
		Message: "m",
		File:    fileHeader(t, "a.pdf", doc),
	})
	require.NoError(t, err)
	assert.True(t, ai.deadline)

	ex := s.pdf.ExtractText(writeTempFile(t, "a.pdf", doc))
	require.True(t, ex.Available())
	want := "m" + pdfContextHeader + excerpt(ex.Text, 4) + "..."
	assert.Equal(t, want, ai.prompts[0])
	assert.Len(t, []rune(strings.TrimPrefix(strings.TrimSuffix(ai.prompts[0], "..."), "m"+pdfContextHeader)), 4)
}

func TestAnswerPartiallyBrokenPDFSameAsNoPDF(t *testing.T) {
	ai := &fakeAI{result: reply("ok")}
	s := newTestInfoService(t, ai)

	_, err := s.Answer(context.Background(), types.InfoRequest{
		Message: "read this",
		File: fileHeader(t, "mixed.pdf", testutil.BuildPDFWithContents(
			"BT /F1 12 Tf 72 720 Td (readable) Tj ET",
			"BT /F1 12 Tf 72 720 Td (a) (b) Tj ET",
		)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"read this"}, ai.prompts)
}
