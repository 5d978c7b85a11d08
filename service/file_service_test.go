package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real multipart.FileHeader the way an HTTP request would carry it.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("pdf", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/info", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["pdf"][0]
}

func TestNewFileServiceCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	s, err := NewFileService(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.UploadDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveUpload(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileService(dir)
	require.NoError(t, err)

	t.Run("nil file", func(t *testing.T) {
		uploaded, err := s.SaveUpload(nil)
		assert.NoError(t, err)
		assert.Nil(t, uploaded)
	})

	t.Run("disallowed extension is skipped", func(t *testing.T) {
		uploaded, err := s.SaveUpload(fileHeader(t, "notes.txt", []byte("hello")))
		assert.NoError(t, err)
		assert.Nil(t, uploaded)
		_, statErr := os.Stat(filepath.Join(dir, "notes.txt"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("sanitized name", func(t *testing.T) {
		uploaded, err := s.SaveUpload(fileHeader(t, "../../My Report.PDF", []byte("%PDF-1.4 body")))
		require.NoError(t, err)
		require.NotNil(t, uploaded)
		assert.Equal(t, "My_Report.PDF", uploaded.Name)
		assert.Equal(t, filepath.Join(dir, "My_Report.PDF"), uploaded.Path)
		assert.Equal(t, int64(13), uploaded.Size)

		data, err := os.ReadFile(uploaded.Path)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 body", string(data))
	})

	t.Run("non-ascii name", func(t *testing.T) {
		uploaded, err := s.SaveUpload(fileHeader(t, "中文.pdf", []byte("x")))
		require.NoError(t, err)
		require.NotNil(t, uploaded)
		assert.Equal(t, "pdf", uploaded.Name)
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileService(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("abc"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	f, err := s.Open("a.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.Size)

	for _, name := range []string{"", "missing.pdf", "../a.pdf", "sub", ".hidden"} {
		_, err := s.Open(name)
		assert.True(t, errors.Is(err, ErrFileNotFound), "name %q", name)
	}
}

func TestSave(t *testing.T) {
	s, err := NewFileService(t.TempDir())
	require.NoError(t, err)

	uploaded, err := s.Save("report.pdf", bytes.NewReader([]byte("abc")))
	require.NoError(t, err)
	require.NotNil(t, uploaded)
	assert.Equal(t, "report.pdf", uploaded.Name)

	uploaded, err = s.Save("report.docx", bytes.NewReader([]byte("abc")))
	assert.NoError(t, err)
	assert.Nil(t, uploaded)
}
