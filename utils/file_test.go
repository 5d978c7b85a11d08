package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureFilename(t *testing.T) {
	cases := map[string]string{
		"report.pdf":                       "report.pdf",
		"My cool movie.mov":                "My_cool_movie.mov",
		"../../../etc/passwd":              "etc_passwd",
		"..\\..\\windows\\a.pdf":           "windows_a.pdf",
		"i contain cool \u00fcml\u00e4uts.txt": "i_contain_cool_umlauts.txt",
		"résumé.pdf":                       "resume.pdf",
		"  spaced  out .pdf ":              "spaced_out_.pdf",
		"...":                              "",
		"":                                 "",
		"con.pdf":                          "_con.pdf",
	}
	for in, want := range cases {
		assert.Equal(t, want, SecureFilename(in), "input %q", in)
	}
}

func TestAllowedFile(t *testing.T) {
	assert.True(t, AllowedFile("paper.pdf", "pdf"))
	assert.True(t, AllowedFile("PAPER.PDF", "pdf"))
	assert.True(t, AllowedFile("archive.tar.pdf", "pdf"))
	assert.False(t, AllowedFile("notes.txt", "pdf"))
	assert.False(t, AllowedFile("pdf", "pdf"))
	assert.False(t, AllowedFile("paper.pdf.txt", "pdf"))
	assert.False(t, AllowedFile("paper.", "pdf"))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()

	n, err := WriteFileAtomic(dir, "a.pdf", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	// same name again replaces the content
	n, err = WriteFileAtomic(dir, "a.pdf", strings.NewReader("second!"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	data, err := os.ReadFile(filepath.Join(dir, "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "second!", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	_, err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing"), "a.pdf", strings.NewReader("x"))
	assert.Error(t, err)
}
