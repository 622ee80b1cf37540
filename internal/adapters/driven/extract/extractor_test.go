package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpd/pdraft/internal/core/domain"
)

func TestExtract_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pd.txt")
	require.NoError(t, os.WriteFile(path, []byte("**HEADER**\nJob Series: GS-0301"), 0600))

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "**HEADER**\nJob Series: GS-0301", text)
}

func TestExtract_SupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	e := New()

	for _, name := range []string{"a.txt", "b.md", "c.text", "D.TXT"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("content"), 0600))

		text, err := e.Extract(context.Background(), path)
		require.NoError(t, err, name)
		assert.Equal(t, "content", text)
	}
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pd.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))

	_, err := New().Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
