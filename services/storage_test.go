package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/config"
)

func testStore(t *testing.T) (*FileStore, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		MaxUploadSize:    1 << 20,
		AllowedMIMETypes: []string{"text/plain", "application/pdf"},
		UploadsBaseDir:   t.TempDir(),
	}
	return NewFileStore(cfg, zap.NewNop().Sugar()), cfg
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"rapport.pdf", "rapport.pdf"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\windows\\system32", "_.._windows_system32"},
		{"dictée n°3.txt", "dict_e_n_3.txt"},
		{"...", "file"},
		{"", "file"},
		{"a b c.txt", "a_b_c.txt"},
	}
	for _, tc := range cases {
		got := SanitizeFilename(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.False(t, strings.Contains(got, "/"))
	}
}

func TestFileStoreSaveAndRemove(t *testing.T) {
	store, cfg := testStore(t)

	rel, err := store.Save(7, "notes.txt", bytes.NewReader([]byte("bonjour")))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("7", "notes.txt"), rel)

	data, err := os.ReadFile(filepath.Join(cfg.UploadsBaseDir, rel))
	require.NoError(t, err)
	assert.Equal(t, "bonjour", string(data))

	require.NoError(t, store.Remove(rel))
	_, statErr := os.Stat(filepath.Join(cfg.UploadsBaseDir, rel))
	assert.True(t, os.IsNotExist(statErr))

	// Removing again is fine.
	assert.NoError(t, store.Remove(rel))
	assert.NoError(t, store.Remove(""))
}

func TestFileStoreSaveOverwritesSameName(t *testing.T) {
	store, cfg := testStore(t)

	_, err := store.Save(1, "doc.txt", bytes.NewReader([]byte("v1")))
	require.NoError(t, err)
	rel, err := store.Save(1, "doc.txt", bytes.NewReader([]byte("v2")))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.UploadsBaseDir, rel))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestUploadValidate(t *testing.T) {
	_, cfg := testStore(t)

	ok := Upload{Name: "a.txt", MIME: "text/plain", Size: 10}
	assert.NoError(t, ok.Validate(cfg))

	withCharset := Upload{Name: "a.txt", MIME: "text/plain; charset=utf-8", Size: 10}
	assert.NoError(t, withCharset.Validate(cfg))

	empty := Upload{Name: "", Size: 0}
	assert.ErrorIs(t, empty.Validate(cfg), apperrors.ErrInvalidInput)

	tooBig := Upload{Name: "a.txt", MIME: "text/plain", Size: cfg.MaxUploadSize + 1}
	assert.ErrorIs(t, tooBig.Validate(cfg), apperrors.ErrTooLarge)

	badMIME := Upload{Name: "a.exe", MIME: "application/x-msdownload", Size: 10}
	assert.ErrorIs(t, badMIME.Validate(cfg), apperrors.ErrInvalidInput)
}
