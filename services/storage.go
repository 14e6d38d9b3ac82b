// Package services holds the components that sit between controllers and
// repositories: physical file storage and the AI gateway.
package services

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/config"
)

// FileStore persists uploaded resource files under one directory per user.
// Stored paths are relative to the uploads root so the root can move between
// environments without rewriting rows.
type FileStore struct {
	Root string
	Log  *zap.SugaredLogger
}

func NewFileStore(cfg *config.Config, log *zap.SugaredLogger) *FileStore {
	return &FileStore{Root: cfg.UploadsBaseDir, Log: log}
}

// SanitizeFilename strips directory components and any character outside a
// conservative allow-list, so the stored name can never escape the user's
// upload directory.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = path.Base(name) // handle both separator conventions
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		out = "file"
	}
	return out
}

// RelPath computes the deterministic storage path for a user's file,
// relative to the uploads root.
func (s *FileStore) RelPath(userID uint, fileName string) string {
	return filepath.Join(strconv.FormatUint(uint64(userID), 10), SanitizeFilename(fileName))
}

// Save writes the upload to its deterministic location, creating the user
// directory on first use, and returns the stored relative path.
func (s *FileStore) Save(userID uint, fileName string, r io.Reader) (string, error) {
	rel := s.RelPath(userID, fileName)
	abs := filepath.Join(s.Root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		// Half-written files are useless; drop them.
		os.Remove(abs)
		return "", err
	}
	return rel, nil
}

// Remove deletes a stored file. Used both for best-effort cleanup and for
// compensating deletes when a transaction fails after the file was written.
func (s *FileStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	abs := filepath.Join(s.Root, relPath)
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveLogged deletes a stored file and only logs failures. DB state is
// authoritative; stale files are tolerated.
func (s *FileStore) RemoveLogged(relPath string) {
	if err := s.Remove(relPath); err != nil {
		s.Log.Warnw("could not remove stored file", "path", relPath, "error", err)
	}
}

// Upload describes an incoming multipart file before it is persisted.
type Upload struct {
	Name string
	MIME string
	Size int64
	Data io.Reader
}

// Validate checks the upload descriptor against the configured MIME
// allow-list and size ceiling.
func (u *Upload) Validate(cfg *config.Config) error {
	if u.Name == "" || u.Size == 0 {
		return apperrors.InvalidInputf("empty upload")
	}
	if u.Size > cfg.MaxUploadSize {
		return apperrors.ErrTooLarge
	}
	if !cfg.MIMEAllowed(u.MIME) {
		return apperrors.InvalidInputf("file type %q is not allowed", u.MIME)
	}
	return nil
}
