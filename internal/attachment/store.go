// Package attachment stores message attachments as flat files under
// generated keys. The user-supplied name never reaches the filesystem,
// it is kept as display metadata next to the message row.
package attachment

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("attachment not found")
	ErrTooLarge   = errors.New("attachment exceeds size limit")
	ErrInvalidKey = errors.New("invalid attachment key")
)

type Store struct {
	dir   string
	limit int64
}

func NewStore(dir string, limit int64) *Store {
	return &Store{
		dir:   dir,
		limit: limit,
	}
}

// Save writes the stream under a fresh key and returns the key and the
// number of bytes written. The backing directory is created on first use.
// A stream longer than the configured limit is rejected and the partial
// file removed.
func (s *Store) Save(r io.Reader) (string, int64, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create attachment dir: %w", err)
	}

	key := uuid.New().String()
	path := filepath.Join(s.dir, key)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create attachment file: %w", err)
	}

	written, err := io.Copy(file, io.LimitReader(r, s.limit+1))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("failed to write attachment: %w", err)
	}

	if written > s.limit {
		_ = os.Remove(path)
		return "", 0, ErrTooLarge
	}

	return key, written, nil
}

// Open returns the blob for a previously saved key. Keys are attacker
// influenced, so anything that is not a bare name is refused before the
// filesystem is touched.
func (s *Store) Open(key string) (io.ReadCloser, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return nil, ErrInvalidKey
	}

	file, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}

	return file, nil
}

// Exists reports whether a key resolves to a stored blob.
func (s *Store) Exists(key string) bool {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return false
	}

	_, err := os.Stat(filepath.Join(s.dir, key))
	return err == nil
}
