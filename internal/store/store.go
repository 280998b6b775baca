// Package store persists widget documents and secrets on the local disk.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spiffcs/widgets/internal/constants"
	"github.com/spiffcs/widgets/internal/log"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Store is a key-value persistence port for string documents.
type Store interface {
	Exists(name string) bool
	ReadString(name string) (string, error)
	WriteString(name, content string) error
	Path(name string) string
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)

// FileStore keeps each document as a file inside a single directory.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// DefaultDir returns the documents directory under the user config dir.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, constants.AppName, "documents"), nil
}

// NewFileStore creates a store rooted at dir, creating it if needed.
// An empty dir selects DefaultDir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, constants.DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path for a document name.
func (s *FileStore) Path(name string) string {
	// Names are flat; directory components would escape the documents dir.
	return filepath.Join(s.dir, filepath.Base(name))
}

// Exists reports whether the document is present.
func (s *FileStore) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// ReadString returns the document content.
func (s *FileStore) ReadString(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return "", err
	}
	return string(data), nil
}

// WriteString replaces the document content.
func (s *FileStore) WriteString(name, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(name)
	if err := os.WriteFile(path, []byte(content), constants.FilePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	log.Debug("document written", "path", path, "bytes", len(content))
	return nil
}
