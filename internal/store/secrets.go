package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/spiffcs/widgets/internal/constants"
	"github.com/spiffcs/widgets/internal/log"
)

// Secrets is a credential port. Values must never be logged.
type Secrets interface {
	Contains(key string) bool
	Get(key string) string
	Set(key, value string) error
}

// Ensure FileSecrets implements Secrets.
var _ Secrets = (*FileSecrets)(nil)

// FileSecrets keeps secrets in a YAML map readable only by the owner.
type FileSecrets struct {
	path    string
	entries map[string]string
	mu      sync.RWMutex
}

// NewFileSecrets opens the secrets file in the user config directory.
func NewFileSecrets() (*FileSecrets, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewFileSecretsFromPath(filepath.Join(configDir, constants.AppName, "secrets.yaml"))
}

// NewFileSecretsFromPath opens the secrets file at path, starting empty if
// the file does not exist yet.
func NewFileSecretsFromPath(path string) (*FileSecrets, error) {
	s := &FileSecrets{
		path:    path,
		entries: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	return s, nil
}

func (s *FileSecrets) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, &s.entries); err != nil {
		return err
	}
	if s.entries == nil {
		s.entries = make(map[string]string)
	}
	return nil
}

func (s *FileSecrets) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), constants.DirPerm); err != nil {
		return err
	}
	data, err := yaml.Marshal(s.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, constants.SecretFilePerm)
}

// Contains reports whether key has a non-empty value.
func (s *FileSecrets) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key] != ""
}

// Get returns the value for key, or "" if unset.
func (s *FileSecrets) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key]
}

// Set stores value under key and persists the file.
func (s *FileSecrets) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	if err := s.save(); err != nil {
		return fmt.Errorf("failed to save secrets: %w", err)
	}
	log.Debug("secret updated", "key", key)
	return nil
}
