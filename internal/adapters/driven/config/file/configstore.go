// Package file is a TOML-backed implementation of the ConfigStore
// driven port. Configuration lives in ~/.pdraft/config.toml.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/openpd/pdraft/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Well-known configuration keys.
const (
	KeyAIBaseURL = "ai.base_url"
	KeyAIAPIKey  = "ai.api_key"
	KeyAIModel   = "ai.model"
	KeyDataDir   = "data_dir"
)

// ConfigStore is a file-based config store using TOML.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]string
}

// NewConfigStore creates a TOML config store under configDir.
// If configDir is empty, defaults to ~/.pdraft.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".pdraft")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]string),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a configuration value. Save must be called to persist.
func (s *ConfigStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Save writes the configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, out, 0600)
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

func (s *ConfigStore) load() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return toml.Unmarshal(raw, &s.data)
}
