// Package resource loads editor assets (models, animation clips, blending
// machine definitions) from YAML files and tracks requested external
// resources so scripts and payloads can re-resolve references after
// deserialization.
package resource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/keel3d/engine/internal/logging"
)

// Manager resolves asset paths against a root directory. It implements
// scripting.ResourceEnv.
type Manager struct {
	root      string
	log       *logging.Log
	requested map[string]int
}

func NewManager(root string, log *logging.Log) *Manager {
	return &Manager{
		root:      root,
		log:       log,
		requested: make(map[string]int),
	}
}

// RequestResource re-resolves one external resource reference. Missing files
// are data errors surfaced to the caller.
func (m *Manager) RequestResource(path string) error {
	full := filepath.Join(m.root, path)
	if _, err := os.Stat(full); err != nil {
		return fmt.Errorf("resource: request %s: %w", path, err)
	}
	m.requested[path]++
	return nil
}

// RequestCount reports how many times path has been requested, for tests and
// editor diagnostics.
func (m *Manager) RequestCount(path string) int { return m.requested[path] }

// Root returns the asset root directory.
func (m *Manager) Root() string { return m.root }

func (m *Manager) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(m.root, path))
	if err != nil {
		return nil, fmt.Errorf("resource: read %s: %w", path, err)
	}
	return data, nil
}
