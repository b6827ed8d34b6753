package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devscaffold/scafsync/internal/port"
)

// Manager handles local destination filesystem operations
type Manager struct {
	destDir string
}

// Ensure Manager implements port.FileSystem
var _ port.FileSystem = (*Manager)(nil)

// NewManager creates a new filesystem manager rooted at the destination
// directory, creating it if needed.
func NewManager(destDir string) (*Manager, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination dir: %w", err)
	}

	abs, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination dir: %w", err)
	}

	return &Manager{destDir: abs}, nil
}

// DestDir returns the destination root directory
func (m *Manager) DestDir() string {
	return m.destDir
}

// DisplayName returns the destination directory's base name
func (m *Manager) DisplayName() string {
	return filepath.Base(m.destDir)
}

// DestPath re-roots a destination-relative path under the destination dir
func (m *Manager) DestPath(relPath string) string {
	return filepath.Join(m.destDir, relPath)
}

// EnsureDir ensures the parent directory for a file path exists
func (m *Manager) EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0755)
}

// WriteFile writes data to filePath, replacing any existing file. The
// write goes to a temp file in the same directory and is renamed into
// place, so readers never observe a half-written file.
func (m *Manager) WriteFile(filePath string, data []byte) (int64, error) {
	tempPath := filePath + ".part"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		os.Remove(tempPath)
		return 0, fmt.Errorf("failed to rename temp file: %w", err)
	}

	return int64(len(data)), nil
}

// FileExists checks if a file exists at filePath
func (m *Manager) FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}
