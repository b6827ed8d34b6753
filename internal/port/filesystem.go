package port

// FileSystem is the local destination sink for materialized files.
type FileSystem interface {
	// DestPath re-roots a destination-relative path under the destination
	// directory using local separators.
	DestPath(relPath string) string

	// DisplayName returns the destination directory's display name, used
	// as the root of tree reports.
	DisplayName() string

	// EnsureDir creates the parent directory chain for a file path.
	// Idempotent.
	EnsureDir(filePath string) error

	// WriteFile writes data to filePath, overwriting any existing file.
	WriteFile(filePath string, data []byte) (int64, error)

	// FileExists reports whether a file already exists at filePath.
	FileExists(filePath string) bool
}
