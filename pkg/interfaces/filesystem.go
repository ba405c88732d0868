package interfaces

import (
	"context"
	"time"
)

// FileInfo describes a discovered source file. Size is reported in bytes so
// callers can budget reads before touching file contents.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// FileReader loads file contents from a backing store. Implementations map
// missing files to a not-found error that callers can test with errors.Is.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileLister enumerates files beneath a root that match a glob pattern.
// Results are returned in lexical path order so repeated runs over the same
// tree stay deterministic.
type FileLister interface {
	ListFiles(ctx context.Context, root string, pattern string) ([]FileInfo, error)
}

// FileWriter persists rendered artifacts. Implementations should write
// atomically where the backing store allows it so consumers never observe a
// partially written file.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}
