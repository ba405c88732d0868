// Package fsys provides OS-backed implementations of the filesystem
// contracts in pkg/interfaces: glob-aware listing, size-capped reads, and
// atomic writes.
package fsys

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/natefinch/atomic"

	"github.com/goliatone/go-docmeta/pkg/interfaces"
)

// ErrNotFound indicates a path that does not exist in the backing store.
var ErrNotFound = errors.New("fsys: file not found")

// ErrFileTooLarge indicates a read that exceeds the adapter's size cap.
var ErrFileTooLarge = errors.New("fsys: file exceeds read limit")

// Adapter implements FileReader, FileLister, and FileWriter over the host
// filesystem.
type Adapter struct {
	maxReadBytes int64
}

var (
	_ interfaces.FileReader = (*Adapter)(nil)
	_ interfaces.FileLister = (*Adapter)(nil)
	_ interfaces.FileWriter = (*Adapter)(nil)
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithMaxReadBytes caps single-file reads. Zero or negative disables the cap.
func WithMaxReadBytes(limit int64) Option {
	return func(a *Adapter) {
		a.maxReadBytes = limit
	}
}

// New constructs a filesystem adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ReadFile loads a file's contents. Missing paths map to ErrNotFound so
// callers can branch with errors.Is; reads beyond the configured cap fail
// before the content is returned.
func (a *Adapter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if a.maxReadBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, mapPathError(path, err)
		}
		if info.Size() > a.maxReadBytes {
			return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, path, info.Size(), a.maxReadBytes)
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, mapPathError(path, err)
	}
	return content, nil
}

// ListFiles walks root and returns every regular file matching pattern, in
// lexical path order. Patterns match the path relative to root using glob
// syntax with ** crossing directory separators; a pattern without a
// separator also matches on the file name alone, so "*.md" finds markdown
// files at any depth.
func (a *Adapter) ListFiles(ctx context.Context, root string, pattern string) ([]interfaces.FileInfo, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = "*"
	}

	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("fsys: pattern %q: %w", pattern, err)
	}
	nameOnly := !strings.Contains(pattern, "/")

	var files []interfaces.FileInfo
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !matcher.Match(rel) && !(nameOnly && matcher.Match(entry.Name())) {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		files = append(files, interfaces.FileInfo{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, mapPathError(root, walkErr)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// WriteFile persists data atomically, creating parent directories as
// needed. Consumers never observe a partially written file.
func (a *Adapter) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("fsys: create %s: %w", dir, err)
		}
	}

	if err := atomic.WriteFile(path, strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("fsys: write %s: %w", path, err)
	}
	return nil
}

func mapPathError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return fmt.Errorf("fsys: %s: %w", path, err)
}
