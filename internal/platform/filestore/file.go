package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/tasks-api/internal/store"
)

const (
	emptyCollection = "[]"
	filePerm        = 0o644
)

// Backend stores the collection in one file. When the containing directory
// is writable it replaces the file through a temporary sibling and a rename,
// so readers never observe a half-written document. When only the file itself
// is writable it is truncated and rewritten in place.
//
// Cross-process writers are not coordinated: two processes saving the same
// file still race and the last rename wins.
type Backend struct {
	path   string
	logger *slog.Logger
}

// Compile-time check that Backend implements store.Backend
var _ store.Backend = (*Backend)(nil)

// New creates a file backend for path.
// If logger is nil, a default logger is used.
func New(path string, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		path:   path,
		logger: logger.With(slog.String("component", "file_backend")),
	}
}

// Path returns the file the backend reads and writes.
func (b *Backend) Path() string {
	return b.path
}

// Read implements store.Backend.Read. A missing file is created holding an
// empty collection; failing to create it is logged and treated as empty.
func (b *Backend) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", store.ErrReadFailed, err)
	}

	if werr := os.WriteFile(b.path, []byte(emptyCollection), filePerm); werr != nil {
		b.logger.WarnContext(ctx, "could not create empty tasks file",
			slog.String("path", b.path),
			slog.String("error", werr.Error()))
	} else {
		b.logger.InfoContext(ctx, "created empty tasks file", slog.String("path", b.path))
	}
	return nil, nil
}

// Write implements store.Backend.Write. When neither the directory nor the
// file is writable it returns store.ErrNotWritable without touching anything.
// An existing read-only file is never replaced, even in a writable directory;
// that write fails with store.ErrWriteFailed.
func (b *Backend) Write(ctx context.Context, data []byte) error {
	dirWritable := isWritable(filepath.Dir(b.path))
	fileWritable := isWritable(b.path)
	_, statErr := os.Stat(b.path)
	exists := statErr == nil

	switch {
	case dirWritable && exists && !fileWritable:
		b.logger.WarnContext(ctx, "tasks file is read-only", slog.String("path", b.path))
		return fmt.Errorf("%w: %s is read-only", store.ErrWriteFailed, filepath.Base(b.path))
	case dirWritable:
		return b.writeAtomic(data)
	case fileWritable:
		b.logger.DebugContext(ctx, "directory not writable, rewriting tasks file in place",
			slog.String("path", b.path))
		return b.writeInPlace(data)
	default:
		return store.ErrNotWritable
	}
}

func (b *Backend) writeAtomic(data []byte) error {
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", store.ErrWriteFailed, err)
	}
	tmpPath := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}

	// CreateTemp uses 0600; keep the mode the file already had.
	mode := fs.FileMode(filePerm)
	if info, err := os.Stat(b.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}

	if err := os.Rename(tmpPath, b.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: rename: %v", store.ErrWriteFailed, err)
	}
	return nil
}

func (b *Backend) writeInPlace(data []byte) error {
	if err := os.WriteFile(b.path, data, filePerm); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	return nil
}
