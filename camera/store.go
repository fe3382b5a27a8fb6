package camera

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/katalvlaran/anglefinder/angle"
)

// Store persists a Table between runs. Load returns ErrCacheMiss when there
// is nothing stored yet.
type Store interface {
	Load(ctx context.Context) (*Table, error)
	Save(ctx context.Context, t *Table) error
}

// FileStore keeps the table as a gzip-compressed text file.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads and decodes the cache file.
func (s *FileStore) Load(_ context.Context) (*Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheMiss
		}

		return nil, fmt.Errorf("camera: open cache: %w", err)
	}
	defer f.Close()

	return decodeGzip(f)
}

// Save writes the table to a temporary file and renames it into place, so a
// crashed run never leaves a truncated cache behind.
func (s *FileStore) Save(_ context.Context, t *Table) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("camera: create cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = encodeGzip(tmp, t); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("camera: close cache: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("camera: install cache: %w", err)
	}

	return nil
}

func encodeGzip(w io.Writer, t *Table) error {
	zw := gzip.NewWriter(w)
	if err := Encode(zw, t); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("camera: compress: %w", err)
	}

	return nil
}

func decodeGzip(r io.Reader) (*Table, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer zr.Close()

	return Decode(zr)
}

// LoadOrBuild returns the cached table from store, or builds one from the
// favored angles and caches it. favored is only called on a miss. A nil
// store always builds. Cache failures are logged and never fatal: the table
// is an optimization, not a source of truth.
func LoadOrBuild(ctx context.Context, store Store, favored func() ([]angle.Angle, error), logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if store != nil {
		t, err := store.Load(ctx)
		if err == nil {
			logger.Debug("camera snaps loaded from cache", "reachable", t.Reachable())
			return t, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			logger.Warn("camera snap cache unreadable, rebuilding", "err", err)
		}
	}

	cams, err := favored()
	if err != nil {
		return nil, fmt.Errorf("camera: favored angles: %w", err)
	}
	logger.Info("caching camera movements", "favored", len(cams))
	t := Build(cams)

	if store != nil {
		if err = store.Save(ctx, t); err != nil {
			logger.Warn("camera snap cache not saved", "err", err)
		}
	}

	return t, nil
}
