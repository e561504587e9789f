package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/fragshare/internal/common"
	"github.com/dmitrijs2005/fragshare/internal/filex"
)

// Local stores blobs on the local filesystem under a base directory.
// Paths are relative to the base, one subdirectory per namespace, and
// filenames are preserved verbatim. Every path is resolved through
// fullPath, which confines it to the base directory.
type Local struct {
	basePath string
}

func NewLocal(basePath string) (*Local, error) {
	abs, err := filex.EnsureDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("init local storage: %w", err)
	}
	return &Local{basePath: abs}, nil
}

// fullPath resolves a blob path against the base directory. Names are
// caller-supplied, so a path whose cleaned form escapes the base is
// rejected rather than resolved.
func (s *Local) fullPath(path string) (string, error) {
	full := filepath.Join(s.basePath, path)
	if !strings.HasPrefix(full, s.basePath+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes storage root: %s", path)
	}
	return full, nil
}

func (s *Local) Exists(ctx context.Context, path string) (bool, error) {
	full, err := s.fullPath(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return true, nil
}

func (s *Local) WriteNamed(ctx context.Context, namespace, name string, r io.Reader) (string, error) {
	path := filepath.Join(namespace, name)

	fullPath, err := s.fullPath(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrStorageWrite, err)
	}

	if _, err := filex.EnsureDir(filepath.Dir(fullPath)); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrStorageWrite, err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", common.ErrStorageWrite, path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("%w: write %s: %v", common.ErrStorageWrite, path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("%w: close %s: %v", common.ErrStorageWrite, path, err)
	}

	return path, nil
}

func (s *Local) Delete(ctx context.Context, path string) error {
	full, err := s.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (s *Local) OpenForRead(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := s.fullPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
