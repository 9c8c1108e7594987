package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each image as a file in one directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based image store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Initialize creates the images directory.
func (f *FileStore) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", f.dir, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

// Health checks the directory is still there.
func (f *FileStore) Health(ctx context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", f.dir)
	}
	return nil
}

// Path returns the on-disk location for name.
func (f *FileStore) Path(name string) string {
	return filepath.Join(f.dir, name)
}

// Put writes to a temp file and renames it into place, so readers never see partial images.
func (f *FileStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close image: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, f.Path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename image: %w", err)
	}
	return nil
}

func (f *FileStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ErrNotFound{Key: name}
		}
		return nil, err
	}
	return data, nil
}

func (f *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	_, err := os.Stat(f.Path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
