package storage

import (
	"context"
	"fmt"
	"regexp"
)

// ImageStore persists image blobs under generated names.
type ImageStore interface {
	// Initialize prepares the backend (directories, tables, connectivity).
	Initialize(ctx context.Context) error
	// Close releases backend resources.
	Close() error
	// Health checks if the backend is reachable.
	Health(ctx context.Context) error

	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// ErrNotFound is returned when a key is not found
type ErrNotFound struct {
	Key string
}

func (e *ErrNotFound) Error() string {
	return "image not found: " + e.Key
}

// IsNotFound reports whether err is an ErrNotFound.
func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName rejects names that could escape the store's namespace.
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid image name %q", name)
	}
	return nil
}
