// Package objstore stores uploaded receipt and logo files under generated
// keys and hands back retrievable URLs. Two providers: Google Cloud Storage
// for deployments, a local directory for development and tests.
package objstore

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store interface {
	// Put writes the object and returns its public URL.
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// GenerateKey builds a collision-free object key under prefix, keeping the
// original file extension.
func GenerateKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return prefix + "/" + uuid.NewString() + ext
}
