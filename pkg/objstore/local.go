package objstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps objects on disk under baseDir and serves them from baseURL.
type LocalStore struct {
	baseDir string
	baseURL string
}

func NewLocal(baseDir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("local store: create %s: %w", baseDir, err)
	}
	return &LocalStore{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Put(_ context.Context, key, _ string, r io.Reader) (string, error) {
	full := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("local store: mkdir for %s: %w", key, err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("local store: create %s: %w", key, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("local store: write %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	full := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("local store: delete %s: %w", key, err)
	}
	return nil
}
