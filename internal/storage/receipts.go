// internal/storage/receipts.go

// Package storage keeps uploaded payment receipts on the local filesystem.
// The database stores only the returned path.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ReceiptStore writes receipt files under a base directory.
type ReceiptStore struct {
	baseDir string
}

// NewReceiptStore creates the store, ensuring the base directory exists.
func NewReceiptStore(baseDir string) (*ReceiptStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipt directory %s: %w", baseDir, err)
	}
	return &ReceiptStore{baseDir: baseDir}, nil
}

// Save writes the receipt content under a fresh UUID name, preserving the
// original extension, and returns the stored path.
func (s *ReceiptStore) Save(originalName string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	path := filepath.Join(s.baseDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create receipt file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		// Best effort cleanup; a leftover partial file is logged by the caller.
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write receipt file %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes a stored receipt. Used when the payment row insert fails
// after the file was already written.
func (s *ReceiptStore) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove receipt file %s: %w", path, err)
	}
	return nil
}
