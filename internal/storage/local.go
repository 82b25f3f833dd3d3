package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// LocalStore writes blobs under a public-served base directory. Locators are
// paths relative to that directory (e.g. "productos/<uuid>.jpg"), matching
// what the static /storage route serves.
type LocalStore struct {
	baseDir string
	logger  zerolog.Logger
}

func NewLocalStore(baseDir string, logger zerolog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, prefix), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base dir: %w", err)
	}
	return &LocalStore{
		baseDir: baseDir,
		logger:  logger.With().Str("component", "local-blob-store").Logger(),
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	key, err := newKey(contentType)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write blob: %w", err)
	}
	s.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("blob written")
	return key, nil
}

func (s *LocalStore) Delete(ctx context.Context, locator string) error {
	// Locators come from the imagen column; refuse anything that would
	// escape the base directory.
	clean := filepath.Clean(filepath.FromSlash(locator))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("storage: invalid locator %q", locator)
	}
	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil {
		return fmt.Errorf("storage: delete blob: %w", err)
	}
	s.logger.Debug().Str("key", locator).Msg("blob deleted")
	return nil
}
