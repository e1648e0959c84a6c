// Package backends opens the storage.Repository selected by configuration.
package backends

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/flouze/internal/config"
	"github.com/mmynk/flouze/internal/storage"
	"github.com/mmynk/flouze/internal/storage/bolt"
	"github.com/mmynk/flouze/internal/storage/memory"
	"github.com/mmynk/flouze/internal/storage/sqlite"
)

// Open returns the repository described by cfg. The caller owns it and must Close it.
func Open(cfg config.StorageConfig) (storage.Repository, error) {
	var (
		repo storage.Repository
		err  error
	)

	switch cfg.Backend {
	case config.BackendMemory:
		repo = memory.New()
	case config.BackendBolt:
		repo, err = bolt.New(cfg.Path)
	case config.BackendSQLite:
		repo, err = sqlite.New(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}

	slog.Debug("Storage opened", "backend", cfg.Backend, "path", cfg.Path)
	return repo, nil
}
