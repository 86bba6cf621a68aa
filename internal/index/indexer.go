package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"promptpack/internal/store"
	"promptpack/internal/walker"
)

// Config holds the indexer configuration.
type Config struct {
	Backend    store.Backend
	Summarizer Summarizer
	Filter     walker.Filter
	Logger     *slog.Logger
	// Prune drops records for files no longer found under the root.
	Prune bool
	// Rebuild discards an index that fails to load instead of returning
	// store.ErrCorruptIndex.
	Rebuild    bool
	OnProgress ProgressFunc
}

// Indexer lists a tree and keeps its summary index current.
type Indexer struct {
	config Config
	logger *slog.Logger
}

// New creates a new Indexer with the given configuration.
func New(cfg Config) *Indexer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{config: cfg, logger: logger}
}

// Load reads the persisted index, honouring Rebuild.
func (idx *Indexer) Load() (store.Index, error) {
	current, err := idx.config.Backend.Load()
	if err == nil {
		return current, nil
	}
	if idx.config.Rebuild && errors.Is(err, store.ErrCorruptIndex) {
		idx.logger.Warn("discarding corrupt index", "err", err)
		return store.Index{}, nil
	}
	return nil, err
}

// Index brings the index for root up to date and returns it. Keys are paths
// relative to root using forward slashes.
func (idx *Indexer) Index(ctx context.Context, root string) (*Stats, store.Index, error) {
	files, err := walker.List(root, idx.config.Filter)
	if err != nil {
		return nil, nil, fmt.Errorf("list files: %w", err)
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.RelPath
	}

	current, err := idx.Load()
	if err != nil {
		return nil, nil, err
	}

	if idx.config.Prune {
		if removed := Prune(current, paths); len(removed) > 0 {
			idx.logger.Info("pruned stale records", "count", len(removed))
			if err := idx.config.Backend.Save(current); err != nil {
				return nil, nil, fmt.Errorf("save pruned index: %w", err)
			}
		}
	}

	u := &Updater{
		Root:       root,
		Backend:    idx.config.Backend,
		Summarizer: idx.config.Summarizer,
		Logger:     idx.logger,
		OnProgress: idx.config.OnProgress,
	}
	stats, err := u.Update(ctx, paths, current)
	return stats, current, err
}
