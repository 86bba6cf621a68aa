package index

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"promptpack/internal/store"
)

// Stats reports the outcome of one Update call.
type Stats struct {
	FilesTotal      int
	FilesSummarized int
	FilesUnchanged  int
	FilesFailed     int
}

func (s *Stats) String() string {
	return fmt.Sprintf("%d total, %d summarized, %d unchanged, %d failed",
		s.FilesTotal, s.FilesSummarized, s.FilesUnchanged, s.FilesFailed)
}

// ProgressFunc is called after each path is handled.
type ProgressFunc func(path string, processed, total int)

// Updater brings an index up to date with the files on disk.
type Updater struct {
	// Root resolves relative index keys to files. Empty means the working
	// directory.
	Root       string
	Backend    store.Backend
	Summarizer Summarizer
	Logger     *slog.Logger
	OnProgress ProgressFunc
}

// Update walks paths in order. A path whose stored hash matches the current
// content is skipped without calling the summarizer. Otherwise the summarizer
// runs once; on success the record in idx is replaced and the whole index is
// saved before the next path, so a crash loses at most one file's work. Read,
// summarizer and save failures are logged and counted, and never stop the
// batch; a path whose save failed keeps its previous record in idx. Only
// cancellation of ctx ends Update early.
func (u *Updater) Update(ctx context.Context, paths []string, idx store.Index) (*Stats, error) {
	log := u.Logger
	if log == nil {
		log = slog.Default()
	}

	stats := &Stats{FilesTotal: len(paths)}
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		switch u.updateOne(ctx, log, p, idx) {
		case outcomeSummarized:
			stats.FilesSummarized++
		case outcomeUnchanged:
			stats.FilesUnchanged++
		case outcomeFailed:
			stats.FilesFailed++
		}

		if u.OnProgress != nil {
			u.OnProgress(p, i+1, len(paths))
		}
	}
	return stats, ctx.Err()
}

type outcome int

const (
	outcomeSummarized outcome = iota
	outcomeUnchanged
	outcomeFailed
)

func (u *Updater) updateOne(ctx context.Context, log *slog.Logger, p string, idx store.Index) outcome {
	src, err := readSource(u.resolve(p))
	if err != nil {
		log.Warn("skipping unreadable file", "path", p, "err", err)
		return outcomeFailed
	}
	hash := HashBytes(src)

	prev, had := idx[p]
	if had && prev.Hash == hash {
		log.Debug("skipping unchanged file", "path", p)
		return outcomeUnchanged
	}

	log.Info("summarizing file", "path", p)
	res, err := u.Summarizer.Summarize(ctx, p, src)
	if err != nil {
		log.Warn("summarization failed", "path", p, "err", err)
		return outcomeFailed
	}

	idx[p] = recordFromResult(hash, res)
	if err := u.Backend.Save(idx); err != nil {
		// idx must not hold work counted as failed.
		if had {
			idx[p] = prev
		} else {
			delete(idx, p)
		}
		log.Error("saving index failed", "path", p, "err", err)
		return outcomeFailed
	}
	return outcomeSummarized
}

func (u *Updater) resolve(p string) string {
	if u.Root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(u.Root, filepath.FromSlash(p))
}

func recordFromResult(hash string, res Result) store.Record {
	rec := store.Record{
		Hash:      hash,
		Summary:   res.Summary,
		Functions: res.Functions,
		Variables: res.Variables,
		Language:  res.Language,
	}
	if rec.Functions == nil {
		rec.Functions = []string{}
	}
	if rec.Variables == nil {
		rec.Variables = []string{}
	}
	return rec
}

// Prune removes records whose keys are not in live and returns the removed
// keys. Update never deletes records on its own.
func Prune(idx store.Index, live []string) []string {
	keep := make(map[string]bool, len(live))
	for _, p := range live {
		keep[p] = true
	}
	var removed []string
	for p := range idx {
		if !keep[p] {
			delete(idx, p)
			removed = append(removed, p)
		}
	}
	return removed
}
