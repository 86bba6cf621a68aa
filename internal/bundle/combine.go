package bundle

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultCombineDirs are the backend directories concatenated by Combine.
var DefaultCombineDirs = []string{"controllers", "middlewares", "models", "routes", "strategies", "utils"}

// DefaultEntryFile is appended after the directories.
const DefaultEntryFile = "server.js"

// CombineOptions configures a directory concatenation.
type CombineOptions struct {
	Root      string
	Dirs      []string
	EntryFile string
	Logger    *slog.Logger
}

// Combine writes every file under each of Dirs, then EntryFile, to w. Each
// file is framed as "\n--- <path> ---\n<contents>\n" where path is relative
// to Root. Missing directories and a missing entry file are logged and
// skipped. It returns the number of files written.
func Combine(w io.Writer, opts CombineOptions) (int, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	written := 0
	for _, dir := range opts.Dirs {
		abs := filepath.Join(opts.Root, dir)
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			log.Warn("directory not found", "dir", dir)
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			rel, _ := filepath.Rel(opts.Root, path)
			if err := writeFramed(w, filepath.ToSlash(rel), path); err != nil {
				return err
			}
			written++
			return nil
		})
		if err != nil {
			return written, fmt.Errorf("combine %s: %w", dir, err)
		}
	}

	if opts.EntryFile == "" {
		return written, nil
	}
	entry := filepath.Join(opts.Root, opts.EntryFile)
	if info, err := os.Stat(entry); err != nil || !info.Mode().IsRegular() {
		log.Warn("file not found", "file", opts.EntryFile)
		return written, nil
	}
	if err := writeFramed(w, filepath.ToSlash(opts.EntryFile), entry); err != nil {
		return written, fmt.Errorf("combine %s: %w", opts.EntryFile, err)
	}
	return written + 1, nil
}

func writeFramed(w io.Writer, label, path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n--- %s ---\n", label); err != nil {
		return err
	}
	if _, err := w.Write(contents); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
