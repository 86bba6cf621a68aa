package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFile is the index location relative to the working directory.
const DefaultFile = "index.json"

// JSONFile stores the index as a single indented JSON document.
type JSONFile struct {
	path string
}

// NewJSONFile returns a backend reading and writing path.
func NewJSONFile(path string) *JSONFile {
	if path == "" {
		path = DefaultFile
	}
	return &JSONFile{path: path}
}

// Path returns the file the backend writes to.
func (s *JSONFile) Path() string { return s.path }

func (s *JSONFile) Load() (Index, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Index{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", s.path, err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptIndex, s.path, err)
	}
	if idx == nil {
		idx = Index{}
	}
	for p, r := range idx {
		idx[p] = r.normalize()
	}
	return idx, nil
}

// Save writes the snapshot to a temp file next to the target, syncs it and
// renames it into place. A crash mid-save leaves the previous snapshot intact.
func (s *JSONFile) Save(idx Index) error {
	out := make(Index, len(idx))
	for p, r := range idx {
		out[p] = r.normalize()
	}
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp index: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace index %s: %w", s.path, err)
	}
	syncDir(dir)
	return nil
}

func (s *JSONFile) Close() error { return nil }

// syncDir flushes the directory entry after a rename. Not every platform
// supports fsync on directories, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
