package walker

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo holds metadata about a discovered file.
type FileInfo struct {
	Path    string
	RelPath string
	Size    int64
}

// IgnoreFile is the optional per-project list of extra directory patterns.
const IgnoreFile = ".promptpackignore"

// Filter decides which directories and files the walk skips.
type Filter struct {
	// Dirs are directory names pruned from the walk.
	Dirs []string
	// Files are exact file names skipped.
	Files []string
	// Extensions are file suffixes skipped, with the leading dot (".log").
	Extensions []string
}

// DefaultFilter returns the exclusions used when none are configured.
func DefaultFilter() Filter {
	return Filter{
		Dirs:       []string{".venv", "node_modules", "dist", ".env", ".git", "__pycache__", "uploads"},
		Files:      []string{"README.md", ".DS_Store", "index.json"},
		Extensions: []string{".log", ".tmp", ".bak", ".txt", ".py"},
	}
}

// Walk traverses the directory tree rooted at root and sends every file that
// passes f on the returned channel. Directories matching f.Dirs or a pattern
// in the root's .promptpackignore are pruned.
func Walk(root string, f Filter) (<-chan FileInfo, <-chan error) {
	files := make(chan FileInfo, 64)
	errs := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errs)

		absRoot, err := filepath.Abs(root)
		if err != nil {
			errs <- err
			return
		}

		dirIgnores := append(append([]string{}, f.Dirs...), loadIgnorePatterns(absRoot)...)
		skipFiles := toSet(f.Files)
		skipExts := toSet(f.Extensions)

		err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip errors, keep walking
			}

			if d.IsDir() {
				if path == absRoot {
					return nil
				}
				rel, _ := filepath.Rel(absRoot, path)
				if matchesIgnore(d.Name(), filepath.ToSlash(rel), dirIgnores) {
					return filepath.SkipDir
				}
				return nil
			}

			// Skip symlinks.
			if d.Type()&fs.ModeSymlink != 0 {
				return nil
			}

			name := d.Name()
			if skipFiles[name] || skipExts[filepath.Ext(name)] {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}

			relPath, _ := filepath.Rel(absRoot, path)
			files <- FileInfo{
				Path:    path,
				RelPath: filepath.ToSlash(relPath),
				Size:    info.Size(),
			}
			return nil
		})
		if err != nil {
			errs <- err
		}
	}()

	return files, errs
}

// List drains Walk and returns the files sorted by relative path.
func List(root string, f Filter) ([]FileInfo, error) {
	fileCh, errCh := Walk(root, f)

	var out []FileInfo
	for fi := range fileCh {
		out = append(out, fi)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out, nil
}

// loadIgnorePatterns reads .promptpackignore from the project root. A missing
// file means no extra patterns.
func loadIgnorePatterns(root string) []string {
	f, err := os.Open(filepath.Join(root, IgnoreFile))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, strings.TrimSuffix(line, "/"))
	}
	return patterns
}

// matchesIgnore checks if a directory name or relative path matches any ignore pattern.
func matchesIgnore(name, relPath string, patterns []string) bool {
	for _, p := range patterns {
		// Exact directory name match (e.g. "node_modules", ".git").
		if name == p {
			return true
		}
		// Path prefix match (e.g. "third_party/vendor").
		if strings.Contains(p, "/") && (relPath == p || strings.HasPrefix(relPath, p+"/")) {
			return true
		}
		// Glob match against the relative path.
		if matched, _ := filepath.Match(p, relPath); matched {
			return true
		}
		if matched, _ := filepath.Match(p, name); matched {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
