package bundle

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultPrefixes are the feature prefixes bundled when none are given.
var DefaultPrefixes = []string{
	"Bid", "Attachment", "Auth", "Book", "Gig", "Leaderboard",
	"Message", "Notification", "Report", "Review", "User",
}

const contextHeader = "make all the tests. be super thorough. make all the files. just make backend tests.\n" +
	"My tests are going to be placed in\n" +
	"Backend:\n" +
	"/tests/%s/\n\n" +
	"---\n\n"

// ContextOptions configures one prefix bundle.
type ContextOptions struct {
	Root   string
	Prefix string
	// Output is the bundle file. It is excluded from its own contents.
	Output string
	Logger *slog.Logger
}

// ContextPath returns the default bundle location for prefix under root:
// tests/<prefix>/<prefix>.context.
func ContextPath(root, prefix string) string {
	return filepath.Join(root, "tests", prefix, prefix+".context")
}

type entry struct {
	relPath  string
	fullPath string
	contents []byte
}

// CollectContext writes every file under Root whose name starts with Prefix
// (case-insensitive), plus the shared backend scaffolding files, into Output.
// server.js entries are written last. It returns the number of files written.
func CollectContext(opts ContextOptions) (int, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return 0, err
	}
	output, err := filepath.Abs(opts.Output)
	if err != nil {
		return 0, err
	}
	prefix := strings.ToLower(opts.Prefix)

	var regular, servers []entry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if path == output {
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		name := d.Name()
		isServer := strings.ToLower(name) == "server.js"
		isShared := rel == filepath.Join("tests", "setup.js") ||
			name == ".env.test" ||
			name == "jest.config.js"
		if !strings.HasPrefix(strings.ToLower(name), prefix) && !isServer && !isShared {
			return nil
		}

		contents, err := os.ReadFile(path)
		if err != nil {
			log.Warn("error reading file", "path", rel, "err", err)
			return nil
		}
		if !utf8.Valid(contents) {
			log.Info("skipping binary file", "path", rel)
			return nil
		}

		e := entry{relPath: rel, fullPath: path, contents: contents}
		if isServer {
			servers = append(servers, e)
		} else {
			regular = append(regular, e)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk %s: %w", root, err)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", output, err)
	}

	if _, err := fmt.Fprintf(f, contextHeader, opts.Prefix); err != nil {
		f.Close()
		return 0, err
	}
	for _, e := range append(regular, servers...) {
		if _, err := fmt.Fprintf(f, "Path: %s\nFull Route: %s\nContents:\n%s\n\n---\n\n", e.relPath, e.fullPath, e.contents); err != nil {
			f.Close()
			return 0, err
		}
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return len(regular) + len(servers), nil
}
