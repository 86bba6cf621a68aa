package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"promptpack/internal/store"
)

const relevancePrompt = `The user has the following request:
"%s"

Below is the summarized information of all files:
%s

Your task is to determine which files are relevant to the user's request. Respond in the following JSON format:
{
    "relevant_files": [
        {
            "file_path": "path/to/relevant/file",
            "reason": "Why this file is relevant."
        }
    ]
}
`

// Relevant is one file the model picked for a request.
type Relevant struct {
	FilePath string `json:"file_path"`
	Reason   string `json:"reason"`
}

// FileBrief is a record as shown to the model: no hash, path included.
type FileBrief struct {
	FilePath  string   `json:"file_path"`
	Summary   string   `json:"summary"`
	Functions []string `json:"functions"`
	Variables []string `json:"variables"`
	Language  string   `json:"language"`
}

// Briefs returns the index records sorted by path, without hashes.
func Briefs(idx store.Index) []FileBrief {
	paths := make([]string, 0, len(idx))
	for p := range idx {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]FileBrief, 0, len(paths))
	for _, p := range paths {
		r := idx[p]
		out = append(out, FileBrief{
			FilePath:  p,
			Summary:   r.Summary,
			Functions: r.Functions,
			Variables: r.Variables,
			Language:  r.Language,
		})
	}
	return out
}

// SelectRelevant asks the model which indexed files matter for request.
func SelectRelevant(ctx context.Context, gen Generator, request string, idx store.Index) ([]Relevant, error) {
	briefs, err := json.MarshalIndent(Briefs(idx), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal summaries: %w", err)
	}

	raw, err := gen.GenerateJSON(ctx, fmt.Sprintf(relevancePrompt, request, briefs))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummarizerUnavailable, err)
	}

	var parsed struct {
		RelevantFiles []Relevant `json:"relevant_files"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummarizerMalformed, err)
	}
	return parsed.RelevantFiles, nil
}

// WritePrompt writes the combined prompt: the request followed by the full
// content of each relevant file. read returns a file's content; files it
// cannot read are written with empty content.
func WritePrompt(w io.Writer, request string, relevant []Relevant, read func(path string) ([]byte, error)) error {
	if _, err := fmt.Fprintf(w, "User Request:\n%s\n\n", request); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "Relevant Files and Their Content:\n\n"); err != nil {
		return err
	}
	for _, r := range relevant {
		content, err := read(r.FilePath)
		if err != nil {
			content = nil
		}
		if _, err := fmt.Fprintf(w, "File: %s\n\n%s\n\n", r.FilePath, content); err != nil {
			return err
		}
	}
	return nil
}

// IndexedReader returns a reader for WritePrompt that only opens files
// recorded in idx, resolved under root. Any other path, including one the
// model made up or one outside root, reads as fs.ErrNotExist.
func IndexedReader(root string, idx store.Index) func(path string) ([]byte, error) {
	return func(p string) ([]byte, error) {
		if _, ok := idx[p]; !ok {
			return nil, fs.ErrNotExist
		}
		return os.ReadFile(filepath.Join(root, filepath.FromSlash(p)))
	}
}
