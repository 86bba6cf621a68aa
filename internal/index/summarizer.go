package index

import "context"

// Result is what a summarizer derives from one file.
type Result struct {
	Summary   string   `json:"summary"`
	Functions []string `json:"functions"`
	Variables []string `json:"variables"`
	Language  string   `json:"language"`
}

// Summarizer derives a Result from a file's path and content. Errors are
// treated as a failed summarization of that one file.
type Summarizer interface {
	Summarize(ctx context.Context, path string, content []byte) (Result, error)
}

// SummarizerFunc adapts a function to the Summarizer interface.
type SummarizerFunc func(ctx context.Context, path string, content []byte) (Result, error)

func (f SummarizerFunc) Summarize(ctx context.Context, path string, content []byte) (Result, error) {
	return f(ctx, path, content)
}
