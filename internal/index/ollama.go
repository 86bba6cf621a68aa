package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"promptpack/internal/llm"
)

// DefaultExcerptChars is how much of a file is sent to the model.
const DefaultExcerptChars = 1000

const fileSummaryPrompt = `Summarize the following file:
File Path: %s

Content:
%s

Respond in JSON format with:
{
    "summary": "Short summary of the file.",
    "functions": ["function1", "function2"],
    "variables": ["variable1", "variable2"],
    "language": "Programming language of the file."
}
`

// Generator produces a JSON document from a prompt.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// OllamaSummarizer asks a local model to describe a file.
type OllamaSummarizer struct {
	gen          Generator
	excerptChars int
}

// NewOllamaSummarizer returns a summarizer sending at most excerptChars
// characters of each file. Zero means DefaultExcerptChars.
func NewOllamaSummarizer(gen Generator, excerptChars int) *OllamaSummarizer {
	if excerptChars <= 0 {
		excerptChars = DefaultExcerptChars
	}
	return &OllamaSummarizer{gen: gen, excerptChars: excerptChars}
}

func (s *OllamaSummarizer) Summarize(ctx context.Context, path string, content []byte) (Result, error) {
	if !utf8.Valid(content) {
		return Result{}, fmt.Errorf("%s: %w", path, ErrNotText)
	}

	prompt := fmt.Sprintf(fileSummaryPrompt, path, excerpt(string(content), s.excerptChars))
	raw, err := s.gen.GenerateJSON(ctx, prompt)
	if err != nil {
		var decodeErr *llm.DecodeError
		if errors.As(err, &decodeErr) {
			return Result{}, fmt.Errorf("%w: %v", ErrSummarizerMalformed, err)
		}
		return Result{}, fmt.Errorf("%w: %v", ErrSummarizerUnavailable, err)
	}
	return parseResult(raw)
}

// parseResult decodes the model output. Missing fields default to empty, but
// an empty object or fields of the wrong type count as malformed.
func parseResult(raw string) (Result, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSummarizerMalformed, err)
	}
	if len(fields) == 0 {
		return Result{}, fmt.Errorf("%w: empty object", ErrSummarizerMalformed)
	}

	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSummarizerMalformed, err)
	}
	if res.Functions == nil {
		res.Functions = []string{}
	}
	if res.Variables == nil {
		res.Variables = []string{}
	}
	return res, nil
}

// excerpt returns the first n characters of s.
func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
