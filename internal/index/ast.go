package index

import (
	"context"
	"errors"
	"fmt"

	"promptpack/internal/symbols"
)

// ASTSummarizer lists declared names with tree-sitter instead of calling a
// model. It works offline but only knows the registered grammars.
type ASTSummarizer struct {
	extractor *symbols.Extractor
}

// NewASTSummarizer returns a summarizer backed by the given registry.
func NewASTSummarizer(reg *symbols.Registry) *ASTSummarizer {
	return &ASTSummarizer{extractor: symbols.NewExtractor(reg)}
}

func (s *ASTSummarizer) Summarize(ctx context.Context, path string, content []byte) (Result, error) {
	syms, err := s.extractor.Extract(ctx, path, content)
	if errors.Is(err, symbols.ErrUnsupported) {
		return Result{}, fmt.Errorf("%w: %v", ErrSummarizerUnavailable, err)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSummarizerMalformed, err)
	}
	return Result{
		Summary: fmt.Sprintf("%s source declaring %d functions and %d top-level variables.",
			syms.Language, len(syms.Functions), len(syms.Variables)),
		Functions: syms.Functions,
		Variables: syms.Variables,
		Language:  syms.Language,
	}, nil
}
