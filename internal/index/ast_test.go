package index

import (
	"context"
	"testing"

	"promptpack/internal/symbols"
	"promptpack/internal/symbols/languages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASTSummarizer(t *testing.T) {
	reg := symbols.NewRegistry()
	languages.RegisterAll(reg)
	s := NewASTSummarizer(reg)

	res, err := s.Summarize(context.Background(), "main.go", []byte("package main\n\nvar x = 1\n\nfunc main() {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "go", res.Language)
	assert.Equal(t, []string{"main"}, res.Functions)
	assert.Equal(t, []string{"x"}, res.Variables)
	assert.Equal(t, "go source declaring 1 functions and 1 top-level variables.", res.Summary)

	_, err = s.Summarize(context.Background(), "styles.css", []byte("body{}"))
	assert.ErrorIs(t, err, ErrSummarizerUnavailable)
}
