package languages

import (
	"context"
	"testing"

	"promptpack/internal/symbols"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor() *symbols.Extractor {
	reg := symbols.NewRegistry()
	RegisterAll(reg)
	return symbols.NewExtractor(reg)
}

func TestExtract_Go(t *testing.T) {
	src := `package main

var Version = "1"

const (
	A = 1
	B = 2
)

func main() {
	local := 3
	_ = local
}

func (s *Server) Start() error { return nil }
`
	got, err := newExtractor().Extract(context.Background(), "cmd/main.go", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "go", got.Language)
	assert.Equal(t, []string{"main", "Start"}, got.Functions)
	assert.Equal(t, []string{"Version", "A", "B"}, got.Variables)
}

func TestExtract_JavaScript(t *testing.T) {
	src := `const express = require('express');
const handler = (req, res) => { res.send('ok'); };
function start() {}
class App { run() {} }
module.exports = { start };
`
	got, err := newExtractor().Extract(context.Background(), "server.js", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "javascript", got.Language)
	assert.Equal(t, []string{"handler", "start", "run"}, got.Functions)
	assert.Equal(t, []string{"express"}, got.Variables)
}

func TestExtract_Python(t *testing.T) {
	src := `MAX = 3

def main():
    local = 1

class K:
    def method(self):
        pass
`
	got, err := newExtractor().Extract(context.Background(), "tool.py", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "method"}, got.Functions)
	assert.Equal(t, []string{"MAX"}, got.Variables)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := newExtractor().Extract(context.Background(), "README.md", []byte("# hi"))
	assert.ErrorIs(t, err, symbols.ErrUnsupported)
}

func TestRegistry_LanguageName(t *testing.T) {
	reg := symbols.NewRegistry()
	RegisterAll(reg)

	for path, want := range map[string]string{"a.go": "go", "a.jsx": "javascript", "a.py": "python"} {
		assert.Equal(t, want, reg.LanguageName(path), path)
	}
	assert.Equal(t, "typescript", reg.LanguageName("src/App.tsx"))
	assert.Equal(t, "", reg.LanguageName("Makefile"))
}
