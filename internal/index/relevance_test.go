package index

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"promptpack/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRelevant(t *testing.T) {
	gen := &fakeGenerator{response: `{"relevant_files":[{"file_path":"client/src/pages/Home.jsx","reason":"homepage"}]}`}
	idx := store.Index{
		"server.js":                 {Hash: "h1", Summary: "express server"},
		"client/src/pages/Home.jsx": {Hash: "h2", Summary: "home page", Language: "JavaScript"},
	}

	got, err := SelectRelevant(context.Background(), gen, "make the homepage nicer", idx)
	require.NoError(t, err)
	assert.Equal(t, []Relevant{{FilePath: "client/src/pages/Home.jsx", Reason: "homepage"}}, got)

	prompt := gen.prompts[0]
	assert.Contains(t, prompt, `"make the homepage nicer"`)
	assert.Contains(t, prompt, `"file_path": "server.js"`)
	assert.NotContains(t, prompt, "h1", "hashes are not sent to the model")
	assert.Less(t, strings.Index(prompt, "Home.jsx"), strings.Index(prompt, `"server.js"`))
}

func TestSelectRelevant_Errors(t *testing.T) {
	_, err := SelectRelevant(context.Background(), &fakeGenerator{err: errors.New("down")}, "r", store.Index{})
	assert.ErrorIs(t, err, ErrSummarizerUnavailable)

	_, err = SelectRelevant(context.Background(), &fakeGenerator{response: "nope"}, "r", store.Index{})
	assert.ErrorIs(t, err, ErrSummarizerMalformed)
}

func TestBriefs_OmitHash(t *testing.T) {
	b, err := json.Marshal(Briefs(store.Index{"a": {Hash: "secret", Summary: "s"}}))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
	assert.NotContains(t, string(b), `"hash"`)
}

func TestWritePrompt(t *testing.T) {
	files := map[string]string{"a.js": "console.log(1)"}
	read := func(p string) ([]byte, error) {
		if c, ok := files[p]; ok {
			return []byte(c), nil
		}
		return nil, os.ErrNotExist
	}

	var buf bytes.Buffer
	err := WritePrompt(&buf, "add search", []Relevant{{FilePath: "a.js"}, {FilePath: "gone.js"}}, read)
	require.NoError(t, err)

	want := "User Request:\nadd search\n\n" +
		"Relevant Files and Their Content:\n\n" +
		"File: a.js\n\nconsole.log(1)\n\n" +
		"File: gone.js\n\n\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWritePrompt_OnlyIndexedFilesAreInlined(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "proj")
	writeFiles(t, parent, map[string]string{
		"secret.env":             "API_KEY=hunter2",
		"proj/a.js":              "console.log(1)",
		"proj/node_modules/x.js": "vendored",
	})
	idx := store.Index{"a.js": {Hash: "h"}}

	gen := &fakeGenerator{response: `{"relevant_files":[` +
		`{"file_path":"a.js","reason":"r"},` +
		`{"file_path":"../secret.env","reason":"r"},` +
		`{"file_path":"node_modules/x.js","reason":"r"}]}`}
	relevant, err := SelectRelevant(context.Background(), gen, "req", idx)
	require.NoError(t, err)
	require.Len(t, relevant, 3)

	var buf bytes.Buffer
	require.NoError(t, WritePrompt(&buf, "req", relevant, IndexedReader(root, idx)))
	out := buf.String()
	assert.Contains(t, out, "File: a.js\n\nconsole.log(1)\n\n")
	assert.Contains(t, out, "File: ../secret.env\n\n\n\n")
	assert.Contains(t, out, "File: node_modules/x.js\n\n\n\n")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "vendored")
}

func TestIndexedReader_RejectsUnknownPaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.js": "x", "b.js": "y"})
	read := IndexedReader(root, store.Index{"a.js": {}})

	got, err := read("a.js")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))

	_, err = read("b.js")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
