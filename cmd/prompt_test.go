package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"promptpack/internal/index"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ollamaStub answers summary prompts with a fixed record and relevance
// prompts with relevance.
func ollamaStub(t *testing.T, relevance string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		reply := `{"summary":"a file","functions":[],"variables":[],"language":"JavaScript"}`
		if strings.Contains(req.Prompt, "relevant_files") {
			reply = relevance
		}
		json.NewEncoder(w).Encode(map[string]string{"response": reply})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func runPrompt(t *testing.T, srvURL, proj, out string) error {
	t.Helper()
	rootCmd.SetArgs([]string{
		"prompt", "add search", proj,
		"-o", out,
		"--index", filepath.Join(t.TempDir(), "index.json"),
		"--ollama", srvURL,
		"--log-level", "error",
	})
	return rootCmd.ExecuteContext(context.Background())
}

func TestPrompt_InlinesOnlyIndexedFiles(t *testing.T) {
	parent := t.TempDir()
	proj := filepath.Join(parent, "proj")
	writeTree(t, parent, map[string]string{
		"secret.env":             "API_KEY=hunter2",
		"proj/a.js":              "console.log(1)",
		"proj/node_modules/x.js": "EXCLUDED_CONTENT",
	})
	srv := ollamaStub(t, `{"relevant_files":[`+
		`{"file_path":"a.js","reason":"entry"},`+
		`{"file_path":"../secret.env","reason":"config"},`+
		`{"file_path":"node_modules/x.js","reason":"dep"}]}`)
	out := filepath.Join(t.TempDir(), "prompt.txt")

	require.NoError(t, runPrompt(t, srv.URL, proj, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	got := string(data)
	assert.Contains(t, got, "File: a.js\n\nconsole.log(1)\n\n")
	assert.Contains(t, got, "File: ../secret.env\n\n\n\n")
	assert.Contains(t, got, "File: node_modules/x.js\n\n\n\n")
	assert.NotContains(t, got, "hunter2")
	assert.NotContains(t, got, "EXCLUDED_CONTENT")
}

func TestPrompt_NoRelevantFilesWritesNothing(t *testing.T) {
	proj := t.TempDir()
	writeTree(t, proj, map[string]string{"a.js": "console.log(1)"})
	out := filepath.Join(t.TempDir(), "prompt.txt")

	for _, reply := range []string{`{}`, `{"relevant_files":[]}`} {
		srv := ollamaStub(t, reply)
		err := runPrompt(t, srv.URL, proj, out)
		assert.ErrorIs(t, err, index.ErrNoRelevantFiles, reply)
		assert.NoFileExists(t, out, reply)
	}
}
