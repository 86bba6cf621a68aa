package tui

import (
	"context"
	"errors"
	"testing"

	"promptpack/internal/index"
	"promptpack/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarkdown(t *testing.T) {
	md := RecordMarkdown("models/User.js", store.Record{
		Hash:      "abc",
		Summary:   "User model",
		Functions: []string{"comparePassword"},
		Variables: []string{},
		Language:  "JavaScript",
	})
	assert.Contains(t, md, "## models/User.js")
	assert.Contains(t, md, "**Language:** JavaScript")
	assert.Contains(t, md, "- `comparePassword`")
	assert.Contains(t, md, "### Variables\n\n_none_")
}

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\nbody text", 40)
	require.NoError(t, err)
	assert.Contains(t, out, "body text")
}

func TestProgressModel(t *testing.T) {
	cancelled := false
	var m tea.Model = newProgressModel(func() { cancelled = true })

	m, _ = m.Update(progressMsg{path: "a.js", processed: 1, total: 3})
	assert.Contains(t, m.View(), "1 / 3 files")
	assert.Contains(t, m.View(), "a.js")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, cancelled)

	stats := &index.Stats{FilesTotal: 3, FilesSummarized: 1, FilesUnchanged: 1, FilesFailed: 1}
	m, cmd := m.Update(doneMsg{stats: stats, err: context.Canceled})
	require.NotNil(t, cmd)
	view := m.View()
	assert.Contains(t, view, "context canceled")
	assert.Contains(t, view, "1 files could not be summarized")

	pm := m.(progressModel)
	assert.True(t, errors.Is(pm.err, context.Canceled))
}
