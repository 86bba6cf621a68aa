package tui

import (
	"fmt"
	"strings"

	"promptpack/internal/store"

	"github.com/charmbracelet/glamour"
)

// RecordMarkdown formats one index record as Markdown.
func RecordMarkdown(path string, r store.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", path)
	fmt.Fprintf(&b, "**Language:** %s  \n**Hash:** `%s`\n\n", orNone(r.Language), r.Hash)
	fmt.Fprintf(&b, "%s\n\n", orNone(r.Summary))
	writeList(&b, "Functions", r.Functions)
	writeList(&b, "Variables", r.Variables)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "### %s\n\n", title)
	if len(items) == 0 {
		b.WriteString("_none_\n\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "- `%s`\n", it)
	}
	b.WriteString("\n")
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// Render renders Markdown for a terminal of the given width.
func Render(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
