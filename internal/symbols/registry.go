package symbols

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// LanguageSpec pairs a grammar with the query that finds declared names.
// Identifiers captured as @function are reported as functions and those
// captured as @variable as variables; other captures are ignored.
type LanguageSpec struct {
	Language   *sitter.Language
	Query      string
	Extensions []string
}

type grammar struct {
	name string
	spec *LanguageSpec
}

// Registry resolves a source path to the grammar used to extract its
// symbols. It is filled once at startup and read-only afterwards.
type Registry struct {
	byExt map[string]grammar
}

func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]grammar)}
}

// Register claims spec's extensions for the language name. A later
// registration of the same extension wins.
func (r *Registry) Register(name string, spec *LanguageSpec) {
	for _, ext := range spec.Extensions {
		r.byExt[strings.ToLower(ext)] = grammar{name: name, spec: spec}
	}
}

// Lookup matches on the file extension, case-insensitively. Unknown
// extensions return a nil spec and an empty name.
func (r *Registry) Lookup(path string) (*LanguageSpec, string) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	g, ok := r.byExt[ext]
	if !ok {
		return nil, ""
	}
	return g.spec, g.name
}

// LanguageName is the language recorded in the index for path.
func (r *Registry) LanguageName(path string) string {
	_, name := r.Lookup(path)
	return name
}
