package languages

import (
	"promptpack/internal/symbols"

	"github.com/smacker/go-tree-sitter/golang"
)

func RegisterGo(r *symbols.Registry) {
	r.Register("go", &symbols.LanguageSpec{
		Language: golang.GetLanguage(),
		Query: `
			(function_declaration name: (identifier) @function)
			(method_declaration name: (field_identifier) @function)
			(source_file (var_declaration (var_spec name: (identifier) @variable)))
			(source_file (const_declaration (const_spec name: (identifier) @variable)))
		`,
		Extensions: []string{"go"},
	})
}
