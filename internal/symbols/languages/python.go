package languages

import (
	"promptpack/internal/symbols"

	"github.com/smacker/go-tree-sitter/python"
)

func RegisterPython(r *symbols.Registry) {
	r.Register("python", &symbols.LanguageSpec{
		Language: python.GetLanguage(),
		Query: `
			(function_definition name: (identifier) @function)
			(module (expression_statement (assignment left: (identifier) @variable)))
		`,
		Extensions: []string{"py", "pyi"},
	})
}
