package languages

import (
	"promptpack/internal/symbols"

	"github.com/smacker/go-tree-sitter/javascript"
)

func RegisterJavaScript(r *symbols.Registry) {
	r.Register("javascript", &symbols.LanguageSpec{
		Language: javascript.GetLanguage(),
		Query: `
			(function_declaration name: (identifier) @function)
			(method_definition name: (property_identifier) @function)
			(variable_declarator name: (identifier) @function value: (arrow_function))
			(program (lexical_declaration (variable_declarator name: (identifier) @variable)))
			(program (variable_declaration (variable_declarator name: (identifier) @variable)))
			(program (export_statement (lexical_declaration (variable_declarator name: (identifier) @variable))))
		`,
		Extensions: []string{"js", "jsx", "mjs", "cjs"},
	})
}
