package languages

import (
	"promptpack/internal/symbols"

	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

func RegisterTypeScript(r *symbols.Registry) {
	r.Register("typescript", &symbols.LanguageSpec{
		Language: typescript.GetLanguage(),
		Query: `
			(function_declaration name: (identifier) @function)
			(method_definition name: (property_identifier) @function)
			(variable_declarator name: (identifier) @function value: (arrow_function))
			(program (lexical_declaration (variable_declarator name: (identifier) @variable)))
			(program (export_statement (lexical_declaration (variable_declarator name: (identifier) @variable))))
		`,
		Extensions: []string{"ts", "tsx"},
	})
}
