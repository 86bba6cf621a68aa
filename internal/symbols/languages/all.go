package languages

import "promptpack/internal/symbols"

// RegisterAll registers every bundled grammar.
func RegisterAll(r *symbols.Registry) {
	RegisterGo(r)
	RegisterJavaScript(r)
	RegisterTypeScript(r)
	RegisterPython(r)
}
