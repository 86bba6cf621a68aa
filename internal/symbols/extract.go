package symbols

import (
	"context"
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrUnsupported is returned for files with no registered grammar.
var ErrUnsupported = errors.New("no grammar registered")

// Symbols are the top-level names declared in one source file.
type Symbols struct {
	Language  string
	Functions []string
	Variables []string
}

// Extractor parses source files with tree-sitter and lists declared names.
type Extractor struct {
	registry *Registry
}

// NewExtractor creates an extractor backed by the given registry.
func NewExtractor(r *Registry) *Extractor {
	return &Extractor{registry: r}
}

type capture struct {
	kind      string
	name      string
	startByte uint32
}

// Extract returns the functions and variables declared in src, in source
// order. A name node captured both as a function and a variable (an arrow
// function bound to a const) is reported once, as a function.
func (e *Extractor) Extract(ctx context.Context, path string, src []byte) (Symbols, error) {
	spec, lang := e.registry.Lookup(path)
	if spec == nil {
		return Symbols{}, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(spec.Language)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return Symbols{}, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	q, err := sitter.NewQuery([]byte(spec.Query), spec.Language)
	if err != nil {
		return Symbols{}, fmt.Errorf("compile query for %s: %w", lang, err)
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var caps []capture
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			kind := q.CaptureNameForId(c.Index)
			if kind != "function" && kind != "variable" {
				continue
			}
			caps = append(caps, capture{
				kind:      kind,
				name:      c.Node.Content(src),
				startByte: c.Node.StartByte(),
			})
		}
	}

	out := Symbols{Language: lang, Functions: []string{}, Variables: []string{}}
	for _, c := range dedup(caps) {
		if c.kind == "function" {
			out.Functions = append(out.Functions, c.name)
		} else {
			out.Variables = append(out.Variables, c.name)
		}
	}
	return out, nil
}

// dedup orders captures by position and keeps one capture per name node,
// preferring the function capture.
func dedup(caps []capture) []capture {
	sort.SliceStable(caps, func(i, j int) bool {
		if caps[i].startByte != caps[j].startByte {
			return caps[i].startByte < caps[j].startByte
		}
		return caps[i].kind == "function" && caps[j].kind != "function"
	})

	var result []capture
	for i, c := range caps {
		if i > 0 && caps[i-1].startByte == c.startByte {
			continue
		}
		result = append(result, c)
	}
	return result
}
