package extractor

import "github.com/kataras/hoto/pkg/template"

// DefaultSuggestions is the catalog of example expressions evaluated by
// suggest mode.
var DefaultSuggestions = []string{
	"sel.h1",
	"sel('h1:first')",
	"sel.title",
	"sel('h2:first')",
	"sel('h1',find='Tero',replace='Someone')",
	"path",
	"path.suffix",
	"path.name",
	"rdf.nonexistingkey",
	"rdf.originalurl",
	"rdf.archived",
	"rdf.year",
	"sel.__description",
	"sel.__keywords",
	"title",
	"ext",
	"h1",
	"year",
	"filename",
	"stem",
	"host",
}

// Suggestion is one catalog expression rendered against a document.
type Suggestion struct {
	Expr  string
	Value string
	Err   error
}

// Found reports whether the expression produced a non-empty value.
func (s Suggestion) Found() bool {
	return s.Err == nil && s.Value != ""
}

// Suggest renders every expression. Each one is evaluated as if it had been
// given as a whole format string in braces; failures are recorded per
// expression and do not stop the others.
func (e *Extraction) Suggest(exprs []string) []Suggestion {
	scope := e.Scope()
	out := make([]Suggestion, 0, len(exprs))
	for _, expr := range exprs {
		v, err := template.Render("{"+expr+"}", scope)
		out = append(out, Suggestion{Expr: expr, Value: v, Err: err})
	}
	return out
}
