package extractor

import (
	"fmt"

	"github.com/kataras/hoto/pkg/descriptor"
	"github.com/kataras/hoto/pkg/loader"
	"github.com/kataras/hoto/pkg/selector"
	"github.com/kataras/hoto/pkg/template"
)

// Binding names visible in format strings.
const (
	SelectorBinding   = "sel"
	DescriptorBinding = "rdf"
	PathBinding       = "path"
)

// ConvenienceVars lists the always-available shorthand variables.
var ConvenienceVars = []string{"title", "h1", "ext", "year", "filename", "stem", "archived", "host"}

// Options configures an extraction.
type Options struct {
	MaxChars int // selector result cap, zero uses selector.DefaultMaxChars
}

// Extraction is the evaluation context of one document: its parsed markup,
// its descriptor and the shorthand variables computed from both.
type Extraction struct {
	Document   *loader.Document
	Selector   *selector.Selector
	Descriptor *descriptor.Descriptor
	Vars       map[string]string
}

// New parses doc's markup and descriptor and computes the convenience
// variables. A malformed descriptor date or URL is an error.
func New(doc *loader.Document, opts Options) (*Extraction, error) {
	sel, err := selector.New(doc.Markup, selector.WithMaxChars(opts.MaxChars))
	if err != nil {
		return nil, fmt.Errorf("extract tags from %q: %w", doc.Path, err)
	}

	rdf := descriptor.Empty()
	if doc.HasDescriptor {
		rdf, err = descriptor.Parse(doc.Descriptor)
		if err != nil {
			return nil, fmt.Errorf("parse descriptor %q in %q: %w", doc.DescriptorEntry, doc.Path, err)
		}
	}

	e := &Extraction{
		Document:   doc,
		Selector:   sel,
		Descriptor: rdf,
	}
	if err := e.computeVars(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Extraction) computeVars() error {
	title, err := e.Selector.Attr("title")
	if err != nil {
		return err
	}
	h1, err := e.Selector.Attr("h1")
	if err != nil {
		return err
	}
	year, _ := e.Descriptor.Get("year")
	archived, _ := e.Descriptor.Get("archived")
	host, _ := e.Descriptor.Get("host")

	e.Vars = map[string]string{
		"title":    title,
		"h1":       h1,
		"ext":      e.Document.Ext,
		"year":     year,
		"filename": e.Document.Name,
		"stem":     e.Document.Stem,
		"archived": archived,
		"host":     host,
	}
	return nil
}

// Scope returns the template bindings for this document.
func (e *Extraction) Scope() template.Scope {
	return template.Scope{
		Vars: e.Vars,
		Objects: map[string]template.Object{
			SelectorBinding:   selectorObject{e.Selector},
			DescriptorBinding: descriptorObject{e.Descriptor},
			PathBinding:       pathObject{e.Document},
		},
	}
}

// Render parses and executes format against this document.
func (e *Extraction) Render(format string) (string, error) {
	return template.Render(format, e.Scope())
}
