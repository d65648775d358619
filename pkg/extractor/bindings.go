package extractor

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/kataras/hoto/pkg/descriptor"
	"github.com/kataras/hoto/pkg/loader"
	"github.com/kataras/hoto/pkg/selector"
	"github.com/kataras/hoto/pkg/template"
)

// selectorObject exposes sel.NAME and sel('css', find=..., replace=...).
type selectorObject struct {
	s *selector.Selector
}

func (o selectorObject) Attr(name string) (string, error) {
	return o.s.Attr(name)
}

// queryParams lists sel(...) parameters in positional order.
var queryParams = []string{"selector", "find", "replace", "maxChars"}

func (o selectorObject) Call(args []template.Arg) (string, error) {
	var q selector.Query
	seen := make(map[string]bool, len(args))
	for i, a := range args {
		name := a.Name
		if name == "" {
			if i >= len(queryParams) {
				return "", fmt.Errorf("sel() takes at most %d arguments", len(queryParams))
			}
			name = queryParams[i]
		}
		if seen[name] {
			return "", fmt.Errorf("sel() got multiple values for argument %q", name)
		}
		seen[name] = true

		switch name {
		case "selector":
			q.Selector = a.Value
		case "find":
			q.Find = a.Value
		case "replace":
			q.Replace = a.Value
		case "maxChars":
			n, err := strconv.Atoi(a.Value)
			if err != nil {
				return "", fmt.Errorf("sel() maxChars %q: %w", a.Value, err)
			}
			q.MaxChars = n
		default:
			return "", fmt.Errorf("sel() got an unexpected keyword argument %q", name)
		}
	}
	return o.s.Query(q)
}

// descriptorObject exposes rdf.KEY; unknown keys are empty.
type descriptorObject struct {
	d *descriptor.Descriptor
}

func (o descriptorObject) Attr(name string) (string, error) {
	v, _ := o.d.Get(name)
	return v, nil
}

func (o descriptorObject) Call([]template.Arg) (string, error) {
	return "", fmt.Errorf("%q is %w", DescriptorBinding, template.ErrNotCallable)
}

// pathObject exposes the source path and its parts.
type pathObject struct {
	doc *loader.Document
}

func (o pathObject) Attr(name string) (string, error) {
	switch name {
	case "":
		return o.doc.Path, nil
	case "name":
		return o.doc.Name, nil
	case "stem":
		return o.doc.Stem, nil
	case "suffix":
		return filepath.Ext(o.doc.Name), nil
	case "parent":
		return filepath.Dir(o.doc.Path), nil
	}
	return "", fmt.Errorf("%q has no attribute %q: %w", PathBinding, name, template.ErrUnknownAttribute)
}

func (o pathObject) Call([]template.Arg) (string, error) {
	return "", fmt.Errorf("%q is %w", PathBinding, template.ErrNotCallable)
}
