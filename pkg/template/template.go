package template

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax is returned by Parse for malformed format strings.
	ErrSyntax = errors.New("template syntax error")
	// ErrUnknownVariable is returned when a span names a variable that is
	// not bound in the scope.
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrUnknownAttribute is returned for dotted access on a plain variable.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrNotCallable is returned when a call targets a plain variable.
	ErrNotCallable = errors.New("not callable")
)

// Object is a named binding that supports dotted access (name.attr) and,
// optionally, call syntax (name(args)). An Object returns the empty string
// for attributes it knows about but has no value for.
type Object interface {
	Attr(name string) (string, error)
	Call(args []Arg) (string, error)
}

// Scope is the set of bindings visible while rendering one template.
type Scope struct {
	Vars    map[string]string
	Objects map[string]Object
}

// Template is a parsed format string: literal text interleaved with
// brace-delimited expressions.
type Template struct {
	source string
	nodes  []node
}

type node struct {
	text string
	expr *Expr
}

// AutoWrap wraps format in a single pair of braces when it contains no
// opening brace at all, so "h1" means the variable h1 rather than the
// literal text. The second result reports whether wrapping happened.
func AutoWrap(format string) (string, bool) {
	if strings.Contains(format, "{") {
		return format, false
	}
	return "{" + format + "}", true
}

// Parse parses format. Literal braces are written doubled, "{{" and "}}".
func Parse(format string) (*Template, error) {
	t := &Template{source: format}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.nodes = append(t.nodes, node{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end, err := spanEnd(format, i+1)
			if err != nil {
				return nil, err
			}
			expr, err := parseExpr(format[i+1:end], i+1)
			if err != nil {
				return nil, err
			}
			flush()
			t.nodes = append(t.nodes, node{expr: expr})
			i = end
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, syntaxErrorf(i, "single '}' is not allowed, use '}}'")
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return t, nil
}

// MustParse is like Parse but panics on error. It is meant for fixed
// expressions known at compile time.
func MustParse(format string) *Template {
	t, err := Parse(format)
	if err != nil {
		panic(err)
	}
	return t
}

// spanEnd returns the index of the brace closing the span that starts at
// start. Braces inside quoted strings do not count.
func spanEnd(s string, start int) (int, error) {
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '\'' || c == '"':
			quote = c
		case c == '{':
			return 0, syntaxErrorf(i, "nested '{' inside expression")
		case c == '}':
			return i, nil
		}
	}
	if quote != 0 {
		return 0, syntaxErrorf(start, "unterminated string in expression")
	}
	return 0, syntaxErrorf(start-1, "expression is missing its closing '}'")
}

// String returns the source format string.
func (t *Template) String() string {
	return t.source
}

// Expressions returns the parsed expressions in order of appearance.
func (t *Template) Expressions() []*Expr {
	var out []*Expr
	for _, n := range t.nodes {
		if n.expr != nil {
			out = append(out, n.expr)
		}
	}
	return out
}

// Execute renders the template against scope.
func (t *Template) Execute(scope Scope) (string, error) {
	var b strings.Builder
	for _, n := range t.nodes {
		if n.expr == nil {
			b.WriteString(n.text)
			continue
		}
		v, err := n.expr.Eval(scope)
		if err != nil {
			return "", fmt.Errorf("evaluate {%s}: %w", n.expr.Source, err)
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

// Render parses and executes format in one step.
func Render(format string, scope Scope) (string, error) {
	t, err := Parse(format)
	if err != nil {
		return "", err
	}
	return t.Execute(scope)
}

func syntaxErrorf(offset int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, offset, fmt.Sprintf(format, args...))
}
