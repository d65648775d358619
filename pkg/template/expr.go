package template

import (
	"fmt"
	"strings"
)

// Arg is one call argument. Name is empty for positional arguments.
type Arg struct {
	Name  string
	Value string
}

// Expr is the content of one span. The accepted forms are
//
//	name
//	name.attr
//	name(arg, key='value', ...)
//
// where arguments are single or double quoted strings or integers.
type Expr struct {
	Source string
	Name   string
	Attr   string
	Dotted bool
	Call   bool
	Args   []Arg
}

// Eval resolves the expression against scope.
func (e *Expr) Eval(scope Scope) (string, error) {
	obj, isObj := scope.Objects[e.Name]
	val, isVar := scope.Vars[e.Name]

	switch {
	case e.Call:
		if isObj {
			return obj.Call(e.Args)
		}
		if isVar {
			return "", fmt.Errorf("%q is %w", e.Name, ErrNotCallable)
		}
	case e.Dotted:
		if isObj {
			return obj.Attr(e.Attr)
		}
		if isVar {
			return "", fmt.Errorf("%q has no attribute %q: %w", e.Name, e.Attr, ErrUnknownAttribute)
		}
	default:
		if isVar {
			return val, nil
		}
		if isObj {
			return obj.Attr("")
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownVariable, e.Name)
}

type exprParser struct {
	src    string
	pos    int
	offset int // position of src within the whole format string
}

func parseExpr(src string, offset int) (*Expr, error) {
	p := &exprParser{src: src, offset: offset}
	e := &Expr{Source: strings.TrimSpace(src)}

	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("empty expression")
	}

	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected a variable name, found %q", p.rest())
	}
	e.Name = name

	p.skipSpace()
	switch p.peek() {
	case '.':
		p.pos++
		p.skipSpace()
		attr := p.attrName()
		if attr == "" {
			return nil, p.errorf("expected an attribute name after %q", name+".")
		}
		e.Dotted = true
		e.Attr = attr
	case '(':
		p.pos++
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		e.Call = true
		e.Args = args
	}

	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.rest())
	}
	return e, nil
}

func (p *exprParser) args() ([]Arg, error) {
	var args []Arg
	seenKeyword := false

	for {
		p.skipSpace()
		if p.peek() == ')' {
			p.pos++
			return args, nil
		}
		if p.eof() {
			return nil, p.errorf("missing ')'")
		}

		var a Arg
		start := p.pos
		if id := p.ident(); id != "" {
			p.skipSpace()
			if p.peek() != '=' {
				return nil, p.errorf("argument %q must be a quoted string or number", id)
			}
			p.pos++
			p.skipSpace()
			a.Name = id
			seenKeyword = true
		} else if seenKeyword {
			p.pos = start
			return nil, p.errorf("positional argument follows keyword argument")
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		a.Value = v
		args = append(args, a)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
		default:
			return nil, p.errorf("expected ',' or ')', found %q", p.rest())
		}
	}
}

func (p *exprParser) value() (string, error) {
	c := p.peek()
	switch {
	case c == '\'' || c == '"':
		return p.str(c)
	case c == '-' || isDigit(c):
		start := p.pos
		p.pos++
		for !p.eof() && isDigit(p.peek()) {
			p.pos++
		}
		num := p.src[start:p.pos]
		if num == "-" {
			return "", p.errorf("expected a number")
		}
		return num, nil
	}
	return "", p.errorf("expected a quoted string or number, found %q", p.rest())
}

// str reads a quoted string. \\, \', \", \n and \t are unescaped; any
// other backslash sequence is kept verbatim so regular expressions such
// as '\s+' need no doubling.
func (p *exprParser) str(quote byte) (string, error) {
	start := p.pos
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\' && p.pos+1 < len(p.src):
			next := p.src[p.pos+1]
			switch next {
			case '\\', '\'', '"':
				b.WriteByte(next)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
			p.pos += 2
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	p.pos = start
	return "", p.errorf("unterminated string")
}

func (p *exprParser) ident() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if isLetter(c) || c == '_' || (p.pos > start && isDigit(c)) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// attrName reads an attribute name. Unlike identifiers it may contain
// hyphens and start with a digit, so CSS class and tag names like
// "my-class" work after a dot.
func (p *exprParser) attrName() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if isLetter(c) || isDigit(c) || c == '_' || c == '-' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *exprParser) skipSpace() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *exprParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *exprParser) rest() string {
	return p.src[p.pos:]
}

func (p *exprParser) errorf(format string, args ...any) error {
	return syntaxErrorf(p.offset+p.pos, format, args...)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
