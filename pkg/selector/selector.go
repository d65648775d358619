package selector

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// DefaultMaxChars is the length cap, in characters, applied to every
// query result unless overridden.
const DefaultMaxChars = 160

var (
	// ErrInvalidSelector is returned when a query is not valid CSS.
	ErrInvalidSelector = errors.New("invalid selector")
	// ErrInvalidPattern is returned when a find pattern is not a valid
	// regular expression.
	ErrInvalidPattern = errors.New("invalid find pattern")
)

// Query describes a callable-style lookup: a CSS selector plus an optional
// regular expression substitution applied to the matched text.
type Query struct {
	Selector string
	Find     string // regular expression; empty disables substitution
	Replace  string // replacement, \1 and \g<name> group references allowed
	MaxChars int    // zero uses the selector's default
}

// Selector answers CSS selector queries against one parsed HTML document.
// It is read-only after New and queries may run in any order.
type Selector struct {
	doc      *goquery.Document
	maxChars int
}

// Option configures a Selector.
type Option func(*Selector)

// WithMaxChars sets the default length cap. Values below one are ignored.
func WithMaxChars(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.maxChars = n
		}
	}
}

// New parses markup. Empty markup is valid and matches nothing.
func New(markup string, opts ...Option) (*Selector, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	s := &Selector{doc: doc, maxChars: DefaultMaxChars}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MaxChars reports the default length cap.
func (s *Selector) MaxChars() int {
	return s.maxChars
}

// specials maps reserved attribute names to document metadata resolvers.
// Any other attribute name is a CSS selector.
var specials = map[string]func(*Selector) string{
	"__description": func(s *Selector) string { return s.metaContent("description") },
	"__keywords":    func(s *Selector) string { return s.metaContent("keywords") },
}

// Attr resolves attribute-style access such as sel.h1 or sel.title.
// A selector that matches nothing yields the empty string.
func (s *Selector) Attr(name string) (string, error) {
	if resolve, ok := specials[name]; ok {
		return s.finish(resolve(s), s.maxChars), nil
	}
	return s.Query(Query{Selector: name})
}

// Query resolves callable-style access such as sel('h2:first') or
// sel('h1', find='Tero', replace='Someone').
func (s *Selector) Query(q Query) (string, error) {
	sel, err := s.find(q.Selector)
	if err != nil {
		return "", err
	}

	text := joinText(sel)
	if q.Find != "" {
		re, err := regexp.Compile(q.Find)
		if err != nil {
			return "", fmt.Errorf("%w %q: %v", ErrInvalidPattern, q.Find, err)
		}
		text = re.ReplaceAllString(text, ExpandReplacement(q.Replace))
	}

	limit := q.MaxChars
	if limit <= 0 {
		limit = s.maxChars
	}
	return s.finish(text, limit), nil
}

func (s *Selector) metaContent(name string) string {
	content, _ := s.doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
	return content
}

func (s *Selector) finish(text string, limit int) string {
	return truncate(strings.TrimSpace(text), limit)
}

// positional matches a trailing jQuery positional filter, which CSS
// selector engines do not implement.
var positional = regexp.MustCompile(`:(first|last|eq\((-?\d+)\))\s*$`)

func (s *Selector) find(query string) (*goquery.Selection, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.doc.Selection.Slice(0, 0), nil
	}

	base, filter := query, ""
	index := 0
	if m := positional.FindStringSubmatchIndex(query); m != nil {
		base = strings.TrimSpace(query[:m[0]])
		filter = query[m[2]:m[3]]
		if m[4] >= 0 {
			index, _ = strconv.Atoi(query[m[4]:m[5]])
			filter = "eq"
		}
		if base == "" {
			base = "*"
		}
	}

	matcher, err := cascadia.Compile(base)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, query, err)
	}
	sel := s.doc.FindMatcher(matcher)

	switch filter {
	case "first":
		sel = sel.First()
	case "last":
		sel = sel.Last()
	case "eq":
		sel = sel.Eq(index)
	}
	return sel, nil
}

// blockElements break the surrounding text. Their content is separated
// from its neighbours by a space.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "tbody": true, "td": true,
	"tfoot": true, "th": true, "thead": true, "tr": true, "ul": true,
}

// joinText mirrors jQuery's .text(): each element's text with whitespace
// runs collapsed, non-empty texts joined by a single space. Text in
// sibling block elements is kept apart.
func joinText(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	var b strings.Builder
	for _, n := range sel.Nodes {
		b.Reset()
		nodeText(&b, n)
		if t := strings.Join(strings.Fields(b.String()), " "); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func nodeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}
	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodeText(b, c)
	}
	if block {
		b.WriteByte(' ')
	}
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// ExpandReplacement converts a replacement string using \1 or \g<name>
// group references into regexp's ${1} / ${name} template form. A literal
// dollar sign stays literal; ${...} references are passed through.
func ExpandReplacement(repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '$' && i+1 < len(repl) && repl[i+1] == '{':
			end := strings.IndexByte(repl[i:], '}')
			if end < 0 {
				b.WriteString("$$")
				continue
			}
			b.WriteString(repl[i : i+end+1])
			i += end
		case c == '$':
			b.WriteString("$$")
		case c == '\\' && i+1 < len(repl):
			next := repl[i+1]
			switch {
			case next >= '0' && next <= '9':
				j := i + 1
				for j < len(repl) && j < i+3 && repl[j] >= '0' && repl[j] <= '9' {
					j++
				}
				b.WriteString("${" + repl[i+1:j] + "}")
				i = j - 1
			case next == 'g' && i+2 < len(repl) && repl[i+2] == '<':
				end := strings.IndexByte(repl[i+3:], '>')
				if end < 0 {
					b.WriteByte(c)
					continue
				}
				b.WriteString("${" + repl[i+3:i+3+end] + "}")
				i += 3 + end
			case next == '\\':
				b.WriteByte('\\')
				i++
			case next == 'n':
				b.WriteByte('\n')
				i++
			case next == 't':
				b.WriteByte('\t')
				i++
			default:
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
