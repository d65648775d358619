package formatter

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kataras/hoto/pkg/extractor"
)

// NotFound is shown for expressions that rendered to the empty string.
const NotFound = "(not found)"

// Style selects how a suggestion report is laid out.
type Style int

const (
	// StylePlain prints "value - expression" lines, one per suggestion.
	StylePlain Style = iota
	// StyleTable draws a rounded box table, for terminals.
	StyleTable
	// StyleMarkdown renders a markdown table.
	StyleMarkdown
)

// ParseStyle maps a --report flag value to a Style. The empty string and
// "auto" return ok=false so the caller can pick by terminal detection.
func ParseStyle(s string) (Style, bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StylePlain, false, nil
	case "plain":
		return StylePlain, true, nil
	case "table":
		return StyleTable, true, nil
	case "markdown", "md":
		return StyleMarkdown, true, nil
	}
	return StylePlain, false, fmt.Errorf("unknown report style %q (must be auto, plain, table or markdown)", s)
}

// Value returns the display text of one suggestion.
func Value(s extractor.Suggestion) string {
	switch {
	case s.Err != nil:
		return fmt.Sprintf("(error: %v)", s.Err)
	case s.Value == "":
		return NotFound
	}
	return s.Value
}

// Report renders the suggestions for the document at path.
func Report(path string, suggestions []extractor.Suggestion, style Style) string {
	switch style {
	case StyleTable:
		return ToTable(path, suggestions)
	case StyleMarkdown:
		return ToMarkdown(path, suggestions)
	}
	return ToLines(path, suggestions)
}

// ToLines renders a "## path" heading followed by "value - expression"
// lines. The output is stable and easy to grep.
func ToLines(path string, suggestions []extractor.Suggestion) string {
	var sb strings.Builder
	sb.WriteString("## " + path + "\n")
	for _, s := range suggestions {
		sb.WriteString(Value(s) + " - " + s.Expr + "\n")
	}
	return sb.String()
}

// ToTable renders the suggestions as a box table titled with path.
func ToTable(path string, suggestions []extractor.Suggestion) string {
	tw := newWriter(path, suggestions)
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 80},
	})
	return tw.Render() + "\n"
}

// ToMarkdown renders the suggestions as a markdown section.
func ToMarkdown(path string, suggestions []extractor.Suggestion) string {
	tw := newWriter("", suggestions)
	return "## " + path + "\n\n" + tw.RenderMarkdown() + "\n"
}

func newWriter(title string, suggestions []extractor.Suggestion) table.Writer {
	tw := table.NewWriter()
	if title != "" {
		tw.SetTitle(title)
	}
	tw.AppendHeader(table.Row{"Expression", "Value"})
	for _, s := range suggestions {
		tw.AppendRow(table.Row{"{" + s.Expr + "}", Value(s)})
	}
	return tw
}
