package formatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/kataras/hoto/pkg/extractor"
)

var sample = []extractor.Suggestion{
	{Expr: "sel.h1", Value: "Tero's Homepage"},
	{Expr: "rdf.nonexistingkey"},
	{Expr: "sel('h1'", Err: errors.New("bad span")},
}

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		in   extractor.Suggestion
		want string
	}{
		{"found", sample[0], "Tero's Homepage"},
		{"empty", sample[1], NotFound},
		{"error", sample[2], "(error: bad span)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.in); got != tt.want {
				t.Errorf("Value() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToLines(t *testing.T) {
	got := ToLines("/tmp/tero.html", sample)
	want := "## /tmp/tero.html\n" +
		"Tero's Homepage - sel.h1\n" +
		"(not found) - rdf.nonexistingkey\n" +
		"(error: bad span) - sel('h1'\n"
	if got != want {
		t.Errorf("ToLines() = %q, want %q", got, want)
	}
}

func TestToTable(t *testing.T) {
	got := ToTable("/tmp/tero.html", sample)

	for _, want := range []string{"/tmp/tero.html", "Expression", "{sel.h1}", "Tero's Homepage", NotFound, "╭"} {
		if !strings.Contains(got, want) {
			t.Errorf("ToTable() missing %q in:\n%s", want, got)
		}
	}
}

func TestToMarkdown(t *testing.T) {
	got := ToMarkdown("/tmp/tero.html", sample)

	if !strings.HasPrefix(got, "## /tmp/tero.html\n\n|") {
		t.Errorf("ToMarkdown() heading missing:\n%s", got)
	}
	if !strings.Contains(got, "| {sel.h1} | Tero's Homepage |") {
		t.Errorf("ToMarkdown() row missing:\n%s", got)
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		ok      bool
		wantErr bool
	}{
		{"", StylePlain, false, false},
		{"auto", StylePlain, false, false},
		{"plain", StylePlain, true, false},
		{"TABLE", StyleTable, true, false},
		{"md", StyleMarkdown, true, false},
		{"html", StylePlain, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok, err := ParseStyle(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseStyle(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestReportDispatch(t *testing.T) {
	if got := Report("p", sample, StylePlain); got != ToLines("p", sample) {
		t.Errorf("Report(plain) = %q", got)
	}
	if got := Report("p", sample, StyleMarkdown); got != ToMarkdown("p", sample) {
		t.Errorf("Report(markdown) = %q", got)
	}
}
