package filename

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// unsafeReplacer maps characters that would split or confuse a path
// component to underscores.
var unsafeReplacer = strings.NewReplacer(
	":", "_",
	"/", "_",
	"[", "_",
	"]", "_",
	".", "_",
)

// Clean turns an arbitrary rendered string into a filesystem-safe name.
// A trailing ".ext" is stripped first and re-appended last, so the
// extension survives the character replacement verbatim.
// Accented letters are decomposed to their plain ASCII base letter and any
// character without an ASCII form is dropped.
// Clean accepts any input, including the empty string, and is idempotent.
func Clean(s, ext string) string {
	if ext != "" {
		s = strings.TrimSuffix(s, "."+ext)
	}

	s = toASCII(s)
	s = unsafeReplacer.Replace(s)

	if ext != "" {
		s += "." + ext
	}
	return s
}

// toASCII applies compatibility decomposition (NFKD) and removes every
// rune outside the ASCII range, so "Äänekoski" becomes "Aanekoski".
func toASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		// Unreachable with this chain; keep Clean total regardless.
		var b strings.Builder
		for _, r := range s {
			if r <= unicode.MaxASCII {
				b.WriteRune(r)
			}
		}
		return b.String()
	}
	return out
}
