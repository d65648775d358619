package descriptor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Keys lists the descriptor entries recognized by Parse, in lookup order.
var Keys = []string{"title", "originalurl", "archivetime", "indexfilename"}

// ErrMalformed is returned when a recognized descriptor value cannot be
// interpreted (an unparsable archive time or original URL).
var ErrMalformed = errors.New("malformed descriptor")

// ArchivedLayout is the date part of the Archived field; the ISO week and
// the abbreviated weekday are appended as " wWW Mon".
const ArchivedLayout = "2006-01-02"

// Descriptor holds the key/value pairs of a MAFF index.rdf file plus the
// fields derived from them. Derived fields are computed once by Parse and
// are only meaningful when their Has* flag is set.
type Descriptor struct {
	Values map[string]string

	ArchiveTime    time.Time // parsed from "archivetime"
	Archived       string    // "2024-06-15 w24 Sat"
	Year           int
	HasArchiveTime bool

	Host    string // network location of "originalurl"
	HasHost bool
}

// Empty returns a descriptor without any values, as produced for a
// document that has no descriptor entry.
func Empty() *Descriptor {
	return &Descriptor{Values: make(map[string]string)}
}

// Parse reads a descriptor tree. Each grandchild of the root element whose
// local name is one of Keys contributes its first attribute value; the
// namespace prefix of the element is ignored. Empty input yields an empty
// descriptor.
func Parse(data string) (*Descriptor, error) {
	d := Empty()
	if strings.TrimSpace(data) == "" {
		return d, nil
	}

	if err := d.readValues(data); err != nil {
		return nil, err
	}
	if err := d.derive(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Descriptor) readValues(data string) error {
	dec := xml.NewDecoder(strings.NewReader(data))
	dec.Strict = false

	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse descriptor xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			// root = 1, child = 2, grandchild = 3
			if depth != 3 || !isKey(t.Name.Local) {
				continue
			}
			if v, ok := firstAttr(t.Attr); ok {
				d.Values[t.Name.Local] = v
			}
		case xml.EndElement:
			depth--
		}
	}
}

func (d *Descriptor) derive() error {
	if raw, ok := d.Values["archivetime"]; ok {
		t, err := mail.ParseDate(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: archivetime %q: %v", ErrMalformed, raw, err)
		}
		_, week := t.ISOWeek()
		d.ArchiveTime = t
		d.Archived = fmt.Sprintf("%s w%02d %s", t.Format(ArchivedLayout), week, t.Format("Mon"))
		d.Year = t.Year()
		d.HasArchiveTime = true
	}

	if raw, ok := d.Values["originalurl"]; ok {
		host, err := hostOf(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: originalurl %q: %v", ErrMalformed, raw, err)
		}
		d.Host = host
		d.HasHost = true
	}

	return nil
}

// Get resolves a descriptor name: recognized keys first, then the derived
// fields. Unknown or absent names return ("", false).
func (d *Descriptor) Get(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	if v, ok := d.Values[name]; ok {
		return v, true
	}

	switch name {
	case "archived":
		if d.HasArchiveTime {
			return d.Archived, true
		}
	case "year":
		if d.HasArchiveTime {
			return strconv.Itoa(d.Year), true
		}
	case "archiveDatetime":
		if d.HasArchiveTime {
			return d.ArchiveTime.Format(time.RFC3339), true
		}
	case "host":
		if d.HasHost {
			return d.Host, true
		}
	}
	return "", false
}

// Len reports the number of recognized keys found.
func (d *Descriptor) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Values)
}

func isKey(name string) bool {
	for _, k := range Keys {
		if k == name {
			return true
		}
	}
	return false
}

// firstAttr returns the value of the first attribute that is not a
// namespace declaration.
func firstAttr(attrs []xml.Attr) (string, bool) {
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		return a.Value, true
	}
	return "", false
}

// netloc rebuilds the authority part of u, including user info and port.
// hostOf returns the network location of raw. Only the scheme and
// authority have to be well formed: a bad escape in the path, query or
// fragment does not hide the host.
func hostOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err == nil {
		return netloc(u), nil
	}

	i := strings.Index(raw, "//")
	if i < 0 || (i > 0 && raw[i-1] != ':') {
		// no authority, so nothing left that could be malformed
		return "", nil
	}
	head := raw[:i+2]
	rest := raw[i+2:]
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		rest = rest[:j]
	}
	u, err = url.Parse(head + rest)
	if err != nil {
		return "", err
	}
	return netloc(u), nil
}

func netloc(u *url.URL) string {
	if u.User != nil {
		return u.User.String() + "@" + u.Host
	}
	return u.Host
}
