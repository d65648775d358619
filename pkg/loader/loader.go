package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zip"
)

// Entry name suffixes searched for inside an archive.
const (
	MarkupSuffix     = "/index.html"
	DescriptorSuffix = "/index.rdf"
)

// ErrNotFound is returned when the document path does not exist or is not
// a regular file.
var ErrNotFound = errors.New("does not exist or is not a file")

// Kind tells how a document was read.
type Kind int

const (
	KindHTML Kind = iota
	KindArchive
)

func (k Kind) String() string {
	if k == KindArchive {
		return "archive"
	}
	return "html"
}

// Document is the raw text of one source file. For archives, Markup and
// Descriptor come from the index.html and index.rdf entries.
type Document struct {
	Path string
	Name string // base name, "tero.maff"
	Stem string // base name without the last suffix, "tero"
	Ext  string // last suffix without the dot, "maff"
	Kind Kind

	Markup        string
	Descriptor    string
	HasDescriptor bool

	MarkupEntry     string // archive member names, empty when absent
	DescriptorEntry string
}

// IsArchive reports whether path is read as a zip container (.maff, .zip).
func IsArchive(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".maff", ".zip":
		return true
	}
	return false
}

// Stat verifies that path names an existing regular file.
func Stat(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q %w", path, ErrNotFound)
		}
		return fmt.Errorf("stat %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%q %w", path, ErrNotFound)
	}
	return nil
}

// Load reads the document at path. Plain documents are decoded as UTF-8
// with invalid bytes replaced; archives contribute their first
// "*/index.html" and "*/index.rdf" entries, each of which may be missing.
func Load(path string) (*Document, error) {
	if err := Stat(path); err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	ext := filepath.Ext(name)
	doc := &Document{
		Path: path,
		Name: name,
		Stem: strings.TrimSuffix(name, ext),
		Ext:  strings.TrimPrefix(ext, "."),
	}

	if !IsArchive(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", path, err)
		}
		doc.Kind = KindHTML
		doc.Markup = decodeUTF8(data)
		return doc, nil
	}

	doc.Kind = KindArchive
	if err := readArchive(path, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func readArchive(path string, doc *Document) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open zip %q: %w", path, err)
	}
	defer r.Close()

	var markupFile, descriptorFile *zip.File
	for _, f := range r.File {
		switch {
		case markupFile == nil && strings.HasSuffix(f.Name, MarkupSuffix):
			markupFile = f
		case descriptorFile == nil && strings.HasSuffix(f.Name, DescriptorSuffix):
			descriptorFile = f
		}
	}

	if markupFile != nil {
		text, err := readEntry(markupFile)
		if err != nil {
			return err
		}
		doc.Markup = text
		doc.MarkupEntry = markupFile.Name
	}

	if descriptorFile != nil {
		text, err := readEntry(descriptorFile)
		if err != nil {
			return err
		}
		doc.Descriptor = text
		doc.HasDescriptor = true
		doc.DescriptorEntry = descriptorFile.Name
	}

	return nil
}

func readEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Name, err)
	}
	return decodeUTF8(data), nil
}

// decodeUTF8 converts data to a string, replacing every byte that is not
// part of a valid UTF-8 sequence with U+FFFD.
func decodeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.Write(data[:size])
		}
		data = data[size:]
	}
	return b.String()
}
