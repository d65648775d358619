package hoto

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kataras/hoto/pkg/extractor"
	"github.com/kataras/hoto/pkg/filename"
	"github.com/kataras/hoto/pkg/loader"
	"github.com/kataras/hoto/pkg/rename"
	"github.com/kataras/hoto/pkg/template"
)

// Version is the hoto release.
const Version = "0.3.0"

// DefaultFormat renders the top heading and keeps the existing suffix.
const DefaultFormat = "{h1}.{ext}"

// ErrEmptyName is returned in rename mode when the format renders to a
// name with nothing but the extension left.
var ErrEmptyName = errors.New("rendered name is empty")

// Options configures processing.
type Options struct {
	Format       string // template, DefaultFormat when empty
	Suggest      bool   // evaluate the suggestion catalog instead of Format
	Rename       bool
	DryRun       bool // plan renames without moving anything, implies Rename
	Overwrite    bool // used by the default Renamer
	MaxChars     int  // selector result cap, zero uses the selector default
	SuggestExtra []string
	Renamer      rename.Renamer // nil = rename.OS{Overwrite: Overwrite}
	Logger       Logger         // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result is the outcome for one document.
type Result struct {
	Path    string // absolute or as given
	Output  string // rendered format, before sanitizing
	Wrapped bool   // the format had no braces and was wrapped in one span

	NewPath string // rename target, set in rename and dry-run modes
	Renamed bool   // the file was actually moved

	Suggestions []extractor.Suggestion // suggest mode only
}

func (o *Options) logDebug(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Debugf(f, a...)
	}
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) applyDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.DryRun {
		o.Rename = true
	}
	if o.Renamer == nil {
		o.Renamer = rename.OS{Overwrite: o.Overwrite}
	}
}

// Process loads the document at path and renders it. Depending on opts it
// returns the rendered string, the suggestion report, or the rename it
// performed (or would perform, in dry-run mode).
func Process(path string, opts Options) (*Result, error) {
	opts.applyDefaults()
	return process(path, &opts, nil)
}

func process(path string, opts *Options, claims *rename.Claims) (*Result, error) {
	opts.logDebug("Loading %s", path)
	doc, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	if doc.Kind == loader.KindArchive {
		opts.logDebug("Archive entries: markup %q, descriptor %q", doc.MarkupEntry, doc.DescriptorEntry)
		if doc.MarkupEntry == "" {
			opts.logWarn("%s: no %s entry, tag variables will be empty", doc.Name, strings.TrimPrefix(loader.MarkupSuffix, "/"))
		}
	}

	e, err := extractor.New(doc, extractor.Options{MaxChars: opts.MaxChars})
	if err != nil {
		return nil, err
	}
	opts.logDebug("Variables for %s: %v", doc.Name, e.Vars)

	res := &Result{Path: path}

	if opts.Suggest {
		catalog := append(append([]string{}, extractor.DefaultSuggestions...), opts.SuggestExtra...)
		res.Suggestions = e.Suggest(catalog)
		return res, nil
	}

	format, wrapped := template.AutoWrap(opts.Format)
	if wrapped {
		opts.logInfo("Format %q has no braces, using %q", opts.Format, format)
	}
	res.Wrapped = wrapped

	res.Output, err = e.Render(format)
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", doc.Name, err)
	}

	if !opts.Rename {
		return res, nil
	}

	name := filename.Clean(res.Output, doc.Ext)
	if stem := strings.TrimSuffix(name, "."+doc.Ext); strings.TrimSpace(stem) == "" || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("rename %q with format %q: %w", doc.Name, opts.Format, ErrEmptyName)
	}
	res.NewPath = filepath.Join(filepath.Dir(path), name)

	if claims != nil {
		if err := claims.Claim(path, res.NewPath); err != nil {
			return nil, err
		}
	}

	if opts.DryRun {
		opts.logDebug("Dry run, not moving %s", path)
		return res, nil
	}

	if res.NewPath == filepath.Clean(path) {
		opts.logInfo("%s already has the rendered name", doc.Name)
		return res, nil
	}

	if err := opts.Renamer.Rename(path, res.NewPath); err != nil {
		return nil, err
	}
	res.Renamed = true
	return res, nil
}

// Run processes paths one at a time and passes each result to emit. The
// first error stops the run. In rename mode no two paths may be given the
// same target.
func Run(paths []string, opts Options, emit func(*Result)) error {
	opts.applyDefaults()

	var claims *rename.Claims
	if opts.Rename {
		claims = rename.NewClaims()
	}

	opts.logInfo("Processing %d file(s)", len(paths))
	for _, path := range paths {
		res, err := process(path, &opts, claims)
		if err != nil {
			return err
		}
		if emit != nil {
			emit(res)
		}
	}
	return nil
}
