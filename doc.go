// Package hoto renames saved web pages after their own content. It reads a
// plain HTML document, or a MAFF archive holding index.html and its
// index.rdf descriptor, and renders a format string such as
// "{h1}.{ext}" against the page's tags and archive metadata.
//
// The CLI lives in cmd/hoto; this root package exposes the same pipeline
// as a Go API.
//
// # Quick start
//
//	res, err := hoto.Process("page.maff", hoto.Options{
//	    Format: "{archived} {title}.{ext}",
//	    Rename: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.NewPath)
//
// # Format strings
//
// Text outside braces is copied. Inside braces an expression names a
// variable or an object binding:
//
//	{h1} {title} {ext} {year} {filename} {stem} {archived} {host}
//	{sel.h2}                               all h2 text, joined with spaces
//	{sel('h2:first')}                      CSS selector with jQuery positionals
//	{sel('h1', find='Tero', replace='X')}  regexp substitution on the text
//	{rdf.originalurl} {rdf.archived}       MAFF descriptor values
//	{path.name} {path.suffix}              source path parts
//
// Values that are not present render as the empty string. A format with no
// braces at all is treated as a single expression, so "title" works like
// "{title}"; [Result.Wrapped] reports when that happened.
//
// # Renaming
//
// In rename mode the rendered text is made filesystem-safe (ASCII only, no
// path separators or dots except before the extension) and the file is
// moved within its directory. Set [Options.DryRun] to compute the target
// without touching the file. [Run] refuses a batch in which two files would
// land on the same name.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
package hoto
