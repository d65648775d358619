// Package template renders format strings such as "{h1}.{ext}" or
// "{stem} - {sel('h2:first')}" against a set of named bindings.
//
// The language is deliberately small. A span holds exactly one of
//
//	name                       a plain variable
//	name.attr                  attribute lookup on an object binding
//	name('arg', key='value')   a call on an object binding
//
// Text outside spans is copied verbatim; "{{" and "}}" produce literal
// braces. Nothing else is evaluated.
package template
