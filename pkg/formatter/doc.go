// Package formatter renders the suggestion report shown by hoto --suggest.
package formatter
