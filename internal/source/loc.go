// Package source carries file text and byte-offset locations for the
// parser's AST and the diagnostics reported against it. IR nodes carry no
// location.
package source

import "fmt"

// File is one GQL source file as handed to the compiler.
type File struct {
	Path string
	Text string
}

// Loc is a (file, byte-offset span) pair. Every AST node owns one; IR
// nodes do not.
type Loc struct {
	File  *File
	Start int
	End   int
}

// Span returns the source text covered by the location.
func (l Loc) Span() string {
	if l.File == nil || l.Start < 0 || l.End > len(l.File.Text) || l.Start > l.End {
		return ""
	}
	return l.File.Text[l.Start:l.End]
}

func (l Loc) String() string {
	path := "<unknown>"
	if l.File != nil {
		path = l.File.Path
	}
	return fmt.Sprintf("%s:%d-%d", path, l.Start, l.End)
}

// Valid reports whether l carries a real file and a well-formed byte range.
func (l Loc) Valid() bool {
	return l.File != nil && l.Start >= 0 && l.End >= l.Start && l.End <= len(l.File.Text)
}
