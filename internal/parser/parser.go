package parser

import (
	"github.com/ritamzico/gqlc/internal/ast"
	"github.com/ritamzico/gqlc/internal/source"
)

// Parse lexes and parses file's contents into a Program. On a syntax error
// it returns a ParseError carrying the offending source.Loc rather than a
// bare participle error, so callers can render it alongside semantic
// diagnostics.
func Parse(file *source.File) (*ast.Program, error) {
	prog, err := gqlParser.ParseString(file.Path, file.Text)
	if err != nil {
		return nil, enrich(file, err)
	}
	return prog, nil
}
