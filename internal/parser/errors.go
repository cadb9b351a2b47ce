package parser

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	participleLexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/ritamzico/gqlc/internal/source"
)

// ParseError is a syntax error produced while building the AST, carrying a
// source.Loc the way every later-stage diagnostic does.
type ParseError struct {
	Loc     source.Loc
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Loc, e.Message)
}

// enrich converts a raw participle error into a ParseError positioned
// against file, falling back to a file-level location when the error
// carries no participle position (e.g. a lexer-level failure).
func enrich(file *source.File, err error) error {
	if err == nil {
		return nil
	}
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return ParseError{
			Loc:     locFromPosition(file, pos),
			Message: perr.Message(),
		}
	}
	return ParseError{Loc: source.Loc{File: file}, Message: err.Error()}
}

func locFromPosition(file *source.File, pos participleLexer.Position) source.Loc {
	return source.Loc{File: file, Start: pos.Offset, End: pos.Offset}
}
