// Package parser turns source text into an *ast.Program. The grammar
// itself lives as participle struct tags on the internal/ast types; this
// package only owns the lexer rules and the compiled parser instance.
package parser

import "github.com/alecthomas/participle/v2/lexer"

// gqlLexer tokenizes GQL source. Order matters: DoubleColon must be tried
// before Punct's lone ":" alternative, and Float before Int, so the
// greediest pattern always wins.
var gqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Arrow", Pattern: `=>`},
	{Name: "Assign", Pattern: `<-`},
	{Name: "DoubleColon", Pattern: `::`},
	{Name: "Float", Pattern: `[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	// Statement-structure keywords get their own token class so a bare
	// expression statement can never swallow them as identifiers (the
	// grammar still matches them as literals by value).
	{Name: "Keyword", Pattern: `(?:QUERY|RETURN|DROP|FOR|IN)\b`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(){}\[\],:<>!|?=]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
