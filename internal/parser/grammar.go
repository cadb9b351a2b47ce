package parser

import (
	"github.com/alecthomas/participle/v2"

	"github.com/ritamzico/gqlc/internal/ast"
)

var gqlParser = participle.MustBuild[ast.Program](
	participle.Lexer(gqlLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)
