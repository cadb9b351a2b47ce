// Package ast holds the typed Abstract Syntax Tree produced by the parser.
// Every node embeds Position so a source.Loc can be recovered for
// diagnostics. The grammar structs double as the AST itself: participle
// tags are the grammar, the struct shape is what the analyzer walks.
package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/ritamzico/gqlc/internal/source"
)

// Position is embedded in every AST node participle parses. Participle
// populates Pos/EndPos automatically by field name and type.
type Position struct {
	Pos    lexer.Position
	EndPos lexer.Position
}

// Loc converts the captured lexer positions into a source.Loc against f.
func (p Position) Loc(f *source.File) source.Loc {
	return source.Loc{File: f, Start: p.Pos.Offset, End: p.EndPos.Offset}
}

// Program is the top-level AST node for one parsed source file: an ordered
// mix of schema declarations and query declarations.
type Program struct {
	Position
	Decls []*Decl `parser:"@@*"`
}

// Decl dispatches on the four kinds of top-level declaration.
type Decl struct {
	Position
	Node   *NodeDecl   `parser:"(  @@"`
	Edge   *EdgeDecl   `parser:"|  @@"`
	Vector *VectorDecl `parser:"|  @@"`
	Query  *QueryDecl  `parser:"|  @@ )"`
}

// FieldDef is one property definition inside a schema type body:
// [INDEX] name: type [= default].
type FieldDef struct {
	Position
	Indexed bool          `parser:"@\"INDEX\"?"`
	Name    string        `parser:"@Ident \":\""`
	Type    *FieldTypeRef `parser:"@@"`
	Default *Literal      `parser:"( \"=\" @@ )?"`
}

// FieldTypeRef is a reference to a scalar, Array<...> or Object<{...}> type.
type FieldTypeRef struct {
	Position
	Name   string      `parser:"(  @(\"String\"|\"Bool\"|\"I8\"|\"I16\"|\"I32\"|\"I64\"|\"U8\"|\"U16\"|\"U32\"|\"U64\"|\"U128\"|\"F32\"|\"F64\"|\"Date\"|\"Uuid\"|\"ID\")"`
	Array  *FieldTypeRef `parser:"| \"Array\" \"<\" @@ \">\""`
	Object []*FieldDef   `parser:"| \"Object\" \"<\" \"{\" @@ ( \",\" @@ )* \"}\" \">\" )"`
}

// Literal is a typed literal value as it appears in field defaults, add-node
// property values, and property-value positions throughout the grammar.
type Literal struct {
	Position
	Str   *string  `parser:"(  @String"`
	Float *float64 `parser:"|  @Float"`
	Int   *int64   `parser:"|  @Int"`
	True  bool     `parser:"|  @\"true\""`
	False bool     `parser:"|  @\"false\" )"`
}
