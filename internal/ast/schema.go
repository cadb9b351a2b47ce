package ast

// NodeDecl: N::Name { field: Type, ... }
type NodeDecl struct {
	Position
	Name   string      `parser:"\"N\" \"::\" @Ident"`
	Fields []*FieldDef `parser:"\"{\" ( @@ ( \",\" @@ )* \",\"? )? \"}\""`
}

// EdgeDecl: E::Name [UNIQUE] { From: A, To: B, Properties: { ... } }
type EdgeDecl struct {
	Position
	Name       string      `parser:"\"E\" \"::\" @Ident"`
	Unique     bool        `parser:"@\"UNIQUE\"?"`
	From       string      `parser:"\"{\" \"From\" \":\" @Ident \",\""`
	To         string      `parser:"\"To\" \":\" @Ident"`
	Properties []*FieldDef `parser:"( \",\" \"Properties\" \":\" \"{\" ( @@ ( \",\" @@ )* \",\"? )? \"}\" )? \",\"? \"}\""`
}

// VectorDecl: V::Name { field: Type, ... }
type VectorDecl struct {
	Position
	Name   string      `parser:"\"V\" \"::\" @Ident"`
	Fields []*FieldDef `parser:"\"{\" ( @@ ( \",\" @@ )* \",\"? )? \"}\""`
}
