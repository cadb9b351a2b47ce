package ast

// QueryDecl: QUERY name(p1: T1, p2: T2) => <statements> RETURN n1: e1, n2: e2
type QueryDecl struct {
	Position
	Name       string       `parser:"\"QUERY\" @Ident"`
	Parameters []*Parameter `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\" \"=>\""`
	Body       []*Statement `parser:"@@*"`
	Returns    []*ReturnItem `parser:"\"RETURN\" @@ ( \",\" @@ )*"`
}

// Parameter is one query input: name: type, optionally marked "?".
type Parameter struct {
	Position
	Name       string        `parser:"@Ident \":\""`
	Type       *FieldTypeRef `parser:"@@"`
	IsOptional bool          `parser:"@\"?\"?"`
}

// ReturnItem is one `name: expr` entry in a query's RETURN list.
type ReturnItem struct {
	Position
	Name string `parser:"@Ident \":\""`
	Expr *Expr  `parser:"@@"`
}

// Statement dispatches on the four statement forms a query body can contain.
type Statement struct {
	Position
	Assign *AssignStmt `parser:"(  @@"`
	For    *ForStmt    `parser:"|  @@"`
	Drop   *DropStmt   `parser:"|  @@"`
	Expr   *ExprStmt   `parser:"|  @@ )"`
}

// AssignStmt: x <- expr
type AssignStmt struct {
	Position
	Name string `parser:"@Ident \"<-\""`
	Expr *Expr  `parser:"@@"`
}

// ForStmt: FOR v1, v2 IN iterable { ... }
type ForStmt struct {
	Position
	Vars     []string     `parser:"\"FOR\" @Ident ( \",\" @Ident )*"`
	Iterable *Expr        `parser:"\"IN\" @@"`
	Body     []*Statement `parser:"\"{\" @@* \"}\""`
}

// DropStmt: DROP <traversal>
type DropStmt struct {
	Position
	Expr *Expr `parser:"\"DROP\" @@"`
}

// ExprStmt is a bare expression used for side effects (e.g. a mutation
// whose result is discarded).
type ExprStmt struct {
	Position
	Expr *Expr `parser:"@@"`
}
