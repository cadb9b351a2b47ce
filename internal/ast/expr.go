package ast

// Expr is a traversal expression: a start value followed by zero or more
// "::"-separated steps. A bare literal or identifier
// with no steps is simply an Expr whose Steps list is empty.
type Expr struct {
	Position
	Start *StartNode `parser:"@@"`
	Steps []*Step    `parser:"( \"::\" @@ )*"`
}

// StartNode dispatches on every form a traversal (or bare expression) can
// begin with.
type StartNode struct {
	Position
	Empty        bool               `parser:"(  @\"EMPTY\""`
	Float        *float64           `parser:"|  @Float"`
	Int          *int64             `parser:"|  @Int"`
	Str          *string            `parser:"|  @String"`
	True         bool               `parser:"|  @\"true\""`
	False        bool               `parser:"|  @\"false\""`
	Array        *ArrayLit          `parser:"|  @@"`
	Not          *NotExpr           `parser:"|  \"NOT\" @@"`
	And          *BoolCombinator    `parser:"|  \"AND\" @@"`
	Or           *BoolCombinator    `parser:"|  \"OR\" @@"`
	Exists       *ExistsExpr        `parser:"|  @@"`
	Math         *MathCallExpr      `parser:"|  @@"`
	Embed        *EmbedCall         `parser:"|  @@"`
	AddNode      *AddNodeExpr       `parser:"|  @@"`
	AddEdge      *AddEdgeExpr       `parser:"|  @@"`
	AddVector    *AddVectorExpr     `parser:"|  @@"`
	SearchVector *SearchVectorExpr  `parser:"|  @@"`
	SearchHybrid *SearchHybridExpr  `parser:"|  @@"`
	SearchBM25   *SearchBM25Expr    `parser:"|  @@"`
	PPR          *PPRExpr           `parser:"|  @@"`
	NodeByType   *NodeByTypeStart   `parser:"|  @@"`
	EdgeByType   *EdgeByTypeStart   `parser:"|  @@"`
	VectorByType *VectorByTypeStart `parser:"|  @@"`
	Anonymous    bool               `parser:"|  @\"_\""`
	Ident        *string            `parser:"|  @Ident )"`
}

// ArrayLit: [ e1, e2, ... ]
type ArrayLit struct {
	Position
	Elems []*Expr `parser:"\"[\" ( @@ ( \",\" @@ )* )? \"]\""`
}

// NotExpr: NOT(expr)
type NotExpr struct {
	Position
	Inner *Expr `parser:"\"(\" @@ \")\""`
}

// BoolCombinator is the parenthesized expression list shared by AND(...)
// and OR(...).
type BoolCombinator struct {
	Position
	Exprs []*Expr `parser:"\"(\" @@ ( \",\" @@ )* \")\""`
}

// ExistsExpr: EXISTS(traversal)
type ExistsExpr struct {
	Position
	Inner *Expr `parser:"\"EXISTS\" \"(\" @@ \")\""`
}

// MathCallExpr: a named math function applied to argument expressions.
type MathCallExpr struct {
	Position
	Fn   string  `parser:"@(\"SIN\"|\"COS\"|\"SQRT\"|\"ABS\"|\"POW\"|\"LOG\"|\"EXP\"|\"ROUND\"|\"FLOOR\"|\"CEIL\")"`
	Args []*Expr `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
}

// EmbedCall: Embed(identifier | string-literal), hoisted by the analyzer
// into a deferred embedding call that runs before the transaction opens.
type EmbedCall struct {
	Position
	Ident *string `parser:"\"Embed\" \"(\" (  @Ident"`
	Str   *string `parser:"                |  @String )  \")\""`
}

// IDArgValue is a simple identifier-or-literal argument, used for AddE's
// From(...)/To(...) and for by-value node/edge/vector lookups.
type IDArgValue struct {
	Position
	Ident *string  `parser:"(  @Ident"`
	Lit   *Literal `parser:"|  @@ )"`
}

// ByIndexArg: {field}(value), a by-index traversal start.
type ByIndexArg struct {
	Position
	Field string      `parser:"\"{\" @Ident \"}\""`
	Value *IDArgValue `parser:"\"(\" @@ \")\""`
}

// IDArg is the argument of a N<Type>(...)/E<Type>(...)/V<Type>(...) start.
type IDArg struct {
	Position
	ByIndex *ByIndexArg `parser:"(  @@"`
	Value   *IDArgValue `parser:"|  @@ )"`
}

// NodeByTypeStart: N<Type> or N<Type>(id | {field}(value))
type NodeByTypeStart struct {
	Position
	Type string `parser:"\"N\" \"<\" @Ident \">\""`
	ID   *IDArg `parser:"( \"(\" @@ \")\" )?"`
}

// EdgeByTypeStart: E<Type> or E<Type>(id)
type EdgeByTypeStart struct {
	Position
	Type string `parser:"\"E\" \"<\" @Ident \">\""`
	ID   *IDArg `parser:"( \"(\" @@ \")\" )?"`
}

// VectorByTypeStart: V<Type> or V<Type>(id)
type VectorByTypeStart struct {
	Position
	Type string `parser:"\"V\" \"<\" @Ident \">\""`
	ID   *IDArg `parser:"( \"(\" @@ \")\" )?"`
}

// PropAssign is one `name` or `name: value` entry inside an object literal,
// a projection, a closure body, or an UPDATE/UPSERT field set. A bare name
// with no value is an implicit/schema field reference; a name with a value
// is a remap, literal, or nested traversal.
type PropAssign struct {
	Position
	Name  string `parser:"@Ident"`
	Value *Expr  `parser:"( \":\" @@ )?"`
}

// AddNodeExpr: AddN<Type>({ field: value, ... })
type AddNodeExpr struct {
	Position
	Type  string        `parser:"\"AddN\" \"<\" @Ident \">\" \"(\""`
	Props []*PropAssign `parser:"( \"{\" ( @@ ( \",\" @@ )* )? \"}\" )? \")\""`
}

// AddEdgeExpr: AddE<Type>(From(x), To(y)[, { props }])
type AddEdgeExpr struct {
	Position
	Type  string        `parser:"\"AddE\" \"<\" @Ident \">\" \"(\" \"From\" \"(\""`
	From  *IDArgValue   `parser:"@@ \")\" \",\" \"To\" \"(\""`
	To    *IDArgValue   `parser:"@@ \")\""`
	Props []*PropAssign `parser:"( \",\" \"{\" ( @@ ( \",\" @@ )* )? \"}\" )? \")\""`
}

// AddVectorExpr: AddV<Type>({ field: value, ... })
type AddVectorExpr struct {
	Position
	Type  string        `parser:"\"AddV\" \"<\" @Ident \">\" \"(\""`
	Props []*PropAssign `parser:"( \"{\" ( @@ ( \",\" @@ )* )? \"}\" )? \")\""`
}

// Arg is a positional or named argument to a search/rerank call.
type Arg struct {
	Position
	Name  *string `parser:"( @Ident \":\" )?"`
	Value *Expr   `parser:"@@"`
}

// SearchVectorExpr: SearchV<Type>(args...)
type SearchVectorExpr struct {
	Position
	Type string `parser:"\"SearchV\" \"<\" @Ident \">\" \"(\""`
	Args []*Arg `parser:"( @@ ( \",\" @@ )* )? \")\""`
}

// SearchHybridExpr: SearchHybrid<Type>(args...)
type SearchHybridExpr struct {
	Position
	Type string `parser:"\"SearchHybrid\" \"<\" @Ident \">\" \"(\""`
	Args []*Arg `parser:"( @@ ( \",\" @@ )* )? \")\""`
}

// SearchBM25Expr: SearchBM25<Type>(args...)
type SearchBM25Expr struct {
	Position
	Type string `parser:"\"SearchBM25\" \"<\" @Ident \">\" \"(\""`
	Args []*Arg `parser:"( @@ ( \",\" @@ )* )? \")\""`
}

// PPRExpr: PPR(args...), personalized PageRank.
type PPRExpr struct {
	Position
	Args []*Arg `parser:"\"PPR\" \"(\" ( @@ ( \",\" @@ )* )? \")\""`
}
