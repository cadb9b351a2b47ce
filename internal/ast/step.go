package ast

// Step is one "::"-chained link in a traversal. Exactly one field is
// non-nil/true per parsed step.
type Step struct {
	Position
	GraphNav  *GraphNavStep  `parser:"(  @@"`
	Closure   *ClosureStep   `parser:"|  @@"`
	Exclude   *ExcludeStep   `parser:"|  @@"`
	Object    *ObjectStep    `parser:"|  @@"`
	Where     *WhereStep     `parser:"|  @@"`
	BooleanOp *BooleanOpStep `parser:"|  @@"`
	Range     *RangeStep     `parser:"|  @@"`
	OrderBy   *OrderByStep   `parser:"|  @@"`
	Aggregate *AggregateStep `parser:"|  @@"`
	GroupBy   *GroupByStep   `parser:"|  @@"`
	Update    *UpdateStep    `parser:"|  @@"`
	UpsertN   *UpsertNStep   `parser:"|  @@"`
	UpsertE   *UpsertEStep   `parser:"|  @@"`
	UpsertV   *UpsertVStep   `parser:"|  @@"`
	Upsert    *UpsertStep    `parser:"|  @@"`
	AddEdge   *AddEdgeExpr   `parser:"|  @@"`
	RerankRRF *RerankStep    `parser:"|  \"RERANK_RRF\" @@"`
	RerankMMR *RerankStep    `parser:"|  \"RERANK_MMR\" @@"`
	First     bool           `parser:"|  @\"FIRST\""`
	Count     bool           `parser:"|  @\"COUNT\" )"`
}

// GraphNavStep walks the graph: Out<Label>, In<Label>, OutE<Label>,
// InE<Label>, FromN, ToN, FromV, ToV. The label is omitted for FromN/ToN/
// FromV/ToV, which always cross exactly one already-typed edge or vector.
type GraphNavStep struct {
	Position
	Dir   string  `parser:"@(\"OutE\"|\"InE\"|\"Out\"|\"In\"|\"FromN\"|\"ToN\"|\"FromV\"|\"ToV\")"`
	Label *string `parser:"( \"<\" @Ident \">\" )?"`
}

// ObjectStep is a `{ field, alias: expr, ... }` projection.
type ObjectStep struct {
	Position
	Fields []*PropAssign `parser:"\"{\" ( @@ ( \",\" @@ )* )? \"}\""`
}

// ExcludeStep is a `!{ field, ... }` exclusion projection.
type ExcludeStep struct {
	Position
	Fields []string `parser:"\"!\" \"{\" @Ident ( \",\" @Ident )* \"}\""`
}

// ClosureStep is `|x| { ... }`: binds x to the current singular element for
// the body's projection, then restores plurality on exit.
type ClosureStep struct {
	Position
	Param  string        `parser:"\"|\" @Ident \"|\""`
	Fields []*PropAssign `parser:"\"{\" ( @@ ( \",\" @@ )* )? \"}\""`
}

// WhereStep: WHERE(expr)
type WhereStep struct {
	Position
	Inner *Expr `parser:"\"WHERE\" \"(\" @@ \")\""`
}

// BooleanOpStep: EQ/NEQ/LT/LTE/GT/GTE/CONTAINS/IS_IN applied to an operand.
type BooleanOpStep struct {
	Position
	Op      string `parser:"@(\"EQ\"|\"NEQ\"|\"LTE\"|\"LT\"|\"GTE\"|\"GT\"|\"CONTAINS\"|\"IS_IN\")"`
	Operand *Expr  `parser:"\"(\" @@ \")\""`
}

// RangeStep: RANGE(start, end)
type RangeStep struct {
	Position
	Start *Expr `parser:"\"RANGE\" \"(\" @@"`
	End   *Expr `parser:"\",\" @@ \")\""`
}

// OrderByStep: ORDER_BY(expr[, ASC|DESC])
type OrderByStep struct {
	Position
	Inner *Expr  `parser:"\"ORDER_BY\" \"(\" @@"`
	Dir   string `parser:"( \",\" @(\"ASC\"|\"DESC\") )? \")\""`
}

// AggregateStep: AGGREGATE(prop, ...)
type AggregateStep struct {
	Position
	Props []string `parser:"\"AGGREGATE\" \"(\" ( @Ident ( \",\" @Ident )* )? \")\""`
}

// GroupByStep: GROUP_BY(prop, ...)
type GroupByStep struct {
	Position
	Props []string `parser:"\"GROUP_BY\" \"(\" ( @Ident ( \",\" @Ident )* )? \")\""`
}

// UpdateStep: UPDATE({ field: value, ... })
type UpdateStep struct {
	Position
	Fields []*PropAssign `parser:"\"UPDATE\" \"(\" \"{\" ( @@ ( \",\" @@ )* )? \"}\" \")\""`
}

// UpsertStep: UPSERT({ field: value, ... }) against the current element's
// own type, matching on unique/indexed fields.
type UpsertStep struct {
	Position
	Fields []*PropAssign `parser:"\"UPSERT\" \"(\" \"{\" ( @@ ( \",\" @@ )* )? \"}\" \")\""`
}

// UpsertNStep: UpsertN<Type>({ field: value, ... })
type UpsertNStep struct {
	Position
	Type   string        `parser:"\"UpsertN\" \"<\" @Ident \">\" \"(\""`
	Fields []*PropAssign `parser:"\"{\" ( @@ ( \",\" @@ )* )? \"}\" \")\""`
}

// UpsertEStep: UpsertE<Type>({ field: value, ... })
type UpsertEStep struct {
	Position
	Type   string        `parser:"\"UpsertE\" \"<\" @Ident \">\" \"(\""`
	Fields []*PropAssign `parser:"\"{\" ( @@ ( \",\" @@ )* )? \"}\" \")\""`
}

// UpsertVStep: UpsertV<Type>({ field: value, ... })
type UpsertVStep struct {
	Position
	Type   string        `parser:"\"UpsertV\" \"<\" @Ident \">\" \"(\""`
	Fields []*PropAssign `parser:"\"{\" ( @@ ( \",\" @@ )* )? \"}\" \")\""`
}

// RerankStep is the shared argument list for RERANK_RRF(...)/RERANK_MMR(...).
type RerankStep struct {
	Position
	Args []*Arg `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
}
