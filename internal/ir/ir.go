// Package ir holds the intermediate representation the analyzer builds for
// each query and the emitter turns into target handler source.
// Its shape mirrors the method-chain the emitted code prints: one
// IRTraversal per assignment/return expression, one IRStep per "::" link.
package ir

import "github.com/ritamzico/gqlc/internal/types"

// TraversalKind classifies how a traversal obtains its starting value and
// whether it mutates the graph, matching the emitted handler's call shape.
type TraversalKind int

const (
	Ref TraversalKind = iota
	Mut
	FromSingle
	FromIter
	Update
	Upsert
	UpsertN
	UpsertE
	UpsertV
	Standalone
)

func (k TraversalKind) String() string {
	switch k {
	case Ref:
		return "Ref"
	case Mut:
		return "Mut"
	case FromSingle:
		return "FromSingle"
	case FromIter:
		return "FromIter"
	case Update:
		return "Update"
	case Upsert:
		return "Upsert"
	case UpsertN:
		return "UpsertN"
	case UpsertE:
		return "UpsertE"
	case UpsertV:
		return "UpsertV"
	case Standalone:
		return "Standalone"
	default:
		return "?"
	}
}

// ShouldCollect records how a traversal's result is materialized at the
// point it's consumed: collected into an object, a plain value/slice,
// fallibly unwrapped, or left as a lazy iterator. Unset is the zero value
// used internally while a traversal is still being built; every
// IRTraversal returned to a caller carries a concrete policy, and the
// policy tracks plurality: ToVec for plural results, ToObj for singular
// ones.
type ShouldCollect int

const (
	Unset ShouldCollect = iota
	No
	ToObj
	ToVec
	ToValue
	Try
)

func (s ShouldCollect) String() string {
	switch s {
	case No:
		return "No"
	case ToObj:
		return "ToObj"
	case ToVec:
		return "ToVec"
	case ToValue:
		return "ToValue"
	case Try:
		return "Try"
	default:
		return "Unset"
	}
}

// IRStep is one emitted link in a method chain.
type IRStep struct {
	Kind   string // e.g. "Out", "Where", "Range", "Update", "AddE"; mirrors ast.Step's variant name
	Label  string
	Args   []string // pre-rendered argument source (field names, ASC/DESC, ...)
	Fields []IRField

	// Operand/Operands carry sub-traversals consumed by this step: the
	// WHERE predicate, a boolean op's comparand, RANGE's two bounds,
	// ORDER_BY's key expression. The emitter renders them in place.
	Operand  *IRTraversal
	Operands []*IRTraversal

	// IsPropertyCompare marks a boolean op whose comparand was the simple
	// `other::{field}` shape: Args holds [otherVar, otherField] and the
	// emitter compares the two properties directly instead of reifying the
	// sub-traversal.
	IsPropertyCompare bool
}

// IRField is one `name: value` in a projection, update, or add-node body.
// Nested is set when value is itself a traversal (e.g. a closure field
// that projects through a sub-path) rather than a literal or bare field
// name; the emitter recurses into it instead of using Value directly.
type IRField struct {
	Name   string
	Value  string // pre-rendered expression source (literal, field name, or placeholder)
	Nested *IRTraversal
}

// IRTraversal is the full pipeline for one assignment or return expression:
// a typed start, a chain of steps, and how its result should be collected.
type IRTraversal struct {
	Kind          TraversalKind
	VarName       string    // the GQL-level name this traversal was bound to ("x <- ..."), if any
	StartSource   string    // pre-rendered source for the traversal's origin call
	StartArg      string    // rendered id/value argument of a by-id or by-index start
	StartIndex    string    // field name of a by-index start ({field}(value))
	StartFields   []IRField // constructor arguments for AddN/AddE/AddV starts
	Steps         []IRStep
	ShouldCollect ShouldCollect
	ResultType    types.Type
	IsMutating    bool

	// IsLiteral marks a traversal whose start is a bare literal with no
	// steps, so the emitter prints the literal itself rather than wrapping
	// it in a method chain and terminal collector.
	IsLiteral bool

	// IsReusedVariable is set when the start identifier was read more than
	// once in its scope: the emitter must clone the source
	// iterable instead of consuming it in place.
	IsReusedVariable bool

	// ClosureParam/ClosureSource are the enclosing closure's bound name and
	// its source variable, propagated onto every traversal built inside the
	// closure body so placeholder sources ("_"/"val") resolve to the right
	// one.
	ClosureParam  string
	ClosureSource string

	// ClosureStructName, when set by the return-value analyzer, names the
	// generated item struct the trailing closure's projection constructs.
	ClosureStructName string

	// ExcludedFields accumulates `!{...}` exclusions so later projections
	// cannot re-project an excluded name; cleared by every graph-nav step.
	ExcludedFields []string

	// Inner/Inners hold the operand traversals of the boolean expression
	// forms: EXISTS/NOT use Inner, AND/OR use Inners. Search/math sources
	// also carry their argument chains in Inners.
	Inner  *IRTraversal
	Inners []*IRTraversal

	// ForVars/ForBody model a FOR statement: Inner is the iterable, each
	// body statement lowers to its own traversal emitted inside the loop.
	ForVars []string
	ForBody []*IRTraversal
}

// HoistedEmbed is one Embed(...) call lifted out of a query's transaction
// body so the handler can await it before opening the transaction.
type HoistedEmbed struct {
	Name string // placeholder variable substituted at the call site
	Arg  string // pre-rendered source for the embedding argument
}

// ReturnFieldSource distinguishes where a return struct field's value comes
// from, so the emitter knows whether to project straight through, literal,
// or recurse into a nested traversal.
type ReturnFieldSource int

const (
	SchemaField ReturnFieldSource = iota
	ImplicitField
	NestedTraversal
	LiteralField
	AggregateField
)

// ReturnField is one field of an emitted per-query return struct. For a
// NestedTraversal source the extra metadata names the nested struct the
// emitter must declare (when the traversal ends in a closure projection),
// whether the field takes only the first element, and which single
// property it accesses when the traversal is a bare projection.
type ReturnField struct {
	Name   string
	Source ReturnFieldSource
	Type   types.Type
	Nested *IRTraversal

	PropertyName     string // remapped/accessed property for SchemaField sources
	NestedStructName string // declared struct for a closure-projected nested traversal
	IsFirst          bool   // nested traversal narrowed by ::FIRST
	SourceVariable   string // root variable the return expression reads
	IsCollection     bool   // plural return (emitted as a vector of items)
}

// ReturnStruct is the emitted output shape for one query, built from its
// RETURN clause. Fields preserve RETURN-clause order.
type ReturnStruct struct {
	QueryName string
	Fields    []ReturnField
}
