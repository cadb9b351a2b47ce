package analyzer

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/ritamzico/gqlc/internal/ast"
	"github.com/ritamzico/gqlc/internal/ir"
	"github.com/ritamzico/gqlc/internal/scope"
	"github.com/ritamzico/gqlc/internal/source"
	"github.com/ritamzico/gqlc/internal/types"
)

// inferExpr is the expression analyzer (component F): it resolves e's
// StartNode to an initial type and IR fragment, then threads both through
// e's steps via the traversal validator (component G).
func (a *Analyzer) inferExpr(file *source.File, sc *scope.Scope, e *ast.Expr, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	if e == nil || e.Start == nil {
		diags.Add(source.E657, source.Loc{File: file}, "missing expression")
		return nil, types.Type{}
	}
	tr, t := a.inferStart(file, sc, e.Start, diags)
	tr, t = a.applySteps(file, sc, tr, t, e.Steps, diags)
	finalizeShouldCollect(tr, t)
	if tr != nil {
		tr.ResultType = t
	}
	return tr, t
}

// inferExprWithParent analyzes e with parent bound as the anonymous "_"
// element, for positions nested inside another traversal (WHERE predicates,
// ORDER_BY keys, projection values): "_" stands for the current element of
// the enclosing chain, singularized.
func (a *Analyzer) inferExprWithParent(file *source.File, sc *scope.Scope, e *ast.Expr, parent types.Type, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	if parent.Kind == types.Unknown {
		return a.inferExpr(file, sc, e, diags)
	}
	sc.Push()
	sc.Declare("_", scope.VariableInfo{Type: parent.IntoSingle(), IsSingular: true, SourceVariable: "val"})
	defer sc.Pop()
	return a.inferExpr(file, sc, e, diags)
}

// finalizeShouldCollect fills in tr.ShouldCollect when no step along the
// chain already pinned a more specific terminal (First -> ToObj, OrderBy ->
// ToVec, a plural closure -> ToVec, a mutation -> Try): the default follows
// the final inferred type's plurality.
func finalizeShouldCollect(tr *ir.IRTraversal, t types.Type) {
	if tr == nil || tr.ShouldCollect != ir.Unset {
		return
	}
	switch {
	case t.IsPlural() || t.Kind == types.Array:
		tr.ShouldCollect = ir.ToVec
	case t.IsSingular():
		tr.ShouldCollect = ir.ToObj
	case t.Kind == types.Scalar, t.Kind == types.Boolean, t.Kind == types.Count, t.Kind == types.Aggregate:
		tr.ShouldCollect = ir.ToValue
	default:
		tr.ShouldCollect = ir.No
	}
}

func (a *Analyzer) inferStart(file *source.File, sc *scope.Scope, s *ast.StartNode, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	loc := s.Loc(file)
	switch {
	case s.Empty:
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: "EMPTY"}, types.Type{Kind: types.Unknown}

	case s.Int != nil:
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: fmt.Sprintf("%d", *s.Int), IsLiteral: true}, types.Type{Kind: types.Scalar, Field: types.FieldType{Kind: types.I32}}

	case s.Float != nil:
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: fmt.Sprintf("%v", *s.Float), IsLiteral: true}, types.Type{Kind: types.Scalar, Field: types.FieldType{Kind: types.F64}}

	case s.Str != nil:
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: *s.Str, IsLiteral: true}, types.Type{Kind: types.Scalar, Field: types.FieldType{Kind: types.StringT}}

	case s.True, s.False:
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: fmt.Sprintf("%v", s.True), IsLiteral: true}, types.Type{Kind: types.Boolean}

	case s.Array != nil:
		return a.inferArrayLit(file, sc, s.Array, diags)

	case s.Not != nil:
		inner, _ := a.inferExpr(file, sc, s.Not.Inner, diags)
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: "NOT", Inner: inner, ShouldCollect: ir.No}, types.Type{Kind: types.Boolean}

	case s.And != nil:
		inners := a.inferBoolCombinator(file, sc, s.And, diags)
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: "AND", Inners: inners, ShouldCollect: ir.No}, types.Type{Kind: types.Boolean}

	case s.Or != nil:
		inners := a.inferBoolCombinator(file, sc, s.Or, diags)
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: "OR", Inners: inners, ShouldCollect: ir.No}, types.Type{Kind: types.Boolean}

	case s.Exists != nil:
		// The inner traversal is only probed for at-least-one element: its
		// collection policy is forced to No so the emitter leaves the chain
		// lazy.
		inner, _ := a.inferExpr(file, sc, s.Exists.Inner, diags)
		if inner != nil {
			inner.ShouldCollect = ir.No
		}
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: "EXISTS", Inner: inner, ShouldCollect: ir.No}, types.Type{Kind: types.Boolean}

	case s.Math != nil:
		var ops []*ir.IRTraversal
		for _, arg := range s.Math.Args {
			tr, at := a.inferExpr(file, sc, arg, diags)
			if !at.IsSingular() && at.Kind != types.Scalar && at.Kind != types.Unknown {
				diags.Add(source.E621, loc, "math function %s requires scalar operands", s.Math.Fn)
			}
			ops = append(ops, tr)
		}
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: "MATH:" + s.Math.Fn, Inners: ops, ShouldCollect: ir.No}, types.Type{Kind: types.Scalar, Field: types.FieldType{Kind: types.F64}}

	case s.Embed != nil:
		arg := ""
		if s.Embed.Ident != nil {
			arg = *s.Embed.Ident
			if _, ok := sc.Lookup(arg); !ok {
				diags.Add(source.E301, loc, "undeclared identifier %q", arg)
			}
		} else if s.Embed.Str != nil {
			arg = *s.Embed.Str
		}
		placeholder := fmt.Sprintf("_embed%d", len(a.hoisted))
		a.hoisted = append(a.hoisted, ir.HoistedEmbed{Name: placeholder, Arg: arg})
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: placeholder, IsLiteral: true}, types.Type{Kind: types.Array, Elem: &types.Type{Kind: types.Scalar, Field: types.FieldType{Kind: types.F64}}}

	case s.AddNode != nil:
		return a.inferAddNode(file, sc, s.AddNode, diags)

	case s.AddEdge != nil:
		return a.inferAddEdge(file, sc, s.AddEdge, diags)

	case s.AddVector != nil:
		return a.inferAddVector(file, sc, s.AddVector, diags)

	case s.SearchVector != nil:
		if _, ok := a.Schema.Vectors[s.SearchVector.Type]; !ok {
			diags.Add(source.E103, loc, "undeclared vector type %q", s.SearchVector.Type)
		}
		if len(s.SearchVector.Args) == 0 {
			diags.Add(source.E305, loc, "SearchV requires a query vector argument")
		}
		ops := a.inferArgs(file, sc, s.SearchVector.Args, diags)
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: "SearchV", Inners: ops}, types.Type{Kind: types.Vectors, Label: s.SearchVector.Type}

	case s.SearchHybrid != nil:
		if _, ok := a.Schema.Vectors[s.SearchHybrid.Type]; !ok {
			diags.Add(source.E103, loc, "undeclared vector type %q", s.SearchHybrid.Type)
		}
		if len(s.SearchHybrid.Args) == 0 {
			diags.Add(source.E305, loc, "SearchHybrid requires a query argument")
		}
		ops := a.inferArgs(file, sc, s.SearchHybrid.Args, diags)
		return &ir.IRTraversal{Kind: ir.Standalone, StartSource: "SearchHybrid", Inners: ops}, types.Type{Kind: types.Vectors, Label: s.SearchHybrid.Type}

	case s.SearchBM25 != nil:
		if _, ok := a.Schema.Vectors[s.SearchBM25.Type]; !ok {
			diags.Add(source.E103, loc, "undeclared vector type %q", s.SearchBM25.Type)
		}
		if len(s.SearchBM25.Args) == 0 {
			diags.Add(source.E305, loc, "SearchBM25 requires a query string argument")
		}
		ops := a.inferArgs(file, sc, s.SearchBM25.Args, diags)
		return &ir.IRTraversal{Kind: ir.Ref, StartSource: "SearchBM25", Inners: ops}, types.Type{Kind: types.Vectors, Label: s.SearchBM25.Type}

	case s.PPR != nil:
		if len(s.PPR.Args) == 0 {
			diags.Add(source.E305, loc, "PPR requires a seed argument")
		}
		ops := a.inferArgs(file, sc, s.PPR.Args, diags)
		return &ir.IRTraversal{Kind: ir.Standalone, StartSource: "PPR", Inners: ops}, types.Type{Kind: types.Nodes}

	case s.NodeByType != nil:
		return a.inferNodeByType(file, sc, s.NodeByType, diags)

	case s.EdgeByType != nil:
		return a.inferEdgeByType(file, sc, s.EdgeByType, diags)

	case s.VectorByType != nil:
		return a.inferVectorByType(file, sc, s.VectorByType, diags)

	case s.Anonymous:
		v, ok := sc.Lookup("_")
		if !ok {
			diags.Add(source.E601, loc, "\"_\" requires an enclosing traversal element")
			return &ir.IRTraversal{Kind: ir.FromSingle, StartSource: "val"}, types.Type{Kind: types.Unknown}
		}
		return &ir.IRTraversal{Kind: ir.FromSingle, StartSource: "val"}, v.Type

	case s.Ident != nil:
		v, ok := sc.Lookup(*s.Ident)
		if !ok {
			diags.Add(source.E301, loc, "undeclared identifier %q", *s.Ident)
			return &ir.IRTraversal{Kind: ir.Ref, StartSource: *s.Ident}, types.Type{Kind: types.Unknown}
		}
		// Element-typed variables re-enter the chain via from_iter; a
		// scalar/boolean/array binding is just a value expression.
		kind := ir.Ref
		isValue := false
		switch {
		case v.Type.IsSingular():
			kind = ir.FromSingle
		case v.Type.IsPlural():
			kind = ir.FromIter
		default:
			isValue = true
		}
		return &ir.IRTraversal{Kind: kind, StartSource: *s.Ident, IsLiteral: isValue, IsReusedVariable: v.ReferenceCount > 1}, v.Type
	}
	diags.Add(source.E655, loc, "unrecognized expression start")
	return &ir.IRTraversal{Kind: ir.Ref}, types.Type{Kind: types.Unknown}
}

func (a *Analyzer) inferArrayLit(file *source.File, sc *scope.Scope, lit *ast.ArrayLit, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	var elemType types.Type
	var elems []*ir.IRTraversal
	for i, el := range lit.Elems {
		tr, t := a.inferExpr(file, sc, el, diags)
		elems = append(elems, tr)
		if i == 0 {
			elemType = t
			continue
		}
		mismatch := t.Kind != elemType.Kind ||
			(t.Kind == types.Scalar && !t.Field.Equal(elemType.Field) && !(t.Field.IsNumeric() && elemType.Field.IsNumeric()))
		if mismatch {
			diags.Add(source.E306, el.Loc(file), "array elements must share a type, found %s and %s", typeLabel(elemType), typeLabel(t))
		}
	}
	return &ir.IRTraversal{Kind: ir.Ref, StartSource: "ARRAY", Inners: elems, ShouldCollect: ir.No}, types.Type{Kind: types.Array, Elem: &elemType}
}

// typeLabel renders an inferred type for a message, using the scalar field
// kind when that is the informative part.
func typeLabel(t types.Type) string {
	if t.Kind == types.Scalar {
		return t.Field.String()
	}
	return t.Kind.String()
}

// inferBoolCombinator analyzes an AND(...)/OR(...) operand list. Each child
// must produce a boolean or a traversal (lowered to a predicate on the
// current element); anything scalar-shaped is E621, not a silent Unknown
// silently degrading to Unknown.
func (a *Analyzer) inferBoolCombinator(file *source.File, sc *scope.Scope, c *ast.BoolCombinator, diags *source.Diagnostics) []*ir.IRTraversal {
	var inners []*ir.IRTraversal
	for _, e := range c.Exprs {
		tr, t := a.inferExpr(file, sc, e, diags)
		switch t.Kind {
		case types.Boolean, types.Unknown, types.Node, types.Nodes, types.Edge, types.Edges, types.Vector, types.Vectors:
		default:
			diags.Add(source.E621, e.Loc(file), "AND/OR operands must be boolean expressions, got %s", t.Kind)
		}
		inners = append(inners, tr)
	}
	return inners
}

func (a *Analyzer) inferNodeByType(file *source.File, sc *scope.Scope, n *ast.NodeByTypeStart, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	loc := n.Loc(file)
	if _, ok := a.Schema.Nodes[n.Type]; !ok {
		diags.Add(source.E101, loc, "undeclared node type %q", n.Type)
	}
	resultType := types.Type{Kind: types.Nodes, Label: n.Type}
	tr := &ir.IRTraversal{Kind: ir.Ref, StartSource: "N<" + n.Type + ">"}
	if n.ID != nil {
		a.checkIDArg(file, sc, n.Type, n.ID, diags)
		tr.StartArg, tr.StartIndex = idArgSource(n.ID)
		resultType = types.Type{Kind: types.Node, Label: n.Type}
	}
	return tr, resultType
}

// idArgSource renders a by-id/by-index start argument for the emitter: the
// value's surface form plus, for the {field}(value) form, the index field.
func idArgSource(id *ast.IDArg) (arg, indexField string) {
	if id.ByIndex != nil {
		return idArgValueSource(id.ByIndex.Value), id.ByIndex.Field
	}
	return idArgValueSource(id.Value), ""
}

func (a *Analyzer) inferEdgeByType(file *source.File, sc *scope.Scope, n *ast.EdgeByTypeStart, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	loc := n.Loc(file)
	if _, ok := a.Schema.Edges[n.Type]; !ok {
		diags.Add(source.E102, loc, "undeclared edge type %q", n.Type)
	}
	resultType := types.Type{Kind: types.Edges, Label: n.Type}
	tr := &ir.IRTraversal{Kind: ir.Ref, StartSource: "E<" + n.Type + ">"}
	if n.ID != nil {
		a.checkIDArg(file, sc, n.Type, n.ID, diags)
		tr.StartArg, tr.StartIndex = idArgSource(n.ID)
		resultType = types.Type{Kind: types.Edge, Label: n.Type}
	}
	return tr, resultType
}

func (a *Analyzer) inferVectorByType(file *source.File, sc *scope.Scope, n *ast.VectorByTypeStart, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	loc := n.Loc(file)
	if _, ok := a.Schema.Vectors[n.Type]; !ok {
		diags.Add(source.E103, loc, "undeclared vector type %q", n.Type)
	}
	resultType := types.Type{Kind: types.Vectors, Label: n.Type}
	tr := &ir.IRTraversal{Kind: ir.Ref, StartSource: "V<" + n.Type + ">"}
	if n.ID != nil {
		a.checkIDArg(file, sc, n.Type, n.ID, diags)
		tr.StartArg, tr.StartIndex = idArgSource(n.ID)
		resultType = types.Type{Kind: types.Vector, Label: n.Type}
	}
	return tr, resultType
}

// checkIDArg validates a N<T>(...)/E<T>(...)/V<T>(...) argument. A by-index
// form must name a declared field marked INDEX (E202/E208) and its value
// must match that field's type (E205); a plain id must be an in-scope Uuid
// identifier (E301/E205) or a well-formed UUID string literal (E206).
func (a *Analyzer) checkIDArg(file *source.File, sc *scope.Scope, typeName string, id *ast.IDArg, diags *source.Diagnostics) {
	if id.ByIndex != nil {
		indexed, exists := a.Schema.FieldIndexed(typeName, id.ByIndex.Field)
		switch {
		case !exists:
			diags.Add(source.E202, id.Loc(file), "type %q has no field %q", typeName, id.ByIndex.Field)
		case !indexed:
			diags.AddHint(source.E208, id.Loc(file), "declare the field with the INDEX prefix to look nodes up by it",
				"field %q on type %q is not marked INDEX", id.ByIndex.Field, typeName)
		}
		if exists {
			if ft, ok := a.Schema.FieldType(typeName, id.ByIndex.Field); ok {
				a.checkValueAgainstFieldType(file, sc, id.ByIndex.Value, ft, diags)
			}
		}
		return
	}
	a.checkUuidValue(file, sc, id.Value, diags)
}

// checkUuidValue enforces the plain-id rule: identifiers must be in scope
// and Uuid-typed, string literals must parse as UUIDs.
func (a *Analyzer) checkUuidValue(file *source.File, sc *scope.Scope, v *ast.IDArgValue, diags *source.Diagnostics) {
	if v == nil {
		return
	}
	if v.Ident != nil {
		info, ok := sc.Lookup(*v.Ident)
		if !ok {
			diags.Add(source.E301, v.Loc(file), "undeclared identifier %q", *v.Ident)
			return
		}
		if info.Type.Kind == types.Scalar && info.Type.Field.Kind != types.UuidT {
			diags.Add(source.E205, v.Loc(file), "id argument %q must be a Uuid, got %s", *v.Ident, info.Type.Field)
		}
		return
	}
	if v.Lit != nil && v.Lit.Str != nil {
		if _, err := uuid.Parse(unquote(*v.Lit.Str)); err != nil {
			diags.Add(source.E206, v.Loc(file), "%s is not a valid UUID", *v.Lit.Str)
		}
	}
}

// checkValueAgainstFieldType enforces E205 for a by-index value: the literal
// or identifier must carry the indexed field's declared type.
func (a *Analyzer) checkValueAgainstFieldType(file *source.File, sc *scope.Scope, v *ast.IDArgValue, ft types.FieldType, diags *source.Diagnostics) {
	if v == nil {
		return
	}
	if v.Ident != nil {
		info, ok := sc.Lookup(*v.Ident)
		if !ok {
			diags.Add(source.E301, v.Loc(file), "undeclared identifier %q", *v.Ident)
			return
		}
		if info.Type.Kind == types.Scalar && !info.Type.Field.Equal(ft) && !(info.Type.Field.IsNumeric() && ft.IsNumeric()) {
			diags.Add(source.E205, v.Loc(file), "index value %q has type %s, field expects %s", *v.Ident, info.Type.Field, ft)
		}
		return
	}
	if v.Lit != nil {
		checkLiteralAgainstFieldType(file, v.Lit, ft, diags)
	}
}

// unquote strips the surrounding quotes the lexer leaves on String tokens,
// handling escapes; on malformed input the raw text is returned unchanged.
func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}
