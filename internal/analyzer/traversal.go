package analyzer

import (
	"fmt"

	"github.com/ritamzico/gqlc/internal/ast"
	"github.com/ritamzico/gqlc/internal/ir"
	"github.com/ritamzico/gqlc/internal/scope"
	"github.com/ritamzico/gqlc/internal/source"
	"github.com/ritamzico/gqlc/internal/types"
)

// stepState threads the little bits of lookbehind the step rules need: the
// single scalar property the last projection narrowed to (boolean ops are
// only legal right after one), and whether any projection has happened yet
// on this chain.
type stepState struct {
	hasProjection  bool
	projectedField string
	projectedType  types.FieldType
}

// applySteps threads currentType through each step of a traversal
// (component G), appending one ir.IRStep per step and rewriting
// currentType according to that step's transformation rule. Unlike the
// parser, this phase never aborts on the first problem: every step is
// still walked so later steps don't cascade spurious "unknown type" noise
// from an error already reported once.
func (a *Analyzer) applySteps(file *source.File, sc *scope.Scope, tr *ir.IRTraversal, currentType types.Type, steps []*ast.Step, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	if tr == nil {
		tr = &ir.IRTraversal{Kind: ir.Ref}
	}
	st := &stepState{}
	for i, step := range steps {
		currentType = a.applyStep(file, sc, tr, currentType, step, st, i == len(steps)-1, steps, i, diags)
		// The projection lookbehind only survives across an exclusion; any
		// other step breaks the projection/boolean-op adjacency.
		if step.Object == nil && step.Exclude == nil {
			*st = stepState{}
		}
	}
	return tr, currentType
}

func (a *Analyzer) applyStep(file *source.File, sc *scope.Scope, tr *ir.IRTraversal, cur types.Type, step *ast.Step, st *stepState, isLast bool, steps []*ast.Step, idx int, diags *source.Diagnostics) types.Type {
	loc := step.Loc(file)
	switch {
	case step.GraphNav != nil:
		st.hasProjection = false
		tr.ExcludedFields = nil
		return a.applyGraphNav(file, tr, cur, step.GraphNav, diags)

	case step.Closure != nil:
		if !isLast {
			diags.Add(source.E641, loc, "a closure must be the final step of a traversal")
		}
		return a.applyClosure(file, sc, tr, cur, step.Closure, diags)

	case step.Object != nil:
		return a.applyObjectStep(file, sc, tr, cur, step.Object, st, diags)

	case step.Exclude != nil:
		// An exclusion only makes sense where a projection could still
		// consume it: as the final step, or immediately before the
		// object/closure it narrows.
		if !isLast {
			next := steps[idx+1]
			if next.Object == nil && next.Closure == nil {
				diags.Add(source.E644, loc, "!{...} must be the final step or immediately precede a projection")
			}
		}
		a.checkFieldNames(file, cur, step.Exclude.Fields, diags, loc)
		tr.ExcludedFields = append(tr.ExcludedFields, step.Exclude.Fields...)
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "Exclude", Args: step.Exclude.Fields})
		return cur

	case step.Where != nil:
		inner, t := a.inferExprWithParent(file, sc, step.Where.Inner, cur, diags)
		// A WHERE predicate is either a boolean expression or a traversal
		// used as a sub-query predicate; scalars and aggregates are neither.
		switch t.Kind {
		case types.Boolean, types.Unknown, types.Node, types.Nodes, types.Edge, types.Edges, types.Vector, types.Vectors:
		default:
			diags.Add(source.E655, loc, "WHERE requires a boolean expression or a traversal predicate, got %s", t.Kind)
		}
		if inner != nil && (t.IsPlural() || t.IsSingular()) {
			inner.ShouldCollect = ir.No
		}
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "Where", Operand: inner})
		return cur

	case step.BooleanOp != nil:
		return a.applyBooleanOp(file, sc, tr, cur, step.BooleanOp, st, diags)

	case step.Range != nil:
		if !cur.IsPlural() {
			diags.Add(source.E604, loc, "RANGE requires a plural source, got %s", cur.Kind)
		}
		startTr := a.checkIntegerExpr(file, sc, step.Range.Start, diags)
		endTr := a.checkIntegerExpr(file, sc, step.Range.End, diags)
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "Range", Operands: []*ir.IRTraversal{startTr, endTr}})
		return cur

	case step.OrderBy != nil:
		if !cur.IsPlural() {
			diags.Add(source.E604, loc, "ORDER_BY requires a plural source, got %s", cur.Kind)
		}
		inner, t := a.inferExprWithParent(file, sc, step.OrderBy.Inner, cur, diags)
		if t.Kind == types.Boolean || t.Kind == types.Count || t.Kind == types.Aggregate {
			diags.Add(source.E655, step.OrderBy.Inner.Loc(file), "ORDER_BY requires a traversal key, got %s", t.Kind)
		}
		if inner != nil {
			inner.ShouldCollect = ir.No
		}
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "OrderBy", Args: []string{step.OrderBy.Dir}, Operand: inner})
		tr.ShouldCollect = ir.ToVec
		return cur

	case step.Aggregate != nil:
		// A Count source is the rolled-in ::COUNT::AGGREGATE form.
		if !cur.IsPlural() && cur.Kind != types.Count {
			diags.Add(source.E604, loc, "AGGREGATE requires a plural source, got %s", cur.Kind)
		}
		a.checkFieldNames(file, cur, step.Aggregate.Props, diags, loc)
		isCount := rollInPrecedingCount(tr)
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "Aggregate", Args: step.Aggregate.Props})
		tr.ShouldCollect = ir.ToValue
		return types.Type{Kind: types.Aggregate, Agg: &types.AggInfo{SourceType: cur, Properties: step.Aggregate.Props, IsCount: isCount}}

	case step.GroupBy != nil:
		if !cur.IsPlural() && cur.Kind != types.Count {
			diags.Add(source.E604, loc, "GROUP_BY requires a plural source, got %s", cur.Kind)
		}
		a.checkFieldNames(file, cur, step.GroupBy.Props, diags, loc)
		isCount := rollInPrecedingCount(tr)
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "GroupBy", Args: step.GroupBy.Props})
		tr.ShouldCollect = ir.ToVec
		return types.Type{Kind: types.Aggregate, Agg: &types.AggInfo{SourceType: cur, Properties: step.GroupBy.Props, IsGroupBy: true, IsCount: isCount}}

	case step.Update != nil:
		if !cur.IsSingular() && !cur.IsPlural() {
			diags.Add(source.E604, loc, "UPDATE requires a node, edge, or vector source, got %s", cur.Kind)
		}
		a.checkFieldAssigns(file, sc, cur, step.Update.Fields, diags, loc)
		tr.IsMutating = true
		tr.Kind = ir.Update
		tr.ShouldCollect = ir.Try
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "Update", Fields: renderAssignFields(step.Update.Fields)})
		return cur

	case step.Upsert != nil:
		if !cur.IsSingular() && !cur.IsPlural() {
			diags.Add(source.E604, loc, "UPSERT requires a node, edge, or vector source, got %s", cur.Kind)
		}
		a.checkFieldAssigns(file, sc, cur, step.Upsert.Fields, diags, loc)
		tr.IsMutating = true
		tr.Kind = ir.Upsert
		tr.ShouldCollect = ir.Try
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "Upsert", Fields: renderAssignFields(step.Upsert.Fields)})
		return cur

	case step.UpsertN != nil:
		if _, ok := a.Schema.Nodes[step.UpsertN.Type]; !ok {
			diags.Add(source.E101, loc, "undeclared node type %q", step.UpsertN.Type)
		}
		a.checkFieldAssigns(file, sc, types.Type{Kind: types.Node, Label: step.UpsertN.Type}, step.UpsertN.Fields, diags, loc)
		tr.IsMutating = true
		tr.Kind = ir.UpsertN
		tr.ShouldCollect = ir.Try
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "UpsertN", Label: step.UpsertN.Type, Fields: renderAssignFields(step.UpsertN.Fields)})
		return types.Type{Kind: types.Node, Label: step.UpsertN.Type}

	case step.UpsertE != nil:
		if _, ok := a.Schema.Edges[step.UpsertE.Type]; !ok {
			diags.Add(source.E102, loc, "undeclared edge type %q", step.UpsertE.Type)
		}
		a.checkFieldAssigns(file, sc, types.Type{Kind: types.Edge, Label: step.UpsertE.Type}, step.UpsertE.Fields, diags, loc)
		tr.IsMutating = true
		tr.Kind = ir.UpsertE
		tr.ShouldCollect = ir.Try
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "UpsertE", Label: step.UpsertE.Type, Fields: renderAssignFields(step.UpsertE.Fields)})
		return types.Type{Kind: types.Edge, Label: step.UpsertE.Type}

	case step.UpsertV != nil:
		if _, ok := a.Schema.Vectors[step.UpsertV.Type]; !ok {
			diags.Add(source.E103, loc, "undeclared vector type %q", step.UpsertV.Type)
		}
		a.checkFieldAssigns(file, sc, types.Type{Kind: types.Vector, Label: step.UpsertV.Type}, step.UpsertV.Fields, diags, loc)
		tr.IsMutating = true
		tr.Kind = ir.UpsertV
		tr.ShouldCollect = ir.Try
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "UpsertV", Label: step.UpsertV.Type, Fields: renderAssignFields(step.UpsertV.Fields)})
		return types.Type{Kind: types.Vector, Label: step.UpsertV.Type}

	case step.AddEdge != nil:
		_, t := a.inferAddEdge(file, sc, step.AddEdge, diags)
		tr.IsMutating = true
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "AddE", Label: step.AddEdge.Type})
		return t

	case step.RerankRRF != nil:
		ops := a.inferArgs(file, sc, step.RerankRRF.Args, diags)
		if cur.Kind != types.Vectors {
			diags.Add(source.E604, loc, "RERANK_RRF requires a vector search result, got %s", cur.Kind)
		}
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "RerankRRF", Operands: ops})
		return cur

	case step.RerankMMR != nil:
		ops := a.inferArgs(file, sc, step.RerankMMR.Args, diags)
		if cur.Kind != types.Vectors {
			diags.Add(source.E604, loc, "RERANK_MMR requires a vector search result, got %s", cur.Kind)
		}
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "RerankMMR", Operands: ops})
		return cur

	case step.First:
		if !cur.IsPlural() {
			diags.Add(source.E604, loc, "FIRST requires a plural source, got %s", cur.Kind)
		}
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "First"})
		tr.ShouldCollect = ir.ToObj
		return cur.IntoSingle()

	case step.Count:
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: "Count"})
		tr.ShouldCollect = ir.No
		return types.Type{Kind: types.Count}
	}
	diags.Add(source.E655, loc, "unrecognized step")
	return cur
}

// applyGraphNav validates a navigation step against the schema's edge map
// and rewrites the current type to the far endpoint:
// Out<E> lands on E's To node type, In<E> on its From, OutE/InE on the edge
// itself, and FromN/ToN cross back to the current edge's declared endpoints.
func (a *Analyzer) applyGraphNav(file *source.File, tr *ir.IRTraversal, cur types.Type, nav *ast.GraphNavStep, diags *source.Diagnostics) types.Type {
	loc := nav.Loc(file)
	label := ""
	if nav.Label != nil {
		label = *nav.Label
	}
	switch nav.Dir {
	case "Out", "In", "OutE", "InE":
		srcLabel, isNode := cur.NodeLabel()
		if !isNode {
			diags.Add(source.E604, loc, "%s<%s> requires a node source, got %s", nav.Dir, label, cur.Kind)
		}
		et, declared := a.Schema.Edges[label]
		if label != "" && !declared {
			diags.Add(source.E102, loc, "undeclared edge type %q", label)
		}
		resultLabel := ""
		if declared {
			near, far := et.From, et.To
			if nav.Dir == "In" || nav.Dir == "InE" {
				near, far = et.To, et.From
			}
			if isNode && srcLabel != "" && srcLabel != near {
				diags.Add(source.E604, loc, "edge %q starts at %q, not %q", label, near, srcLabel)
			}
			resultLabel = far
		}
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: nav.Dir, Label: label})
		if nav.Dir == "OutE" || nav.Dir == "InE" {
			return types.Type{Kind: types.Edges, Label: label}
		}
		return types.Type{Kind: types.Nodes, Label: resultLabel}
	case "FromN", "ToN":
		edgeLabel, isEdge := cur.EdgeLabel()
		if !isEdge {
			diags.Add(source.E604, loc, "%s requires an edge source, got %s", nav.Dir, cur.Kind)
		}
		resultLabel := ""
		if et, ok := a.Schema.Edges[edgeLabel]; ok {
			if nav.Dir == "FromN" {
				resultLabel = et.From
			} else {
				resultLabel = et.To
			}
		}
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: nav.Dir})
		if cur.Kind == types.Edges {
			return types.Type{Kind: types.Nodes, Label: resultLabel}
		}
		return types.Type{Kind: types.Node, Label: resultLabel}
	case "FromV", "ToV":
		if cur.Kind != types.Vector && cur.Kind != types.Vectors {
			diags.Add(source.E604, loc, "%s requires a vector source, got %s", nav.Dir, cur.Kind)
		}
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: nav.Dir})
		if cur.Kind == types.Vectors {
			return types.Type{Kind: types.Nodes}
		}
		return types.Type{Kind: types.Node}
	}
	diags.Add(source.E655, loc, "unrecognized graph navigation %q", nav.Dir)
	return cur
}

// applyBooleanOp validates a chained comparison (::EQ(x) and friends):
// legal only directly after a single-scalar projection, whose field type
// the comparand must match. The one special comparand shape,
// `other::{field}` on a bound variable, lowers to a direct
// property-vs-property compare instead of a reified sub-traversal.
func (a *Analyzer) applyBooleanOp(file *source.File, sc *scope.Scope, tr *ir.IRTraversal, cur types.Type, op *ast.BooleanOpStep, st *stepState, diags *source.Diagnostics) types.Type {
	loc := op.Loc(file)
	if !st.hasProjection {
		diags.Add(source.E657, loc, "%s must follow a single-property projection", op.Op)
	}

	if otherVar, otherField, ok := simplePropertyTraversal(op.Operand); ok {
		if v, inScope := sc.Lookup(otherVar); !inScope {
			diags.Add(source.E301, op.Operand.Loc(file), "undeclared identifier %q", otherVar)
		} else if fields, found := a.Schema.LookupField(v.Type); found {
			ft, has := fields[otherField]
			if !has {
				diags.Add(source.E202, op.Operand.Loc(file), "type %s has no field %q", v.Type.Label, otherField)
			} else if st.projectedType.Kind != types.Invalid && !ft.Equal(st.projectedType) {
				diags.Add(source.E622, loc, "cannot compare %s field %q with %s field %q", st.projectedType, st.projectedField, ft, otherField)
			}
		}
		tr.Steps = append(tr.Steps, ir.IRStep{Kind: op.Op, Label: st.projectedField, Args: []string{otherVar, otherField}, IsPropertyCompare: true})
		tr.ShouldCollect = ir.ToValue
		return types.Type{Kind: types.Boolean}
	}

	operand, t := a.inferExpr(file, sc, op.Operand, diags)
	switch op.Op {
	case "IS_IN":
		if t.Kind == types.Array {
			if st.projectedType.Kind != types.Invalid && t.Elem != nil && t.Elem.Kind == types.Scalar && !t.Elem.Field.Equal(st.projectedType) {
				diags.Add(source.E622, loc, "IS_IN over %s elements cannot match %s field %q", t.Elem.Field, st.projectedType, st.projectedField)
			}
		} else if t.Kind != types.Unknown {
			diags.Add(source.E621, loc, "IS_IN requires an array comparand, got %s", t.Kind)
		}
	case "CONTAINS":
		if t.Kind != types.Scalar && t.Kind != types.Unknown {
			diags.Add(source.E621, loc, "CONTAINS requires a scalar comparand, got %s", t.Kind)
		}
	default:
		switch t.Kind {
		case types.Scalar:
			if st.projectedType.Kind != types.Invalid && !t.Field.Equal(st.projectedType) && comparableKinds(t.Field, st.projectedType) {
				diags.Add(source.E622, loc, "cannot compare %s field %q with a %s value", st.projectedType, st.projectedField, t.Field)
			}
		case types.Boolean, types.Unknown:
		default:
			diags.Add(source.E621, loc, "%s requires a scalar comparand, got %s", op.Op, t.Kind)
		}
	}
	tr.Steps = append(tr.Steps, ir.IRStep{Kind: op.Op, Label: st.projectedField, Operand: operand})
	tr.ShouldCollect = ir.ToValue
	return types.Type{Kind: types.Boolean}
}

// comparableKinds reports whether two scalar field types are close enough
// that a mismatch is a user error worth E622 rather than an implicit numeric
// widening (an I32 literal compared against a U64 field is fine).
func comparableKinds(a, b types.FieldType) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return false
	}
	return true
}

// simplePropertyTraversal matches the `ident::{field}` comparand shape: a
// bound identifier followed by exactly one single-bare-field projection.
func simplePropertyTraversal(e *ast.Expr) (varName, field string, ok bool) {
	if e == nil || e.Start == nil || e.Start.Ident == nil || len(e.Steps) != 1 {
		return "", "", false
	}
	obj := e.Steps[0].Object
	if obj == nil || len(obj.Fields) != 1 || obj.Fields[0].Value != nil {
		return "", "", false
	}
	return *e.Start.Ident, obj.Fields[0].Name, true
}

// applyClosure opens a nested scope binding the closure parameter to the
// current singular element, analyzes the projection body, then restores
// plurality exactly as the preceding step left it. Only the last step of a
// traversal may be a closure (E641).
func (a *Analyzer) applyClosure(file *source.File, sc *scope.Scope, tr *ir.IRTraversal, cur types.Type, c *ast.ClosureStep, diags *source.Diagnostics) types.Type {
	wasPlural := cur.IsPlural()
	single := cur.IntoSingle()

	sc.Push()
	sc.Declare(c.Param, scope.VariableInfo{Type: single, IsSingular: true, SourceVariable: tr.StartSource})
	sc.Declare("_", scope.VariableInfo{Type: single, IsSingular: true, SourceVariable: tr.StartSource})
	var fields []ir.IRField
	for _, f := range c.Fields {
		fields = append(fields, a.renderProjectionField(file, sc, single, f, tr.ExcludedFields, diags, c.Param, tr.StartSource))
	}
	sc.Pop()

	tr.Steps = append(tr.Steps, ir.IRStep{Kind: "Closure", Label: c.Param, Fields: fields})
	tr.ClosureParam = c.Param
	tr.ClosureSource = tr.StartSource

	if wasPlural {
		tr.ShouldCollect = ir.ToVec
		return single.IntoPlural()
	}
	tr.ShouldCollect = ir.ToObj
	return single
}

// applyObjectStep lowers a `{...}` projection. A projection of exactly one
// bare field narrows the traversal to that property's scalar type so a
// chained boolean op can check its comparand against it; a multi-field
// projection is a row shape consumed by the return-value analyzer and
// leaves the element type in place.
func (a *Analyzer) applyObjectStep(file *source.File, sc *scope.Scope, tr *ir.IRTraversal, cur types.Type, o *ast.ObjectStep, st *stepState, diags *source.Diagnostics) types.Type {
	var fields []ir.IRField
	for _, f := range o.Fields {
		fields = append(fields, a.renderProjectionField(file, sc, cur, f, tr.ExcludedFields, diags, "", ""))
	}
	tr.Steps = append(tr.Steps, ir.IRStep{Kind: "Object", Fields: fields})

	st.hasProjection = true
	st.projectedField = ""
	st.projectedType = types.FieldType{}
	if len(o.Fields) == 1 && o.Fields[0].Value == nil {
		name := o.Fields[0].Name
		st.projectedField = name
		if schemaFields, ok := a.Schema.LookupField(cur); ok {
			if ft, has := schemaFields[name]; has {
				st.projectedType = ft
				return types.Type{Kind: types.Scalar, Field: ft}
			}
		}
		return types.Type{Kind: types.Unknown}
	}
	return cur
}

// renderProjectionField lowers one `name` or `name: value` entry of an
// object/closure projection. A bare name is a direct (possibly reserved)
// field access; a name with a traversal value is a nested sub-chain whose
// placeholder source ("_"/"val") must resolve to closureParam rather than
// closureSource when one is
// in scope.
func (a *Analyzer) renderProjectionField(file *source.File, sc *scope.Scope, cur types.Type, f *ast.PropAssign, excluded []string, diags *source.Diagnostics, closureParam, closureSource string) ir.IRField {
	for _, ex := range excluded {
		if f.Name == ex {
			diags.Add(source.E644, f.Loc(file), "field %q was excluded earlier in this traversal", f.Name)
		}
	}
	if f.Value == nil {
		a.checkFieldNames(file, cur, []string{f.Name}, diags, f.Loc(file))
		return ir.IRField{Name: f.Name}
	}
	nested, _ := a.inferExprWithParent(file, sc, f.Value, cur, diags)
	if nested != nil && closureParam != "" {
		nested.ClosureParam = closureParam
		nested.ClosureSource = closureSource
	}
	return ir.IRField{Name: f.Name, Nested: nested}
}

func (a *Analyzer) checkFieldNames(file *source.File, cur types.Type, names []string, diags *source.Diagnostics, loc source.Loc) {
	fields, ok := a.Schema.LookupField(cur)
	if !ok {
		return
	}
	for _, n := range names {
		if _, ok := fields[n]; !ok {
			diags.Add(source.E202, loc, "type %s has no field %q", cur.Label, n)
		}
	}
}

// rollInPrecedingCount folds ::COUNT into a following AGGREGATE/GROUP_BY:
// if the step immediately before is a bare COUNT, it is folded into the
// aggregate/group-by (is_count = true) and removed from the emitted step
// list rather than kept as a separate terminal count.
func rollInPrecedingCount(tr *ir.IRTraversal) bool {
	n := len(tr.Steps)
	if n == 0 || tr.Steps[n-1].Kind != "Count" {
		return false
	}
	tr.Steps = tr.Steps[:n-1]
	return true
}

// renderAssignFields lowers a PropAssign list (UPDATE/UPSERT field sets) to
// IR fields without re-validating; validation already happened in
// checkFieldAssigns; this only captures the pre-rendered source text for
// the emitter.
func renderAssignFields(assigns []*ast.PropAssign) []ir.IRField {
	var fields []ir.IRField
	for _, f := range assigns {
		val := f.Name
		if f.Value != nil {
			val = renderLiteralOrIdent(f.Value)
		}
		fields = append(fields, ir.IRField{Name: f.Name, Value: val})
	}
	return fields
}

// renderLiteralOrIdent renders a simple (non-traversal) expression's
// surface form for embedding directly in an emitted field value; traversal
// expressions fall back to their identifier/keyword form since the
// emitter only needs a readable placeholder for nested shapes here.
func renderLiteralOrIdent(e *ast.Expr) string {
	if e == nil || e.Start == nil {
		return "?"
	}
	s := e.Start
	switch {
	case s.Str != nil:
		return *s.Str
	case s.Int != nil:
		return fmt.Sprintf("%d", *s.Int)
	case s.Float != nil:
		return fmt.Sprintf("%v", *s.Float)
	case s.True:
		return "true"
	case s.False:
		return "false"
	case s.Ident != nil:
		return *s.Ident
	default:
		return "expr"
	}
}

func (a *Analyzer) checkIntegerExpr(file *source.File, sc *scope.Scope, e *ast.Expr, diags *source.Diagnostics) *ir.IRTraversal {
	tr, t := a.inferExpr(file, sc, e, diags)
	if t.Kind == types.Scalar && !t.Field.IsInteger() {
		diags.Add(source.E633, e.Loc(file), "expected an integer bound, got %s", t.Field)
	} else if t.Kind != types.Scalar && t.Kind != types.Unknown {
		diags.Add(source.E633, e.Loc(file), "expected an integer bound, got %s", t.Kind)
	}
	return tr
}

func (a *Analyzer) inferArgs(file *source.File, sc *scope.Scope, args []*ast.Arg, diags *source.Diagnostics) []*ir.IRTraversal {
	var ops []*ir.IRTraversal
	for _, arg := range args {
		tr, _ := a.inferExpr(file, sc, arg.Value, diags)
		ops = append(ops, tr)
	}
	return ops
}
