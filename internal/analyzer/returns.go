package analyzer

import (
	"strings"

	"github.com/ritamzico/gqlc/internal/ast"
	"github.com/ritamzico/gqlc/internal/ir"
	"github.com/ritamzico/gqlc/internal/scope"
	"github.com/ritamzico/gqlc/internal/source"
	"github.com/ritamzico/gqlc/internal/types"
)

// buildReturns analyzes a query's RETURN clause (component I), producing
// one ir.ReturnField per item in RETURN-clause order (insertion-ordered,
// never a map, so emitted field order is deterministic). Each field records where its value comes from (a literal, a bound variable
// passed through, a single schema property, an aggregate, or a nested
// traversal the emitter must evaluate per element) plus the plurality and
// struct-naming metadata the emitter's response construction needs.
func (a *Analyzer) buildReturns(file *source.File, sc *scope.Scope, q *ast.QueryDecl, diags *source.Diagnostics) *ir.ReturnStruct {
	if len(q.Returns) == 0 {
		diags.Add(source.E305, q.Loc(file), "query %q has no RETURN clause", q.Name)
		return &ir.ReturnStruct{QueryName: q.Name}
	}

	rs := &ir.ReturnStruct{QueryName: q.Name}
	for _, item := range q.Returns {
		tr, t := a.inferExpr(file, sc, item.Expr, diags)
		field := ir.ReturnField{
			Name:         item.Name,
			Source:       classifyReturnSource(item.Expr),
			Type:         t,
			IsCollection: t.IsPlural() || t.Kind == types.Array,
		}
		if item.Expr != nil && item.Expr.Start != nil && item.Expr.Start.Ident != nil {
			field.SourceVariable = *item.Expr.Start.Ident
		}
		switch field.Source {
		case ir.LiteralField:
			field.Nested = tr
		case ir.SchemaField:
			field.PropertyName = singleProjectedField(item.Expr)
		case ir.NestedTraversal, ir.AggregateField:
			field.Nested = tr
			if traversalEndsInClosure(tr) {
				field.NestedStructName = q.Name + exportName(item.Name) + "Item"
				tr.ClosureStructName = field.NestedStructName
			}
			field.IsFirst = traversalTakesFirst(tr)
		}
		rs.Fields = append(rs.Fields, field)
	}
	return rs
}

// classifyReturnSource reports how an emitted return field should be
// rendered: a literal, an implicit passthrough of a bound variable, a
// direct single-property access, an aggregate, or a nested traversal that
// needs its own method chain.
func classifyReturnSource(e *ast.Expr) ir.ReturnFieldSource {
	if e == nil || e.Start == nil {
		return ir.LiteralField
	}
	switch {
	case e.Start.Int != nil, e.Start.Float != nil, e.Start.Str != nil, e.Start.True, e.Start.False:
		if len(e.Steps) == 0 {
			return ir.LiteralField
		}
	case e.Start.Ident != nil:
		if len(e.Steps) == 0 {
			return ir.ImplicitField
		}
		if singleProjectedField(e) != "" {
			return ir.SchemaField
		}
	}
	for _, step := range e.Steps {
		if step.Aggregate != nil || step.GroupBy != nil {
			return ir.AggregateField
		}
	}
	return ir.NestedTraversal
}

// singleProjectedField matches `ident::{field}`: exactly one step, a
// single-bare-field projection, no remap.
func singleProjectedField(e *ast.Expr) string {
	if e == nil || len(e.Steps) != 1 || e.Steps[0].Object == nil {
		return ""
	}
	obj := e.Steps[0].Object
	if len(obj.Fields) != 1 || obj.Fields[0].Value != nil {
		return ""
	}
	return obj.Fields[0].Name
}

func traversalEndsInClosure(tr *ir.IRTraversal) bool {
	if tr == nil || len(tr.Steps) == 0 {
		return false
	}
	return tr.Steps[len(tr.Steps)-1].Kind == "Closure"
}

func traversalTakesFirst(tr *ir.IRTraversal) bool {
	if tr == nil {
		return false
	}
	for _, s := range tr.Steps {
		if s.Kind == "First" {
			return true
		}
	}
	return false
}

// exportName upper-cases the first letter of a return field name for use in
// a generated struct name.
func exportName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
