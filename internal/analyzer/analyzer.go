// Package analyzer is the semantic analyzer: name resolution and scope
// discipline, expression type inference, traversal validation, and
// return-value analysis. It never touches source text or
// emits code; it turns a parsed *ast.Program plus a *schema.Ctx into
// diagnostics and a per-query ir.IRTraversal/ir.ReturnStruct pair for the
// emitter to consume.
package analyzer

import (
	"github.com/ritamzico/gqlc/internal/ast"
	"github.com/ritamzico/gqlc/internal/ir"
	"github.com/ritamzico/gqlc/internal/schema"
	"github.com/ritamzico/gqlc/internal/scope"
	"github.com/ritamzico/gqlc/internal/source"
	"github.com/ritamzico/gqlc/internal/types"
)

// Analyzer carries the schema registry every phase consults, plus the
// current query's accumulated hoisted embedding calls. The hoisted list is
// reset at the start of each analyzeQuery call; queries are analyzed one
// at a time, so this mutable field never races across queries.
type Analyzer struct {
	Schema  *schema.Ctx
	hoisted []ir.HoistedEmbed
}

// New builds an Analyzer bound to ctx.
func New(ctx *schema.Ctx) *Analyzer {
	return &Analyzer{Schema: ctx}
}

// QueryResult is everything the emitter needs for one query: its parameter
// list, the statements lowered to IR, and its return struct.
type QueryResult struct {
	Decl       *ast.QueryDecl
	Statements []*ir.IRTraversal
	Returns    *ir.ReturnStruct
	IsMutating bool
	Hoisted    []ir.HoistedEmbed
}

// AnalyzeProgram analyzes every QUERY declaration in prog and returns one
// QueryResult per query, plus the accumulated diagnostics. Analysis does
// not short-circuit on error within or across queries: every query is
// analyzed so a single run surfaces every problem.
func (a *Analyzer) AnalyzeProgram(file *source.File, prog *ast.Program) ([]*QueryResult, source.Diagnostics) {
	var diags source.Diagnostics
	var results []*QueryResult
	for _, decl := range prog.Decls {
		if decl.Query == nil {
			continue
		}
		qr, qdiags := a.analyzeQuery(file, decl.Query)
		diags = append(diags, qdiags...)
		results = append(results, qr)
	}
	return results, diags
}

func (a *Analyzer) analyzeQuery(file *source.File, q *ast.QueryDecl) (*QueryResult, source.Diagnostics) {
	var diags source.Diagnostics
	sc := scope.New()
	a.hoisted = nil

	for _, p := range q.Parameters {
		ft, ok := resolveParamType(p.Type)
		if !ok {
			diags.Add(source.E202, p.Loc(file), "parameter %q has an invalid type", p.Name)
			continue
		}
		sc.Declare(p.Name, scope.VariableInfo{Type: types.Type{Kind: types.Scalar, Field: ft}, IsSingular: true})
	}

	var stmts []*ir.IRTraversal
	isMutating := false
	for _, stmt := range q.Body {
		tr := a.analyzeStatement(file, sc, stmt, &diags)
		if tr != nil {
			stmts = append(stmts, tr)
			if tr.IsMutating {
				isMutating = true
			}
		}
	}

	ret := a.buildReturns(file, sc, q, &diags)

	return &QueryResult{Decl: q, Statements: stmts, Returns: ret, IsMutating: isMutating, Hoisted: a.hoisted}, diags
}

func (a *Analyzer) analyzeStatement(file *source.File, sc *scope.Scope, stmt *ast.Statement, diags *source.Diagnostics) *ir.IRTraversal {
	switch {
	case stmt.Assign != nil:
		tr, t := a.inferExpr(file, sc, stmt.Assign.Expr, diags)
		sc.Declare(stmt.Assign.Name, scope.VariableInfo{Type: t, IsSingular: t.IsSingular() || t.Kind == types.Scalar || t.Kind == types.Boolean})
		if tr != nil {
			tr.VarName = stmt.Assign.Name
		}
		return tr
	case stmt.Drop != nil:
		tr, _ := a.inferExpr(file, sc, stmt.Drop.Expr, diags)
		if tr != nil {
			tr.IsMutating = true
			tr.Steps = append(tr.Steps, ir.IRStep{Kind: "Drop"})
			tr.ShouldCollect = ir.No
		}
		return tr
	case stmt.Expr != nil:
		tr, _ := a.inferExpr(file, sc, stmt.Expr.Expr, diags)
		return tr
	case stmt.For != nil:
		return a.analyzeFor(file, sc, stmt.For, diags)
	}
	return nil
}

func (a *Analyzer) analyzeFor(file *source.File, sc *scope.Scope, f *ast.ForStmt, diags *source.Diagnostics) *ir.IRTraversal {
	iterTr, iterType := a.inferExpr(file, sc, f.Iterable, diags)
	if !iterType.IsPlural() && iterType.Kind != types.Array && iterType.Kind != types.Unknown {
		diags.Add(source.E604, f.Loc(file), "FOR requires an iterable (plural) source, got %s", iterType.Kind)
	}
	sc.Push()
	defer sc.Pop()
	elemType := iterType.IntoSingle()
	for _, v := range f.Vars {
		sc.Declare(v, scope.VariableInfo{Type: elemType, IsSingular: true})
	}
	loop := &ir.IRTraversal{Kind: ir.Standalone, StartSource: "FOR", Inner: iterTr, ForVars: f.Vars}
	for _, stmt := range f.Body {
		if tr := a.analyzeStatement(file, sc, stmt, diags); tr != nil {
			loop.ForBody = append(loop.ForBody, tr)
			if tr.IsMutating {
				loop.IsMutating = true
			}
		}
	}
	return loop
}

func resolveParamType(ref *ast.FieldTypeRef) (types.FieldType, bool) {
	switch {
	case ref.Array != nil:
		elem, ok := resolveParamType(ref.Array)
		if !ok {
			return types.FieldType{}, false
		}
		return types.FieldType{Kind: types.ArrayT, Elem: &elem}, true
	case ref.Object != nil:
		var fields []types.ObjectField
		for _, d := range ref.Object {
			ft, ok := resolveParamType(d.Type)
			if !ok {
				return types.FieldType{}, false
			}
			fields = append(fields, types.ObjectField{Name: d.Name, Type: ft})
		}
		return types.FieldType{Kind: types.ObjectT, Fields: fields}, true
	default:
		kind, ok := types.ParseFieldKind(ref.Name)
		if !ok {
			return types.FieldType{}, false
		}
		return types.FieldType{Kind: kind}, true
	}
}
