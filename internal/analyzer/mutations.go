package analyzer

import (
	"fmt"

	"github.com/ritamzico/gqlc/internal/ast"
	"github.com/ritamzico/gqlc/internal/ir"
	"github.com/ritamzico/gqlc/internal/schema"
	"github.com/ritamzico/gqlc/internal/scope"
	"github.com/ritamzico/gqlc/internal/source"
	"github.com/ritamzico/gqlc/internal/types"
)

func (a *Analyzer) inferAddNode(file *source.File, sc *scope.Scope, n *ast.AddNodeExpr, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	loc := n.Loc(file)
	nt, ok := a.Schema.Nodes[n.Type]
	if !ok {
		diags.Add(source.E101, loc, "undeclared node type %q", n.Type)
	} else {
		a.checkRequiredFields(file, nt.Fields, n.Props, diags, loc)
	}
	a.checkFieldAssigns(file, sc, types.Type{Kind: types.Node, Label: n.Type}, n.Props, diags, loc)
	fields := renderAssignFields(n.Props)
	if ok {
		fields = appendDefaults(fields, nt.Fields, n.Props)
	}
	return &ir.IRTraversal{Kind: ir.Mut, StartSource: "AddN<" + n.Type + ">", IsMutating: true, ShouldCollect: ir.Try,
		StartFields: fields,
	}, types.Type{Kind: types.Node, Label: n.Type}
}

func (a *Analyzer) inferAddVector(file *source.File, sc *scope.Scope, n *ast.AddVectorExpr, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	loc := n.Loc(file)
	vt, ok := a.Schema.Vectors[n.Type]
	if !ok {
		diags.Add(source.E103, loc, "undeclared vector type %q", n.Type)
	} else {
		a.checkRequiredFields(file, vt.Fields, n.Props, diags, loc)
	}
	a.checkFieldAssigns(file, sc, types.Type{Kind: types.Vector, Label: n.Type}, n.Props, diags, loc)
	fields := renderAssignFields(n.Props)
	if ok {
		fields = appendDefaults(fields, vt.Fields, n.Props)
	}
	return &ir.IRTraversal{Kind: ir.Mut, StartSource: "AddV<" + n.Type + ">", IsMutating: true, ShouldCollect: ir.Try,
		StartFields: fields,
	}, types.Type{Kind: types.Vector, Label: n.Type}
}

func (a *Analyzer) inferAddEdge(file *source.File, sc *scope.Scope, e *ast.AddEdgeExpr, diags *source.Diagnostics) (*ir.IRTraversal, types.Type) {
	loc := e.Loc(file)
	et, ok := a.Schema.Edges[e.Type]
	if !ok {
		diags.Add(source.E102, loc, "undeclared edge type %q", e.Type)
	}
	if e.From == nil {
		diags.Add(source.E611, loc, "AddE<%s> is missing From(...)", e.Type)
	} else {
		a.checkEdgeEndpoint(file, sc, e.From, diags)
	}
	if e.To == nil {
		diags.Add(source.E612, loc, "AddE<%s> is missing To(...)", e.Type)
	} else {
		a.checkEdgeEndpoint(file, sc, e.To, diags)
	}
	if ok {
		a.checkRequiredFields(file, et.Properties, e.Props, diags, loc)
	}
	a.checkFieldAssigns(file, sc, types.Type{Kind: types.Edge, Label: e.Type}, e.Props, diags, loc)

	kind := ir.Mut
	// A plural From or To expands to one edge per matched endpoint rather
	// than a cartesian product or a hard error (see DESIGN.md, Open
	// Question 1): the emitter renders a Standalone AddE as a single
	// G::add_e_pairs call.
	if e.From != nil && e.From.Ident != nil {
		if v, ok := sc.Lookup(*e.From.Ident); ok && !v.IsSingular {
			kind = ir.Standalone
		}
	}
	if e.To != nil && e.To.Ident != nil {
		if v, ok := sc.Lookup(*e.To.Ident); ok && !v.IsSingular {
			kind = ir.Standalone
		}
	}
	startFields := renderAssignFields(e.Props)
	if ok {
		startFields = appendDefaults(startFields, et.Properties, e.Props)
	}
	startFields = append([]ir.IRField{
		{Name: "From", Value: idArgValueSource(e.From)},
		{Name: "To", Value: idArgValueSource(e.To)},
	}, startFields...)
	return &ir.IRTraversal{Kind: kind, StartSource: "AddE<" + e.Type + ">", IsMutating: true, ShouldCollect: ir.Try, StartFields: startFields}, types.Type{Kind: types.Edge, Label: e.Type}
}

// idArgValueSource renders an AddE endpoint argument's surface form for the
// emitted edge constructor's From/To arguments.
func idArgValueSource(v *ast.IDArgValue) string {
	if v == nil {
		return "?"
	}
	if v.Ident != nil {
		return *v.Ident
	}
	if v.Lit != nil {
		return literalSource(v.Lit)
	}
	return "?"
}

// literalSource renders an ast.Literal's surface form.
func literalSource(l *ast.Literal) string {
	switch {
	case l.Str != nil:
		return *l.Str
	case l.Float != nil:
		return fmt.Sprintf("%v", *l.Float)
	case l.Int != nil:
		return fmt.Sprintf("%d", *l.Int)
	case l.True:
		return "true"
	case l.False:
		return "false"
	default:
		return "?"
	}
}

// checkEdgeEndpoint validates one From(...)/To(...) argument: an identifier
// must be in scope and either node-shaped or a Uuid scalar; a string
// literal must be a well-formed UUID.
func (a *Analyzer) checkEdgeEndpoint(file *source.File, sc *scope.Scope, v *ast.IDArgValue, diags *source.Diagnostics) {
	if v.Ident == nil {
		a.checkUuidValue(file, sc, v, diags)
		return
	}
	info, ok := sc.Lookup(*v.Ident)
	if !ok {
		diags.Add(source.E301, v.Loc(file), "undeclared identifier %q", *v.Ident)
		return
	}
	t := info.Type
	switch {
	case t.Kind == types.Node || t.Kind == types.Nodes || t.Kind == types.Unknown:
	case t.Kind == types.Scalar && t.Field.Kind == types.UuidT:
	default:
		diags.Add(source.E205, v.Loc(file), "edge endpoint %q must be a node or Uuid, got %s", *v.Ident, t.Kind)
	}
}

// appendDefaults adds one constructor field per declared default the query
// did not supply, so emitted AddN/AddE/AddV calls carry the schema's
// defaults explicitly.
func appendDefaults(fields []ir.IRField, declared []schema.Field, given []*ast.PropAssign) []ir.IRField {
	supplied := map[string]bool{}
	for _, p := range given {
		supplied[p.Name] = true
	}
	for _, f := range declared {
		if f.Default == nil || supplied[f.Name] {
			continue
		}
		fields = append(fields, ir.IRField{Name: f.Name, Value: literalSource(f.Default)})
	}
	return fields
}

// checkRequiredFields reports E304 for every declared field that carries no
// default and is missing from given.
func (a *Analyzer) checkRequiredFields(file *source.File, declared []schema.Field, given []*ast.PropAssign, diags *source.Diagnostics, loc source.Loc) {
	suppliedOrDefaulted := map[string]bool{}
	for _, p := range given {
		suppliedOrDefaulted[p.Name] = true
	}
	for _, f := range declared {
		if f.Default != nil {
			continue
		}
		if !suppliedOrDefaulted[f.Name] {
			diags.Add(source.E304, loc, "missing required field %q", f.Name)
		}
	}
}
