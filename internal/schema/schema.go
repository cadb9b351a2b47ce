// Package schema builds the flat registry of declared node/edge/vector
// types that every later analysis phase consults. It is a pure pass over
// the AST's schema declarations: it never looks at query bodies and never
// mutates the AST.
package schema

import (
	"fmt"

	"github.com/ritamzico/gqlc/internal/ast"
	"github.com/ritamzico/gqlc/internal/source"
	"github.com/ritamzico/gqlc/internal/types"
)

// Field is one declared property of a node, edge, or vector type. Fields
// are kept as an ordered slice, never a map, so emitted struct definitions
// have a stable field order.
type Field struct {
	Name    string
	Type    types.FieldType
	Indexed bool
	Default *ast.Literal
}

// NodeType is a declared N::Name { ... }.
type NodeType struct {
	Name   string
	Fields []Field
	Loc    source.Loc
}

// EdgeType is a declared E::Name { From: A, To: B, Properties: {...} }.
type EdgeType struct {
	Name       string
	From       string
	To         string
	Unique     bool
	Properties []Field
	Loc        source.Loc
}

// VectorType is a declared V::Name { ... }.
type VectorType struct {
	Name   string
	Fields []Field
	Loc    source.Loc
}

// Ctx is the full schema registry produced by the pre-pass, consulted by
// the expression analyzer (component F) and the traversal validator
// (component G) for every N<Type>/E<Type>/V<Type> reference and every
// property access.
type Ctx struct {
	Nodes   map[string]*NodeType
	Edges   map[string]*EdgeType
	Vectors map[string]*VectorType

	// NodeOrder/EdgeOrder/VectorOrder preserve declaration order for
	// deterministic iteration (e.g. emitting one struct per type).
	NodeOrder   []string
	EdgeOrder   []string
	VectorOrder []string
}

func newCtx() *Ctx {
	return &Ctx{
		Nodes:   map[string]*NodeType{},
		Edges:   map[string]*EdgeType{},
		Vectors: map[string]*VectorType{},
	}
}

// Build walks prog's top-level declarations and constructs a Ctx,
// accumulating diagnostics for duplicate type names, invalid field types,
// and edges referencing undeclared node types.
func Build(file *source.File, prog *ast.Program) (*Ctx, source.Diagnostics) {
	ctx := newCtx()
	var diags source.Diagnostics
	ctx.AddDecls(file, prog, &diags)
	return ctx, diags
}

// New returns an empty schema registry, for callers that merge several
// files' declarations into one Ctx via AddDecls.
func New() *Ctx {
	return newCtx()
}

// AddDecls merges prog's schema declarations (from file) into ctx. Node and
// vector types are registered before edges so an edge's From/To can be
// checked against types declared in the same file.
func (ctx *Ctx) AddDecls(file *source.File, prog *ast.Program, diags *source.Diagnostics) {
	for _, decl := range prog.Decls {
		switch {
		case decl.Node != nil:
			buildNode(ctx, file, decl.Node, diags)
		case decl.Vector != nil:
			buildVector(ctx, file, decl.Vector, diags)
		}
	}
	for _, decl := range prog.Decls {
		if decl.Edge != nil {
			buildEdge(ctx, file, decl.Edge, diags)
		}
	}
}

func buildNode(ctx *Ctx, file *source.File, n *ast.NodeDecl, diags *source.Diagnostics) {
	loc := n.Loc(file)
	if _, exists := ctx.Nodes[n.Name]; exists {
		diags.Add(source.E101, loc, "node type %q is already declared", n.Name)
		return
	}
	fields, fdiags := buildFields(file, n.Fields)
	*diags = append(*diags, fdiags...)
	ctx.Nodes[n.Name] = &NodeType{Name: n.Name, Fields: fields, Loc: loc}
	ctx.NodeOrder = append(ctx.NodeOrder, n.Name)
}

func buildVector(ctx *Ctx, file *source.File, v *ast.VectorDecl, diags *source.Diagnostics) {
	loc := v.Loc(file)
	if _, exists := ctx.Vectors[v.Name]; exists {
		diags.Add(source.E103, loc, "vector type %q is already declared", v.Name)
		return
	}
	fields, fdiags := buildFields(file, v.Fields)
	*diags = append(*diags, fdiags...)
	ctx.Vectors[v.Name] = &VectorType{Name: v.Name, Fields: fields, Loc: loc}
	ctx.VectorOrder = append(ctx.VectorOrder, v.Name)
}

func buildEdge(ctx *Ctx, file *source.File, e *ast.EdgeDecl, diags *source.Diagnostics) {
	loc := e.Loc(file)
	if _, exists := ctx.Edges[e.Name]; exists {
		diags.Add(source.E102, loc, "edge type %q is already declared", e.Name)
		return
	}
	if _, ok := ctx.Nodes[e.From]; !ok {
		diags.Add(source.E101, loc, "edge %q references undeclared node type %q in From", e.Name, e.From)
	}
	if _, ok := ctx.Nodes[e.To]; !ok {
		diags.Add(source.E101, loc, "edge %q references undeclared node type %q in To", e.Name, e.To)
	}
	props, fdiags := buildFields(file, e.Properties)
	*diags = append(*diags, fdiags...)
	ctx.Edges[e.Name] = &EdgeType{
		Name: e.Name, From: e.From, To: e.To, Unique: e.Unique,
		Properties: props, Loc: loc,
	}
	ctx.EdgeOrder = append(ctx.EdgeOrder, e.Name)
}

func buildFields(file *source.File, defs []*ast.FieldDef) ([]Field, source.Diagnostics) {
	var fields []Field
	var diags source.Diagnostics
	seen := map[string]bool{}
	for _, d := range defs {
		loc := d.Loc(file)
		if seen[d.Name] {
			diags.Add(source.E201, loc, "field %q is declared more than once", d.Name)
			continue
		}
		seen[d.Name] = true
		ft, ok := resolveFieldType(d.Type)
		if !ok {
			diags.Add(source.E202, loc, "field %q has an invalid type", d.Name)
			continue
		}
		fields = append(fields, Field{Name: d.Name, Type: ft, Indexed: d.Indexed, Default: d.Default})
	}
	return fields, diags
}

func resolveFieldType(ref *ast.FieldTypeRef) (types.FieldType, bool) {
	switch {
	case ref.Array != nil:
		elem, ok := resolveFieldType(ref.Array)
		if !ok {
			return types.FieldType{}, false
		}
		return types.FieldType{Kind: types.ArrayT, Elem: &elem}, true
	case ref.Object != nil:
		var fields []types.ObjectField
		for _, d := range ref.Object {
			ft, ok := resolveFieldType(d.Type)
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

// LookupField resolves a property name on a node/edge/vector type, honoring
// the reserved implicit fields every element carries: id/label on
// everything, from_node/to_node on edges, and data/level/distance/deleted
// on vectors.
func (c *Ctx) LookupField(t types.Type) (map[string]types.FieldType, bool) {
	fields := map[string]types.FieldType{
		"id":    {Kind: types.UuidT},
		"label": {Kind: types.StringT},
	}
	switch t.Kind {
	case types.Node, types.Nodes:
		nt, ok := c.Nodes[t.Label]
		if !ok {
			return nil, false
		}
		for _, f := range nt.Fields {
			fields[f.Name] = f.Type
		}
		return fields, true
	case types.Edge, types.Edges:
		et, ok := c.Edges[t.Label]
		if !ok {
			return nil, false
		}
		fields["from_node"] = types.FieldType{Kind: types.UuidT}
		fields["to_node"] = types.FieldType{Kind: types.UuidT}
		for _, f := range et.Properties {
			fields[f.Name] = f.Type
		}
		return fields, true
	case types.Vector, types.Vectors:
		vt, ok := c.Vectors[t.Label]
		if !ok {
			return nil, false
		}
		fields["data"] = types.FieldType{Kind: types.ArrayT, Elem: &types.FieldType{Kind: types.F64}}
		fields["distance"] = types.FieldType{Kind: types.F64}
		fields["level"] = types.FieldType{Kind: types.I32}
		fields["deleted"] = types.FieldType{Kind: types.BoolT}
		for _, f := range vt.Fields {
			fields[f.Name] = f.Type
		}
		return fields, true
	default:
		return nil, false
	}
}

// FieldType resolves a declared field's type on typeName, searching node,
// edge, and vector declarations in that order.
func (c *Ctx) FieldType(typeName, field string) (types.FieldType, bool) {
	search := func(fields []Field) (types.FieldType, bool) {
		for _, f := range fields {
			if f.Name == field {
				return f.Type, true
			}
		}
		return types.FieldType{}, false
	}
	if nt, ok := c.Nodes[typeName]; ok {
		return search(nt.Fields)
	}
	if et, ok := c.Edges[typeName]; ok {
		return search(et.Properties)
	}
	if vt, ok := c.Vectors[typeName]; ok {
		return search(vt.Fields)
	}
	return types.FieldType{}, false
}

// FieldIndexed reports whether field is declared on typeName (searching
// node, edge, and vector types) and, if so, whether it was marked INDEX,
// used by by-index traversal starts (E208 fires on a non-indexed field).
func (c *Ctx) FieldIndexed(typeName, field string) (indexed bool, exists bool) {
	search := func(fields []Field) (bool, bool) {
		for _, f := range fields {
			if f.Name == field {
				return f.Indexed, true
			}
		}
		return false, false
	}
	if nt, ok := c.Nodes[typeName]; ok {
		return search(nt.Fields)
	}
	if et, ok := c.Edges[typeName]; ok {
		return search(et.Properties)
	}
	if vt, ok := c.Vectors[typeName]; ok {
		return search(vt.Fields)
	}
	return false, false
}

func (c *Ctx) String() string {
	return fmt.Sprintf("schema{nodes=%d edges=%d vectors=%d}", len(c.Nodes), len(c.Edges), len(c.Vectors))
}
