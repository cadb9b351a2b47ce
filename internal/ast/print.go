package ast

import (
	"fmt"
	"strings"
)

// This file renders the AST back to canonical GQL. Printing a parsed
// program and re-parsing the output yields the same tree, which is what
// the printer tests assert; it is also what error messages quote when a
// diagnostic wants to show a normalized fragment.

func (p *Program) String() string {
	parts := make([]string, 0, len(p.Decls))
	for _, d := range p.Decls {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func (d *Decl) String() string {
	switch {
	case d.Node != nil:
		return d.Node.String()
	case d.Edge != nil:
		return d.Edge.String()
	case d.Vector != nil:
		return d.Vector.String()
	case d.Query != nil:
		return d.Query.String()
	}
	return ""
}

func printFieldDefs(b *strings.Builder, defs []*FieldDef, indent string) {
	for _, f := range defs {
		b.WriteString(indent)
		if f.Indexed {
			b.WriteString("INDEX ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Type.String())
		if f.Default != nil {
			b.WriteString(" = ")
			b.WriteString(f.Default.String())
		}
		b.WriteString(",\n")
	}
}

func (n *NodeDecl) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "N::%s {\n", n.Name)
	printFieldDefs(&b, n.Fields, "    ")
	b.WriteString("}")
	return b.String()
}

func (e *EdgeDecl) String() string {
	var b strings.Builder
	b.WriteString("E::" + e.Name)
	if e.Unique {
		b.WriteString(" UNIQUE")
	}
	fmt.Fprintf(&b, " {\n    From: %s,\n    To: %s", e.From, e.To)
	if len(e.Properties) > 0 {
		b.WriteString(",\n    Properties: {\n")
		printFieldDefs(&b, e.Properties, "        ")
		b.WriteString("    }")
	}
	b.WriteString("\n}")
	return b.String()
}

func (v *VectorDecl) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "V::%s {\n", v.Name)
	printFieldDefs(&b, v.Fields, "    ")
	b.WriteString("}")
	return b.String()
}

func (r *FieldTypeRef) String() string {
	switch {
	case r.Array != nil:
		return "Array<" + r.Array.String() + ">"
	case r.Object != nil:
		var parts []string
		for _, f := range r.Object {
			parts = append(parts, f.Name+": "+f.Type.String())
		}
		return "Object<{" + strings.Join(parts, ", ") + "}>"
	default:
		return r.Name
	}
}

func (l *Literal) String() string {
	switch {
	case l.Str != nil:
		return *l.Str
	case l.Float != nil:
		return formatFloat(*l.Float)
	case l.Int != nil:
		return fmt.Sprintf("%d", *l.Int)
	case l.True:
		return "true"
	case l.False:
		return "false"
	}
	return ""
}

// formatFloat always keeps a decimal point so the token re-lexes as Float.
func formatFloat(f float64) string {
	s := fmt.Sprintf("%v", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (q *QueryDecl) String() string {
	var b strings.Builder
	params := make([]string, 0, len(q.Parameters))
	for _, p := range q.Parameters {
		params = append(params, p.String())
	}
	fmt.Fprintf(&b, "QUERY %s(%s) =>\n", q.Name, strings.Join(params, ", "))
	for _, s := range q.Body {
		b.WriteString(s.indented("    "))
	}
	rets := make([]string, 0, len(q.Returns))
	for _, r := range q.Returns {
		rets = append(rets, r.Name+": "+r.Expr.String())
	}
	b.WriteString("    RETURN " + strings.Join(rets, ", "))
	return b.String()
}

func (p *Parameter) String() string {
	s := p.Name + ": " + p.Type.String()
	if p.IsOptional {
		s += "?"
	}
	return s
}

func (s *Statement) indented(indent string) string {
	switch {
	case s.Assign != nil:
		return indent + s.Assign.Name + " <- " + s.Assign.Expr.String() + "\n"
	case s.For != nil:
		var b strings.Builder
		b.WriteString(indent + "FOR " + strings.Join(s.For.Vars, ", ") + " IN " + s.For.Iterable.String() + " {\n")
		for _, inner := range s.For.Body {
			b.WriteString(inner.indented(indent + "    "))
		}
		b.WriteString(indent + "}\n")
		return b.String()
	case s.Drop != nil:
		return indent + "DROP " + s.Drop.Expr.String() + "\n"
	case s.Expr != nil:
		return indent + s.Expr.Expr.String() + "\n"
	}
	return ""
}

func (e *Expr) String() string {
	if e == nil || e.Start == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Start.String())
	for _, s := range e.Steps {
		b.WriteString("::")
		b.WriteString(s.String())
	}
	return b.String()
}

func printExprList(exprs []*Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

func printArgs(args []*Arg) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a.Name != nil {
			parts = append(parts, *a.Name+": "+a.Value.String())
		} else {
			parts = append(parts, a.Value.String())
		}
	}
	return strings.Join(parts, ", ")
}

func printPropAssigns(props []*PropAssign) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		if p.Value != nil {
			parts = append(parts, p.Name+": "+p.Value.String())
		} else {
			parts = append(parts, p.Name)
		}
	}
	return strings.Join(parts, ", ")
}

func (v *IDArgValue) String() string {
	if v == nil {
		return ""
	}
	if v.Ident != nil {
		return *v.Ident
	}
	if v.Lit != nil {
		return v.Lit.String()
	}
	return ""
}

func (id *IDArg) String() string {
	if id.ByIndex != nil {
		return "{" + id.ByIndex.Field + "}(" + id.ByIndex.Value.String() + ")"
	}
	return id.Value.String()
}

func (s *StartNode) String() string {
	switch {
	case s.Empty:
		return "EMPTY"
	case s.Float != nil:
		return formatFloat(*s.Float)
	case s.Int != nil:
		return fmt.Sprintf("%d", *s.Int)
	case s.Str != nil:
		return *s.Str
	case s.True:
		return "true"
	case s.False:
		return "false"
	case s.Array != nil:
		return "[" + printExprList(s.Array.Elems) + "]"
	case s.Not != nil:
		return "NOT(" + s.Not.Inner.String() + ")"
	case s.And != nil:
		return "AND(" + printExprList(s.And.Exprs) + ")"
	case s.Or != nil:
		return "OR(" + printExprList(s.Or.Exprs) + ")"
	case s.Exists != nil:
		return "EXISTS(" + s.Exists.Inner.String() + ")"
	case s.Math != nil:
		return s.Math.Fn + "(" + printExprList(s.Math.Args) + ")"
	case s.Embed != nil:
		if s.Embed.Ident != nil {
			return "Embed(" + *s.Embed.Ident + ")"
		}
		return "Embed(" + *s.Embed.Str + ")"
	case s.AddNode != nil:
		return "AddN<" + s.AddNode.Type + ">(" + propsBlock(s.AddNode.Props) + ")"
	case s.AddEdge != nil:
		return s.AddEdge.String()
	case s.AddVector != nil:
		return "AddV<" + s.AddVector.Type + ">(" + propsBlock(s.AddVector.Props) + ")"
	case s.SearchVector != nil:
		return "SearchV<" + s.SearchVector.Type + ">(" + printArgs(s.SearchVector.Args) + ")"
	case s.SearchHybrid != nil:
		return "SearchHybrid<" + s.SearchHybrid.Type + ">(" + printArgs(s.SearchHybrid.Args) + ")"
	case s.SearchBM25 != nil:
		return "SearchBM25<" + s.SearchBM25.Type + ">(" + printArgs(s.SearchBM25.Args) + ")"
	case s.PPR != nil:
		return "PPR(" + printArgs(s.PPR.Args) + ")"
	case s.NodeByType != nil:
		return typeStart("N", s.NodeByType.Type, s.NodeByType.ID)
	case s.EdgeByType != nil:
		return typeStart("E", s.EdgeByType.Type, s.EdgeByType.ID)
	case s.VectorByType != nil:
		return typeStart("V", s.VectorByType.Type, s.VectorByType.ID)
	case s.Anonymous:
		return "_"
	case s.Ident != nil:
		return *s.Ident
	}
	return ""
}

func typeStart(tag, typeName string, id *IDArg) string {
	s := tag + "<" + typeName + ">"
	if id != nil {
		s += "(" + id.String() + ")"
	}
	return s
}

func propsBlock(props []*PropAssign) string {
	if len(props) == 0 {
		return ""
	}
	return "{" + printPropAssigns(props) + "}"
}

func (e *AddEdgeExpr) String() string {
	s := "AddE<" + e.Type + ">(From(" + e.From.String() + "), To(" + e.To.String() + ")"
	if len(e.Props) > 0 {
		s += ", {" + printPropAssigns(e.Props) + "}"
	}
	return s + ")"
}

func (s *Step) String() string {
	switch {
	case s.GraphNav != nil:
		if s.GraphNav.Label != nil {
			return s.GraphNav.Dir + "<" + *s.GraphNav.Label + ">"
		}
		return s.GraphNav.Dir
	case s.Closure != nil:
		return "|" + s.Closure.Param + "| {" + printPropAssigns(s.Closure.Fields) + "}"
	case s.Exclude != nil:
		return "!{" + strings.Join(s.Exclude.Fields, ", ") + "}"
	case s.Object != nil:
		return "{" + printPropAssigns(s.Object.Fields) + "}"
	case s.Where != nil:
		return "WHERE(" + s.Where.Inner.String() + ")"
	case s.BooleanOp != nil:
		return s.BooleanOp.Op + "(" + s.BooleanOp.Operand.String() + ")"
	case s.Range != nil:
		return "RANGE(" + s.Range.Start.String() + ", " + s.Range.End.String() + ")"
	case s.OrderBy != nil:
		if s.OrderBy.Dir != "" {
			return "ORDER_BY(" + s.OrderBy.Inner.String() + ", " + s.OrderBy.Dir + ")"
		}
		return "ORDER_BY(" + s.OrderBy.Inner.String() + ")"
	case s.Aggregate != nil:
		return "AGGREGATE(" + strings.Join(s.Aggregate.Props, ", ") + ")"
	case s.GroupBy != nil:
		return "GROUP_BY(" + strings.Join(s.GroupBy.Props, ", ") + ")"
	case s.Update != nil:
		return "UPDATE({" + printPropAssigns(s.Update.Fields) + "})"
	case s.UpsertN != nil:
		return "UpsertN<" + s.UpsertN.Type + ">({" + printPropAssigns(s.UpsertN.Fields) + "})"
	case s.UpsertE != nil:
		return "UpsertE<" + s.UpsertE.Type + ">({" + printPropAssigns(s.UpsertE.Fields) + "})"
	case s.UpsertV != nil:
		return "UpsertV<" + s.UpsertV.Type + ">({" + printPropAssigns(s.UpsertV.Fields) + "})"
	case s.Upsert != nil:
		return "UPSERT({" + printPropAssigns(s.Upsert.Fields) + "})"
	case s.AddEdge != nil:
		return s.AddEdge.String()
	case s.RerankRRF != nil:
		return "RERANK_RRF(" + printArgs(s.RerankRRF.Args) + ")"
	case s.RerankMMR != nil:
		return "RERANK_MMR(" + printArgs(s.RerankMMR.Args) + ")"
	case s.First:
		return "FIRST"
	case s.Count:
		return "COUNT"
	}
	return ""
}
