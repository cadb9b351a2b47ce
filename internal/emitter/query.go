package emitter

import (
	"fmt"
	"strings"

	"github.com/ritamzico/gqlc/internal/analyzer"
	"github.com/ritamzico/gqlc/internal/ast"
	"github.com/ritamzico/gqlc/internal/ir"
	"github.com/ritamzico/gqlc/internal/types"
)

// reservedAccessor maps a reserved property name to the fixed
// element-accessor method the runtime exposes for it, independent of the
// schema field map.
var reservedAccessor = map[string]string{
	"id":        "id",
	"label":     "label",
	"from_node": "from_node",
	"to_node":   "to_node",
	"data":      "data",
	"distance":  "score",
	"deleted":   "deleted",
	"level":     "level",
}

// uuidFormatted are the reserved accessors whose raw value is a UUID and
// must go through the string-formatting helper in response construction.
var uuidFormatted = map[string]bool{"id": true, "from_node": true, "to_node": true}

// emitQuery renders one query's input struct, return structs, handler body,
// and the tool-calling (MCP) handler variant.
func emitQuery(b *strings.Builder, qr *analyzer.QueryResult) {
	q := qr.Decl
	emitInputStruct(b, q)
	emitReturnStructs(b, qr.Returns)

	fmt.Fprintf(b, "handler %s(input: %sInput) -> %sOutput {\n", q.Name, q.Name, q.Name)

	// Hoisted embedding calls run before the transaction opens, as a flat
	// sequential await list rather than the original's continuation
	// closure.
	for _, h := range qr.Hoisted {
		fmt.Fprintf(b, "    let %s = embedding_service.embed(%s).await?;\n", h.Name, h.Arg)
	}

	if qr.IsMutating {
		b.WriteString("    let mut txn = db.begin_mut_txn()?;\n")
	} else {
		b.WriteString("    let txn = db.begin_txn()?;\n")
	}
	for i, stmt := range qr.Statements {
		if stmt.StartSource == "FOR" && len(stmt.ForVars) > 0 {
			emitForLoop(b, stmt)
			continue
		}
		name := stmt.VarName
		if name == "" {
			name = fmt.Sprintf("_s%d", i)
		}
		fmt.Fprintf(b, "    let %s = %s;\n", name, renderTraversal(stmt))
	}
	if qr.IsMutating {
		b.WriteString("    txn.commit()?;\n")
	}
	emitReturnBody(b, qr.Returns)
	b.WriteString("}\n\n")

	// The MCP variant is the same handler reachable from a tool-calling
	// session: it threads the caller's connection identifier to pick the
	// database instance, then delegates.
	fmt.Fprintf(b, "handler mcp_%s(connection: ConnectionId, input: %sInput) -> %sOutput {\n", q.Name, q.Name, q.Name)
	b.WriteString("    let db = connections.get(connection)?;\n")
	fmt.Fprintf(b, "    %s(input)\n", q.Name)
	b.WriteString("}\n")
}

func emitForLoop(b *strings.Builder, loop *ir.IRTraversal) {
	pattern := loop.ForVars[0]
	if len(loop.ForVars) > 1 {
		pattern = "(" + strings.Join(loop.ForVars, ", ") + ")"
	}
	fmt.Fprintf(b, "    for %s in %s {\n", pattern, renderTraversal(loop.Inner))
	for j, inner := range loop.ForBody {
		name := inner.VarName
		if name == "" {
			name = fmt.Sprintf("_f%d", j)
		}
		fmt.Fprintf(b, "        let %s = %s;\n", name, renderTraversal(inner))
	}
	b.WriteString("    }\n")
}

func emitInputStruct(b *strings.Builder, q *ast.QueryDecl) {
	fmt.Fprintf(b, "struct %sInput {\n", q.Name)
	for _, p := range q.Parameters {
		t := renderFieldTypeRef(p.Type)
		if p.IsOptional {
			t = "Option<" + t + ">"
		}
		fmt.Fprintf(b, "    %s: %s,\n", p.Name, t)
	}
	b.WriteString("}\n\n")
}

func renderFieldTypeRef(ref *ast.FieldTypeRef) string {
	switch {
	case ref.Array != nil:
		return "Vec<" + renderFieldTypeRef(ref.Array) + ">"
	case ref.Object != nil:
		var parts []string
		for _, f := range ref.Object {
			parts = append(parts, f.Name+": "+renderFieldTypeRef(f.Type))
		}
		return "Object<{" + strings.Join(parts, ", ") + "}>"
	default:
		return scalarTypeName(ref.Name)
	}
}

// scalarTypeName lowers a GQL scalar keyword to the emitted type name.
var scalarNames = map[string]string{
	"String": "String", "Bool": "bool",
	"I8": "i8", "I16": "i16", "I32": "i32", "I64": "i64",
	"U8": "u8", "U16": "u16", "U32": "u32", "U64": "u64", "U128": "u128",
	"F32": "f32", "F64": "f64", "Date": "Date", "Uuid": "ID",
}

func scalarTypeName(name string) string {
	if s, ok := scalarNames[name]; ok {
		return s
	}
	return name
}

// emitReturnStructs declares the query's output struct plus one nested
// item struct per closure-projected return field.
func emitReturnStructs(b *strings.Builder, rs *ir.ReturnStruct) {
	if rs == nil {
		return
	}
	for _, f := range rs.Fields {
		if f.NestedStructName == "" || f.Nested == nil {
			continue
		}
		closure := f.Nested.Steps[len(f.Nested.Steps)-1]
		fmt.Fprintf(b, "struct %s {\n", f.NestedStructName)
		for _, cf := range closure.Fields {
			fmt.Fprintf(b, "    %s: %s,\n", cf.Name, closureFieldTypeName(cf))
		}
		b.WriteString("}\n\n")
	}
	fmt.Fprintf(b, "struct %sOutput {\n", rs.QueryName)
	for _, f := range rs.Fields {
		fmt.Fprintf(b, "    %s: %s,\n", f.Name, typeName(f.Type, f.NestedStructName))
	}
	b.WriteString("}\n\n")
}

func closureFieldTypeName(f ir.IRField) string {
	if f.Nested != nil {
		if f.Nested.ShouldCollect == ir.ToVec {
			return "Vec<Value>"
		}
		return "Value"
	}
	if uuidFormatted[f.Name] {
		return "String"
	}
	if f.Name == "label" {
		return "String"
	}
	return "Value"
}

func typeName(t types.Type, nestedStruct string) string {
	switch t.Kind {
	case types.Node, types.Edge, types.Vector:
		if nestedStruct != "" {
			return nestedStruct
		}
		if t.Label != "" {
			return t.Label
		}
		return "Value"
	case types.Nodes, types.Edges, types.Vectors:
		if nestedStruct != "" {
			return "Vec<" + nestedStruct + ">"
		}
		if t.Label != "" {
			return "Vec<" + t.Label + ">"
		}
		return "Vec<Value>"
	case types.Scalar:
		return scalarTypeName(t.Field.String())
	case types.Boolean:
		return "bool"
	case types.Count:
		return "usize"
	case types.Array:
		if t.Elem != nil {
			return "Vec<" + typeName(*t.Elem, nestedStruct) + ">"
		}
		return "Vec<Value>"
	case types.Aggregate:
		return "Value"
	default:
		return "Value"
	}
}

// emitReturnBody constructs the response object from the return plan, one
// field at a time per its ReturnFieldSource.
func emitReturnBody(b *strings.Builder, rs *ir.ReturnStruct) {
	if rs == nil {
		return
	}
	fmt.Fprintf(b, "    return Ok(%sOutput {\n", rs.QueryName)
	for _, f := range rs.Fields {
		fmt.Fprintf(b, "        %s: %s,\n", f.Name, renderReturnValue(f))
	}
	b.WriteString("    })\n")
}

func renderReturnValue(f ir.ReturnField) string {
	switch f.Source {
	case ir.LiteralField:
		return renderTraversal(f.Nested)
	case ir.ImplicitField:
		return f.SourceVariable
	case ir.SchemaField:
		if f.IsCollection {
			return fmt.Sprintf("%s.iter().map(|val| %s).collect::<Vec<_>>()", f.SourceVariable, propertyAccess("val", f.PropertyName))
		}
		return propertyAccess(f.SourceVariable, f.PropertyName)
	case ir.NestedTraversal, ir.AggregateField:
		if f.IsFirst && f.Nested != nil {
			return renderChain(f.Nested) + ".next().unwrap_or(Ok(Default::default()))?"
		}
		return renderTraversal(f.Nested)
	}
	return "Default::default()"
}

// renderTraversal prints the full method-chain for one IRTraversal: a
// typed source expression, every step joined by "." (a Standalone source
// takes no leading "." before its first step), and a terminal collector
// chosen by should_collect.
func renderTraversal(tr *ir.IRTraversal) string {
	if tr == nil {
		return "()"
	}
	if tr.IsLiteral && len(tr.Steps) == 0 {
		return tr.StartSource
	}
	if elem, field, ok := simpleProjection(tr); ok {
		return propertyAccess(elem, field)
	}
	return renderChain(tr) + terminal(tr.ShouldCollect)
}

// renderChain is renderTraversal without the terminal collector, used by
// the is_first return path which substitutes its own .next() consumption.
func renderChain(tr *ir.IRTraversal) string {
	if tr == nil {
		return "()"
	}
	if tr.IsLiteral && len(tr.Steps) == 0 {
		return tr.StartSource
	}
	if elem, field, ok := simpleProjection(tr); ok {
		return propertyAccess(elem, field)
	}
	var b strings.Builder
	b.WriteString(startExpr(tr))
	for i, step := range tr.Steps {
		rendered := renderStep(step)
		if step.Kind == "Closure" && tr.ClosureStructName != "" {
			rendered = renderClosureStep(step, tr.ClosureStructName)
		}
		if i == 0 && tr.Kind == ir.Standalone {
			b.WriteString(rendered)
			continue
		}
		b.WriteString(".")
		b.WriteString(rendered)
	}
	return b.String()
}

func renderClosureStep(s ir.IRStep, structName string) string {
	return fmt.Sprintf("map(|%s| Ok(%s { %s }))", s.Label, structName, renderFieldList(s.Fields, s.Label))
}

// simpleProjection matches a single-element source projecting exactly one
// bare property (the `param::{field}` shape inside closures and WHERE
// bodies), which renders as a direct property read instead of a reified
// from_iter chain.
func simpleProjection(tr *ir.IRTraversal) (elem, field string, ok bool) {
	if tr.Kind != ir.FromSingle || len(tr.Steps) != 1 || tr.Steps[0].Kind != "Object" {
		return "", "", false
	}
	fields := tr.Steps[0].Fields
	if len(fields) != 1 || fields[0].Nested != nil || fields[0].Value != "" {
		return "", "", false
	}
	return resolveClosureSource(tr), fields[0].Name, true
}

// startExpr renders the origin of a method chain per traversal kind:
// Ref/Mut open a fresh chain from the database handle, FromSingle/FromIter
// re-enter the chain over a local variable (or the enclosing closure's
// bound parameter, when the source is a "_"/"val" placeholder), and
// Standalone sources materialize their own result with no leading chain.
func startExpr(tr *ir.IRTraversal) string {
	src := tr.StartSource
	switch {
	case src == "EXISTS":
		return renderChain(tr.Inner) + ".next().is_some()"
	case src == "NOT":
		return "!(" + renderTraversal(tr.Inner) + ")"
	case src == "AND":
		return "(" + joinInners(tr.Inners, " && ") + ")"
	case src == "OR":
		return "(" + joinInners(tr.Inners, " || ") + ")"
	case src == "ARRAY":
		return "vec![" + joinInners(tr.Inners, ", ") + "]"
	case strings.HasPrefix(src, "MATH:"):
		return fmt.Sprintf("math::%s(%s)", strings.ToLower(strings.TrimPrefix(src, "MATH:")), joinInners(tr.Inners, ", "))
	}

	tag, label := splitTypeTag(src)
	switch tr.Kind {
	case ir.Ref, ir.Update, ir.Upsert, ir.UpsertN, ir.UpsertE, ir.UpsertV:
		switch tag {
		case "N", "E", "V":
			return fmt.Sprintf("G::new(db, &txn)%s", fromTypeCall(tag, label, tr))
		case "SearchV":
			return fmt.Sprintf("G::new(db, &txn).search_v::<%s>(%s)", searchLabel(tr), joinInners(tr.Inners, ", "))
		case "SearchBM25":
			return fmt.Sprintf("G::new(db, &txn).search_bm25(%s)", joinInners(tr.Inners, ", "))
		default:
			return src
		}
	case ir.Mut:
		switch tag {
		case "AddN":
			return fmt.Sprintf("G::new_mut(db, &mut txn).add_n(%q, Props { %s })", label, renderFieldList(tr.StartFields, "item"))
		case "AddV":
			return fmt.Sprintf("G::new_mut(db, &mut txn).add_v(%q, Props { %s })", label, renderFieldList(tr.StartFields, "item"))
		case "AddE":
			from, to, rest := splitEndpoints(tr.StartFields)
			return fmt.Sprintf("G::new_mut(db, &mut txn).add_e(%q, &%s, &%s, Props { %s })", label, from, to, renderFieldList(rest, "item"))
		case "N", "E", "V":
			return fmt.Sprintf("G::new_mut(db, &mut txn)%s", fromTypeCall(tag, label, tr))
		default:
			return src
		}
	case ir.FromSingle:
		return fmt.Sprintf("G::from_iter(db, &txn, std::iter::once(%s.clone()), &arena)", resolveClosureSource(tr))
	case ir.FromIter:
		v := resolveClosureSource(tr)
		if tr.IsReusedVariable {
			return fmt.Sprintf("G::from_iter(db, &txn, %s.iter().cloned(), &arena)", v)
		}
		return fmt.Sprintf("G::from_iter(db, &txn, %s.into_iter(), &arena)", v)
	case ir.Standalone:
		switch tag {
		case "AddE":
			// One edge per matched endpoint pair when From/To is plural.
			from, to, rest := splitEndpoints(tr.StartFields)
			return fmt.Sprintf("G::add_e_pairs(db, &mut txn, %q, &%s, &%s, Props { %s })", label, from, to, renderFieldList(rest, "item"))
		case "SearchHybrid":
			return fmt.Sprintf("G::search_hybrid(db, &txn, %s)", joinInners(tr.Inners, ", "))
		case "PPR":
			return fmt.Sprintf("G::ppr(db, &txn, %s)", joinInners(tr.Inners, ", "))
		default:
			return src
		}
	default:
		return src
	}
}

// fromTypeCall renders the by-type, by-id, or by-index entry call for a
// N</E</V< start.
func fromTypeCall(tag, label string, tr *ir.IRTraversal) string {
	prefix := map[string]string{"N": "n", "E": "e", "V": "v"}[tag]
	switch {
	case tr.StartIndex != "":
		return fmt.Sprintf(".%s_from_index(%q, &%s)", prefix, tr.StartIndex, tr.StartArg)
	case tr.StartArg != "":
		return fmt.Sprintf(".%s_from_id(&%s)", prefix, tr.StartArg)
	default:
		return fmt.Sprintf(".%s_from_type(%q)", prefix, label)
	}
}

// searchLabel recovers the vector type label of a SearchV source.
func searchLabel(tr *ir.IRTraversal) string {
	if tr.ResultType.Label != "" {
		return tr.ResultType.Label
	}
	return "_"
}

// splitEndpoints pulls the From/To constructor fields off an AddE's field
// list, leaving the property assignments.
func splitEndpoints(fields []ir.IRField) (from, to string, rest []ir.IRField) {
	from, to = "?", "?"
	for _, f := range fields {
		switch f.Name {
		case "From":
			from = f.Value
		case "To":
			to = f.Value
		default:
			rest = append(rest, f)
		}
	}
	return from, to, rest
}

func splitTypeTag(src string) (tag, label string) {
	i := strings.IndexByte(src, '<')
	if i < 0 {
		return src, ""
	}
	return src[:i], strings.TrimSuffix(src[i+1:], ">")
}

func joinInners(inners []*ir.IRTraversal, sep string) string {
	parts := make([]string, 0, len(inners))
	for _, in := range inners {
		parts = append(parts, renderTraversal(in))
	}
	return strings.Join(parts, sep)
}

func resolveClosureSource(tr *ir.IRTraversal) string {
	if (tr.StartSource == "_" || tr.StartSource == "val") && tr.ClosureParam != "" {
		return tr.ClosureParam
	}
	if tr.StartSource == "_" || tr.StartSource == "val" {
		return "val"
	}
	return tr.StartSource
}

func terminal(sc ir.ShouldCollect) string {
	switch sc {
	case ir.ToObj:
		return ".collect_to_obj()?"
	case ir.ToVec:
		return ".collect::<Result<Vec<_>, _>>()?"
	case ir.ToValue:
		return ".collect_to_value()"
	case ir.Try:
		return ".collect_try()"
	default:
		return ""
	}
}

// navMethod lowers a graph-navigation step's grammar keyword to the
// runtime's lowercase method name.
var navMethod = map[string]string{
	"Out": "out", "In": "in", "OutE": "out_e", "InE": "in_e",
	"FromN": "from_n", "ToN": "to_n", "FromV": "from_v", "ToV": "to_v",
}

// boolOpMethod lowers a boolean-op step's keyword to its method name; these
// appear either directly chained after a scalar projection or inside a
// WHERE predicate.
var boolOpMethod = map[string]string{
	"EQ": "eq", "NEQ": "neq", "LT": "lt", "LTE": "lte",
	"GT": "gt", "GTE": "gte", "CONTAINS": "contains", "IS_IN": "is_in",
}

func renderStep(s ir.IRStep) string {
	switch s.Kind {
	case "Out", "In", "OutE", "InE":
		if s.Label == "" {
			return fmt.Sprintf("%s()", navMethod[s.Kind])
		}
		return fmt.Sprintf("%s::<%s>()", navMethod[s.Kind], s.Label)
	case "FromN", "ToN", "FromV", "ToV":
		return navMethod[s.Kind] + "()"
	case "Object":
		return fmt.Sprintf("map(|val| Ok(Object { %s }))", renderFieldList(s.Fields, "val"))
	case "Closure":
		return renderClosureStep(s, "Item")
	case "Exclude":
		return fmt.Sprintf("exclude(&[%s])", quoteList(s.Args))
	case "Where":
		return fmt.Sprintf("where_ref(|val| %s)", renderTraversal(s.Operand))
	case "EQ", "NEQ", "LT", "LTE", "GT", "GTE", "CONTAINS", "IS_IN":
		if s.IsPropertyCompare && len(s.Args) == 2 {
			// Direct property-vs-property compare; the sub-traversal is
			// never reified.
			return fmt.Sprintf("%s(%s.get_property(%q))", boolOpMethod[s.Kind], s.Args[0], s.Args[1])
		}
		return fmt.Sprintf("%s(%s)", boolOpMethod[s.Kind], renderTraversal(s.Operand))
	case "Range":
		if len(s.Operands) == 2 {
			return fmt.Sprintf("range(%s, %s)", renderTraversal(s.Operands[0]), renderTraversal(s.Operands[1]))
		}
		return "range(0, 0)"
	case "OrderBy":
		dir := "ASC"
		if len(s.Args) > 0 && s.Args[0] != "" {
			dir = s.Args[0]
		}
		return fmt.Sprintf("order_by(Order::%s, |val| %s)", dir, renderChain(s.Operand))
	case "Aggregate":
		return fmt.Sprintf("aggregate_by(&[%s])", quoteList(s.Args))
	case "GroupBy":
		return fmt.Sprintf("group_by(&[%s])", quoteList(s.Args))
	case "Update":
		return fmt.Sprintf("update(Update { %s })", renderFieldList(s.Fields, "item"))
	case "Upsert":
		return fmt.Sprintf("upsert(Upsert { %s })", renderFieldList(s.Fields, "item"))
	case "UpsertN", "UpsertE", "UpsertV":
		kind := strings.ToLower(s.Kind[:len(s.Kind)-1]) + "_" + strings.ToLower(s.Kind[len(s.Kind)-1:])
		return fmt.Sprintf("%s::<%s>(%s)", kind, s.Label, renderFieldList(s.Fields, "item"))
	case "AddE":
		return fmt.Sprintf("add_e::<%s>()", s.Label)
	case "RerankRRF":
		return fmt.Sprintf("rerank_rrf(%s)", joinInners(s.Operands, ", "))
	case "RerankMMR":
		return fmt.Sprintf("rerank_mmr(%s)", joinInners(s.Operands, ", "))
	case "Drop":
		return "drop()?"
	case "First":
		return "first()"
	case "Count":
		return "count()"
	default:
		return strings.ToLower(s.Kind) + "()"
	}
}

// renderFieldList prints a struct literal's field list. A bare (non-nested)
// field with a reserved name uses the fixed element accessor; a bare field
// matching a schema property uses get_property; a nested traversal field
// recurses into its own method chain.
func renderFieldList(fields []ir.IRField, elemVar string) string {
	var parts []string
	for _, f := range fields {
		switch {
		case f.Nested != nil:
			parts = append(parts, fmt.Sprintf("%s: %s", f.Name, renderTraversal(f.Nested)))
		case f.Value != "":
			parts = append(parts, fmt.Sprintf("%s: %s", f.Name, f.Value))
		default:
			parts = append(parts, fmt.Sprintf("%s: %s", f.Name, propertyAccess(elemVar, f.Name)))
		}
	}
	return strings.Join(parts, ", ")
}

// propertyAccess renders one element-property read: reserved UUID-valued
// properties go through the formatting helper, other reserved names use
// their fixed accessor, and everything else is a get_property call.
func propertyAccess(elemVar, name string) string {
	if method, ok := reservedAccessor[name]; ok {
		if uuidFormatted[name] {
			return fmt.Sprintf("uuid_string(%s.%s())", elemVar, method)
		}
		return fmt.Sprintf("%s.%s()", elemVar, method)
	}
	return fmt.Sprintf("%s.get_property(%q)", elemVar, name)
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
