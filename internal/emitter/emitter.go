// Package emitter renders analyzed queries to target handler source text.
// It never re-validates anything: by the time a QueryResult reaches here
// every diagnostic that could have fired already has, so emission is pure
// string assembly via strings.Builder and fmt.Sprintf rather than a
// templating engine.
package emitter

import (
	"strings"

	"github.com/ritamzico/gqlc/internal/analyzer"
	"github.com/ritamzico/gqlc/internal/schema"
	"github.com/ritamzico/gqlc/internal/types"
)

// Emit renders every query in results, preceded by the declared schema's
// generated type definitions, into one handler source document.
func Emit(ctx *schema.Ctx, results []*analyzer.QueryResult) string {
	var b strings.Builder
	b.WriteString("// Code generated from a GQL source file. DO NOT EDIT.\n\n")
	emitSchemaTypes(&b, ctx)
	for _, qr := range results {
		emitQuery(&b, qr)
		b.WriteString("\n")
	}
	return b.String()
}

func emitSchemaTypes(b *strings.Builder, ctx *schema.Ctx) {
	for _, name := range ctx.NodeOrder {
		emitStruct(b, name, ctx.Nodes[name].Fields)
	}
	for _, name := range ctx.EdgeOrder {
		emitStruct(b, name, ctx.Edges[name].Properties)
	}
	for _, name := range ctx.VectorOrder {
		emitStruct(b, name, ctx.Vectors[name].Fields)
	}
}

func emitStruct(b *strings.Builder, name string, fields []schema.Field) {
	b.WriteString("struct " + name + " {\n")
	b.WriteString("    id: ID,\n")
	for _, f := range fields {
		b.WriteString("    " + f.Name + ": " + emitFieldType(f.Type) + ",\n")
	}
	b.WriteString("}\n\n")
}

func emitFieldType(ft types.FieldType) string {
	switch ft.Kind {
	case types.ArrayT:
		if ft.Elem != nil {
			return "Vec<" + emitFieldType(*ft.Elem) + ">"
		}
		return "Vec<Value>"
	case types.ObjectT:
		var parts []string
		for _, f := range ft.Fields {
			parts = append(parts, f.Name+": "+emitFieldType(f.Type))
		}
		return "Object<{" + strings.Join(parts, ", ") + "}>"
	default:
		return scalarTypeName(ft.Kind.String())
	}
}
