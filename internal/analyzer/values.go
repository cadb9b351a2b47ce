package analyzer

import (
	"time"

	"github.com/google/uuid"

	"github.com/ritamzico/gqlc/internal/ast"
	"github.com/ritamzico/gqlc/internal/scope"
	"github.com/ritamzico/gqlc/internal/source"
	"github.com/ritamzico/gqlc/internal/types"
)

// checkFieldAssigns validates each `name: value` of an AddN/AddV/AddE body
// or an UPDATE/UPSERT field set: the name must be declared on the current
// type (E202) and the value must carry the declared field's type
// (E205/E206/E501 via the shared literal rules below).
func (a *Analyzer) checkFieldAssigns(file *source.File, sc *scope.Scope, cur types.Type, assigns []*ast.PropAssign, diags *source.Diagnostics, loc source.Loc) {
	fields, ok := a.Schema.LookupField(cur)
	for _, f := range assigns {
		var want types.FieldType
		haveField := false
		if ok {
			want, haveField = fields[f.Name]
			if !haveField {
				diags.Add(source.E202, f.Loc(file), "type %s has no field %q", cur.Label, f.Name)
			}
		}
		if f.Value != nil {
			_, t := a.inferExpr(file, sc, f.Value, diags)
			if haveField {
				a.checkExprAgainstFieldType(file, f.Value, t, want, diags)
			}
		}
	}
}

// dateFormats are the literal shapes accepted for Date-typed values.
var dateFormats = []string{"2006-01-02", time.RFC3339}

// checkLiteralAgainstFieldType enforces a literal property value against a
// declared field type: E205 for a plain type mismatch, E501 for a string
// that fails to parse as a date, E206 for a string that fails to parse as a
// UUID.
func checkLiteralAgainstFieldType(file *source.File, lit *ast.Literal, ft types.FieldType, diags *source.Diagnostics) {
	loc := lit.Loc(file)
	switch {
	case lit.Str != nil:
		switch ft.Kind {
		case types.StringT:
		case types.DateT:
			if !parseableDate(unquote(*lit.Str)) {
				diags.Add(source.E501, loc, "%s is not a valid date literal", *lit.Str)
			}
		case types.UuidT:
			if _, err := uuid.Parse(unquote(*lit.Str)); err != nil {
				diags.Add(source.E206, loc, "%s is not a valid UUID", *lit.Str)
			}
		default:
			diags.Add(source.E205, loc, "expected %s, got a string literal", ft)
		}
	case lit.Int != nil:
		if !ft.IsNumeric() {
			diags.Add(source.E205, loc, "expected %s, got an integer literal", ft)
		}
	case lit.Float != nil:
		if ft.Kind != types.F32 && ft.Kind != types.F64 {
			diags.Add(source.E205, loc, "expected %s, got a float literal", ft)
		}
	case lit.True, lit.False:
		if ft.Kind != types.BoolT {
			diags.Add(source.E205, loc, "expected %s, got a boolean literal", ft)
		}
	}
}

func parseableDate(s string) bool {
	for _, layout := range dateFormats {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// checkExprAgainstFieldType is the expression-level counterpart used by
// property assignments: literal starts get the literal rules above, and an
// already-inferred scalar type is compared structurally, with numeric kinds
// allowed to widen silently.
func (a *Analyzer) checkExprAgainstFieldType(file *source.File, e *ast.Expr, inferred types.Type, ft types.FieldType, diags *source.Diagnostics) {
	if e != nil && e.Start != nil && len(e.Steps) == 0 {
		s := e.Start
		lit := &ast.Literal{Position: s.Position, Str: s.Str, Float: s.Float, Int: s.Int, True: s.True, False: s.False}
		if s.Str != nil || s.Int != nil || s.Float != nil || s.True || s.False {
			checkLiteralAgainstFieldType(file, lit, ft, diags)
			return
		}
	}
	switch inferred.Kind {
	case types.Scalar:
		if !inferred.Field.Equal(ft) && !(inferred.Field.IsNumeric() && ft.IsNumeric()) {
			diags.Add(source.E205, e.Loc(file), "expected %s, got %s", ft, inferred.Field)
		}
	case types.Boolean:
		if ft.Kind != types.BoolT {
			diags.Add(source.E205, e.Loc(file), "expected %s, got a boolean", ft)
		}
	case types.Array:
		if ft.Kind != types.ArrayT {
			diags.Add(source.E205, e.Loc(file), "expected %s, got an array", ft)
		}
	}
}
