// Package types holds the scalar field-type vocabulary shared by the schema
// registry and the expression analyzer's inferred Type.
package types

import "fmt"

// FieldType is one of the scalar or compound property types a schema field
// (or a literal) can carry.
type FieldType struct {
	Kind     FieldKind
	Elem     *FieldType            // set when Kind == Array
	Fields   []ObjectField         // set when Kind == Object
}

// ObjectField is one named field of an Object field type.
type ObjectField struct {
	Name string
	Type FieldType
}

type FieldKind int

const (
	Invalid FieldKind = iota
	StringT
	BoolT
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	U128
	F32
	F64
	DateT
	UuidT
	ArrayT
	ObjectT
)

var kindNames = map[FieldKind]string{
	Invalid: "Invalid",
	StringT: "String",
	BoolT:   "Bool",
	I8:      "I8",
	I16:     "I16",
	I32:     "I32",
	I64:     "I64",
	U8:      "U8",
	U16:     "U16",
	U32:     "U32",
	U64:     "U64",
	U128:    "U128",
	F32:     "F32",
	F64:     "F64",
	DateT:   "Date",
	UuidT:   "Uuid",
	ArrayT:  "Array",
	ObjectT: "Object",
}

func (k FieldKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

func (f FieldType) String() string {
	switch f.Kind {
	case ArrayT:
		if f.Elem != nil {
			return fmt.Sprintf("Array<%s>", f.Elem)
		}
		return "Array<?>"
	case ObjectT:
		return "Object<...>"
	default:
		return f.Kind.String()
	}
}

// IsInteger reports whether f is one of the signed/unsigned integer kinds.
func (f FieldType) IsInteger() bool {
	switch f.Kind {
	case I8, I16, I32, I64, U8, U16, U32, U64, U128:
		return true
	}
	return false
}

// IsNumeric reports whether f is an integer or floating-point kind.
func (f FieldType) IsNumeric() bool {
	return f.IsInteger() || f.Kind == F32 || f.Kind == F64
}

// Equal reports whether two field types describe the same shape.
func (f FieldType) Equal(other FieldType) bool {
	if f.Kind != other.Kind {
		return false
	}
	switch f.Kind {
	case ArrayT:
		if f.Elem == nil || other.Elem == nil {
			return f.Elem == other.Elem
		}
		return f.Elem.Equal(*other.Elem)
	case ObjectT:
		if len(f.Fields) != len(other.Fields) {
			return false
		}
		for i := range f.Fields {
			if f.Fields[i].Name != other.Fields[i].Name || !f.Fields[i].Type.Equal(other.Fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// ParseFieldKind maps a grammar keyword (e.g. "I32", "Uuid") to a FieldKind.
// "ID" is the parameter-position alias for Uuid.
func ParseFieldKind(name string) (FieldKind, bool) {
	if name == "ID" {
		return UuidT, true
	}
	for k, s := range kindNames {
		if s == name {
			return k, true
		}
	}
	return Invalid, false
}
