package source

import "fmt"

// Code is a stable diagnostic error code. Codes are part of the external
// interface: tests assert on codes, never on message text.
type Code string

const (
	// Schema errors.
	E101 Code = "E101" // undeclared node type
	E102 Code = "E102" // undeclared edge type
	E103 Code = "E103" // undeclared vector type

	// Field errors.
	E201 Code = "E201" // missing required field
	E202 Code = "E202" // unknown field
	E205 Code = "E205" // value type mismatch
	E206 Code = "E206" // bad value
	E208 Code = "E208" // non-indexed secondary index

	// Name resolution.
	E301 Code = "E301" // out-of-scope identifier

	// Argument errors.
	E304 Code = "E304" // missing required argument
	E305 Code = "E305" // missing required argument
	E306 Code = "E306" // heterogeneous array / unsupported element

	// Value errors.
	E501 Code = "E501" // bad date literal

	// Operand/operation errors.
	E601 Code = "E601" // missing required operand
	E604 Code = "E604" // operation not valid on current type
	E611 Code = "E611" // missing edge endpoint (From)
	E612 Code = "E612" // missing edge endpoint (To)
	E621 Code = "E621" // property/field type mismatch in boolean op (non-scalar comparand)
	E622 Code = "E622" // property/field type mismatch in boolean op
	E633 Code = "E633" // non-integer range bound
	E641 Code = "E641" // closure not final step
	E644 Code = "E644" // exclude position
	E655 Code = "E655" // unexpected expression shape
	E657 Code = "E657" // missing preceding step
)

// Diagnostic is one structured compiler error: a stable code, a location,
// and a human-readable message with an optional hint.
type Diagnostic struct {
	Code    Code
	Loc     Loc
	Message string
	Hint    string
}

func (d Diagnostic) Error() string {
	if d.Hint != "" {
		return fmt.Sprintf("%s: %s (%s) [hint: %s]", d.Code, d.Message, d.Loc, d.Hint)
	}
	return fmt.Sprintf("%s: %s (%s)", d.Code, d.Message, d.Loc)
}

// Diagnostics accumulates structured errors across a compile. Analysis
// continues after most errors so a single run reports many problems;
// only a parser failure short-circuits.
type Diagnostics []Diagnostic

// Add appends a diagnostic built from code, location and a formatted message.
func (d *Diagnostics) Add(code Code, loc Loc, format string, args ...any) {
	*d = append(*d, Diagnostic{Code: code, Loc: loc, Message: fmt.Sprintf(format, args...)})
}

// AddHint is like Add but also records a hint string.
func (d *Diagnostics) AddHint(code Code, loc Loc, hint, format string, args ...any) {
	*d = append(*d, Diagnostic{Code: code, Loc: loc, Message: fmt.Sprintf(format, args...), Hint: hint})
}

// HasErrors reports whether any diagnostic was accumulated.
func (d Diagnostics) HasErrors() bool {
	return len(d) > 0
}
