package analyzer

import (
	"testing"

	"github.com/ritamzico/gqlc/internal/source"
)

const mutSchema = `
N::Person {
    name: String,
    age: U32,
    joined: Date = "1970-01-01",
}
E::Knows {
    From: Person,
    To: Person,
}
`

// A string literal assigned to a numeric field is a value-type mismatch.
func TestAddNodeValueTypeMismatch(t *testing.T) {
	_, diags := analyze(t, mutSchema+`
QUERY t() =>
    p <- AddN<Person>({name: "Alice", age: "oops"})
    RETURN p: p
`)
	if countCode(diags, source.E205) == 0 {
		t.Fatalf("expected E205 for age: \"oops\", got %v", diags)
	}
}

// A malformed date literal on a Date field is E501.
func TestAddNodeBadDateLiteral(t *testing.T) {
	_, diags := analyze(t, mutSchema+`
QUERY t() =>
    p <- AddN<Person>({name: "Alice", age: 30, joined: "not-a-date"})
    RETURN p: p
`)
	if countCode(diags, source.E501) == 0 {
		t.Fatalf("expected E501 for a bad date literal, got %v", diags)
	}
}

// A well-formed date parses cleanly and declared defaults fill in for
// omitted fields on the emitted constructor.
func TestAddNodeAppliesDefaults(t *testing.T) {
	results, diags := analyze(t, mutSchema+`
QUERY t() =>
    p <- AddN<Person>({name: "Alice", age: 30})
    RETURN p: p
`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	qr := findQuery(results, "t")
	found := false
	for _, f := range qr.Statements[0].StartFields {
		if f.Name == "joined" && f.Value == `"1970-01-01"` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the joined default to be applied, got %#v", qr.Statements[0].StartFields)
	}
}

// A by-id start with a malformed UUID string literal is E206.
func TestByIDBadUuidLiteral(t *testing.T) {
	_, diags := analyze(t, mutSchema+`
QUERY t() =>
    p <- N<Person>("not-a-uuid")
    RETURN p: p
`)
	if countCode(diags, source.E206) == 0 {
		t.Fatalf("expected E206 for a malformed UUID literal, got %v", diags)
	}
}

// A well-formed UUID literal passes.
func TestByIDGoodUuidLiteral(t *testing.T) {
	_, diags := analyze(t, mutSchema+`
QUERY t() =>
    p <- N<Person>("8b5c94f7-3b6e-4a6e-9f0f-2f9c8d1e4b3a")
    RETURN p: p
`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

// A by-id identifier must be Uuid-typed.
func TestByIDNonUuidIdentifier(t *testing.T) {
	_, diags := analyze(t, mutSchema+`
QUERY t(n: String) =>
    p <- N<Person>(n)
    RETURN p: p
`)
	if countCode(diags, source.E205) == 0 {
		t.Fatalf("expected E205 for a String id argument, got %v", diags)
	}
}

// An AddE endpoint bound to a scalar (here a projected String property)
// rather than a node or an id reports E205.
func TestAddEdgeEndpointTypeCheck(t *testing.T) {
	_, diags := analyze(t, mutSchema+`
QUERY t(a: ID) =>
    p <- N<Person>(a)
    c <- p::{name}
    e <- AddE<Knows>(From(c), To(p))
    RETURN e: e
`)
	if countCode(diags, source.E205) == 0 {
		t.Fatalf("expected E205 for a scalar edge endpoint, got %v", diags)
	}
}
