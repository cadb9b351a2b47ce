package compiler

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ritamzico/gqlc/internal/source"
)

func quiet() zerolog.Logger {
	return zerolog.Nop()
}

func compileOne(t *testing.T, text string) Result {
	t.Helper()
	return Compile(quiet(), []source.File{{Path: "scenario.gql", Text: text}})
}

func hasCode(diags source.Diagnostics, code source.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Scenario 1: a valid node query compiles cleanly and emits handler source.
func TestScenarioValidNodeQuery(t *testing.T) {
	res := compileOne(t, `
N::User {
    name: String,
}
QUERY GetUsers() =>
    users <- N<User>
    RETURN users: users
`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if !strings.Contains(res.Output, "GetUsers") {
		t.Fatalf("expected emitted output to mention GetUsers, got: %s", res.Output)
	}
}

// Scenario 2: referencing an undeclared edge type reports E102.
func TestScenarioUndeclaredEdge(t *testing.T) {
	res := compileOne(t, `
N::User {
    name: String,
}
QUERY GetFollowers(id: Uuid) =>
    u <- N<User>(id)
    fs <- u::OutE<Follows>
    RETURN fs: fs
`)
	if !hasCode(res.Diagnostics, source.E102) {
		t.Fatalf("expected E102 for undeclared edge type, got: %v", res.Diagnostics)
	}
	if res.Output != "" {
		t.Fatalf("expected no output when diagnostics are present")
	}
}

// Scenario 1: a by-id query on an ID parameter compiles cleanly with an
// input struct and a read-transaction handler.
func TestScenarioByIDQuery(t *testing.T) {
	res := compileOne(t, `
N::Person {
    name: String,
    age: U32,
}
QUERY test(id: ID) =>
    p <- N<Person>(id)
    RETURN person: p
`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	for _, want := range []string{"struct testInput", "id: ID", "handler test(", "begin_txn"} {
		if !strings.Contains(res.Output, want) {
			t.Fatalf("expected emitted output to contain %q, got: %s", want, res.Output)
		}
	}
}

// Scenario 3: AddN with a field whose value type mismatches reports E205.
func TestScenarioAddNodeTypeMismatch(t *testing.T) {
	res := compileOne(t, `
N::Person {
    name: String,
    age: U32,
}
QUERY t() =>
    p <- AddN<Person>({name: "Alice", age: "oops"})
    RETURN p: p
`)
	if !hasCode(res.Diagnostics, source.E205) {
		t.Fatalf("expected E205 for age value type mismatch, got: %v", res.Diagnostics)
	}
}

// Scenario 3 variant: AddN with a missing required field reports E304.
func TestScenarioAddNodeMissingField(t *testing.T) {
	res := compileOne(t, `
N::User {
    name: String,
    age: I32,
}
QUERY MakeUser() =>
    u <- AddN<User>({name: "Alice"})
    RETURN u: u
`)
	if !hasCode(res.Diagnostics, source.E304) {
		t.Fatalf("expected E304 for missing required field, got: %v", res.Diagnostics)
	}
}

// Scenario 4: a heterogeneous array literal reports E306.
func TestScenarioHeterogeneousArray(t *testing.T) {
	res := compileOne(t, `
QUERY BadArray() =>
    xs <- [1, "two", 3]
    RETURN xs: xs
`)
	if !hasCode(res.Diagnostics, source.E306) {
		t.Fatalf("expected E306 for heterogeneous array, got: %v", res.Diagnostics)
	}
}

// Scenario 5: a closure singularizes a plural source, then restores
// plurality for the enclosing traversal.
func TestScenarioClosureRestoresPlurality(t *testing.T) {
	res := compileOne(t, `
N::User {
    name: String,
}
E::Follows {
    From: User,
    To: User,
}
QUERY Names() =>
    named <- N<User>::|x|{name: x::{name}}
    RETURN named: named
`)
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if !strings.Contains(res.Output, "named: Vec<") {
		t.Fatalf("expected the closure result to stay a collection, got: %s", res.Output)
	}
}

// Scenario 6: indexing a non-indexed field via {field}(value) reports E208.
func TestScenarioByIndexOnNonIndexedField(t *testing.T) {
	res := compileOne(t, `
N::User {
    name: String,
}
QUERY FindByName(n: String) =>
    u <- N<User>({name}(n))
    RETURN u: u
`)
	if !hasCode(res.Diagnostics, source.E208) {
		t.Fatalf("expected E208 for by-index access on a non-indexed field, got: %v", res.Diagnostics)
	}
}

func TestCompileSyntaxErrorShortCircuits(t *testing.T) {
	res := compileOne(t, `QUERY Broken( => RETURN ok: true`)
	if !res.Diagnostics.HasErrors() {
		t.Fatalf("expected a syntax diagnostic")
	}
	if res.Output != "" {
		t.Fatalf("expected no output on syntax error")
	}
}

func TestCompileMultipleFilesShareSchema(t *testing.T) {
	schemaFile := source.File{Path: "schema.gql", Text: `
N::User {
    name: String,
}
`}
	queryFile := source.File{Path: "query.gql", Text: `
QUERY GetUsers() =>
    users <- N<User>
    RETURN users: users
`}
	res := Compile(quiet(), []source.File{schemaFile, queryFile})
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics across files: %v", res.Diagnostics)
	}
	if !strings.Contains(res.Output, "struct User") {
		t.Fatalf("expected emitted output to include the User struct, got: %s", res.Output)
	}
}
