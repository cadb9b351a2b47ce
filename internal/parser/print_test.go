package parser

import (
	"testing"

	"github.com/ritamzico/gqlc/internal/source"
)

// Printing a parsed program to canonical GQL and re-parsing the output must
// converge: the second print equals the first for every syntactically valid
// program.
func roundTrip(t *testing.T, text string) {
	t.Helper()
	file := &source.File{Path: "rt.gql", Text: text}
	prog, err := Parse(file)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	first := prog.String()
	file2 := &source.File{Path: "rt2.gql", Text: first}
	prog2, err := Parse(file2)
	if err != nil {
		t.Fatalf("re-parse error on canonical output: %v\n--- canonical ---\n%s", err, first)
	}
	second := prog2.String()
	if first != second {
		t.Fatalf("canonical form is not a fixed point:\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}
}

func TestRoundTripSchemaAndQuery(t *testing.T) {
	roundTrip(t, `
N::User {
    INDEX name: String,
    age: I32 = 0,
    tags: Array<String>,
}
E::Follows UNIQUE {
    From: User,
    To: User,
    Properties: {
        since: I64,
    }
}
V::Doc {
    text: String,
}
QUERY GetUser(id: ID, limit: I32?) =>
    u <- N<User>(id)
    RETURN u: u
`)
}

func TestRoundTripTraversalSteps(t *testing.T) {
	roundTrip(t, `
N::User {
    name: String,
    age: I32,
}
E::Follows {
    From: User,
    To: User,
}
QUERY Steps(id: ID, n: I32) =>
    u <- N<User>(id)
    fs <- u::Out<Follows>::WHERE(EXISTS(_::OutE<Follows>))::RANGE(0, n)::ORDER_BY(_::{age}, DESC)
    grouped <- N<User>::COUNT::GROUP_BY(name)
    named <- N<User>::|p| {n: p::{name}, i: p::{id}}
    same <- u::{name}::EQ("x")
    RETURN fs: fs, grouped: grouped, named: named, same: same
`)
}

func TestRoundTripMutationsAndSearch(t *testing.T) {
	roundTrip(t, `
N::User {
    name: String,
}
E::Follows {
    From: User,
    To: User,
}
V::Doc {
    text: String,
}
QUERY Mix(a: ID, b: ID, q: String) =>
    x <- AddN<User>({name: "Alice"})
    e <- AddE<Follows>(From(a), To(b), {since: 1})
    v <- AddV<Doc>({text: "hi"})
    docs <- SearchV<Doc>(Embed(q), 10)
    upd <- N<User>(a)::UPDATE({name: "Bob"})
    FOR u IN N<User> {
        DROP u::OutE<Follows>
    }
    RETURN x: x, e: e, v: v, docs: docs, upd: upd
`)
}
