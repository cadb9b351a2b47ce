package emitter

import (
	"strings"
	"testing"

	"github.com/ritamzico/gqlc/internal/analyzer"
	"github.com/ritamzico/gqlc/internal/parser"
	"github.com/ritamzico/gqlc/internal/schema"
	"github.com/ritamzico/gqlc/internal/source"
)

func emit(t *testing.T, text string) string {
	t.Helper()
	file := &source.File{Path: "emit_test.gql", Text: text}
	prog, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ctx, sdiags := schema.Build(file, prog)
	if sdiags.HasErrors() {
		t.Fatalf("schema errors: %v", sdiags)
	}
	a := analyzer.New(ctx)
	results, diags := a.AnalyzeProgram(file, prog)
	if diags.HasErrors() {
		t.Fatalf("analysis errors: %v", diags)
	}
	return Emit(ctx, results)
}

const emitSchema = `
N::User {
    INDEX name: String,
    age: I32,
}
N::Post {
    title: String,
}
E::Wrote {
    From: User,
    To: Post,
}
`

func wantContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("emitted output missing %q:\n%s", w, out)
		}
	}
}

func TestEmitInputStructAndHandler(t *testing.T) {
	out := emit(t, emitSchema+`
QUERY GetUser(id: ID) =>
    u <- N<User>(id)
    RETURN u: u
`)
	wantContains(t, out,
		"struct GetUserInput {",
		"id: ID,",
		"struct GetUserOutput {",
		"handler GetUser(input: GetUserInput) -> GetUserOutput {",
		"let txn = db.begin_txn()?;",
		".n_from_id(&id)",
		".collect_to_obj()?",
	)
}

func TestEmitMCPHandlerVariant(t *testing.T) {
	out := emit(t, emitSchema+`
QUERY GetUsers() =>
    us <- N<User>
    RETURN us: us
`)
	wantContains(t, out,
		"handler mcp_GetUsers(connection: ConnectionId, input: GetUsersInput) -> GetUsersOutput {",
		"connections.get(connection)?",
	)
}

// A closure over a plural source maps each singular element and collects a
// vector.
func TestEmitClosureOverPluralSource(t *testing.T) {
	out := emit(t, emitSchema+`
QUERY Names() =>
    named <- N<User>::|p|{n: p::{name}}
    RETURN named: named
`)
	wantContains(t, out,
		".n_from_type(\"User\")",
		"map(|p| Ok(",
		"p.get_property(\"name\")",
		".collect::<Result<Vec<_>, _>>()?",
	)
}

// A nested closure return field declares its own item struct.
func TestEmitNestedReturnStruct(t *testing.T) {
	out := emit(t, emitSchema+`
QUERY Titles() =>
    RETURN rows: N<User>::|u|{n: u::{name}}
`)
	wantContains(t, out,
		"struct TitlesRowsItem {",
		"rows: Vec<TitlesRowsItem>,",
		"Ok(TitlesRowsItem {",
	)
}

func TestEmitBooleanOperandRendering(t *testing.T) {
	out := emit(t, emitSchema+`
QUERY Adults() =>
    ok <- N<User>::FIRST::{age}::GTE(18)
    RETURN ok: ok
`)
	wantContains(t, out, "gte(18)")
}

func TestEmitPropertyCompare(t *testing.T) {
	out := emit(t, emitSchema+`
QUERY Same(a: ID, b: ID) =>
    x <- N<User>(a)
    y <- N<User>(b)
    same <- x::{name}::EQ(y::{name})
    RETURN same: same
`)
	wantContains(t, out, `eq(y.get_property("name"))`)
}

func TestEmitMutatingHandler(t *testing.T) {
	out := emit(t, emitSchema+`
QUERY MakeUser() =>
    u <- AddN<User>({name: "Alice", age: 30})
    RETURN u: u
`)
	wantContains(t, out,
		"let mut txn = db.begin_mut_txn()?;",
		`add_n("User", Props {`,
		"txn.commit()?;",
	)
}

func TestEmitRangeAndWhere(t *testing.T) {
	out := emit(t, emitSchema+`
QUERY Page(n: I32) =>
    us <- N<User>::WHERE(EXISTS(_::OutE<Wrote>))::RANGE(0, n)
    RETURN us: us
`)
	wantContains(t, out,
		"where_ref(|val| ",
		".next().is_some()",
		"range(0, n)",
	)
}

// An Embed(...) call is hoisted ahead of the transaction open.
func TestEmitHoistedEmbedding(t *testing.T) {
	out := emit(t, emitSchema+`
V::Doc {
    text: String,
}
QUERY Find(q: String) =>
    docs <- SearchV<Doc>(Embed(q), 10)
    RETURN docs: docs
`)
	idx := strings.Index(out, "embedding_service.embed(q)")
	txn := strings.Index(out, "let txn = db.begin_txn()?;")
	if idx < 0 || txn < 0 || idx > txn {
		t.Fatalf("expected the embedding call hoisted before the transaction open:\n%s", out)
	}
	wantContains(t, out, "let _embed0 = embedding_service.embed(q).await?;")
}

func TestEmitSchemaStructs(t *testing.T) {
	out := emit(t, emitSchema+`
QUERY All() =>
    us <- N<User>
    RETURN us: us
`)
	wantContains(t, out,
		"struct User {",
		"id: ID,",
		"name: String,",
		"age: i32,",
	)
}
