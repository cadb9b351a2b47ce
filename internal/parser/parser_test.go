package parser

import (
	"testing"

	"github.com/ritamzico/gqlc/internal/source"
)

func parse(t *testing.T, text string) *source.File {
	t.Helper()
	return &source.File{Path: "test.gql", Text: text}
}

func TestParseSchemaDecls(t *testing.T) {
	file := parse(t, `
N::User {
    INDEX name: String,
    age: I32 = 0,
}
E::Follows {
    From: User,
    To: User,
    Properties: {
        since: I64,
    }
}
V::Doc {
    text: String,
}
`)
	prog, err := Parse(file)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(prog.Decls) != 3 {
		t.Fatalf("expected 3 decls, got %d", len(prog.Decls))
	}
	if prog.Decls[0].Node == nil || prog.Decls[0].Node.Name != "User" {
		t.Fatalf("expected first decl to be N::User, got %#v", prog.Decls[0])
	}
	if prog.Decls[1].Edge == nil || prog.Decls[1].Edge.From != "User" || prog.Decls[1].Edge.To != "User" {
		t.Fatalf("expected second decl to be E::Follows From/To User, got %#v", prog.Decls[1])
	}
	if prog.Decls[2].Vector == nil || prog.Decls[2].Vector.Name != "Doc" {
		t.Fatalf("expected third decl to be V::Doc, got %#v", prog.Decls[2])
	}
}

func TestParseSimpleQuery(t *testing.T) {
	file := parse(t, `
QUERY GetUsers() =>
    users <- N<User>
    RETURN users: users
`)
	prog, err := Parse(file)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(prog.Decls) != 1 || prog.Decls[0].Query == nil {
		t.Fatalf("expected single query decl, got %#v", prog.Decls)
	}
	q := prog.Decls[0].Query
	if q.Name != "GetUsers" {
		t.Fatalf("expected query name GetUsers, got %q", q.Name)
	}
	if len(q.Body) != 1 || q.Body[0].Assign == nil {
		t.Fatalf("expected single assign statement, got %#v", q.Body)
	}
	if q.Body[0].Assign.Expr.Start.NodeByType == nil || q.Body[0].Assign.Expr.Start.NodeByType.Type != "User" {
		t.Fatalf("expected assign RHS to start with N<User>, got %#v", q.Body[0].Assign.Expr.Start)
	}
}

func TestParseTraversalWithSteps(t *testing.T) {
	file := parse(t, `
QUERY Friends(id: Uuid) =>
    u <- N<User>(id)
    friends <- u::Out<Follows>::WHERE(_::{age}::GT(18))::RANGE(0, 10)
    RETURN friends: friends::{name}
`)
	prog, err := Parse(file)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	q := prog.Decls[0].Query
	friendsExpr := q.Body[1].Assign.Expr
	if len(friendsExpr.Steps) != 3 {
		t.Fatalf("expected 3 chained steps, got %d: %#v", len(friendsExpr.Steps), friendsExpr.Steps)
	}
	if friendsExpr.Steps[0].GraphNav == nil || friendsExpr.Steps[0].GraphNav.Dir != "Out" {
		t.Fatalf("expected first step to be Out<Follows>, got %#v", friendsExpr.Steps[0])
	}
	if friendsExpr.Steps[1].Where == nil {
		t.Fatalf("expected second step to be WHERE(...), got %#v", friendsExpr.Steps[1])
	}
	if friendsExpr.Steps[2].Range == nil {
		t.Fatalf("expected third step to be RANGE(...), got %#v", friendsExpr.Steps[2])
	}
	returnExpr := q.Returns[0].Expr
	if len(returnExpr.Steps) != 1 || returnExpr.Steps[0].Object == nil {
		t.Fatalf("expected return expr to end in an object projection, got %#v", returnExpr.Steps)
	}
}

func TestParseAddNodeAndAddEdge(t *testing.T) {
	file := parse(t, `
QUERY MakeFriend(a: Uuid, b: Uuid) =>
    x <- AddN<User>({name: "Alice", age: 30})
    e <- AddE<Follows>(From(a), To(b), {since: 100})
    RETURN x: x, e: e
`)
	prog, err := Parse(file)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	q := prog.Decls[0].Query
	addNode := q.Body[0].Assign.Expr.Start.AddNode
	if addNode == nil || addNode.Type != "User" || len(addNode.Props) != 2 {
		t.Fatalf("expected AddN<User> with 2 props, got %#v", addNode)
	}
	addEdge := q.Body[1].Assign.Expr.Start.AddEdge
	if addEdge == nil || addEdge.Type != "Follows" {
		t.Fatalf("expected AddE<Follows>, got %#v", addEdge)
	}
	if addEdge.From.Ident == nil || *addEdge.From.Ident != "a" {
		t.Fatalf("expected From(a), got %#v", addEdge.From)
	}
	if len(addEdge.Props) != 1 {
		t.Fatalf("expected 1 edge prop, got %d", len(addEdge.Props))
	}
}

func TestParseClosureAndForLoop(t *testing.T) {
	file := parse(t, `
QUERY Pairs() =>
    FOR u IN N<User> {
        v <- u::Out<Follows>::|x|{name: x::{name}}
    }
    RETURN ok: true
`)
	prog, err := Parse(file)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	q := prog.Decls[0].Query
	if q.Body[0].For == nil {
		t.Fatalf("expected a FOR statement, got %#v", q.Body[0])
	}
	inner := q.Body[0].For.Body
	if len(inner) != 1 || inner[0].Assign == nil {
		t.Fatalf("expected one assign statement inside FOR body, got %#v", inner)
	}
	steps := inner[0].Assign.Expr.Steps
	if len(steps) != 2 || steps[1].Closure == nil {
		t.Fatalf("expected second step to be a closure, got %#v", steps)
	}
	if steps[1].Closure.Param != "x" {
		t.Fatalf("expected closure param x, got %q", steps[1].Closure.Param)
	}
}

// Every parsed node carries a location whose byte range lies within the
// source file.
func TestParsedNodesCarryValidLocations(t *testing.T) {
	file := parse(t, `
N::User {
    name: String,
}
QUERY GetUsers(id: Uuid) =>
    u <- N<User>(id)
    fs <- u::OutE<Follows>::RANGE(0, 10)
    RETURN fs: fs
`)
	prog, err := Parse(file)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if !prog.Loc(file).Valid() {
		t.Fatalf("program location out of range: %v", prog.Loc(file))
	}
	for _, d := range prog.Decls {
		if !d.Loc(file).Valid() {
			t.Fatalf("decl location out of range: %v", d.Loc(file))
		}
	}
	q := prog.Decls[1].Query
	for _, stmt := range q.Body {
		if !stmt.Loc(file).Valid() {
			t.Fatalf("statement location out of range: %v", stmt.Loc(file))
		}
	}
	steps := q.Body[1].Assign.Expr.Steps
	for _, s := range steps {
		loc := s.Loc(file)
		if !loc.Valid() || loc.Start >= loc.End {
			t.Fatalf("step location not a proper span: %v", loc)
		}
	}
}

func TestParseSyntaxErrorHasLocation(t *testing.T) {
	file := parse(t, `
QUERY Broken( =>
    RETURN ok: true
`)
	_, err := Parse(file)
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	perr, ok := err.(ParseError)
	if !ok {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	if perr.Loc.File != file {
		t.Fatalf("expected error location to reference the parsed file")
	}
	if perr.Message == "" {
		t.Fatalf("expected a non-empty syntax error message")
	}
}
