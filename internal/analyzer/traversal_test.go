package analyzer

import (
	"testing"

	"github.com/ritamzico/gqlc/internal/ir"
	"github.com/ritamzico/gqlc/internal/source"
	"github.com/ritamzico/gqlc/internal/types"
)

const navSchema = `
N::User {
    name: String,
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

func countCode(diags source.Diagnostics, code source.Code) int {
	n := 0
	for _, d := range diags {
		if d.Code == code {
			n++
		}
	}
	return n
}

// Out<E> lands on the edge's To node type, so fields of the far end resolve
// without diagnostics.
func TestGraphNavThreadsEndpointType(t *testing.T) {
	_, diags := analyze(t, navSchema+`
QUERY q() =>
    titles <- N<User>::Out<Wrote>::|p|{t: p::{title}}
    RETURN titles: titles
`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

// Navigating an edge from the wrong endpoint type is an operation-validity
// error at the step.
func TestGraphNavWrongSourceType(t *testing.T) {
	_, diags := analyze(t, navSchema+`
QUERY q() =>
    xs <- N<Post>::Out<Wrote>
    RETURN xs: xs
`)
	if countCode(diags, source.E604) == 0 {
		t.Fatalf("expected E604 for Out<Wrote> from a Post source, got %v", diags)
	}
}

// A boolean op without a preceding single-property projection is E657.
func TestBooleanOpRequiresProjection(t *testing.T) {
	_, diags := analyze(t, navSchema+`
QUERY q() =>
    xs <- N<User>::EQ(1)
    RETURN xs: xs
`)
	if countCode(diags, source.E657) == 0 {
		t.Fatalf("expected E657 for EQ without a projection, got %v", diags)
	}
}

// Comparing a String projection against an integer literal is E622.
func TestBooleanOpFieldTypeMismatch(t *testing.T) {
	_, diags := analyze(t, navSchema+`
QUERY q(id: ID) =>
    u <- N<User>(id)
    ok <- u::{name}::EQ(5)
    RETURN ok: ok
`)
	if countCode(diags, source.E622) == 0 {
		t.Fatalf("expected E622 for String vs integer comparison, got %v", diags)
	}
}

// The `other::{field}` comparand shape lowers to a direct property compare
// instead of a reified sub-traversal.
func TestSimplePropertyTraversalOptimization(t *testing.T) {
	results, diags := analyze(t, navSchema+`
QUERY q(a: ID, b: ID) =>
    x <- N<User>(a)
    y <- N<User>(b)
    same <- x::{name}::EQ(y::{name})
    RETURN same: same
`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	qr := findQuery(results, "q")
	if qr == nil || len(qr.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %#v", qr)
	}
	steps := qr.Statements[2].Steps
	last := steps[len(steps)-1]
	if last.Kind != "EQ" || !last.IsPropertyCompare {
		t.Fatalf("expected a property-compare EQ step, got %#v", last)
	}
	if len(last.Args) != 2 || last.Args[0] != "y" || last.Args[1] != "name" {
		t.Fatalf("expected [y name] compare args, got %v", last.Args)
	}
}

// A closure anywhere but the final position is E641.
func TestClosureMustBeFinal(t *testing.T) {
	_, diags := analyze(t, navSchema+`
QUERY q() =>
    xs <- N<User>::|x|{n: x::{name}}::COUNT
    RETURN xs: xs
`)
	if countCode(diags, source.E641) == 0 {
		t.Fatalf("expected E641 for a non-final closure, got %v", diags)
	}
}

// An exclusion not followed by a projection (and not final) is E644, and a
// later projection cannot re-project an excluded name.
func TestExcludePosition(t *testing.T) {
	_, diags := analyze(t, navSchema+`
QUERY q() =>
    xs <- N<User>::!{name}::Out<Wrote>
    RETURN xs: xs
`)
	if countCode(diags, source.E644) == 0 {
		t.Fatalf("expected E644 for a misplaced exclusion, got %v", diags)
	}

	_, diags = analyze(t, navSchema+`
QUERY q() =>
    xs <- N<User>::!{name}::{name}
    RETURN xs: xs
`)
	if countCode(diags, source.E644) == 0 {
		t.Fatalf("expected E644 for re-projecting an excluded field, got %v", diags)
	}
}

// RANGE bounds must be integers.
func TestRangeBoundsMustBeIntegers(t *testing.T) {
	_, diags := analyze(t, navSchema+`
QUERY q() =>
    xs <- N<User>::RANGE(0, "ten")
    RETURN xs: xs
`)
	if countCode(diags, source.E633) == 0 {
		t.Fatalf("expected E633 for a string range bound, got %v", diags)
	}
}

// COUNT leaves the chain uncollected and rewrites the type.
func TestCountPolicy(t *testing.T) {
	results, diags := analyze(t, navSchema+`
QUERY q() =>
    c <- N<User>::COUNT
    RETURN c: c
`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	qr := findQuery(results, "q")
	stmt := qr.Statements[0]
	if stmt.ShouldCollect != ir.No {
		t.Fatalf("expected COUNT to leave ShouldCollect=No, got %v", stmt.ShouldCollect)
	}
	if stmt.ResultType.Kind != types.Count {
		t.Fatalf("expected Count result type, got %v", stmt.ResultType.Kind)
	}
}

// A COUNT immediately before GROUP_BY is folded into the aggregate.
func TestGroupByRollsInCount(t *testing.T) {
	results, diags := analyze(t, navSchema+`
QUERY q() =>
    g <- N<User>::COUNT::GROUP_BY(name)
    RETURN g: g
`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	qr := findQuery(results, "q")
	stmt := qr.Statements[0]
	for _, s := range stmt.Steps {
		if s.Kind == "Count" {
			t.Fatalf("expected the count step to be rolled into GROUP_BY, got %v", stmt.Steps)
		}
	}
	if stmt.ResultType.Agg == nil || !stmt.ResultType.Agg.IsCount {
		t.Fatalf("expected an is_count aggregate, got %#v", stmt.ResultType.Agg)
	}
}

// EXISTS forces its inner traversal to stay lazy.
func TestExistsInnerStaysLazy(t *testing.T) {
	results, diags := analyze(t, navSchema+`
QUERY q() =>
    us <- N<User>::WHERE(EXISTS(_::Out<Wrote>))
    RETURN us: us
`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	qr := findQuery(results, "q")
	where := qr.Statements[0].Steps[0]
	if where.Kind != "Where" || where.Operand == nil {
		t.Fatalf("expected a Where step with an operand, got %#v", where)
	}
	if where.Operand.StartSource != "EXISTS" || where.Operand.Inner == nil {
		t.Fatalf("expected an EXISTS operand, got %#v", where.Operand)
	}
	if where.Operand.Inner.ShouldCollect != ir.No {
		t.Fatalf("expected the EXISTS inner chain to stay lazy, got %v", where.Operand.Inner.ShouldCollect)
	}
}

// "_" outside any enclosing traversal is a missing-operand error.
func TestAnonymousWithoutParent(t *testing.T) {
	_, diags := analyze(t, navSchema+`
QUERY q() =>
    x <- _::{name}
    RETURN x: x
`)
	if countCode(diags, source.E601) == 0 {
		t.Fatalf("expected E601 for a top-level anonymous source, got %v", diags)
	}
}

// FOR lowers to a loop traversal carrying its body statements.
func TestForLoopLowering(t *testing.T) {
	results, diags := analyze(t, navSchema+`
QUERY q() =>
    FOR u IN N<User> {
        posts <- u::Out<Wrote>
    }
    RETURN ok: true
`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	qr := findQuery(results, "q")
	loop := qr.Statements[0]
	if loop.StartSource != "FOR" || len(loop.ForVars) != 1 || loop.ForVars[0] != "u" {
		t.Fatalf("expected a FOR loop over u, got %#v", loop)
	}
	if len(loop.ForBody) != 1 || loop.ForBody[0].VarName != "posts" {
		t.Fatalf("expected one body statement binding posts, got %#v", loop.ForBody)
	}
}
