package sld

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayhemheroes/modus/pkg/builtin"
	"github.com/mayhemheroes/modus/pkg/logic"
	"github.com/mayhemheroes/modus/pkg/wellformed"

	"github.com/mayhemheroes/modus/internal/freshid"
)

func newOpts(rules []logic.Clause) Options {
	return Options{
		Dispatcher: builtin.DefaultDispatcher(),
		Analysis:   wellformed.Analyze(rules),
		Counter:    freshid.NewCounter(),
	}
}

// collectSolutions walks every leaf (empty-goal) node reachable from
// tree, applying each edge's MGU in sequence to the original query, and
// returns the resulting ground goals. This mirrors what package proof
// will eventually do with a *Tree, kept minimal here to exercise the
// resolver's shape independently.
func collectSolutions(t *Tree, query logic.Goal) []logic.Goal {
	var out []logic.Goal
	var walk func(node *Tree, acc logic.Substitution)
	walk = func(node *Tree, acc logic.Substitution) {
		if len(node.Resolvents) == 0 && len(node.Goal) == 0 {
			out = append(out, query.Substitute(acc))
			return
		}
		for _, r := range node.Resolvents {
			walk(r.Child, logic.ComposeExtend(acc, r.MGU))
		}
	}
	walk(t, logic.NewSubstitution())
	return out
}

func sortedStrings(goals []logic.Goal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = g.String()
	}
	sort.Strings(out)
	return out
}

// S1: facts and disjunction (expressed as two rules with the same head)
// yield exactly two solutions.
func TestResolveFactsAndDisjunction(t *testing.T) {
	x := logic.NewUserVariable("X")
	rules := []logic.Clause{
		logic.NewFact(logic.NewLiteral("a", logic.NewConstant("1"))),
		logic.NewFact(logic.NewLiteral("a", logic.NewConstant("2"))),
	}
	query := logic.Goal{logic.NewLiteral("a", x)}

	tree, ok, err := Resolve(rules, query, 15, newOpts(rules))
	require.NoError(t, err)
	require.True(t, ok)

	got := sortedStrings(collectSolutions(tree, query))
	assert.Equal(t, []string{`a("1")`, `a("2")`}, got)
}

// S2: a query whose groundness requirements are never satisfiable
// reports no solution rather than erroring.
func TestResolveUnsatisfiableGroundnessYieldsNoSolution(t *testing.T) {
	x, y := logic.NewUserVariable("X"), logic.NewUserVariable("Y")
	rules := []logic.Clause{
		logic.NewRule(logic.NewLiteral("a", x), logic.NewLiteral("b", x, y)),
	}
	query := logic.Goal{logic.NewLiteral("a", logic.NewUserVariable("Q"))}

	tree, ok, err := Resolve(rules, query, 15, newOpts(rules))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, tree)
}

// S3: recursive reach/arc over a small graph converges to exactly three
// solutions within a generous depth bound.
func TestResolveRecursionConverges(t *testing.T) {
	x, y, z := logic.NewUserVariable("X"), logic.NewUserVariable("Y"), logic.NewUserVariable("Z")
	rules := []logic.Clause{
		logic.NewFact(logic.NewLiteral("arc", logic.NewConstant("a"), logic.NewConstant("b"))),
		logic.NewFact(logic.NewLiteral("arc", logic.NewConstant("b"), logic.NewConstant("c"))),
		logic.NewRule(logic.NewLiteral("reach", x, y), logic.NewLiteral("arc", x, y)),
		logic.NewRule(logic.NewLiteral("reach", x, y),
			logic.NewLiteral("reach", x, z), logic.NewLiteral("arc", z, y)),
	}
	query := logic.Goal{logic.NewLiteral("reach", logic.NewUserVariable("From"), logic.NewUserVariable("To"))}

	tree, ok, err := Resolve(rules, query, 15, newOpts(rules))
	require.NoError(t, err)
	require.True(t, ok)

	got := sortedStrings(collectSolutions(tree, query))
	want := []string{
		`reach("a", "b")`,
		`reach("a", "c")`,
		`reach("b", "c")`,
	}
	assert.Equal(t, want, got)
}

// S4: string_concat/3 running forward, driven entirely by the builtin
// dispatcher rather than any user rule.
func TestResolveStringConcatForward(t *testing.T) {
	var rules []logic.Clause
	query := logic.Goal{logic.NewLiteral("string_concat",
		logic.NewConstant("foo"), logic.NewConstant("bar"), logic.NewUserVariable("R"))}

	tree, ok, err := Resolve(rules, query, 5, newOpts(rules))
	require.NoError(t, err)
	require.True(t, ok)

	got := collectSolutions(tree, query)
	require.Len(t, got, 1)
	assert.Equal(t, `string_concat("foo", "bar", "foobar")`, got[0].String())
}

// S5: string_concat/3 running backward inside a user rule: the suffix is
// computed from the ground prefix "aa" and the ground whole "aabb".
func TestResolveStringConcatBackward(t *testing.T) {
	prefix := logic.NewUserVariable("P")
	rules := []logic.Clause{
		logic.NewRule(logic.NewLiteral("a", logic.NewConstant("aabb")),
			logic.NewLiteral("string_concat", logic.NewConstant("aa"), logic.NewUserVariable("Suffix"), logic.NewConstant("aabb"))),
	}
	_ = prefix
	query := logic.Goal{logic.NewLiteral("a", logic.NewConstant("aabb"))}

	tree, ok, err := Resolve(rules, query, 5, newOpts(rules))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, collectSolutions(tree, query), 1)
}

func TestResolveUndefinedPredicateIsHardFault(t *testing.T) {
	var rules []logic.Clause
	query := logic.Goal{logic.NewLiteral("mystery", logic.NewConstant("x"))}

	_, _, err := Resolve(rules, query, 5, newOpts(rules))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndefinedPredicate)
}

func TestResolveDepthExceededYieldsNoSolutionNotError(t *testing.T) {
	x, y := logic.NewUserVariable("X"), logic.NewUserVariable("Y")
	rules := []logic.Clause{
		logic.NewFact(logic.NewLiteral("arc", logic.NewConstant("a"), logic.NewConstant("b"))),
		logic.NewRule(logic.NewLiteral("reach", x, y), logic.NewLiteral("arc", x, y)),
	}
	query := logic.Goal{logic.NewLiteral("reach", logic.NewUserVariable("A"), logic.NewUserVariable("B"))}

	tree, ok, err := Resolve(rules, query, 0, newOpts(rules))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, tree)
}
