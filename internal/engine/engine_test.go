package engine

import (
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayhemheroes/modus/pkg/imagegen"
	"github.com/mayhemheroes/modus/pkg/logic"
	"github.com/mayhemheroes/modus/pkg/proof"
)

func lit(pred string, args ...logic.Term) logic.Literal {
	return logic.NewLiteral(logic.Predicate(pred), args...)
}

func sortedStrings(goals []logic.Goal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = g.String()
	}
	sort.Strings(out)
	return out
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// S1: facts and disjunction, driven end to end through Engine.Solve.
func TestEngineSolveFactsAndDisjunction(t *testing.T) {
	x := logic.NewUserVariable("X")
	rules := []logic.Clause{
		logic.NewFact(lit("b", logic.NewConstant("c"))),
		logic.NewFact(lit("b", logic.NewConstant("d"))),
		logic.NewRule(lit("a", x), lit("b", x)),
	}
	query := logic.Goal{lit("a", logic.NewUserVariable("X"))}

	e := New(DefaultConfig(), quietLogger())
	res, err := e.Solve(rules, query)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []string{`a("c")`, `a("d")`}, sortedStrings(res.Solutions))
	assert.NotEmpty(t, res.SearchID)
}

// S2: unsatisfiable groundness yields Found=false, not an error.
func TestEngineSolveUnsatisfiableGroundnessYieldsNotFound(t *testing.T) {
	x := logic.NewUserVariable("X")
	rules := []logic.Clause{logic.NewFact(lit("a", x))}
	query := logic.Goal{lit("a", logic.NewUserVariable("X"))}

	e := New(DefaultConfig(), quietLogger())
	res, err := e.Solve(rules, query)
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestEngineSolveUndefinedPredicateIsHardFault(t *testing.T) {
	query := logic.Goal{lit("mystery", logic.NewConstant("x"))}
	e := New(DefaultConfig(), quietLogger())
	_, err := e.Solve(nil, query)
	require.Error(t, err)
}

// A Config with a narrowed Builtins list disables the rest: resolving a
// string_concat goal fails as undefined once image_exists is the only
// builtin enabled.
func TestEngineConfigNarrowsBuiltins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Builtins = []string{"image_exists"}
	e := New(cfg, quietLogger())

	query := logic.Goal{lit("string_concat", logic.NewConstant("a"), logic.NewConstant("b"), logic.NewUserVariable("R"))}
	_, err := e.Solve(nil, query)
	require.Error(t, err)
}

// End-to-end Solve -> Plan, mirroring S7's build-plan topology scenario.
func TestEnginePlanProducesBuildPlan(t *testing.T) {
	rules := []logic.Clause{
		logic.NewFact(lit("from", logic.NewConstant("alpine"))),
		logic.NewFact(lit("run", logic.NewConstant("echo hi"))),
		logic.NewRule(lit("image", logic.NewConstant("myapp")),
			lit("from", logic.NewConstant("alpine")),
			lit("run", logic.NewConstant("echo hi"))),
	}
	query := logic.Goal{lit("image", logic.NewConstant("myapp"))}

	e := New(DefaultConfig(), quietLogger())
	res, err := e.Solve(rules, query)
	require.NoError(t, err)
	require.True(t, res.Found)
	require.Len(t, res.Proofs, 1)

	imageProof := res.Proofs[0].Children[0]
	planRes := Result{SearchID: res.SearchID, Proofs: []proof.Proof{imageProof}}
	plan, err := e.Plan(rules, planRes, []string{"myapp"}, imagegen.DefaultImageRules())
	require.NoError(t, err)

	require.Len(t, plan.Nodes, 2)
	assert.Equal(t, imagegen.KindFrom, plan.Nodes[0].Kind)
	assert.Equal(t, imagegen.KindRun, plan.Nodes[1].Kind)
	require.Len(t, plan.Outputs, 1)
	assert.Equal(t, imagegen.NodeId(1), plan.Outputs[0].Node)
}

func TestEngineTreeRendersPrettyPrint(t *testing.T) {
	rules := []logic.Clause{logic.NewFact(lit("b", logic.NewConstant("c")))}
	query := logic.Goal{lit("b", logic.NewUserVariable("X"))}

	e := New(DefaultConfig(), quietLogger())
	tree, ok, err := e.Tree(rules, query)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, tree.PrettyPrint())
}

func TestEnginePlanRejectsNameCountMismatch(t *testing.T) {
	e := New(DefaultConfig(), quietLogger())
	_, err := e.Plan(nil, Result{Proofs: []proof.Proof{{}}}, nil, imagegen.ImageRules{})
	require.Error(t, err)
}
