package imagegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayhemheroes/modus/internal/freshid"
	"github.com/mayhemheroes/modus/pkg/builtin"
	"github.com/mayhemheroes/modus/pkg/logic"
	"github.com/mayhemheroes/modus/pkg/proof"
	"github.com/mayhemheroes/modus/pkg/sld"
	"github.com/mayhemheroes/modus/pkg/wellformed"
)

func lit(pred string, args ...logic.Term) logic.Literal {
	return logic.NewLiteral(logic.Predicate(pred), args...)
}

func c(s string) logic.Term { return logic.NewConstant(s) }

func resolveImage(t *testing.T, rules []logic.Clause, queryLit logic.Literal) proof.Proof {
	t.Helper()
	query := logic.Goal{queryLit}
	opts := sld.Options{
		Dispatcher: builtin.DefaultDispatcher(),
		Analysis:   wellformed.Analyze(rules),
		Counter:    freshid.NewCounter(),
	}
	tree, ok, err := sld.Resolve(rules, query, 10, opts)
	require.NoError(t, err)
	require.True(t, ok)
	proofs := proof.Proofs(tree, query, true)
	require.Len(t, proofs, 1)
	root := proofs[0]
	require.Equal(t, sld.QueryClauseID, root.Clause)
	require.Len(t, root.Children, 1)
	return root.Children[0]
}

// S7 — build-plan topology: from("alpine") then two run steps produces
// three nodes in order From, Run(parent=0), Run(parent=1); outputs[0]
// names node 2.
func TestGenerateBuildPlanTopology(t *testing.T) {
	rules := []logic.Clause{
		logic.NewFact(lit("from", c("alpine"))),
		logic.NewFact(lit("run", c("apt-get update"))),
		logic.NewFact(lit("run", c("apt-get install -y curl"))),
		logic.NewRule(lit("image", c("myapp")),
			lit("from", c("alpine")),
			lit("run", c("apt-get update")),
			lit("run", c("apt-get install -y curl"))),
	}
	imageProof := resolveImage(t, rules, lit("image", c("myapp")))

	plan, err := Generate([]Target{{Proof: imageProof, Name: "myapp"}}, rules, DefaultImageRules())
	require.NoError(t, err)

	require.Len(t, plan.Nodes, 3)
	assert.Equal(t, KindFrom, plan.Nodes[0].Kind)
	assert.Equal(t, "alpine", plan.Nodes[0].ImageRef)

	assert.Equal(t, KindRun, plan.Nodes[1].Kind)
	assert.Equal(t, NodeId(0), plan.Nodes[1].Parent)
	assert.Equal(t, "apt-get update", plan.Nodes[1].Command)
	assert.Equal(t, ".", plan.Nodes[1].Cwd)

	assert.Equal(t, KindRun, plan.Nodes[2].Kind)
	assert.Equal(t, NodeId(1), plan.Nodes[2].Parent)
	assert.Equal(t, "apt-get install -y curl", plan.Nodes[2].Command)

	require.Len(t, plan.Outputs, 1)
	assert.Equal(t, NodeId(2), plan.Outputs[0].Node)
	assert.True(t, plan.Outputs[0].HasSource)

	want := []BuildNode{
		{Kind: KindFrom, ImageRef: "alpine"},
		{Kind: KindRun, Parent: 0, Command: "apt-get update", Cwd: "."},
		{Kind: KindRun, Parent: 1, Command: "apt-get install -y curl", Cwd: "."},
	}
	if diff := cmp.Diff(want, plan.Nodes); diff != "" {
		t.Errorf("build plan nodes mismatch (-want +got):\n%s", diff)
	}
}

// Testable property 6: every non-From node's parent index is strictly
// less than its own index, for every node in the plan.
func TestGenerateBuildDAGIsAcyclic(t *testing.T) {
	rules := []logic.Clause{
		logic.NewFact(lit("from", c("alpine"))),
		logic.NewFact(lit("run", c("step-one"))),
		logic.NewFact(lit("workdir", c("/srv"))),
		logic.NewFact(lit("run", c("step-two"))),
		logic.NewFact(lit("label", c("maintainer"), c("me"))),
		logic.NewRule(lit("image", c("app")),
			lit("from", c("alpine")),
			lit("run", c("step-one")),
			lit("workdir", c("/srv")),
			lit("run", c("step-two")),
			lit("label", c("maintainer"), c("me"))),
	}
	imageProof := resolveImage(t, rules, lit("image", c("app")))

	plan, err := Generate([]Target{{Proof: imageProof, Name: "app"}}, rules, DefaultImageRules())
	require.NoError(t, err)

	for i, n := range plan.Nodes {
		if n.Kind == KindFrom {
			continue
		}
		assert.Less(t, int(n.Parent), i, "node %d's parent must precede it", i)
	}

	// workdir joins onto the accumulated cwd rather than replacing it,
	// so the run after workdir("/srv") carries cwd "/srv".
	var sawJoinedRun bool
	for _, n := range plan.Nodes {
		if n.Kind == KindRun && n.Command == "step-two" {
			assert.Equal(t, "/srv", n.Cwd)
			sawJoinedRun = true
		}
	}
	assert.True(t, sawJoinedRun, "expected a Run node for step-two")
}

// copy_from referencing the same source image twice reuses the node id
// generated for that image's proof (structural sharing, §4.7).
func TestGenerateCopyFromImageSharesStructurally(t *testing.T) {
	rules := []logic.Clause{
		logic.NewFact(lit("from", c("alpine"))),
		logic.NewRule(lit("image", c("base")), lit("from", c("alpine"))),

		logic.NewFact(lit("copy_from", c("base"), c("/bin/tool"), c("/usr/local/bin/tool"))),
		logic.NewFact(lit("copy_from", c("base"), c("/etc/tool.conf"), c("/etc/tool.conf"))),
		logic.NewRule(lit("image", c("final")),
			lit("from", c("alpine")),
			lit("copy_from", c("base"), c("/bin/tool"), c("/usr/local/bin/tool")),
			lit("copy_from", c("base"), c("/etc/tool.conf"), c("/etc/tool.conf"))),
	}
	baseProof := resolveImage(t, rules, lit("image", c("base")))
	finalProof := resolveImage(t, rules, lit("image", c("final")))

	targets := []Target{
		{Proof: baseProof, Name: "base"},
		{Proof: finalProof, Name: "final"},
	}
	plan, err := Generate(targets, rules, DefaultImageRules())
	require.NoError(t, err)

	var copyNodes []BuildNode
	for _, n := range plan.Nodes {
		if n.Kind == KindCopyFromImage {
			copyNodes = append(copyNodes, n)
		}
	}
	require.Len(t, copyNodes, 2)
	assert.Equal(t, copyNodes[0].SrcImage, copyNodes[1].SrcImage,
		"both copies should reference the same generated base-image node")

	require.Len(t, plan.Outputs, 2)
	assert.Equal(t, plan.Outputs[0].Node, copyNodes[0].SrcImage,
		"the base target's own output should be the shared source node")
}

func TestGenerateNonGroundProvedLiteralIsHardFault(t *testing.T) {
	x := logic.NewUserVariable("X")
	rules := []logic.Clause{
		logic.NewFact(lit("from", c("alpine"))),
		logic.NewRule(lit("image", x), lit("from", c("alpine"))),
	}
	// Build a proof by hand whose valuation never binds X, simulating a
	// design-invariant violation the resolver should never itself allow.
	p := proof.Proof{
		Clause:    sld.RuleClauseID(1),
		Valuation: logic.NewSubstitution(),
		Children:  []proof.Proof{{Clause: sld.RuleClauseID(0), Valuation: logic.NewSubstitution()}},
	}
	_, err := Generate([]Target{{Proof: p, Name: "bad"}}, rules, DefaultImageRules())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonGroundProvedLiteral)
}
