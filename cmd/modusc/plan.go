package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mayhemheroes/modus/internal/engine"
	"github.com/mayhemheroes/modus/pkg/proof"
	"github.com/mayhemheroes/modus/pkg/reporting"
)

var planCmd = &cobra.Command{
	Use:   "plan <program.json> <query> <rules.json>",
	Short: "Solve query and lower every proof into a build-plan DAG",
	Long: `plan solves query the same way solve does, then lowers every
resulting proof into build nodes using the image-construction rules
named in rules.json (from/run/copy/copy_from/workdir/entrypoint/label
by default, see loadImageRules). The build plan is printed to stdout
as the JSON shape described in §6 of the build planner's external
interfaces.`,
	Args: cobra.ExactArgs(3),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	programPath, queryRaw, rulesPath := args[0], args[1], args[2]

	clauses, err := loadProgram(programPath)
	if err != nil {
		return err
	}
	e, err := loadEngine()
	if err != nil {
		return err
	}
	rules, err := e.Translate(clauses)
	if err != nil {
		return errors.Wrap(err, "modusc: translate")
	}
	query, err := parseQuery(queryRaw)
	if err != nil {
		return err
	}
	if len(query) != 1 {
		return errors.New("modusc: plan: query must name exactly one image literal, e.g. image(\"myapp\")")
	}
	imageRules, err := loadImageRules(rulesPath)
	if err != nil {
		return err
	}

	res, err := e.Solve(rules, query)
	if err != nil {
		return err
	}
	if !res.Found {
		return errors.New("modusc: plan: query has no solutions to build")
	}
	if len(res.Proofs) != len(res.Solutions) {
		return errors.New("modusc: plan: proofs and solutions disagree in count; " +
			"set deduplicate_proofs: true in the engine config (the default) to plan from this query")
	}

	// Solve's Result.Proofs are rooted at the query pseudo-clause, one
	// Proof per top-level query literal's resolution (see pkg/proof's
	// Proofs doc). Since the query above names exactly one literal,
	// that literal's own proof is Children[0].
	imageProofs := make([]proof.Proof, len(res.Proofs))
	names := make([]string, len(res.Proofs))
	for i, p := range res.Proofs {
		if len(p.Children) != 1 {
			return errors.New("modusc: plan: malformed proof for a single-literal query")
		}
		imageProofs[i] = p.Children[0]
		names[i] = nameForSolution(res.Solutions[i])
	}
	targetRes := engine.Result{SearchID: res.SearchID, Proofs: imageProofs}

	plan, err := e.Plan(rules, targetRes, names, imageRules)
	if err != nil {
		return err
	}

	// No external builder is wired up in this CLI, so every output is
	// reported with a placeholder digest: modusc's job ends at
	// producing the plan, not executing it.
	digests := make([]string, len(plan.Outputs))
	for i := range digests {
		digests[i] = "unresolved"
	}
	images, err := reporting.BuildResult(plan, digests)
	if err != nil {
		return err
	}
	return reporting.WriteTo(cmd.OutOrStdout(), images)
}
