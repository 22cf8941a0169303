package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mayhemheroes/modus/pkg/logic"
)

var debugTree bool

var solveCmd = &cobra.Command{
	Use:   "solve <program.json> <query>",
	Short: "Resolve query against the clauses in program.json and print every ground solution",
	Args:  cobra.ExactArgs(2),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&debugTree, "debug", false, "print the SLD search tree before the solutions")
}

func runSolve(cmd *cobra.Command, args []string) error {
	programPath, queryRaw := args[0], args[1]

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

	if debugTree {
		tree, _, err := e.Tree(rules, query)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), tree.PrettyPrint())
	}

	res, err := e.Solve(rules, query)
	if err != nil {
		return err
	}
	if !res.Found {
		fmt.Fprintln(cmd.OutOrStdout(), "no solutions")
		return nil
	}
	for _, sol := range res.Solutions {
		fmt.Fprintln(cmd.OutOrStdout(), sol.String())
	}
	return nil
}

// nameForSolution derives a stable target name from a ground solution
// goal's first literal: its sole constant argument when it has exactly
// one (the conventional shape of an image-naming predicate like
// image/1), or the literal's full rendered text otherwise. modusc's
// plan command only ever deals with single-literal image queries, so
// the first literal is the only one that matters here.
func nameForSolution(goal logic.Goal) string {
	if len(goal) == 0 {
		return ""
	}
	lit := goal[0]
	if len(lit.Args) == 1 {
		if s, ok := lit.Args[0].Constant(); ok {
			return s
		}
	}
	return lit.String()
}
