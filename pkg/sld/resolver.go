package sld

import (
	"github.com/pkg/errors"

	"github.com/mayhemheroes/modus/pkg/builtin"
	"github.com/mayhemheroes/modus/pkg/logic"
	"github.com/mayhemheroes/modus/pkg/wellformed"
)

// ErrUndefinedPredicate is the hard fault of §4.4/§7: a goal literal's
// signature is neither a known builtin nor the head signature of any
// user rule. It aborts the whole search, unlike the silent policies
// (groundness dead-end, unification failure, depth exceeded) that only
// prune the current branch.
var ErrUndefinedPredicate = errors.New("sld: undefined predicate")

// Options bundles the read-only collaborators the resolver consults at
// every step: the builtin dispatcher, the groundness analysis, and the
// fresh-variable counter used to rename rules before unifying their
// heads against a goal literal.
type Options struct {
	Dispatcher *builtin.Dispatcher
	Analysis   wellformed.Analysis
	Counter    logic.VarCounter
}

// Resolve runs depth-bounded SLD resolution for query against rules. It
// returns the root of the proof-tree forest and true if at least one
// resolvent chain reached the empty goal within maxDepth; (nil, false,
// nil) if the search exhausted every branch without success. A non-nil
// error means a hard fault aborted the search outright — the returned
// tree and bool are meaningless in that case.
func Resolve(rules []logic.Clause, query logic.Goal, maxDepth int, opts Options) (*Tree, bool, error) {
	goal := make(GoalWithHistory, len(query))
	for i, lit := range query {
		goal[i] = LiteralWithHistory{
			Literal:      lit,
			Introduction: 0,
			Origin:       LiteralOrigin{Clause: QueryClauseID, BodyIndex: i},
		}
	}
	tree, err := inner(rules, goal, maxDepth, 0, opts)
	if err != nil {
		return nil, false, err
	}
	return tree, tree != nil, nil
}

// inner implements sld.rs's `inner`: it selects a literal, tries every
// clause (builtin and/or user rules) that could resolve it, and
// recurses on each resulting goal. A resolvent survives only if its
// recursive call itself returns a tree.
func inner(rules []logic.Clause, goal GoalWithHistory, maxDepth, level int, opts Options) (*Tree, error) {
	if len(goal) == 0 {
		return &Tree{Goal: goal, Level: level}, nil
	}
	if level >= maxDepth {
		return nil, nil
	}

	idx, found, err := selectLiteral(goal, opts)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	selectedLit := goal[idx].Literal

	var resolvents []Resolvent

	if opts.Dispatcher.IsBuiltinSignature(selectedLit.Signature()) {
		candidate, outcome := opts.Dispatcher.Select(selectedLit)
		if outcome == builtin.Match {
			if mgu, ok := logic.Unify(selectedLit, candidate); ok {
				childGoal := rebuildGoal(goal, idx, nil, BuiltinClauseID(candidate), mgu, level)
				child, err := inner(rules, childGoal, maxDepth, level+1, opts)
				if err != nil {
					return nil, err
				}
				if child != nil {
					resolvents = append(resolvents, Resolvent{
						LiteralGoalID: idx,
						Applied:       BuiltinClauseID(candidate),
						MGU:           mgu,
						Renaming:      logic.NewSubstitution(),
						Child:         child,
					})
				}
			}
		}
	}

	for ruleIdx, rule := range rules {
		if rule.Head.Signature() != selectedLit.Signature() {
			continue
		}
		renamed, renaming, err := logic.Rename(rule, opts.Counter)
		if err != nil {
			return nil, err
		}
		mgu, ok := logic.Unify(renamed.Head, selectedLit)
		if !ok {
			continue
		}
		childGoal := rebuildGoal(goal, idx, renamed.Body, RuleClauseID(ruleIdx), mgu, level)
		child, err := inner(rules, childGoal, maxDepth, level+1, opts)
		if err != nil {
			return nil, err
		}
		if child != nil {
			resolvents = append(resolvents, Resolvent{
				LiteralGoalID: idx,
				Applied:       RuleClauseID(ruleIdx),
				MGU:           mgu,
				Renaming:      renaming,
				Child:         child,
			})
		}
	}

	if len(resolvents) == 0 {
		return nil, nil
	}
	return &Tree{Goal: goal, Level: level, Resolvents: resolvents}, nil
}

// selectLiteral scans goal left to right for the first literal that is
// either a builtin reporting Match, or a user literal whose
// groundness-required argument positions are already Constants. Every
// literal inspected along the way — whether or not it ends up
// selected — must have a known signature (builtin or user rule head);
// the first one that doesn't is the undefined-predicate hard fault,
// mirroring the unconditional lookup in the original resolver.
func selectLiteral(goal GoalWithHistory, opts Options) (int, bool, error) {
	for i, lh := range goal {
		lit := lh.Literal
		sig := lit.Signature()

		if opts.Dispatcher.IsBuiltinSignature(sig) {
			_, outcome := opts.Dispatcher.Select(lit)
			if outcome == builtin.Match {
				return i, true, nil
			}
			continue
		}

		required, known := opts.Analysis.Lookup(sig)
		if !known {
			return 0, false, errors.Wrapf(ErrUndefinedPredicate, "%s", sig)
		}
		if literalSatisfiesGroundness(lit, required) {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// literalSatisfiesGroundness reports whether lit may be selected given
// its predicate's groundness-producing vector. A position that is
// currently a Variable is only acceptable when the analysis has proven
// that position ground-producing (required[i] == true) — meaning
// resolving this literal is itself guaranteed to ground it out. A
// Variable at a position the analysis could not prove ground-producing
// blocks selection, since nothing would otherwise force it to a
// constant.
func literalSatisfiesGroundness(lit logic.Literal, required []bool) bool {
	for i, arg := range lit.Args {
		if !arg.IsVariable() {
			continue
		}
		if i >= len(required) || !required[i] {
			return false
		}
	}
	return true
}

// rebuildGoal forms the resolvent goal: drop the literal at idx, splice
// in body (the renamed rule's body, or nil for a builtin consequence)
// with fresh history entries introduced at level+1, and apply mgu across
// the whole result.
func rebuildGoal(goal GoalWithHistory, idx int, body []logic.Literal, applied ClauseId, mgu logic.Substitution, level int) GoalWithHistory {
	next := make(GoalWithHistory, 0, len(goal)-1+len(body))
	next = append(next, goal[:idx]...)
	next = append(next, goal[idx+1:]...)
	for i, bodyLit := range body {
		next = append(next, LiteralWithHistory{
			Literal:      bodyLit,
			Introduction: level + 1,
			Origin:       LiteralOrigin{Clause: applied, BodyIndex: i},
		})
	}
	return substituteGoal(next, mgu)
}
