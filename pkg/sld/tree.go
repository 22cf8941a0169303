// Package sld implements the depth-bounded SLD (Selective Linear
// resolution for Definite clauses) proof search: given a rule set and a
// query goal, it builds an AND/OR proof-tree forest from which ground
// solutions and hierarchical proofs can later be extracted (package
// proof).
package sld

import "github.com/mayhemheroes/modus/pkg/logic"

// ClauseKind distinguishes the three ClauseId cases.
type ClauseKind int

const (
	// KindQuery marks the clause id of the original query goal.
	KindQuery ClauseKind = iota
	// KindRule marks a user rule, identified by its index in the rule set.
	KindRule
	// KindBuiltin marks a builtin's computed consequence, carrying the
	// instantiated literal the builtin produced.
	KindBuiltin
)

// ClauseId identifies which clause produced a resolvent: the original
// query, a numbered user rule, or a builtin's instantiated literal.
type ClauseId struct {
	Kind      ClauseKind
	RuleIndex int // meaningful only when Kind == KindRule
	Builtin   logic.Literal
}

// QueryClauseID is the ClauseId of the root query.
var QueryClauseID = ClauseId{Kind: KindQuery}

// RuleClauseID identifies the rule at index idx in the rule set passed to Resolve.
func RuleClauseID(idx int) ClauseId { return ClauseId{Kind: KindRule, RuleIndex: idx} }

// BuiltinClauseID identifies a builtin's computed consequence.
func BuiltinClauseID(instantiated logic.Literal) ClauseId {
	return ClauseId{Kind: KindBuiltin, Builtin: instantiated}
}

// Equal reports whether two ClauseIds identify the same clause.
func (c ClauseId) Equal(other ClauseId) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case KindRule:
		return c.RuleIndex == other.RuleIndex
	case KindBuiltin:
		return c.Builtin.Equal(other.Builtin)
	default:
		return true
	}
}

// LiteralOrigin uniquely identifies where a goal literal came from: the
// clause that introduced it, and its position in that clause's body.
type LiteralOrigin struct {
	Clause    ClauseId
	BodyIndex int
}

// LiteralWithHistory annotates a literal with the tree level at which it
// entered the goal and the origin that introduced it. This history is
// what lets the proof walker reconstruct a hierarchical proof from a
// linear resolution path.
type LiteralWithHistory struct {
	Literal      logic.Literal
	Introduction int
	Origin       LiteralOrigin
}

// GoalWithHistory is the resolver's internal goal representation.
type GoalWithHistory []LiteralWithHistory

// Substitute applies s to every literal in g, preserving history.
// It satisfies logic.Substitutable.
func (g GoalWithHistory) Substitute(s logic.Substitution) logic.Substitutable {
	return substituteGoal(g, s)
}

func substituteGoal(g GoalWithHistory, s logic.Substitution) GoalWithHistory {
	out := make(GoalWithHistory, len(g))
	for i, lh := range g {
		out[i] = LiteralWithHistory{
			Literal:      logic.SubstituteLiteral(lh.Literal, s),
			Introduction: lh.Introduction,
			Origin:       lh.Origin,
		}
	}
	return out
}

// Literals strips history, returning the plain Goal this GoalWithHistory
// currently represents.
func (g GoalWithHistory) Literals() logic.Goal {
	out := make(logic.Goal, len(g))
	for i, lh := range g {
		out[i] = lh.Literal
	}
	return out
}

// Resolvent records one way of resolving the literal at LiteralGoalID in
// a Tree's goal against Applied, together with the MGU produced, the
// substitution that freshened Applied's variables (identity for
// KindBuiltin and KindQuery), and the resulting subtree.
type Resolvent struct {
	LiteralGoalID int
	Applied       ClauseId
	MGU           logic.Substitution
	Renaming      logic.Substitution
	Child         *Tree
}

// Tree is one node of the SLD proof-tree forest: the goal it was
// invoked on, the level at which it sits, and every resolvent that was
// tried and produced a (possibly deeper) subtree. Resolvents are kept
// in the order they were discovered, which is the order the proof
// walker relies on for deterministic, discovery-order deduplication.
type Tree struct {
	Goal       GoalWithHistory
	Level      int
	Resolvents []Resolvent
}

// IsLeaf reports whether t represents a successful terminal node (the
// empty goal).
func (t *Tree) IsLeaf() bool {
	return len(t.Goal) == 0
}
