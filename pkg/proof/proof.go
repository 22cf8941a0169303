// Package proof walks an SLD proof-tree forest into the two products
// spec'd in §4.6: the set of ground solutions, and a hierarchical
// forest of Proof trees (one per distinct solution by default).
package proof

import (
	"github.com/mitchellh/hashstructure"

	"github.com/mayhemheroes/modus/pkg/logic"
	"github.com/mayhemheroes/modus/pkg/sld"
)

// Proof is one hierarchical reconstruction of how a query was solved:
// the clause applied at this node, the clause-local valuation (see
// logic.ComposeNoExtend), and one child Proof per body literal of the
// applied clause, in body order.
type Proof struct {
	Clause    sld.ClauseId
	Valuation logic.Substitution
	Children  []Proof
}

// Solutions walks every leaf of tree, composing the MGUs along each
// root-to-leaf path with ComposeExtend, and applies the resulting
// substitution to tree's own (root-level) goal. Results are
// deduplicated by goal equality.
func Solutions(tree *sld.Tree) []logic.Goal {
	query := tree.Goal.Literals()
	dedup := newGoalSet()
	var out []logic.Goal
	for _, s := range leafSubstitutions(tree) {
		solution := query.Substitute(s)
		if dedup.add(solution) {
			out = append(out, solution)
		}
	}
	return out
}

// leafSubstitutions mirrors sld.rs's recursive `inner`: at a leaf
// (empty goal) it returns the identity substitution; at an internal
// node, each resolvent's own leaf substitutions are composed under
// that resolvent's MGU via ComposeExtend.
func leafSubstitutions(tree *sld.Tree) []logic.Substitution {
	if len(tree.Goal) == 0 {
		return []logic.Substitution{logic.NewSubstitution()}
	}
	var out []logic.Substitution
	for _, r := range tree.Resolvents {
		for _, sub := range leafSubstitutions(r.Child) {
			out = append(out, logic.ComposeExtend(r.MGU, sub))
		}
	}
	return out
}

// pathNode is one step of a root-to-leaf walk: the goal the step was
// taken from, the clause applied, the literal selected, and the
// substitution that freshened that clause's variables.
type pathNode struct {
	resolvent sld.GoalWithHistory
	applied   sld.ClauseId
	selected  int
	renaming  logic.Substitution
}

type path struct {
	nodes []pathNode
	val   logic.Substitution
}

// flattenCompose enumerates every root-to-leaf path through tree,
// pairing each with the total composed MGU along that path. lid, cid,
// mgu and renaming describe the edge that led into tree (the Query
// pseudo-edge at the root).
func flattenCompose(lid int, cid sld.ClauseId, mgu, renaming logic.Substitution, tree *sld.Tree) []path {
	if len(tree.Goal) == 0 {
		return []path{{
			nodes: []pathNode{{resolvent: tree.Goal, applied: cid, selected: lid, renaming: renaming}},
			val:   mgu,
		}}
	}
	var out []path
	for _, r := range tree.Resolvents {
		for _, sp := range flattenCompose(r.LiteralGoalID, r.Applied, r.MGU, r.Renaming, r.Child) {
			nodes := make([]pathNode, 0, len(sp.nodes)+1)
			nodes = append(nodes, pathNode{resolvent: tree.Goal, applied: cid, selected: lid, renaming: renaming})
			nodes = append(nodes, sp.nodes...)
			out = append(out, path{nodes: nodes, val: logic.ComposeExtend(mgu, sp.val)})
		}
	}
	return out
}

// proofForLevel reconstructs the Proof rooted at path[level]: it finds,
// for each body index of the clause applied at that level, the first
// later path position whose resolved literal was introduced at this
// level and originated at that body index, then recurses there.
func proofForLevel(path []pathNode, mgu logic.Substitution, level int) Proof {
	sublevels := make(map[int]int)
	for l := 0; l < len(path); l++ {
		if len(path[l].resolvent) == 0 {
			continue
		}
		resolvedChild := path[l].resolvent[path[l+1].selected]
		if resolvedChild.Introduction == level {
			sublevels[resolvedChild.Origin.BodyIndex] = l + 1
		}
	}
	children := make([]Proof, len(sublevels))
	for i := range children {
		children[i] = proofForLevel(path, mgu, sublevels[i])
	}
	return Proof{
		Clause:    path[level].applied,
		Valuation: logic.ComposeNoExtend(path[level].renaming, mgu),
		Children:  children,
	}
}

// Proofs reconstructs one hierarchical Proof per root-to-leaf path of
// tree, rooted at the Query clause over query. By default (dedup is
// true) only the first proof discovered for each distinct solution
// (query under that proof's valuation) is kept, per §4.6's coarse
// "dedup by solution only" policy; passing dedup false returns every
// path's proof, letting a caller implement its own, finer policy.
func Proofs(tree *sld.Tree, query logic.Goal, dedup bool) []Proof {
	idRenaming := logic.NewSubstitution()
	for _, v := range goalVariables(query) {
		idRenaming = idRenaming.Bind(v, v)
	}

	paths := flattenCompose(0, sld.QueryClauseID, logic.NewSubstitution(), idRenaming, tree)

	all := make([]Proof, len(paths))
	for i, p := range paths {
		all[i] = proofForLevel(p.nodes, p.val, 0)
	}
	if !dedup {
		return all
	}

	seen := newGoalSet()
	var out []Proof
	for _, p := range all {
		solution := query.Substitute(p.Valuation)
		if seen.add(solution) {
			out = append(out, p)
		}
	}
	return out
}

func goalVariables(g logic.Goal) []logic.Term {
	seen := make(map[logic.VarKey]bool)
	var out []logic.Term
	for _, lit := range g {
		for _, v := range lit.Variables() {
			if !seen[v.Key()] {
				seen[v.Key()] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// goalSet deduplicates ground goals by a hashstructure digest of their
// canonical string form, falling back to Goal.Equal on hash collision
// so a false-positive digest match can never merge two distinct goals.
type goalSet struct {
	byHash map[uint64][]logic.Goal
}

func newGoalSet() *goalSet {
	return &goalSet{byHash: make(map[uint64][]logic.Goal)}
}

// add reports whether g is new to the set, inserting it if so.
func (d *goalSet) add(g logic.Goal) bool {
	h, err := hashstructure.Hash(g.String(), nil)
	if err != nil {
		// hashstructure cannot fail on a plain string; fall back to
		// treating g as always-new rather than ever losing a solution.
		return true
	}
	for _, existing := range d.byHash[h] {
		if existing.Equal(g) {
			return false
		}
	}
	d.byHash[h] = append(d.byHash[h], g)
	return true
}
