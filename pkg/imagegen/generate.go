package imagegen

import (
	"path"

	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"

	"github.com/mayhemheroes/modus/pkg/logic"
	"github.com/mayhemheroes/modus/pkg/proof"
	"github.com/mayhemheroes/modus/pkg/sld"
)

// ErrNonGroundProvedLiteral is the hard fault of §7's error table: the
// generator found a body literal, in an otherwise-successful proof,
// that substitution did not ground out. Since the resolver's groundness
// policy is supposed to make this impossible, seeing it here means a
// design invariant was violated upstream.
var ErrNonGroundProvedLiteral = errors.New("imagegen: non-ground proved literal in build-plan generator")

// Target is one requested output image: the proof that derived it, and
// (if non-empty) the Name a sibling Target's copy_from literal can use
// to reference it.
type Target struct {
	Proof proof.Proof
	Name  string
}

// Generate walks each target's proof depth-first, per §4.7, threading a
// current-parent node id and an accumulated working directory through
// each rule application's body literals. Literals whose signature is
// registered in rules emit the corresponding BuildNode; unregistered
// literals are themselves walked (their own proof is assumed to
// continue constructing the same image, e.g. a helper rule that
// bundles several run/copy steps). Repeated proofs of the same ground
// image literal reuse the node id already generated for it.
func Generate(targets []Target, hornRules []logic.Clause, rules ImageRules) (*BuildPlan, error) {
	g := &generator{
		hornRules: hornRules,
		rules:     rules,
		memo:      make(map[uint64]NodeId),
		visiting:  make(map[string]bool),
		byName:    make(map[string]Target, len(targets)),
	}
	for _, t := range targets {
		if t.Name != "" {
			g.byName[t.Name] = t
		}
	}

	outputs := make([]Output, len(targets))
	for i, t := range targets {
		id, lit, err := g.generateTarget(t)
		if err != nil {
			return nil, err
		}
		outputs[i] = Output{Node: id, SourceLiteral: lit, HasSource: true}
	}
	return &BuildPlan{Nodes: g.nodes, Outputs: outputs}, nil
}

type generator struct {
	hornRules []logic.Clause
	rules     ImageRules
	nodes     []BuildNode

	// memo gives the structural sharing §4.7 asks for: a proved
	// sub-image reached more than once (whether as two Targets or via
	// a copy_from literal recursing back into an earlier one) reuses
	// the node id already generated for its ground head literal.
	memo map[uint64]NodeId
	// visiting guards against a copy_from cycle recursing forever.
	visiting map[string]bool
	// byName resolves a RoleCopyFromImage literal's source-image
	// argument to the Target it names.
	byName map[string]Target
}

func (g *generator) generateTarget(t Target) (NodeId, logic.Literal, error) {
	headLit, ok := groundHeadLiteral(t.Proof, g.hornRules)
	if !ok {
		return 0, logic.Literal{}, errors.Wrap(ErrNonGroundProvedLiteral, "target proof is not rooted at a rule or builtin application")
	}
	if !headLit.IsGround() {
		return 0, logic.Literal{}, errors.Wrapf(ErrNonGroundProvedLiteral, "%s", headLit)
	}

	key := headLit.String()
	h, hashErr := hashstructure.Hash(key, nil)
	if hashErr == nil {
		if id, seen := g.memo[h]; seen {
			return id, headLit, nil
		}
	}
	if g.visiting[key] {
		return 0, logic.Literal{}, errors.Errorf("imagegen: cyclic image proof for %s", headLit)
	}
	g.visiting[key] = true
	defer delete(g.visiting, key)

	id, err := g.walk(t.Proof, -1, ".")
	if err != nil {
		return 0, logic.Literal{}, err
	}
	if hashErr == nil {
		g.memo[h] = id
	}
	return id, headLit, nil
}

// walk emits build nodes for p's rule body, left to right, threading
// parent and cwd through both registered-role literals and plain
// recursion into unregistered ones. It returns the parent id that
// whatever follows p in an enclosing walk should attach to.
func (g *generator) walk(p proof.Proof, parent NodeId, cwd string) (NodeId, error) {
	if p.Clause.Kind != sld.KindRule {
		return parent, nil
	}
	rule := g.hornRules[p.Clause.RuleIndex]
	for i, bodyLit := range rule.Body {
		ground := logic.SubstituteLiteral(bodyLit, p.Valuation)
		if !ground.IsGround() {
			return 0, errors.Wrapf(ErrNonGroundProvedLiteral, "%s", ground)
		}

		role, hasRole := g.rules.Lookup(ground.Signature())
		if !hasRole {
			next, err := g.walk(p.Children[i], parent, cwd)
			if err != nil {
				return 0, err
			}
			parent = next
			continue
		}

		var err error
		parent, cwd, err = g.emitRole(ground, role, parent, cwd)
		if err != nil {
			return 0, err
		}
	}
	return parent, nil
}

func (g *generator) emitRole(ground logic.Literal, role ImageRule, parent NodeId, cwd string) (NodeId, string, error) {
	switch role.Role {
	case RoleFrom:
		ref, _ := ground.Args[0].Constant()
		return g.emit(BuildNode{Kind: KindFrom, ImageRef: ref}), ".", nil

	case RoleRun:
		cmd, _ := ground.Args[0].Constant()
		return g.emit(BuildNode{Kind: KindRun, Parent: parent, Command: cmd, Cwd: cwd}), cwd, nil

	case RoleCopyFromLocal:
		src, _ := ground.Args[0].Constant()
		dst, _ := ground.Args[1].Constant()
		return g.emit(BuildNode{Kind: KindCopyFromLocal, Parent: parent, SrcPath: src, DstPath: dst}), cwd, nil

	case RoleCopyFromImage:
		name, _ := ground.Args[0].Constant()
		srcPath, _ := ground.Args[1].Constant()
		dstPath, _ := ground.Args[2].Constant()
		src, ok := g.byName[name]
		if !ok {
			return 0, cwd, errors.Errorf("imagegen: copy_from references unknown image %q", name)
		}
		srcID, _, err := g.generateTarget(src)
		if err != nil {
			return 0, cwd, err
		}
		node := BuildNode{Kind: KindCopyFromImage, Parent: parent, SrcImage: srcID, SrcPath: srcPath, DstPath: dstPath}
		return g.emit(node), cwd, nil

	case RoleSetWorkdir:
		newdir, _ := ground.Args[0].Constant()
		joined := path.Join(cwd, newdir)
		return g.emit(BuildNode{Kind: KindSetWorkdir, Parent: parent, NewWorkdir: newdir}), joined, nil

	case RoleSetEntrypoint:
		words := make([]string, len(ground.Args))
		for j, a := range ground.Args {
			words[j], _ = a.Constant()
		}
		return g.emit(BuildNode{Kind: KindSetEntrypoint, Parent: parent, NewEntrypoint: words}), cwd, nil

	case RoleSetLabel:
		key, _ := ground.Args[0].Constant()
		val, _ := ground.Args[1].Constant()
		return g.emit(BuildNode{Kind: KindSetLabel, Parent: parent, Label: key, Value: val}), cwd, nil

	default:
		return parent, cwd, errors.Errorf("imagegen: unknown role %d", role.Role)
	}
}

func (g *generator) emit(node BuildNode) NodeId {
	id := NodeId(len(g.nodes))
	g.nodes = append(g.nodes, node)
	return id
}

// groundHeadLiteral recovers the ground literal a proof node derives:
// the applied rule's head under the node's own valuation, or the
// instantiated builtin literal under the same valuation. A Query node
// has no single head and reports ok=false.
func groundHeadLiteral(p proof.Proof, hornRules []logic.Clause) (logic.Literal, bool) {
	switch p.Clause.Kind {
	case sld.KindRule:
		return logic.SubstituteLiteral(hornRules[p.Clause.RuleIndex].Head, p.Valuation), true
	case sld.KindBuiltin:
		return logic.SubstituteLiteral(p.Clause.Builtin, p.Valuation), true
	default:
		return logic.Literal{}, false
	}
}
