package engine

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mayhemheroes/modus/internal/freshid"
	"github.com/mayhemheroes/modus/pkg/builtin"
	"github.com/mayhemheroes/modus/pkg/imagegen"
	"github.com/mayhemheroes/modus/pkg/logic"
	"github.com/mayhemheroes/modus/pkg/proof"
	"github.com/mayhemheroes/modus/pkg/sld"
	"github.com/mayhemheroes/modus/pkg/translate"
	"github.com/mayhemheroes/modus/pkg/wellformed"
)

// Engine wires L/B/W/S/T/P together behind one read-only, concurrency-safe
// call surface (§5: "may be shared across searches without locking").
// Two fresh-id counters back it, exactly the two §5 names: one for rule
// renaming, one for the translator's auxiliary predicates.
type Engine struct {
	cfg        Config
	dispatcher *builtin.Dispatcher
	log        *logrus.Entry

	renameCounter *freshid.Counter
	auxCounter    *freshid.Counter
}

var allBuiltins = map[string]builtin.Builtin{
	"string_concat": builtin.StringConcat{},
	"image_exists":  builtin.ImageExists{},
	"merge":         builtin.Merge{},
}

// New builds an Engine from cfg. A nil logger defaults to
// logrus.StandardLogger(), per SPEC_FULL.md §1.1.
func New(cfg Config, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Engine{
		cfg:           cfg,
		dispatcher:    dispatcherFor(cfg.Builtins),
		log:           logger.WithField("component", "engine"),
		renameCounter: freshid.NewCounter(),
		auxCounter:    freshid.NewCounter(),
	}
}

func dispatcherFor(names []string) *builtin.Dispatcher {
	if len(names) == 0 {
		return builtin.DefaultDispatcher()
	}
	selected := make([]builtin.Builtin, 0, len(names))
	for _, name := range names {
		if b, ok := allBuiltins[name]; ok {
			selected = append(selected, b)
		}
	}
	return builtin.NewDispatcher(selected...)
}

// Translate lowers a surface program to flat Horn clauses, using the
// engine's own auxiliary-predicate counter (§5's second counter).
func (e *Engine) Translate(clauses []translate.SurfaceClause) ([]logic.Clause, error) {
	return translate.Translate(clauses, e.auxCounter)
}

// Result is the product of one Solve call: the ground solutions, the
// reconstructed proofs (subject to Config.DeduplicateProofs), and
// whether the search found anything at all.
type Result struct {
	SearchID  string
	Solutions []logic.Goal
	Proofs    []proof.Proof
	Found     bool
}

// Solve resolves query against rules, up to the engine's configured
// MaxDepth, and extracts solutions and proofs from the resulting tree.
// Per §5, rules is held read-only and Solve may be called concurrently
// by independent callers sharing it.
func (e *Engine) Solve(rules []logic.Clause, query logic.Goal) (Result, error) {
	searchID := uuid.NewString()
	log := e.log.WithFields(logrus.Fields{
		"search_id":  searchID,
		"query":      query.String(),
		"max_depth":  e.cfg.MaxDepth,
		"rule_count": len(rules),
	})
	log.Debug("starting resolution")

	analysis := wellformed.Analyze(rules)
	tree, ok, err := sld.Resolve(rules, query, e.cfg.MaxDepth, sld.Options{
		Dispatcher: e.dispatcher,
		Analysis:   analysis,
		Counter:    e.renameCounter,
	})
	if err != nil {
		log.WithError(err).Debug("resolution hard fault")
		return Result{SearchID: searchID}, errors.Wrapf(err, "engine: solve %s", query)
	}
	if !ok {
		log.Info("no solution found")
		return Result{SearchID: searchID, Found: false}, nil
	}

	solutions := proof.Solutions(tree)
	proofs := proof.Proofs(tree, query, e.cfg.DeduplicateProofs)
	log.WithFields(logrus.Fields{
		"solution_count": len(solutions),
		"proof_count":    len(proofs),
	}).Info("resolution complete")

	return Result{
		SearchID:  searchID,
		Solutions: solutions,
		Proofs:    proofs,
		Found:     true,
	}, nil
}

// Tree runs the same resolution Solve does but returns the raw SLD
// tree instead of extracting solutions and proofs from it, for
// callers that want sld.Tree.PrettyPrint's debug rendering (e.g.
// cmd/modusc's -debug flag) rather than the final answer.
func (e *Engine) Tree(rules []logic.Clause, query logic.Goal) (*sld.Tree, bool, error) {
	analysis := wellformed.Analyze(rules)
	tree, ok, err := sld.Resolve(rules, query, e.cfg.MaxDepth, sld.Options{
		Dispatcher: e.dispatcher,
		Analysis:   analysis,
		Counter:    e.renameCounter,
	})
	if err != nil {
		return nil, false, errors.Wrapf(err, "engine: solve %s", query)
	}
	return tree, ok, nil
}

// Plan lowers every proof of res into named build targets and generates
// the resulting build-plan DAG (§4.7). names must have the same length
// as res.Proofs, pairing each proof with the image name other proofs'
// copy_from literals may reference it by; an empty name means the proof
// is only ever an output, never a copy_from source.
func (e *Engine) Plan(rules []logic.Clause, res Result, names []string, imageRules imagegen.ImageRules) (*imagegen.BuildPlan, error) {
	if len(names) != len(res.Proofs) {
		return nil, errors.Errorf("engine: plan needs one name per proof, got %d names for %d proofs", len(names), len(res.Proofs))
	}
	targets := make([]imagegen.Target, len(res.Proofs))
	for i, p := range res.Proofs {
		targets[i] = imagegen.Target{Proof: p, Name: names[i]}
	}
	e.log.WithFields(logrus.Fields{
		"search_id":    res.SearchID,
		"target_count": len(targets),
	}).Debug("generating build plan")

	plan, err := imagegen.Generate(targets, rules, imageRules)
	if err != nil {
		return nil, errors.Wrap(err, "engine: plan")
	}
	e.log.WithFields(logrus.Fields{
		"search_id":  res.SearchID,
		"node_count": len(plan.Nodes),
	}).Info("build plan generated")
	return plan, nil
}
