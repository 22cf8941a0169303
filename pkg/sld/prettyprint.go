package sld

import (
	"fmt"
	"strings"
)

// PrettyPrint renders t as an indented outline: each Tree's goal on its
// own line, followed by one line per resolvent naming the clause it
// applied (indented one level further) and that resolvent's subtree
// (indented two levels further). It is a debugging aid,
// not a stable serialization format.
func (t *Tree) PrettyPrint() string {
	var b strings.Builder
	t.prettyWrite(&b, 0)
	return b.String()
}

func (t *Tree) prettyWrite(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if len(t.Goal) == 0 {
		fmt.Fprintf(b, "%s<empty goal: solved>\n", indent)
		return
	}
	lits := make([]string, len(t.Goal))
	for i, lh := range t.Goal {
		lits[i] = lh.Literal.String()
	}
	fmt.Fprintf(b, "%slevel %d: %s\n", indent, t.Level, strings.Join(lits, ", "))
	for _, r := range t.Resolvents {
		fmt.Fprintf(b, "%s  via %s on literal #%d\n", indent, clauseIDString(r.Applied), r.LiteralGoalID)
		if r.Child != nil {
			r.Child.prettyWrite(b, depth+2)
		}
	}
}

func clauseIDString(c ClauseId) string {
	switch c.Kind {
	case KindQuery:
		return "query"
	case KindRule:
		return fmt.Sprintf("rule#%d", c.RuleIndex)
	case KindBuiltin:
		return fmt.Sprintf("builtin(%s)", c.Builtin.String())
	default:
		return "unknown"
	}
}
