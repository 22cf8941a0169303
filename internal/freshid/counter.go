// Package freshid provides the process-wide monotonic counters used to
// generate fresh auxiliary variable and predicate names.
//
// Freshness must be uniform across every recursive caller, with no
// scope to thread a counter through call chains by hand, so a Counter
// is a small service passed by handle (or held as a package-level
// singleton) rather than state carried on a context or a goal.
package freshid

import (
	"math"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ErrOverflow is returned when a Counter would wrap past math.MaxInt64.
// Per the spec, wraparound is a hard fault, never a logic failure.
var ErrOverflow = errors.New("freshid: counter overflow")

// Counter is a thread-safe, monotonically increasing, never-decrementing
// sequence. The zero value starts at 0 and is ready to use.
type Counter struct {
	next atomic.Int64
}

// NewCounter returns a Counter starting at 0.
func NewCounter() *Counter {
	return &Counter{}
}

// Next returns the next value in the sequence, starting at 0.
// It returns ErrOverflow instead of wrapping.
func (c *Counter) Next() (int64, error) {
	for {
		cur := c.next.Load()
		if cur == math.MaxInt64 {
			return 0, ErrOverflow
		}
		if c.next.CompareAndSwap(cur, cur+1) {
			return cur, nil
		}
	}
}

// MustNext is Next, panicking on overflow. Reserved for call sites that
// have no error-return path (e.g. package-level fresh-name helpers used
// purely for diagnostics); core call sites always use Next and propagate
// ErrOverflow as a hard fault.
func (c *Counter) MustNext() int64 {
	v, err := c.Next()
	if err != nil {
		panic(err)
	}
	return v
}
