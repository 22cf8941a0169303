package logic

import "github.com/pkg/errors"

// ErrCounterOverflow is the hard fault raised when a freshid.Counter
// used for variable renaming would wrap around (spec §5, §7).
var ErrCounterOverflow = errors.New("logic: fresh variable counter overflow")
