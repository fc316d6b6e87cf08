package cps

import (
	"strconv"
	"sync/atomic"
)

// Name prefixes used by the strategies. Purely for readability of the
// output; uniqueness comes from the counter.
const (
	contPrefix = "k"  // continuation parameters
	retPrefix  = "rv" // return values
	funcPrefix = "f"  // saved functions
	argPrefix  = "e"  // saved arguments
)

// Gensym produces names that never repeat for the lifetime of one
// instance. The zero value is ready to use. A single instance may be
// shared by concurrent conversions; the counter advances atomically.
// Conversions wanting disjoint name spaces use separate instances.
type Gensym struct {
	n     uint64
	taken map[string]bool
}

// GensymAvoiding returns a generator that never produces a name already
// occurring, bound or free, in the given terms.
func GensymAvoiding(exprs ...Expr) *Gensym {
	taken := make(map[string]bool)
	for _, e := range exprs {
		exprNames(e, taken)
	}
	return &Gensym{taken: taken}
}

// Fresh returns prefix followed by the current counter value in decimal,
// advancing the counter. Successive results are distinct.
func (g *Gensym) Fresh(prefix string) string {
	for {
		n := atomic.AddUint64(&g.n, 1) - 1
		name := prefix + strconv.FormatUint(n, 10)
		if !g.taken[name] {
			return name
		}
	}
}
