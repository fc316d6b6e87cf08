package cps

// strategy.go gives the three conversions one face so they can be run and
// compared side by side. Each package-level entry point owns a private
// generator seeded to avoid every name in its input, so one call is one
// run in the sense of the freshness guarantee.

// Converter is the two-operation surface every strategy provides.
type Converter interface {
	// Atomize converts an atomic expression (variable or abstraction)
	// to its CPS counterpart. Passing an application is a precondition
	// violation and panics.
	Atomize(expr Expr) Value

	// Convert transforms expr in tail position against the syntactic
	// continuation cont.
	Convert(expr Expr, cont Value) *Call
}

var (
	_ Converter = (*Naive)(nil)
	_ Converter = (*HigherOrder)(nil)
	_ Converter = (*Hybrid)(nil)
)

// ConvertNaive transforms expr against the continuation cont using the
// naive strategy. The caller supplies the top-level continuation, e.g. a
// designated halt variable.
func ConvertNaive(expr Expr, cont Value) *Call {
	t := &Naive{Names: gensymFor(expr, cont)}
	return t.Convert(expr, cont)
}

// ConvertHigherOrder transforms expr, handing its value to the meta
// continuation k. Names built by k should not use the generated
// prefix+number shape.
func ConvertHigherOrder(expr Expr, k Cont) *Call {
	t := &HigherOrder{Names: GensymAvoiding(expr)}
	return t.ConvertMeta(expr, k)
}

// ConvertHybrid transforms expr against the continuation cont using the
// hybrid strategy.
func ConvertHybrid(expr Expr, cont Value) *Call {
	t := &Hybrid{Names: gensymFor(expr, cont)}
	return t.Convert(expr, cont)
}

// AtomizeNaive converts an already-atomic expression (variable or
// abstraction) using the naive strategy. Passing an application is a
// precondition violation and panics.
func AtomizeNaive(expr Expr) Value {
	t := &Naive{Names: GensymAvoiding(expr)}
	return t.Atomize(expr)
}

// AtomizeHigherOrder is AtomizeNaive for the higher-order strategy.
func AtomizeHigherOrder(expr Expr) Value {
	t := &HigherOrder{Names: GensymAvoiding(expr)}
	return t.Atomize(expr)
}

// AtomizeHybrid is AtomizeNaive for the hybrid strategy.
func AtomizeHybrid(expr Expr) Value {
	t := &Hybrid{Names: GensymAvoiding(expr)}
	return t.Atomize(expr)
}

// gensymFor seeds a generator with the names of the input term and of the
// caller-supplied continuation, keeping fresh names distinct from both.
func gensymFor(expr Expr, cont Value) *Gensym {
	g := GensymAvoiding(expr)
	valueNames(cont, g.taken)
	return g
}
