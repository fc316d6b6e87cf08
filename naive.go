package cps

import "fmt"

// naive.go is the textbook conversion. The continuation is always a real
// CPS value, so every source application wraps it in two fresh single-use
// lambdas (one naming the function, one naming the argument) even when
// both are already atomic. Correct, and measurably wasteful: the wrappers
// are the administrative redexes that ReduceAdmin contracts and the tests
// count.

// Naive converts with a syntactic continuation.
type Naive struct {
	Names *Gensym
}

// Atomize converts an expression already known to be atomic into its CPS
// counterpart. Passing a *CallExpr is a precondition violation: the
// convert path never does it, so reaching the panic means a caller bug.
func (t *Naive) Atomize(expr Expr) Value {
	switch e := expr.(type) {
	case *VarExpr:
		return &Ref{Name: e.Name}
	case *FuncExpr:
		k := t.Names.Fresh(contPrefix)
		return &Func{
			Params: []string{e.Param, k},
			Body:   t.Convert(e.Body, &Ref{Name: k}),
		}
	default:
		panic(fmt.Sprintf("non-atomic expression in Atomize: %T", e))
	}
}

// Convert transforms expr in tail position against the continuation cont,
// itself an already-built CPS value.
func (t *Naive) Convert(expr Expr, cont Value) *Call {
	switch e := expr.(type) {
	case *CallExpr:
		fn := t.Names.Fresh(funcPrefix)
		arg := t.Names.Fresh(argPrefix)
		saveArg := &Func{
			Params: []string{arg},
			Body:   &Call{Func: &Ref{Name: fn}, Args: []Value{&Ref{Name: arg}, cont}},
			admin:  true,
		}
		saveFn := &Func{
			Params: []string{fn},
			Body:   t.Convert(e.Arg, saveArg),
			admin:  true,
		}
		return t.Convert(e.Func, saveFn)
	default:
		return &Call{Func: cont, Args: []Value{t.Atomize(e)}}
	}
}
