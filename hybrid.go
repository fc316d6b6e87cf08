package cps

import "fmt"

// hybrid.go splits the conversion by what the call site knows. A caller
// already holding a CPS value to continue with (a lambda body continuing
// with its own k parameter) uses Convert, which passes it along directly
// instead of wrapping it the way the naive strategy does. A caller whose
// continuation is still unknown uses ConvertMeta, which carries it as a
// callback exactly like the higher-order strategy.

// Hybrid converts with whichever continuation representation the call
// site already has.
type Hybrid struct {
	Names *Gensym
}

// Atomize converts an atomic expression. Passing a *CallExpr is a
// precondition violation and panics.
func (t *Hybrid) Atomize(expr Expr) Value {
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

// Convert transforms expr in tail position against a syntactic
// continuation the caller already holds.
func (t *Hybrid) Convert(expr Expr, cont Value) *Call {
	switch e := expr.(type) {
	case *CallExpr:
		return t.ConvertMeta(e.Func, func(fn Value) *Call {
			return t.ConvertMeta(e.Arg, func(arg Value) *Call {
				return &Call{Func: fn, Args: []Value{arg, cont}}
			})
		})
	default:
		return &Call{Func: cont, Args: []Value{t.Atomize(e)}}
	}
}

// ConvertMeta transforms expr in tail position, handing its value to k.
// Same semantics as HigherOrder.ConvertMeta.
func (t *Hybrid) ConvertMeta(expr Expr, k Cont) *Call {
	switch e := expr.(type) {
	case *CallExpr:
		rv := t.Names.Fresh(retPrefix)
		cont := &Func{Params: []string{rv}, Body: k(&Ref{Name: rv})}
		return t.ConvertMeta(e.Func, func(fn Value) *Call {
			return t.ConvertMeta(e.Arg, func(arg Value) *Call {
				return &Call{Func: fn, Args: []Value{arg, cont}}
			})
		})
	default:
		return k(t.Atomize(e))
	}
}
