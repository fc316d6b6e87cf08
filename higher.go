package cps

import "fmt"

// higher.go carries the continuation as a Go function instead of a built
// CPS value. Atomic subexpressions feed the callback in place, so none of
// the naive strategy's single-use wrappers exist. The one lambda built
// per application is the genuine continuation: control really does
// return there.

// Cont is a meta-level continuation: given the atomic value of a
// subexpression, it produces the rest of the output term. Invocation is
// synchronous; recursion depth is bounded by the source term size.
type Cont func(Value) *Call

// HigherOrder converts with a meta continuation.
type HigherOrder struct {
	Names *Gensym
}

// Atomize converts an atomic expression. Passing a *CallExpr is a
// precondition violation and panics.
func (t *HigherOrder) Atomize(expr Expr) Value {
	switch e := expr.(type) {
	case *VarExpr:
		return &Ref{Name: e.Name}
	case *FuncExpr:
		k := t.Names.Fresh(contPrefix)
		return &Func{
			Params: []string{e.Param, k},
			Body: t.ConvertMeta(e.Body, func(rv Value) *Call {
				return &Call{Func: &Ref{Name: k}, Args: []Value{rv}}
			}),
		}
	default:
		panic(fmt.Sprintf("non-atomic expression in Atomize: %T", e))
	}
}

// ConvertMeta transforms expr in tail position, handing its value to k.
func (t *HigherOrder) ConvertMeta(expr Expr, k Cont) *Call {
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

// Convert adapts a syntactic continuation to the meta form, so that
// HigherOrder satisfies Converter.
func (t *HigherOrder) Convert(expr Expr, cont Value) *Call {
	return t.ConvertMeta(expr, func(rv Value) *Call {
		return &Call{Func: cont, Args: []Value{rv}}
	})
}
