package cps

import (
	"fmt"
	"maps"
	"slices"
)

// reduce.go measures what the strategies cost. The naive conversion
// manufactures single-use lambdas whose only job is to name a value that
// already has one; contracting those and nothing else makes outputs of
// different strategies comparable term for term.

// ReduceAdmin returns c with every administrative redex contracted: every
// call whose callee is a lambda the naive conversion introduced purely to
// name one value. Source-level lambdas are never contracted, so reduction
// cannot run the program and terminates even when the source term would
// diverge. Administrative parameters occur exactly once in their body, so
// contraction never duplicates subterms.
func ReduceAdmin(c *Call) *Call {
	fn := reduceValue(c.Func)
	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		args[i] = reduceValue(a)
	}
	if f, ok := fn.(*Func); ok && f.admin && len(f.Params) == len(args) {
		env := make(map[string]Value, len(f.Params))
		for i, p := range f.Params {
			env[p] = args[i]
		}
		return ReduceAdmin(substCall(f.Body, env))
	}
	return &Call{Func: fn, Args: args}
}

func reduceValue(v Value) Value {
	if f, ok := v.(*Func); ok {
		return &Func{Params: f.Params, Body: ReduceAdmin(f.Body), admin: f.admin}
	}
	return v
}

// substCall substitutes atoms for free names in c. Generated names never
// collide with binders inside the term, so no capture-avoiding renaming
// is needed; shadowing is still honored.
func substCall(c *Call, env map[string]Value) *Call {
	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		args[i] = substValue(a, env)
	}
	return &Call{Func: substValue(c.Func, env), Args: args}
}

func substValue(v Value, env map[string]Value) Value {
	switch v := v.(type) {
	case *Ref:
		if r, ok := env[v.Name]; ok {
			return r
		}
		return v
	case *Func:
		inner := env
		for _, p := range v.Params {
			if _, ok := env[p]; ok {
				inner = maps.Clone(env)
				for _, q := range v.Params {
					delete(inner, q)
				}
				break
			}
		}
		return &Func{Params: v.Params, Body: substCall(v.Body, inner), admin: v.admin}
	default:
		panic(fmt.Sprintf("unhandled case in substValue: %T", v))
	}
}

// etaCall collapses continuation wrappers of the shape λp. v(p), where p
// is the lambda's only parameter and does not occur free in v, down to v.
// The higher-order strategy builds one such wrapper per application site
// even when the continuation is already a plain reference; the hybrid
// strategy shows they carry no content. Together with ReduceAdmin this is
// what makes the three strategies' outputs comparable.
func etaCall(c *Call) *Call {
	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		args[i] = etaValue(a)
	}
	return &Call{Func: etaValue(c.Func), Args: args}
}

func etaValue(v Value) Value {
	f, ok := v.(*Func)
	if !ok {
		return v
	}
	body := etaCall(f.Body)
	if len(f.Params) == 1 && len(body.Args) == 1 {
		p := f.Params[0]
		if arg, ok := body.Args[0].(*Ref); ok && arg.Name == p && !freeInValue(p, body.Func) {
			return body.Func
		}
	}
	return &Func{Params: f.Params, Body: body, admin: f.admin}
}

func freeInValue(name string, v Value) bool {
	var free []string
	freeValue(v, make(map[string]bool), make(map[string]bool), &free)
	return slices.Contains(free, name)
}

// CountRedexes returns the number of calls in c whose callee is a
// literal lambda.
func CountRedexes(c *Call) int {
	n := 0
	if _, ok := c.Func.(*Func); ok {
		n = 1
	}
	n += valueRedexes(c.Func)
	for _, a := range c.Args {
		n += valueRedexes(a)
	}
	return n
}

func valueRedexes(v Value) int {
	if f, ok := v.(*Func); ok {
		return CountRedexes(f.Body)
	}
	return 0
}

// AlphaEqual reports whether a and b are equal up to consistent renaming
// of bound names. Free names must match exactly.
func AlphaEqual(a, b *Call) bool {
	return alphaCall(a, b, map[string]string{}, map[string]string{})
}

// alphaCall compares under a bijection between bound names: ab maps a's
// binders to b's, ba is the inverse.
func alphaCall(a, b *Call, ab, ba map[string]string) bool {
	if len(a.Args) != len(b.Args) {
		return false
	}
	if !alphaValue(a.Func, b.Func, ab, ba) {
		return false
	}
	for i := range a.Args {
		if !alphaValue(a.Args[i], b.Args[i], ab, ba) {
			return false
		}
	}
	return true
}

func alphaValue(a, b Value, ab, ba map[string]string) bool {
	switch a := a.(type) {
	case *Ref:
		br, ok := b.(*Ref)
		if !ok {
			return false
		}
		if to, bound := ab[a.Name]; bound {
			return to == br.Name
		}
		if _, bound := ba[br.Name]; bound {
			return false
		}
		return a.Name == br.Name
	case *Func:
		bf, ok := b.(*Func)
		if !ok || len(a.Params) != len(bf.Params) {
			return false
		}
		ab, ba = maps.Clone(ab), maps.Clone(ba)
		for i := range a.Params {
			ab[a.Params[i]] = bf.Params[i]
			ba[bf.Params[i]] = a.Params[i]
		}
		return alphaCall(a.Body, bf.Body, ab, ba)
	default:
		panic(fmt.Sprintf("unhandled case in alphaValue: %T", a))
	}
}
