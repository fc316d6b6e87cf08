package cps

import "fmt"

// cps.go defines the target form. CPS terms come in two sorts: a Value is
// atomic (always terminates, no effects) and a Call is the sole complex
// form, a tail call. A Func body is a single Call, so the shape invariant
// lives in the types: calls never nest except through lambda bodies.

// Value is an atomic CPS expression.
type Value interface {
	value()
}

// Ref references a variable.
type Ref struct {
	Name string
}

// Func is a CPS abstraction of one or more parameters. By convention the
// last parameter is the continuation.
type Func struct {
	Params []string
	Body   *Call

	// admin marks lambdas the naive strategy builds only to give a name
	// to a value that already has one. ReduceAdmin contracts exactly
	// these; contracting source lambdas could run the program.
	admin bool
}

func (*Ref) value()  {}
func (*Func) value() {}

// Call applies an atomic callee to atomic arguments: the only place
// evaluation may diverge or produce an effect.
type Call struct {
	Func Value
	Args []Value
}

// FreeVars returns the free names of c in first-occurrence order.
func FreeVars(c *Call) []string {
	var free []string
	seen := make(map[string]bool)
	freeCall(c, make(map[string]bool), seen, &free)
	return free
}

func freeCall(c *Call, bound, seen map[string]bool, free *[]string) {
	freeValue(c.Func, bound, seen, free)
	for _, a := range c.Args {
		freeValue(a, bound, seen, free)
	}
}

func freeValue(v Value, bound, seen map[string]bool, free *[]string) {
	switch v := v.(type) {
	case *Ref:
		if !bound[v.Name] && !seen[v.Name] {
			seen[v.Name] = true
			*free = append(*free, v.Name)
		}
	case *Func:
		inner := make(map[string]bool, len(bound)+len(v.Params))
		for name := range bound {
			inner[name] = true
		}
		for _, p := range v.Params {
			inner[p] = true
		}
		freeCall(v.Body, inner, seen, free)
	default:
		panic(fmt.Sprintf("unhandled case in freeValue: %T", v))
	}
}

// Size returns the node count of a CPS term (calls, refs and lambdas).
func Size(c *Call) int {
	n := 1 + valueSize(c.Func)
	for _, a := range c.Args {
		n += valueSize(a)
	}
	return n
}

func valueSize(v Value) int {
	switch v := v.(type) {
	case *Ref:
		return 1
	case *Func:
		return 1 + Size(v.Body)
	default:
		panic(fmt.Sprintf("unhandled case in valueSize: %T", v))
	}
}

// valueNames collects every name occurring in v, bound or free.
func valueNames(v Value, into map[string]bool) {
	switch v := v.(type) {
	case *Ref:
		into[v.Name] = true
	case *Func:
		for _, p := range v.Params {
			into[p] = true
		}
		callNames(v.Body, into)
	default:
		panic(fmt.Sprintf("unhandled case in valueNames: %T", v))
	}
}

func callNames(c *Call, into map[string]bool) {
	valueNames(c.Func, into)
	for _, a := range c.Args {
		valueNames(a, into)
	}
}
