package cps

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const propertyN = 300

// randTerm builds a random closed term: variables are only ever drawn
// from the enclosing binders.
func randTerm(rng *rand.Rand, depth int, scope []string) Expr {
	if depth == 0 {
		if len(scope) == 0 {
			return fn("x", v("x"))
		}
		return v(scope[rng.IntN(len(scope))])
	}
	switch rng.IntN(4) {
	case 0:
		p := "x" + strconv.Itoa(len(scope))
		return fn(p, randTerm(rng, depth-1, append(scope, p)))
	case 1, 2:
		return ap(randTerm(rng, depth-1, scope), randTerm(rng, depth-1, scope))
	default:
		if len(scope) == 0 {
			p := "x" + strconv.Itoa(len(scope))
			return fn(p, randTerm(rng, depth-1, append(scope, p)))
		}
		return v(scope[rng.IntN(len(scope))])
	}
}

// checkWellFormed walks a CPS term verifying the output shape: every
// lambda binds one or two parameters around a single call, every call
// applies an atomic callee to one or two atomic arguments.
func checkWellFormed(t *testing.T, c *Call) {
	t.Helper()
	require.NotNil(t, c.Func)
	require.GreaterOrEqual(t, len(c.Args), 1)
	require.LessOrEqual(t, len(c.Args), 2)
	checkWellFormedValue(t, c.Func)
	for _, a := range c.Args {
		checkWellFormedValue(t, a)
	}
}

func checkWellFormedValue(t *testing.T, val Value) {
	t.Helper()
	switch val := val.(type) {
	case *Ref:
		require.NotEmpty(t, val.Name)
	case *Func:
		require.GreaterOrEqual(t, len(val.Params), 1)
		require.LessOrEqual(t, len(val.Params), 2)
		require.NotNil(t, val.Body)
		checkWellFormed(t, val.Body)
	default:
		t.Fatalf("unexpected value %T", val)
	}
}

func collectParams(c *Call, into *[]string) {
	collectParamsValue(c.Func, into)
	for _, a := range c.Args {
		collectParamsValue(a, into)
	}
}

func collectParamsValue(val Value, into *[]string) {
	if f, ok := val.(*Func); ok {
		*into = append(*into, f.Params...)
		collectParams(f.Body, into)
	}
}

func convertAll(e Expr) (naive, higher, hybrid *Call) {
	cont := &Func{Params: []string{"a"}, Body: &Call{Func: ref("halt"), Args: []Value{ref("a")}}}
	naive = ConvertNaive(e, cont)
	higher = ConvertHigherOrder(e, func(rv Value) *Call {
		return &Call{Func: ref("halt"), Args: []Value{rv}}
	})
	hybrid = ConvertHybrid(e, cont)
	return naive, higher, hybrid
}

func TestPropertyWellFormed(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 0))
	for range propertyN {
		e := randTerm(rng, 5, nil)
		naive, higher, hybrid := convertAll(e)
		checkWellFormed(t, naive)
		checkWellFormed(t, higher)
		checkWellFormed(t, hybrid)
		checkWellFormed(t, ReduceAdmin(naive))
	}
}

// Every name the generator introduced during one run is distinct from
// every other and from all names in the input.
func TestPropertyFreshNames(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 0))
	for range propertyN {
		e := randTerm(rng, 5, nil)
		inputNames := make(map[string]bool)
		exprNames(e, inputNames)
		naive, higher, hybrid := convertAll(e)
		for _, out := range []*Call{naive, higher, hybrid} {
			var params []string
			collectParams(out, &params)
			generated := make(map[string]bool)
			for _, p := range params {
				if inputNames[p] || p == "a" { // "a" is the top continuation's own binder
					continue
				}
				if generated[p] {
					t.Fatalf("duplicate generated name %q in output of %s", p, pretty.Sprint(e))
				}
				generated[p] = true
			}
		}
	}
}

// A closed input yields an output whose only free name is the one the
// top-level continuation refers to.
func TestPropertyClosedOutput(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 0))
	for range propertyN {
		e := randTerm(rng, 5, nil)
		naive, higher, hybrid := convertAll(e)
		for _, out := range []*Call{naive, higher, hybrid} {
			for _, name := range FreeVars(out) {
				if name != "halt" {
					t.Fatalf("free name %q escaped converting %s:\n%# v",
						name, pretty.Sprint(e), pretty.Formatter(out))
				}
			}
		}
	}
}

// The three strategies compute the same result: after contracting the
// naive strategy's administrative redexes and collapsing continuation
// wrappers, the outputs are alpha-equivalent.
func TestPropertyCrossStrategyAgreement(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 0))
	for range propertyN {
		e := randTerm(rng, 5, nil)
		naive, higher, hybrid := convertAll(e)
		nr := etaCall(ReduceAdmin(naive))
		ho := etaCall(higher)
		hy := etaCall(hybrid)
		if !AlphaEqual(nr, hy) {
			t.Fatalf("naive and hybrid disagree on %s:\nnaive:  %# v\nhybrid: %# v",
				pretty.Sprint(e), pretty.Formatter(nr), pretty.Formatter(hy))
		}
		if !AlphaEqual(ho, hy) {
			t.Fatalf("higher-order and hybrid disagree on %s:\nhigher: %# v\nhybrid: %# v",
				pretty.Sprint(e), pretty.Formatter(ho), pretty.Formatter(hy))
		}
	}
}

// The naive strategy never beats the other two on redex count or size.
func TestPropertyRedexOrdering(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 0))
	for range propertyN {
		e := randTerm(rng, 5, nil)
		naive, higher, hybrid := convertAll(e)
		assert.GreaterOrEqual(t, CountRedexes(naive), CountRedexes(hybrid))
		assert.GreaterOrEqual(t, CountRedexes(naive), CountRedexes(higher))
		assert.GreaterOrEqual(t, Size(naive), Size(hybrid))
		assert.GreaterOrEqual(t, Size(naive), Size(higher))
	}
}

// Concrete size gap from the strategy descriptions: one application of
// two variables costs the naive strategy two wrapper lambdas that the
// higher-order strategy never builds.
func TestApplicationSizeGap(t *testing.T) {
	e := ap(v("f"), v("x"))
	naive := ConvertNaive(e, ref("halt"))
	higher := ConvertHigherOrder(e, func(rv Value) *Call {
		return &Call{Func: ref("halt"), Args: []Value{rv}}
	})
	assert.Greater(t, Size(naive), Size(higher))
	assert.Greater(t, CountRedexes(naive), CountRedexes(higher))
}
