// Package cps converts untyped lambda-calculus terms into
// continuation-passing style. Three strategies perform the same semantic
// transform and are kept side by side so their outputs can be compared:
// Naive carries the continuation as a built CPS value, HigherOrder carries
// it as a Go callback, and Hybrid switches between the two per call site.
package cps

import "fmt"

// ast.go defines the source language: the untyped lambda calculus.
// Exactly three forms. No let, no literals, no primitives.

// Expr is a source term.
type Expr interface {
	expr()
}

// VarExpr references a free or bound identifier.
type VarExpr struct {
	Name string
}

// CallExpr applies Func to Arg. The representation fixes no argument
// evaluation order; all three strategies happen to visit Func first.
type CallExpr struct {
	Func Expr
	Arg  Expr
}

// FuncExpr is a one-parameter abstraction.
type FuncExpr struct {
	Param string
	Body  Expr
}

func (*VarExpr) expr()  {}
func (*CallExpr) expr() {}
func (*FuncExpr) expr() {}

// IsAtomic reports whether e is in the atomic subset {VarExpr, FuncExpr}:
// the forms that always terminate and have no effect.
func IsAtomic(e Expr) bool {
	switch e.(type) {
	case *VarExpr, *FuncExpr:
		return true
	}
	return false
}

// exprNames collects every name occurring in e, bound or free.
func exprNames(e Expr, into map[string]bool) {
	switch e := e.(type) {
	case *VarExpr:
		into[e.Name] = true
	case *CallExpr:
		exprNames(e.Func, into)
		exprNames(e.Arg, into)
	case *FuncExpr:
		into[e.Param] = true
		exprNames(e.Body, into)
	default:
		panic(fmt.Sprintf("unhandled case in exprNames: %T", e))
	}
}
