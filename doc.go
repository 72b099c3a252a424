// Package ltr implements a left-to-right arithmetic calculator.
//
// Expressions are evaluated strictly in the order they are written,
// ignoring the usual operator precedence: "2 + 3 * 4" is 20, not 14.
// Parenthesized groups are the only way to control evaluation order; a
// group is reduced before the operator that consumes it, innermost first.
//
// An expression is accepted only if it passes two independent checks: a
// grammar check built from the operator registry's symbol alphabet, and a
// structural check that every round bracket is paired. Both checks always
// run, so an InvalidExpressionError reports which of the two failed.
//
// Arithmetic is performed on big.Float values at a configurable precision.
// A Calculator holds no per-evaluation state, so a single instance may be
// shared by concurrent goroutines once constructed.
package ltr
