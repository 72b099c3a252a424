package ltr

import (
	"math/big"
	"strconv"
)

// InvalidExpressionError is an error indicating that an expression failed
// validation. Both validation checks run independently, so the error
// records which of the two rejected the expression.
type InvalidExpressionError struct {
	// Expr is the expression that failed validation.
	Expr string
	// BadSyntax is whether the grammar check rejected the expression.
	BadSyntax bool
	// UnpairedBrackets is whether the bracket-pairing check rejected the
	// expression.
	UnpairedBrackets bool
}

func (err *InvalidExpressionError) Error() string {
	switch {
	case err.BadSyntax && err.UnpairedBrackets:
		return "invalid expression " + strconv.Quote(err.Expr) + ": bad syntax and unpaired brackets"
	case err.UnpairedBrackets:
		return "invalid expression " + strconv.Quote(err.Expr) + ": unpaired brackets"
	default:
		return "invalid expression " + strconv.Quote(err.Expr) + ": bad syntax"
	}
}

// DivisionByZeroError is an error indicating that an operator was applied
// with a zero divisor. Evaluation is strictly left to right, so the first
// zero division in textual order raises it.
type DivisionByZeroError struct {
	// Op is the operator symbol that divided by zero.
	Op string
}

func (err *DivisionByZeroError) Error() string {
	return "division by zero (" + err.Op + ")"
}

// UnknownOperatorError is an error indicating a lookup of an operator
// symbol that is not registered. It cannot occur for an expression that
// passed validation, since the grammar is generated from the registry.
type UnknownOperatorError struct {
	// Op is the symbol that was not registered.
	Op string
}

func (err *UnknownOperatorError) Error() string {
	return "unknown operator " + strconv.Quote(err.Op)
}

// DomainError is an error indicating an operand outside an operator's
// domain, e.g. a negative base to **.
type DomainError struct {
	// X is the out-of-domain operand.
	X *big.Float
	// Op is the operator symbol.
	Op string
}

func (err *DomainError) Error() string {
	return err.X.String() + " outside domain of " + err.Op
}

// LexError indicates an invalid token. It cannot occur for an expression
// that passed validation; it is reported only when the tokenizer is fed an
// unvalidated string.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be
	// "number", "operator", or the empty string (if a token kind hadn't
	// been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

// Pos returns the position of the error as the number of runes up to and
// including the start of the token that caused it.
func (err *LexError) Pos() int {
	return err.Col
}
