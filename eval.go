package ltr

import (
	"math/big"
	"strings"
	"unicode"
)

// Calculator evaluates arithmetic expressions strictly left to right. The
// zero value is not usable; create one with New. A Calculator is read-only
// after construction and safe for concurrent use.
type Calculator struct {
	reg   *Registry
	valid *Validator
	prec  uint
}

// New creates a calculator with the default operators and a precision of
// 64 bits. The given options are applied in order; the grammar is built
// after all options, so operators added by WithOperator are part of it.
func New(opts ...Option) *Calculator {
	c := &Calculator{reg: DefaultRegistry(), prec: 64}
	for _, opt := range opts {
		opt.option(c)
	}
	c.valid = NewValidator(c.reg)
	return c
}

// Registry returns the calculator's operator registry. The registry must
// not be modified after the calculator is created.
func (c *Calculator) Registry() *Registry {
	return c.reg
}

// Prec returns the precision to which values are computed, in bits.
func (c *Calculator) Prec() uint {
	return c.prec
}

// Evaluate computes the value of an arithmetic expression, applying
// operators in textual order with no precedence: "2 + 3 * 4" is 20.
// Parenthesized groups are reduced innermost first, each standing in for a
// single operand of the enclosing expression.
//
// The expression is first checked against the grammar and for bracket
// pairing; both checks run regardless of the other's outcome, and if
// either fails the result is an InvalidExpressionError recording which.
// Arithmetic errors (DivisionByZeroError, DomainError) abort the
// evaluation at the step they occur, with no partial result.
func (c *Calculator) Evaluate(expression string) (*big.Float, error) {
	syntax := c.valid.CheckSyntax(expression)
	brackets := BalancedParens(expression)
	if !syntax || !brackets {
		return nil, &InvalidExpressionError{
			Expr:             expression,
			BadSyntax:        !syntax,
			UnpairedBrackets: !brackets,
		}
	}
	toks, err := lexAll(strings.NewReader(stripSpace(expression)), c.reg)
	if err != nil {
		// Unreachable for input that passed validation.
		return nil, err
	}
	ts := &tokens{toks: toks}
	v, err := c.reduce(ts)
	if err != nil {
		return nil, err
	}
	if tok := ts.next(); tok.kind != tokenEOF {
		return nil, &InvalidExpressionError{Expr: expression, BadSyntax: true}
	}
	return v, nil
}

// EvalString is a shortcut to evaluate a single expression with a fresh
// calculator.
func EvalString(expression string, opts ...Option) (*big.Float, error) {
	return New(opts...).Evaluate(expression)
}

// stripSpace removes all whitespace. Normalization happens once, before
// tokenization; validation runs on the raw string so that whitespace
// cannot splice two operands into one.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// tokens is a cursor over a lexed token stream.
type tokens struct {
	toks []lexToken
	i    int
}

func (ts *tokens) next() lexToken {
	if ts.i >= len(ts.toks) {
		return lexToken{kind: tokenEOF}
	}
	tok := ts.toks[ts.i]
	ts.i++
	return tok
}

func (ts *tokens) peek() lexToken {
	if ts.i >= len(ts.toks) {
		return lexToken{kind: tokenEOF}
	}
	return ts.toks[ts.i]
}

// reduce evaluates operand (operator operand)* as a left fold: the
// accumulator starts at the first operand's value and each step replaces
// it with the result of applying the next operator to it and the next
// operand. It stops before a close bracket or EOF, leaving the token for
// the caller. The stream must already be validated; a malformed stream
// yields an InvalidExpressionError rather than a wrong result.
func (c *Calculator) reduce(ts *tokens) (*big.Float, error) {
	acc, err := c.operand(ts)
	if err != nil {
		return nil, err
	}
	for {
		tok := ts.peek()
		switch tok.kind {
		case tokenEOF, tokenClose:
			return acc, nil
		case tokenOp:
			ts.next()
			rhs, err := c.operand(ts)
			if err != nil {
				return nil, err
			}
			if err := c.reg.Apply(tok.text, acc, acc, rhs); err != nil {
				return nil, err
			}
		default:
			return nil, &InvalidExpressionError{Expr: tok.text, BadSyntax: true}
		}
	}
}

// operand evaluates a single operand: a number, a signed number, or a
// parenthesized group reduced recursively.
func (c *Calculator) operand(ts *tokens) (*big.Float, error) {
	tok := ts.next()
	switch tok.kind {
	case tokenNum:
		return c.num(tok.text), nil
	case tokenOp:
		// A sign merges with the number it precedes.
		neg := false
		switch tok.text {
		case "-":
			neg = true
		case "+":
		default:
			return nil, &InvalidExpressionError{Expr: tok.text, BadSyntax: true}
		}
		tok = ts.next()
		if tok.kind != tokenNum {
			return nil, &InvalidExpressionError{Expr: tok.text, BadSyntax: true}
		}
		v := c.num(tok.text)
		if neg {
			v.Neg(v)
		}
		return v, nil
	case tokenOpen:
		v, err := c.reduce(ts)
		if err != nil {
			return nil, err
		}
		if end := ts.next(); end.kind != tokenClose {
			return nil, &InvalidExpressionError{Expr: end.text, UnpairedBrackets: true}
		}
		return v, nil
	default:
		return nil, &InvalidExpressionError{Expr: tok.text, BadSyntax: true}
	}
}

// num parses a number token at the calculator's precision.
func (c *Calculator) num(s string) *big.Float {
	r, _, err := new(big.Float).SetPrec(c.prec).Parse(s, 10)
	if err != nil {
		panic("ltr: invalid number: " + s + " (" + err.Error() + ")")
	}
	return r
}
