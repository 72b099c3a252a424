package ltr

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Validator checks expressions against the operand/operator grammar. Its
// matchers are built once, from the registry's symbol alphabet, so
// registering a new operator extends the accepted grammar with no change
// to the validator itself. A Validator is read-only after construction and
// safe for concurrent use.
//
// The grammar is token-level only: an operand may be preceded by any run
// of open brackets and followed by any run of close brackets, without
// regard to pairing. Pairing is BalancedParens's job; an expression is
// well-formed only if both checks pass.
type Validator struct {
	op  *regexp.Regexp
	num *regexp.Regexp
}

// NewValidator builds a validator from the registry's operator alphabet.
// Symbols are alternated longest first so that a short symbol never
// shadows a longer one ("**" before "*").
func NewValidator(reg *Registry) *Validator {
	syms := reg.Symbols()
	alts := make([]string, len(syms))
	for i, s := range syms {
		alts[i] = regexp.QuoteMeta(s)
	}
	return &Validator{
		op:  regexp.MustCompile(`^(?:` + strings.Join(alts, "|") + `)`),
		num: regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?`),
	}
}

// CheckSyntax reports whether expr is a sequence of one or more operands
// separated by exactly one registered operator. An operand is an optional
// sign followed by a decimal number, preceded by any run of open brackets
// and followed by any run of close brackets. Whitespace is permitted
// around tokens and between a sign and its digits, but not inside a number
// or operator. Malformed input returns false; it never raises.
func (v *Validator) CheckSyntax(expr string) bool {
	i := skipSpace(expr, 0)
	for {
		// Operand: '('* [sign] number ')'*.
		for i < len(expr) && expr[i] == '(' {
			i = skipSpace(expr, i+1)
		}
		if i < len(expr) && (expr[i] == '+' || expr[i] == '-') {
			i = skipSpace(expr, i+1)
		}
		m := v.num.FindString(expr[i:])
		if m == "" {
			return false
		}
		i = skipSpace(expr, i+len(m))
		for i < len(expr) && expr[i] == ')' {
			i = skipSpace(expr, i+1)
		}
		if i == len(expr) {
			return true
		}
		// Exactly one operator between consecutive operands.
		m = v.op.FindString(expr[i:])
		if m == "" {
			return false
		}
		i = skipSpace(expr, i+len(m))
	}
}

// skipSpace advances i past any whitespace in s.
func skipSpace(s string, i int) int {
	for i < len(s) {
		r, sz := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += sz
	}
	return i
}
