package ltr

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/zephyrtronium/bigfloat"
)

// OperatorFunc computes z = x op y and reports arithmetic errors such as
// division by zero. z may alias x or y.
type OperatorFunc func(z, x, y *big.Float) error

// Registry is the set of binary operators a calculator understands. It is
// the single source of truth for the grammar: the validator and the lexer
// both derive their operator alphabet from it. A Registry is read-only
// after construction and safe for concurrent use.
type Registry struct {
	ops  map[string]OperatorFunc
	syms []string
}

// NewRegistry creates an empty operator registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]OperatorFunc)}
}

// DefaultRegistry creates a registry with the standard operators:
// + - * / ** (exponentiation), % (modulo), and %% (percentage, where
// "whole %% part" is part*100/whole).
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("+", func(z, x, y *big.Float) error {
		z.Add(x, y)
		return nil
	})
	r.Register("-", func(z, x, y *big.Float) error {
		z.Sub(x, y)
		return nil
	})
	r.Register("*", func(z, x, y *big.Float) error {
		z.Mul(x, y)
		return nil
	})
	r.Register("/", quo)
	r.Register("**", pow)
	r.Register("%", mod)
	r.Register("%%", pct)
	return r
}

// Register adds an operator to the registry, replacing any operator
// already registered with the same symbol. Panics if the symbol is empty
// or contains a rune the grammar reserves for operands, whitespace, or
// brackets.
func (r *Registry) Register(sym string, fn OperatorFunc) {
	if sym == "" {
		panic("ltr: empty operator symbol")
	}
	for _, c := range sym {
		if c == '(' || c == ')' || c == '.' || unicode.IsDigit(c) || unicode.IsSpace(c) {
			panic("ltr: invalid operator symbol " + strconv.Quote(sym))
		}
	}
	if _, ok := r.ops[sym]; !ok {
		// Keep symbols ordered longest first so that alternation in the
		// generated grammar never lets a short symbol shadow a longer one
		// ("**" before "*"). Ties keep registration order.
		r.syms = append(r.syms, sym)
		for i := len(r.syms) - 1; i > 0 && len(r.syms[i]) > len(r.syms[i-1]); i-- {
			r.syms[i], r.syms[i-1] = r.syms[i-1], r.syms[i]
		}
	}
	r.ops[sym] = fn
}

// Symbols returns the registered operator symbols, longest first.
func (r *Registry) Symbols() []string {
	return append(([]string)(nil), r.syms...)
}

// Apply computes z = x sym y. It fails with UnknownOperatorError if sym is
// not registered and propagates any error from the operator itself.
func (r *Registry) Apply(sym string, z, x, y *big.Float) error {
	fn := r.ops[sym]
	if fn == nil {
		return &UnknownOperatorError{Op: sym}
	}
	return fn(z, x, y)
}

// opStart reports whether r is the first rune of any registered symbol.
func (r *Registry) opStart(c rune) bool {
	for _, s := range r.syms {
		if strings.HasPrefix(s, string(c)) {
			return true
		}
	}
	return false
}

// opPrefix reports whether s is a prefix of any registered symbol.
func (r *Registry) opPrefix(s string) bool {
	for _, sym := range r.syms {
		if strings.HasPrefix(sym, s) {
			return true
		}
	}
	return false
}

// opSym reports whether s is a registered symbol.
func (r *Registry) opSym(s string) bool {
	_, ok := r.ops[s]
	return ok
}

func quo(z, x, y *big.Float) error {
	if y.Sign() == 0 {
		return &DivisionByZeroError{Op: "/"}
	}
	// Guard against invalid divisions; inf can arise from ** overflow.
	if x.IsInf() && y.IsInf() {
		return &DomainError{X: y, Op: "/"}
	}
	z.Quo(x, y)
	return nil
}

func pow(z, x, y *big.Float) error {
	// Guard against invalid exponentiations, i.e. negative base.
	if x.Signbit() {
		return &DomainError{X: x, Op: "**"}
	}
	if x.Sign() == 0 {
		switch {
		case y.Sign() > 0:
			z.SetInt64(0)
		case y.Sign() == 0:
			z.SetInt64(1)
		default:
			// 0 ** y with negative y is 1/0.
			return &DivisionByZeroError{Op: "**"}
		}
		return nil
	}
	bigfloat.Pow(z, x, y)
	// An overflow to infinity would poison every later step of the fold,
	// since big.Float arithmetic on opposing infinities panics.
	if z.IsInf() {
		return &DomainError{X: z, Op: "**"}
	}
	return nil
}

// mod computes the floored modulo: the result takes the sign of the
// divisor, so -7 % 3 is 2.
func mod(z, x, y *big.Float) error {
	if y.Sign() == 0 {
		return &DivisionByZeroError{Op: "%"}
	}
	q := new(big.Float).SetPrec(x.Prec()).Quo(x, y)
	i, _ := q.Int(nil) // truncates toward zero
	q.SetInt(i)
	q.Mul(q, y)
	t := new(big.Float).SetPrec(x.Prec()).Sub(x, q)
	if t.Sign() != 0 && t.Signbit() != y.Signbit() {
		t.Add(t, y)
	}
	z.Set(t)
	return nil
}

// pct computes what percentage y is of x: x %% y = y*100/x.
func pct(z, x, y *big.Float) error {
	if x.Sign() == 0 {
		return &DivisionByZeroError{Op: "%%"}
	}
	t := new(big.Float).SetPrec(x.Prec()).SetInt64(100)
	t.Mul(t, y)
	z.Quo(t, x)
	return nil
}
