package ltr_test

import (
	"fmt"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/ltr"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"single", "42", 42},
		{"decimal", "2.5 + 2.5", 5},
		{"ltr-mul", "2 + 3 * 4", 20},
		{"ltr-div", "100 - 10 / 2", 45},
		{"ltr-pow", "2 ** 3 * 2", 16},
		{"nested", "(3 + (2 * 10 / (40 - 20)) + (3 * 4)) * 10", 160},
		{"group-first", "(1 + 2) * 3", 9},
		{"group-last", "3 * (1 + 2)", 9},
		{"signed-first", "-3 + 4", 1},
		{"signed-rhs", "4 * -3", -12},
		{"sign-space", "4 * - 3", -12},
		{"double-sign", "4 - -3", 7},
		{"pow", "2 ** 10", 1024},
		{"pow-zero", "0 ** 0", 1},
		{"mod", "7 % 3", 1},
		{"mod-neg", "-7 % 3", 2},
		{"percent", "50 %% 10", 20},
		{"group-operand", "2 * (3)", 6},
	}
	calc := ltr.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			require.NoError(t, err)
			require.NotNil(t, r)
			f, _ := r.Float64()
			assert.Equal(t, c.want, f, "evaluating %q", c.src)
		})
	}
}

func TestEvaluateInvalid(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		badSyntax bool
		unpaired  bool
	}{
		{"unpaired-close", "(10 + 20))))", false, true},
		{"empty-groups", "() + 10 (/) 20", true, false},
		{"missing-operator", "4 + 2   5", true, false},
		{"unclosed", "((3+2) + 5", false, true},
		{"close-first", ")3+4(", true, true},
		{"empty", "", true, false},
		{"blank", "   ", true, false},
		{"letters", "a + 1", true, false},
		{"trailing-op", "4 +", true, false},
		{"leading-op", "* 4", true, false},
		{"double-op", "4 * * 2", true, false},
		{"lone-sign", "-", true, false},
		{"double-sign-operand", "4 + + + 3", true, false},
		{"sign-on-group", "-(3)", true, false},
		{"bare-dot", ".5 + 1", true, false},
		{"trailing-dot", "5. + 1", true, false},
		{"double-dot", "1..2", true, false},
		{"exponent", "1e3", true, false},
		{"split-pow", "2 * * 3 + 1", true, false},
	}
	calc := ltr.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			assert.Nil(t, r)
			var inv *ltr.InvalidExpressionError
			require.ErrorAs(t, err, &inv, "evaluating %q", c.src)
			assert.Equal(t, c.badSyntax, inv.BadSyntax, "BadSyntax for %q", c.src)
			assert.Equal(t, c.unpaired, inv.UnpairedBrackets, "UnpairedBrackets for %q", c.src)
		})
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	cases := []struct {
		name string
		src  string
		op   string
	}{
		{"direct", "1 / 0", "/"},
		{"group-divisor", "4 + 2 / (20 / 20 - 1)", "/"},
		{"mod", "7 % 0", "%"},
		{"percent-zero-whole", "0 %% 5", "%%"},
		{"pow-negative-exponent", "0 ** -1", "**"},
		{"first-in-order", "2 / 0 + (3 / 0)", "/"},
	}
	calc := ltr.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			assert.Nil(t, r)
			var dbz *ltr.DivisionByZeroError
			require.ErrorAs(t, err, &dbz, "evaluating %q", c.src)
			assert.Equal(t, c.op, dbz.Op)
		})
	}
}

func TestEvaluateDomain(t *testing.T) {
	calc := ltr.New()
	r, err := calc.Evaluate("(0 - 2) ** 2")
	assert.Nil(t, r)
	var dom *ltr.DomainError
	require.ErrorAs(t, err, &dom)
	assert.Equal(t, "**", dom.Op)
}

func TestWhitespaceIdempotence(t *testing.T) {
	pairs := [][2]string{
		{"2+3*4", "  2 +\t3 *  4 "},
		{"(1+2)*3", "( 1 + 2 ) * 3"},
		{"4*-3", "4 * - 3"},
		{"50%%10", "50 %% 10"},
	}
	calc := ltr.New()
	for _, p := range pairs {
		a, err := calc.Evaluate(p[0])
		require.NoError(t, err, "evaluating %q", p[0])
		b, err := calc.Evaluate(p[1])
		require.NoError(t, err, "evaluating %q", p[1])
		assert.Zero(t, a.Cmp(b), "%q and %q disagree: %g vs %g", p[0], p[1], a, b)
	}
}

func TestDeepNesting(t *testing.T) {
	const depth = 1000
	src := strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
	r, err := ltr.EvalString(src)
	require.NoError(t, err)
	f, _ := r.Float64()
	assert.Equal(t, 1.0, f)
}

func TestLeftFoldLaw(t *testing.T) {
	// The result of a flat expression equals the left fold of its
	// operators over its operands in textual order.
	operands := []float64{7, 3, 2, 5}
	ops := []string{"+", "*", "-"}
	var b strings.Builder
	fmt.Fprintf(&b, "%g", operands[0])
	acc := operands[0]
	for i, op := range ops {
		fmt.Fprintf(&b, " %s %g", op, operands[i+1])
		switch op {
		case "+":
			acc += operands[i+1]
		case "*":
			acc *= operands[i+1]
		case "-":
			acc -= operands[i+1]
		}
	}
	r, err := ltr.EvalString(b.String())
	require.NoError(t, err)
	f, _ := r.Float64()
	assert.Equal(t, acc, f, "folding %q", b.String())
}

func TestWithOperator(t *testing.T) {
	intdiv := func(z, x, y *big.Float) error {
		if y.Sign() == 0 {
			return &ltr.DivisionByZeroError{Op: "//"}
		}
		q := new(big.Float).SetPrec(x.Prec()).Quo(x, y)
		i, _ := q.Int(nil)
		z.SetInt(i)
		return nil
	}
	calc := ltr.New(ltr.WithOperator("//", intdiv))
	r, err := calc.Evaluate("7 // 2 + 1")
	require.NoError(t, err)
	f, _ := r.Float64()
	assert.Equal(t, 4.0, f)

	// The default grammar does not accept the symbol.
	_, err = ltr.EvalString("7 // 2")
	var inv *ltr.InvalidExpressionError
	require.ErrorAs(t, err, &inv)
	assert.True(t, inv.BadSyntax)
}

func TestConcurrentEvaluate(t *testing.T) {
	calc := ltr.New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r, err := calc.Evaluate("(3 + (2 * 10 / (40 - 20)) + (3 * 4)) * 10")
				if err != nil {
					t.Error(err)
					return
				}
				if f, _ := r.Float64(); f != 160 {
					t.Errorf("wrong result: %g", f)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestPrec(t *testing.T) {
	calc := ltr.New(ltr.Prec(128))
	assert.Equal(t, uint(128), calc.Prec())
	r, err := calc.Evaluate("1 / 3")
	require.NoError(t, err)
	assert.Equal(t, uint(128), r.Prec())
}

func ExampleEvalString() {
	r, _ := ltr.EvalString("2 + 3 * 4")
	fmt.Printf("%g\n", r)
	// Output: 20
}

func ExampleCalculator_Evaluate() {
	calc := ltr.New()
	_, err := calc.Evaluate("4 + 2 / (20 / 20 - 1)")
	fmt.Println(err)
	// Output: division by zero (/)
}
