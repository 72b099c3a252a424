package ltr

// Option is an option used when creating a Calculator.
type Option interface {
	option(*Calculator)
}

type (
	precopt uint
	opopt   struct {
		sym string
		fn  OperatorFunc
	}
)

func (o precopt) option(c *Calculator) {
	c.prec = uint(o)
}

func (o opopt) option(c *Calculator) {
	c.reg.Register(o.sym, o.fn)
}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) Option {
	return precopt(prec)
}

// WithOperator registers an additional binary operator. The calculator's
// grammar extends to accept the new symbol with no further configuration.
func WithOperator(sym string, fn OperatorFunc) Option {
	return opopt{sym, fn}
}
