package ltr

// BalancedParens reports whether every opening round bracket in s has a
// matching closing bracket: no bracket closes before one opens and none is
// left unclosed. The check is purely structural; it does not inspect what
// is between the brackets, so it can accept an expression the grammar
// check rejects and vice versa.
func BalancedParens(s string) bool {
	var open []int
	for i, r := range s {
		switch r {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return false
			}
			open = open[:len(open)-1]
		}
	}
	return len(open) == 0
}
