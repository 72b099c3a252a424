package ltr

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or decimal token.
	tokenNum
	// tokenOp is an operator symbol from the registry.
	tokenOp
	// tokenOpen is an open round bracket.
	tokenOpen
	// tokenClose is a close round bracket.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	reg  *Registry
	rune int
}

// lex creates a lexer producing tokens whose operator alphabet comes from
// reg.
func lex(src io.RuneScanner, reg *Registry) *lexer {
	return &lexer{
		src:  src,
		reg:  reg,
		rune: 1,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input the
// result is an EOF token with a nil error.
func (l *lexer) next() (lexToken, error) {
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		default:
			if l.reg.opStart(r) {
				l.buf.WriteRune(r)
				if err := l.scanOp(); err != nil {
					return tok, err
				}
				tok.text = l.buf.String()
				tok.kind = tokenOp
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans a number: one or more digits, optionally a decimal point
// followed by one or more digits. No sign and no exponent; a sign is an
// operator token merged by the evaluator.
func (l *lexer) scanNum() error {
	var dot, frac bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			l.buf.WriteRune(r)
			if dot {
				frac = true
			}
		case r == '.':
			l.buf.WriteRune(r)
			if dot {
				return l.error("number")
			}
			dot = true
		default:
			l.unreadRune()
			if dot && !frac {
				return l.error("number")
			}
			return nil
		}
	}
	if dot && !frac {
		return l.error("number")
	}
	return nil
}

// scanOp extends the buffered rune to the longest registered symbol. The
// lookahead is a single rune, which suffices as long as every proper
// prefix of a registered multi-rune symbol is itself registered.
func (l *lexer) scanOp() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if !l.reg.opPrefix(l.buf.String() + string(r)) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	if !l.reg.opSym(l.buf.String()) {
		return l.error("operator")
	}
	return nil
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// lexAll scans src to EOF and returns the token stream.
func lexAll(src io.RuneScanner, reg *Registry) ([]lexToken, error) {
	l := lex(src, reg)
	var toks []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
