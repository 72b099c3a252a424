package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/zephyrtronium/ltr"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, confpath string
		prec                   int
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "", "result formatting verb (default from config)")
	flag.StringVar(&confpath, "config", "", "YAML or JSON config file")
	flag.IntVar(&prec, "p", 0, "precision of calculations in bits (default from config)")
	flag.Parse()

	conf, err := loadConfig(confpath)
	if err != nil {
		log.Fatal(err)
	}
	if prec < 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}
	if prec > 0 {
		conf.Prec = uint(prec)
	}
	if verb != "" {
		conf.Format = verb
	}

	calc := ltr.New(ltr.Prec(conf.Prec))

	switch {
	case flag.NArg() > 0:
		ok := true
		for _, arg := range flag.Args() {
			ok = eval(calc, arg, conf.Format) && ok
		}
		if !ok {
			os.Exit(1)
		}
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		evalLines(calc, f, conf.Format)
	case isatty.IsTerminal(os.Stdin.Fd()):
		repl(calc, conf)
	default:
		evalLines(calc, os.Stdin, conf.Format)
	}
}

// eval evaluates a single expression and prints the result or a report of
// the error kind. It reports whether evaluation succeeded.
func eval(calc *ltr.Calculator, expr, verb string) bool {
	r, err := calc.Evaluate(expr)
	if err != nil {
		var (
			inv *ltr.InvalidExpressionError
			dbz *ltr.DivisionByZeroError
		)
		switch {
		case errors.As(err, &inv):
			fmt.Println("syntax error:", err)
		case errors.As(err, &dbz):
			fmt.Println("math error:", err)
		default:
			fmt.Println("error:", err)
		}
		return false
	}
	fmt.Printf(verb+"\n", r)
	return true
}

// evalLines evaluates each non-blank line of in as one expression.
func evalLines(calc *ltr.Calculator, in io.Reader, verb string) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		eval(calc, line, verb)
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

// repl runs an interactive loop. Evaluation errors are reported and do not
// end the session.
func repl(calc *ltr.Calculator, conf *config) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          conf.Prompt,
		HistoryFile:     conf.HistoryFile,
		HistoryLimit:    conf.HistorySize,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Fatal(err)
	}
	defer rl.Close()
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return
		}
		eval(calc, line, conf.Format)
	}
}
