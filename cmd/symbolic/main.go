package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/symbolic"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, bindname string
		with                   [][2]string
		nl, echo, verbose      bool
		prec                   int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`parameter definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value parameter definition (any number of times)", addwith)
	flag.StringVar(&bindname, "bindings", "", "YAML or JSON file of parameter values")
	flag.IntVar(&prec, "p", 0, "evaluate real results to this many bits of precision instead of complex128")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print expressions before their values")
	flag.BoolVar(&verbose, "v", false, "log debug information to stderr")
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must not be negative", prec)
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	b := make(symbolic.Bindings)
	if bindname != "" {
		l, err := symbolic.LoadBindings(bindname)
		if err != nil {
			log.Fatal(err)
		}
		b = l
		logger.Debug("loaded bindings", slog.String("file", bindname), slog.Any("names", b.Names()))
	}
	for _, d := range with {
		v, err := symbolic.ParseString(d[1])
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		b.Bind(d[0], v)
		logger.Debug("bound parameter", slog.String("name", d[0]), slog.String("value", v.String()))
	}

	ev := &evaluator{out: os.Stdout, log: logger, b: b, verb: verb + "\n", echo: echo}
	if prec > 0 {
		ctx, err := b.Context(uint(prec))
		if err != nil {
			log.Fatal(err)
		}
		ev.ctx = ctx
	}

	if inname == "" && flag.NArg() == 0 && isTerminal(os.Stdin) {
		ev.interactive(os.Stdin, os.Stderr)
		return
	}

	var ins []io.RuneScanner
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	var opts []symbolic.ParseOption
	if nl {
		opts = append(opts, symbolic.StopOn('\n'))
	}
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			in.UnreadRune()
			a, err := symbolic.Parse(in, opts...)
			if err != nil {
				log.Fatal(err)
			}
			ev.eval(a)
		}
	}
}

// evaluator substitutes bindings into expressions and prints the results.
type evaluator struct {
	out  io.Writer
	log  *slog.Logger
	b    symbolic.Bindings
	ctx  *symbolic.Context
	verb string
	echo bool
}

func (ev *evaluator) eval(a *symbolic.Expr) {
	ev.log.Debug("parsed", slog.String("expr", a.String()), slog.Any("free", a.FreeSymbols()))
	if ev.echo {
		fmt.Fprintf(ev.out, "%v : ", a)
	}
	if ev.ctx != nil {
		r := ev.ctx.Eval(a)
		if r == nil {
			ev.log.Error("evaluation failed", slog.String("expr", a.String()), slog.Any("err", ev.ctx.Err()))
			fmt.Fprintln(ev.out, ev.ctx.Err())
			return
		}
		fmt.Fprintf(ev.out, ev.verb, r)
		return
	}
	r, err := a.Xreplace(ev.b)
	if err != nil {
		ev.log.Error("substitution failed", slog.String("expr", a.String()), slog.Any("err", err))
		fmt.Fprintln(ev.out, err)
		return
	}
	if v, ok := r.Numeric(); ok {
		fmt.Fprintf(ev.out, ev.verb, v)
		return
	}
	fmt.Fprintln(ev.out, r)
}

// interactive reads one expression per line, prompting on prompt. Errors in
// a line are reported and do not end the session.
func (ev *evaluator) interactive(in io.Reader, prompt io.Writer) {
	s := bufio.NewScanner(in)
	for {
		fmt.Fprint(prompt, "> ")
		if !s.Scan() {
			break
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		a, err := symbolic.ParseString(line)
		if err != nil {
			fmt.Fprintln(ev.out, err)
			continue
		}
		ev.eval(a)
	}
	fmt.Fprintln(prompt)
	if err := s.Err(); err != nil {
		log.Fatal(err)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func infile(inname string, std bool) (io.RuneScanner, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
