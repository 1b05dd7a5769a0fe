package symbolic

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// haskind checks whether a tree contains a node of the given kind.
func (n *Node) haskind(k Kind) bool {
	if n == nil {
		return false
	}
	if n.kind == k {
		return true
	}
	return n.left.haskind(k) || n.right.haskind(k)
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		b := binop(string(r))
		u := unop(string(r))
		if b.op == KindNone && u.op == KindNone {
			t.Errorf("no operator for %c", r)
		}
	}
}

func TestTermPrecMatchesMultiplication(t *testing.T) {
	if p := binop("*").prec; p != termprec.prec {
		t.Errorf("terms have prec %d but * has prec %d", termprec.prec, p)
	}
	if p := binop("×").prec; p != termprec.prec {
		t.Errorf("terms have prec %d but × has prec %d", termprec.prec, p)
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"square", "[x]", "x"},
		{"curly", "{x}", "x"},
		{"multi", "([{{[((x))]}}])", "x"},

		{"plus", "+x", "x"},
		{"neg", "-x", "(-(x))"},
		{"negnum", "-1", "(-(1))"},
		{"add", "x+y", "((x)+(y))"},
		{"sub", "x-y", "((x)-(y))"},
		{"mul", "x*y", "((x)*(y))"},
		{"div", "x/y", "((x)/(y))"},
		{"pow", "x^y", "((x)^(y))"},
		{"altmul", "x×y", "x*y"},
		{"altdiv", "x÷y", "x/y"},
		{"terms", "x y", "x*y"},
		{"parenterms", "x(y)", "x*y"},
		{"numterms", "2 x", "2*x"},
		{"termsnum", "x 2", "2*x"},

		{"call-bare", "sin x", "sin(x)"},
		{"call-terms", "sin a b c * d", "sin(a b c) * d"},
		{"call-neg", "sin -x", "sin(-x)"},
		{"call-add", "sin x + y", "sin(x) + y"},
		{"call-exp", "sin x^y", "sin(x^y)"},
		{"call-up", "cos^2 x", "[cos(x)]^2"},
		{"call-upterms", "cos ^ x ^ y z", "[cos(z)]^(x^y)"},
		{"alias-ln", "ln x", "log(x)"},
		{"alias-arcsin", "arcsin x", "asin(x)"},
		{"alias-conj", "conj(x)", "conjugate(x)"},

		{"add4", "w+x+y+z", "((w+x)+y)+z"},
		{"sub4", "w-x-y-z", "((w-x)-y)-z"},
		{"mul4", "w*x*y*z", "((w*x)*y)*z"},
		{"div4", "w/x/y/z", "((w/x)/y)/z"},
		{"pow4", "w^x^y^z", "w^(x^(y^z))"},
		{"terms4", "w x y z", "w*(x*(y*z))"},

		{"negpow", "-1^n", "-(1^n)"},
		{"desc", "w^x*y+z", "((w^x)*y)+z"},
		{"asc", "w+x*y^z", "w+(x*(y^z))"},
		{"descasc", "w^x*y+z+a*b^c", "(((w^x)*y)+z)+a*(b^c)"},
		{"ascdesc", "w+x*y^z^a*b+c", "w+((x*(y^(z^a)))*b)+c"},
		{"negneg", "--x", "x"},
		{"negsub", "-x-x", "(-x)-x"},
		{"powparen", "x^y(z)", "(x^y)*z"},
		{"powneg", "x^-1", "x^(-1)"},
		{"powterms", "x y^z", "x*(y^z)"},
		{"pownegpow", "x^-y^-z", "x^(-(y^(-z)))"},

		{"complex", "1+2i", "(1+2j)"},
		{"complexterm", "x (1+2i)", "(1+2i) x"},
		{"fold", "2*3*x", "6 x"},
		{"identity", "x*1 + 0", "x"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := ParseString(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			if !a.n.equal(b.n) {
				t.Errorf("mismatched trees:\n\t%q parses %v\n\t%q parses %v", c.a, a.n, c.b, b.n)
			}
		})
	}
}

func TestParseLeaves(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []ParseOption
		kind Kind
		text string
		val  complex128
	}{
		{"int", "3", nil, KindNum, "3", 3},
		{"float", "0.1", nil, KindNum, "0.1", 0.1},
		{"imag", "2i", nil, KindNum, "", 2i},
		{"imagj", "0.5j", nil, KindNum, "", 0.5i},
		{"name", "alpha", nil, KindName, "alpha", 0},
		{"pi", "pi", nil, KindConst, "pi", 3.141592653589793},
		{"e", "e", nil, KindConst, "e", 2.718281828459045},
		{"nofuncs-pi", "pi", []ParseOption{DisableDefaultFuncs()}, KindName, "pi", 0},
		{"nofuncs-sin", "sin", []ParseOption{DisableDefaultFuncs()}, KindName, "sin", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src, c.opts...)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.src, err)
			}
			n := a.Tree()
			if n.Kind() != c.kind || n.Name() != c.text || n.Value() != c.val {
				t.Errorf("%q parsed to %v %q %v, want %v %q %v", c.src, n.Kind(), n.Name(), n.Value(), c.kind, c.text, c.val)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"empty", "", new(EmptyExpressionError)},
		{"space", "   ", new(EmptyExpressionError)},
		{"add-end", "x+", new(EmptyExpressionError)},
		{"neg-end", "-", new(EmptyExpressionError)},
		{"parens", "()", new(EmptyExpressionError)},
		{"unclosed", "(x", new(BracketError)},
		{"unopened", "x)", new(BracketError)},
		{"mismatched", "(x]", new(BracketError)},
		{"mismatched-empty", "(]", new(BracketError)},
		{"call-end", "sin", new(CallError)},
		{"call-empty", "sin()", new(CallError)},
		{"unary-op", "*x", new(OperatorError)},
		{"double-op", "x**y", new(OperatorError)},
		{"lex", "x $", new(LexError)},
		{"lex-num", "1.2.3", new(LexError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err == nil {
				t.Fatalf("%q parsed without error to %v", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("%q gave wrong error: want %T, got %#v", c.src, c.err, err)
			}
			if _, ok := err.(InputError); !ok {
				t.Errorf("%q gave error without position: %v", c.src, err)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("%q gave error not matching ErrSyntax: %v", c.src, err)
			}
		})
	}
}

func TestStopOn(t *testing.T) {
	cases := []struct {
		name string
		src  string
		stop string
		good [][]Kind
		bad  [][]Kind
		errs []error
	}{
		{"newline", "x\nx", "\n", [][]Kind{{KindName}, {KindName}}, [][]Kind{{KindMul}, {KindMul}}, nil},
		{"num", "1\n1", "\n", [][]Kind{{KindNum}, {KindNum}}, [][]Kind{{KindMul}, {KindMul}}, nil},
		{"multinl", "x\n\nx", "\n", [][]Kind{{KindName}, {KindName}}, [][]Kind{{KindMul}, {KindMul}}, nil},
		{"tab", "x\ty", "\t", [][]Kind{{KindName}, {KindName}}, [][]Kind{{KindMul}, {KindMul}}, nil},
		{"operator", "x+\ny", "\n", [][]Kind{{KindAdd}}, [][]Kind{{}}, nil},
		{"call-err", "sin\nx", "\n", [][]Kind{{}, {KindName}}, [][]Kind{{}, {}}, []error{new(CallError)}},
		{"call-brackets", "sin(\nx)", "\n", [][]Kind{{KindCall}}, [][]Kind{{}}, nil},
	}
	for _, c := range cases {
		if len(c.good) != len(c.bad) {
			t.Fatalf("case %q has different sizes of good and bad: %v vs %v", c.name, c.good, c.bad)
		}
		t.Run(c.name, func(t *testing.T) {
			src := strings.NewReader(c.src)
			for i := range c.good {
				a, err := Parse(src, StopOn([]rune(c.stop)...))
				if err != nil {
					switch {
					case i >= len(c.errs), c.errs[i] == nil:
						t.Errorf("%q iter %d didn't parse: %v", c.src, i, err)
					case reflect.TypeOf(err) != reflect.TypeOf(c.errs[i]):
						t.Errorf("%q iter %d gave wrong error: want %T, got %#v", c.src, i, c.errs[i], err)
					}
					continue
				}
				for _, good := range c.good[i] {
					if !a.n.haskind(good) {
						t.Errorf("%q iter %d didn't have %v", c.src, i, good)
					}
				}
				for _, bad := range c.bad[i] {
					if a.n.haskind(bad) {
						t.Errorf("%q iter %d had %v", c.src, i, bad)
					}
				}
			}
			a, err := Parse(src)
			if _, ok := err.(*EmptyExpressionError); !ok {
				t.Errorf("%q after %d iters parsed with error %#v and tree %v", c.src, len(c.good), err, a)
			}
		})
	}
}

func TestStopOnNonSpace(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("StopOn(',') did not panic")
		}
	}()
	StopOn(',')
}

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"x",
		"x + y",
		"x - (y - z)",
		"(x - y) - z",
		"x/(y*z)",
		"x^y^z",
		"(x^y)^z",
		"-x^2",
		"(-x)^2",
		"-(x + y)",
		"-2*x",
		"-2i*x",
		"-(1+2i)*x",
		"(1+2i)*x",
		"2i*x",
		"x + -1",
		"sin(x + 1)*cos(y)",
		"exp(-x)/sqrt(2*pi)",
		"conjugate(x)^2 - e",
		"0.1*alpha + 1e-300",
		"log(x)/log(2)",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			a, err := ParseString(src)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", src, err)
			}
			s := a.String()
			b, err := ParseString(s)
			if err != nil {
				t.Fatalf("failed to reparse %q from %q: %v", s, src, err)
			}
			if !a.n.equal(b.n) {
				t.Errorf("%q prints as %q, which parses to %v", src, s, b.n)
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "w^x*y+z+a*b^c"},
		{"descasc-parens", "(((w^x)*y)+z)+a*(b^c)"},
		{"ascdesc", "w+x*y^z^a*b+c"},
		{"ascdesc-parens", "w+((x*(y^(z^a)))*b)+c"},
		{"descasc-nums", "1^1.1*1.1e1+1.1e-1+.1*inf^∞"},
		{"call-bare", "sin x"},
		{"call-up", "cos^2 x"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				Parse(&src)
			}
		})
	}
}
