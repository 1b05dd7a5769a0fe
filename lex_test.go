package symbolic

import (
	"errors"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		{"1e1", []lexToken{{text: "1e1", kind: tokenNum, pos: 1}}, 0},
		{"1e", []lexToken{{pos: 1}}, 1},
		{"1e+1", []lexToken{{text: "1e+1", kind: tokenNum, pos: 1}}, 0},
		{"1e-1", []lexToken{{text: "1e-1", kind: tokenNum, pos: 1}}, 0},
		{"1.0e1", []lexToken{{text: "1.0e1", kind: tokenNum, pos: 1}}, 0},
		{".", []lexToken{{pos: 1}}, 1},
		{".1", []lexToken{{text: ".1", kind: tokenNum, pos: 1}}, 0},
		{".1e1", []lexToken{{text: ".1e1", kind: tokenNum, pos: 1}}, 0},
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1*0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"(1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}}, 0},
		{"1a", []lexToken{{pos: 1}}, 1},
		{"inf", []lexToken{{text: "inf", kind: tokenNum, pos: 1}}, 0},
		{"∞", []lexToken{{text: "∞", kind: tokenNum, pos: 1}}, 0},
		// imaginary literals
		{"2i", []lexToken{{text: "2i", kind: tokenNum, pos: 1}}, 0},
		{"2.5j", []lexToken{{text: "2.5j", kind: tokenNum, pos: 1}}, 0},
		{"1e+2j", []lexToken{{text: "1e+2j", kind: tokenNum, pos: 1}}, 0},
		{"1+2i", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "2i", kind: tokenNum, pos: 3}}, 0},
		{"2ii", []lexToken{{pos: 1}}, 1},
		{"1ei", []lexToken{{pos: 1}}, 1},
		{"i", []lexToken{{text: "i", kind: tokenIdent, pos: 1}}, 0},
		// identifiers
		{"e", []lexToken{{text: "e", kind: tokenIdent, pos: 1}}, 0},
		{"e1", []lexToken{{text: "e1", kind: tokenIdent, pos: 1}}, 0},
		{"π", []lexToken{{text: "π", kind: tokenIdent, pos: 1}}, 0},
		{"_1234_", []lexToken{{text: "_1234_", kind: tokenIdent, pos: 1}}, 0},
		{"e(", []lexToken{{text: "e", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}}, 0},
		// operators
		{"++", []lexToken{{text: "+", kind: tokenOp, pos: 1}, {text: "+", kind: tokenOp, pos: 2}}, 0},
		{"a--b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "b", kind: tokenIdent, pos: 4}}, 0},
		{"×÷^", []lexToken{{text: "×", kind: tokenOp, pos: 1}, {text: "÷", kind: tokenOp, pos: 2}, {text: "^", kind: tokenOp, pos: 3}}, 0},
		// brackets
		{"[]", []lexToken{{text: "[", kind: tokenOpen, pos: 1}, {text: "]", kind: tokenClose, pos: 2}}, 0},
		{"{}", []lexToken{{text: "{", kind: tokenOpen, pos: 1}, {text: "}", kind: tokenClose, pos: 2}}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}}, 1},
		{"$a", []lexToken{{pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for _, want := range c.tokens {
			got, err := scan.next("")
			if got.kind == tokenEOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				break
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				var lerr *LexError
				if !errors.As(err, &lerr) {
					t.Errorf("scanning %q: error %v is not a *LexError", c.src, err)
				}
				if c.errs > 0 {
					c.errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		for {
			got, err := scan.next("")
			if err != nil {
				t.Errorf("scanning %q: extra error %v", c.src, err)
				break
			}
			if got.kind == tokenEOF {
				break
			}
			t.Errorf("scanning %q: extra token %v", c.src, got)
		}
		if c.errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexStopOn(t *testing.T) {
	scan := lex(strings.NewReader("x\ny"))
	tok, err := scan.next("\n")
	if err != nil || tok.kind != tokenIdent || tok.text != "x" {
		t.Fatalf("first token: got %v, %v", tok, err)
	}
	tok, err = scan.next("\n")
	if err != nil || tok.kind != tokenEOF {
		t.Errorf("newline should end input, got %v, %v", tok, err)
	}
}

func TestLexPush(t *testing.T) {
	scan := lex(strings.NewReader("a b"))
	tok, err := scan.next("")
	if err != nil {
		t.Fatal(err)
	}
	scan.push(tok)
	if again, _ := scan.next(""); again != tok {
		t.Errorf("pushed %v, got %v", tok, again)
	}
	defer func() {
		if recover() == nil {
			t.Error("double push did not panic")
		}
	}()
	scan.push(tok)
	scan.push(tok)
}
