package tally

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStatements(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "1"},
		{"decimal", "12.5", "12.5"},
		{"trailing-point", "12.", "12"},
		{"name", "x", "x"},
		{"add-left", "10-3-2", "((10 - 3) - 2)"},
		{"mul-prec", "2+3*4", "(2 + (3 * 4))"},
		{"div", "8/4/2", "((8 / 4) / 2)"},
		{"pow-right", "2^3^2", "(2 ^ (3 ^ 2))"},
		{"neg-pow", "-2^2", "((-2) ^ 2)"},
		{"neg-neg", "--x", "(-(-x))"},
		{"neg-call", "-f(1)", "(-f(1))"},
		{"parens", "(2+3)*4", "((2 + 3) * 4)"},
		{"call", "f(1, x)", "f(1, x)"},
		{"call-niladic", "f()", "f()"},
		{"call-nested", "f(g(1), 2)", "f(g(1), 2)"},
		{"let-bind", "let f(n) = n*2", "let f(n) = (n * 2)"},
		{"let-literal", "let f(0) = 1", "let f(0) = 1"},
		{"let-pattern-expr", "let f(n+1) = 1", "let f((n + 1)) = 1"},
		{"let-no-params", "let f() = 3", "let f() = 3"},
		{"let-mixed", "let f(0, n) = n", "let f(0, n) = n"},
		{"const", "const x = 5", "const x = 5"},
		{"const-expr", "const x = 2^10", "const x = (2 ^ 10)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st, err := ParseStatement(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if st == nil {
				t.Fatalf("%q parsed to no statement", c.src)
			}
			if got := st.String(); got != c.want {
				t.Errorf("%q parsed wrong:\n\twant %s\n\tgot  %s", c.src, c.want, got)
			}
		})
	}
}

func TestParseHugeLiteral(t *testing.T) {
	// A digit run too large for a float64 is still a number token. It
	// saturates to +Inf rather than failing the parse.
	src := "1" + strings.Repeat("0", 400)
	st, err := ParseStatement(src)
	if err != nil {
		t.Fatalf("huge literal failed to parse: %v", err)
	}
	if st == nil {
		t.Fatal("huge literal parsed to no statement")
	}
	if got := st.String(); got != "+Inf" {
		t.Errorf("huge literal parsed wrong:\n\twant %s\n\tgot  %s", "+Inf", got)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, src := range []string{"", "   ", "\t\r\n"} {
		st, err := ParseStatement(src)
		if err != nil {
			t.Errorf("%q gave error %v", src, err)
		}
		if st != nil {
			t.Errorf("%q gave statement %v", src, st)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		trailing bool
		col      int
	}{
		{"trailing-num", "1 + 2 3", true, 7},
		{"trailing-word", "1 x", true, 3},
		{"assign-outside-def", "x = 4", true, 3},
		{"bad-token", "$", false, 1},
		{"bad-token-mid", "1 + $", false, 5},
		{"missing-rhs", "1 +", false, 4},
		{"unclosed-paren", "(1+2", false, 5},
		{"empty-parens", "()", false, 2},
		{"keyword-as-expr", "1 + let", false, 5},
		{"let-no-name", "let (x) = 1", false, 5},
		{"let-no-eq", "let f(x) 1", false, 10},
		{"let-bad-sep", "let f(x 1) = 2", false, 9},
		{"const-no-name", "const = 4", false, 7},
		{"call-bad-sep", "f(1 2)", false, 5},
		{"double-op", "1 * * 2", false, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st, err := ParseStatement(c.src)
			if err == nil {
				t.Fatalf("%q parsed to %v without error", c.src, st)
			}
			if c.trailing {
				var te *TrailingTokenError
				if !errors.As(err, &te) {
					t.Fatalf("%q gave %#v, not TrailingTokenError", c.src, err)
				}
			} else {
				var te *TokenError
				if !errors.As(err, &te) {
					t.Fatalf("%q gave %#v, not TokenError", c.src, err)
				}
			}
			ie, ok := err.(InputError)
			if !ok {
				t.Fatalf("%q gave %#v, which is not an InputError", c.src, err)
			}
			if ie.Pos() != c.col {
				t.Errorf("%q: error %q at column %d, want %d", c.src, err, ie.Pos(), c.col)
			}
		})
	}
}

// The offending token's text and kind must show up in syntax error messages.
func TestParseErrorNamesToken(t *testing.T) {
	_, err := ParseStatement("1 + let")
	if err == nil {
		t.Fatal("no error")
	}
	for _, want := range []string{`"let"`, "keyword"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%q does not mention %s", err, want)
		}
	}
	_, err = ParseStatement("1 + 2 3")
	if err == nil {
		t.Fatal("no error")
	}
	for _, want := range []string{`"3"`, "number", "trailing"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%q does not mention %s", err, want)
		}
	}
}
