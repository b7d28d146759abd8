package mslang

import (
	"errors"
	"strings"
	"testing"
)

func describe(tokens []Token) string {
	var parts []string
	for _, t := range tokens {
		if t.Kind.IsWhitespace() {
			continue
		}
		parts = append(parts, t.Kind.String()+"("+t.Text+")")
	}
	return strings.Join(parts, " ")
}

func TestLex(t *testing.T) {
	for _, c := range []struct {
		src  string
		want string
	}{
		{`"a" "b"`, "smart string(a) smart string(b)"},
		{`'a' 'b'`, "string(a) string(b)"},
		{`1+2`, "literal(1) +(+) literal(2)"},
		{`1 + 2`, "literal(1) +(+) literal(2)"},
		{`1 + -5`, "literal(1) +(+) literal(-5)"},
		{`a-5`, "literal(a) -(-) literal(5)"},
		{`a - 5`, "literal(a) -(-) literal(5)"},
		{`-5`, "literal(-5)"},
		{`$x @y $`, "variable($x) ivariable(@y) final var($)"},
		{`/cmd`, "command(/cmd)"},
		{`msg(1)`, "function name(msg) ((() literal(1) )())"},
		{`msg (1)`, "function name(msg) ((() literal(1) )())"},
		{`(1)`, "function name(__autoconcat__) ((() literal(1) )())"},
		{"# comment\n1", "literal(1)"},
		{"// comment\n1", "literal(1)"},
		{"/* a\n b */ 1", "literal(1)"},
		{`'it\'s'`, "string(it's)"},
		{`'a\nb'`, "string(a\nb)"},
		{`"a\@b"`, `smart string(a\@b)`},
		{`'\u0041'`, "string(A)"},
		{`'#' '/*'`, "string(#) string(/*)"},
		{`1..2`, "literal(1) ..(..) literal(2)"},
		{`a: 1`, "literal(a) :(:) literal(1)"},
		{`@a[1]`, "ivariable(@a) [([) literal(1) ](])"},
		{`a === b`, "literal(a) ===(===) literal(b)"},
		{`x.y`, "literal(x) .(.) literal(y)"},
		{`1.5`, "literal(1.5)"},
		{`@i++`, "ivariable(@i) ++(++)"},
		{`if(1){2}`, "function name(if) ((() literal(1) )()) {({) literal(2) }(})"},
	} {
		tokens, err := Lex(testSource(c.src), true)
		if err != nil {
			t.Fatalf("%s: %v", c.src, err)
		}
		if got := describe(tokens); got != c.want {
			t.Fatalf("%s: got %v", c.src, got)
		}
	}
}

func TestLexPositions(t *testing.T) {
	tokens, err := Lex(testSource("msg(1)\n  'a'"), true)
	if err != nil {
		t.Fatal(err)
	}
	var str Token
	for _, token := range tokens {
		if token.Kind == TokenString {
			str = token
		}
	}
	if str.Pos.Line != 2 || str.Pos.Column != 3 {
		t.Fatalf("got %v", str.Pos)
	}
	if tokens[0].Pos.Line != 1 || tokens[0].Pos.Column != 1 {
		t.Fatalf("got %v", tokens[0].Pos)
	}
}

func TestLexAliasMode(t *testing.T) {
	tokens, err := Lex(testSource("/foo [$x=1] = msg($x)"), false)
	if err != nil {
		t.Fatal(err)
	}
	want := "command(/foo) [([) variable($x) option assign(=) literal(1) ](]) alias end(=) function name(msg) ((() variable($x) )())"
	if got := describe(tokens); got != want {
		t.Fatalf("got %v", got)
	}

	// assignments after the alias end
	tokens, err = Lex(testSource("/foo = @a = 1\n/bar = 2"), false)
	if err != nil {
		t.Fatal(err)
	}
	want = "command(/foo) alias end(=) ivariable(@a) =(=) literal(1) command(/bar) alias end(=) literal(2)"
	if got := describe(tokens); got != want {
		t.Fatalf("got %v", got)
	}
}

func TestLexErrors(t *testing.T) {
	for _, c := range []struct {
		src  string
		pure bool
		msg  string
		line int
	}{
		{"'abc", true, "unended string literal, the last single quote was started on line 1", 1},
		{"1\n\"abc\n\n", true, "unended string literal, the last double quote was started on line 2", 2},
		{"1\n/* x", true, "unended block comment, the comment was started on line 2", 2},
		{`'\q'`, true, `the escape sequence \q is not a recognized escape sequence`, 1},
		{`'\@'`, true, `the escape sequence \@ is only allowed in double quoted strings`, 1},
		{`'\uZZZZ'`, true, `unrecognized unicode escape sequence after \u: "ZZZZ"`, 1},
		{"'\\u12'\n", true, `unrecognized unicode escape sequence after \u: "12'\n"`, 1},
		{`1+*2`, true, "unexpected symbol (*)", 1},
		{`msg(*2)`, true, "unexpected symbol (*)", 1},
		{`msg(2*)`, true, "unexpected symbol (*)", 1},
	} {
		_, err := Lex(testSource(c.src), c.pure)
		if err == nil {
			t.Fatalf("%s: should fail", c.src)
		}
		if !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("%s: got %v", c.src, err)
		}
		var posErr PosError
		if !errors.As(err, &posErr) {
			t.Fatalf("%s: got %v", c.src, err)
		}
		if posErr.Pos.Line != c.line {
			t.Fatalf("%s: got %v", c.src, posErr.Pos)
		}
		if !errors.Is(err, ErrLex) && !errors.Is(err, ErrStructural) {
			t.Fatalf("%s: got %v", c.src, err)
		}
	}

	// symbols are not checked in alias mode
	if _, err := Lex(testSource("/foo = 1+*2"), false); err != nil {
		t.Fatal(err)
	}
}

func TestPosErrorRendering(t *testing.T) {
	_, err := Lex(testSource("msg(1)\nmsg('abc)"), true)
	if err == nil {
		t.Fatal("should fail")
	}
	want := "at test.ms:2:5\nmsg('abc)\n    ^\n"
	if !strings.HasSuffix(err.Error(), want) {
		t.Fatalf("got %q", err.Error())
	}
}
