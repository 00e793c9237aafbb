package main

import (
	"bufio"
	"io"
	"strings"
	"testing"
)

func TestReadNumbers(t *testing.T) {
	testRead(t, "1", Integer(1))
	testRead(t, "123", Integer(123))
	testRead(t, "-123", Integer(-123))
	testRead(t, "+7", Integer(7))
	testRead(t, "2.5", Float(2.5))
	testRead(t, ".5", Float(0.5))
	testRead(t, "-0.5", Float(-0.5))
	testRead(t, "  42  ", Integer(42))
	testReadError(t, "12abc")
}

func TestReadSymbols(t *testing.T) {
	testRead(t, "abc", Symbol("abc"))
	testRead(t, "+", Symbol("+"))
	testRead(t, "-", Symbol("-"))
	testRead(t, "...", Symbol("..."))
	testRead(t, "-abc", Symbol("-abc"))
	testRead(t, "->>", Symbol("->>"))
	testRead(t, "set!", Symbol("set!"))
	testRead(t, "null?", Symbol("null?"))
	testRead(t, "let*", Symbol("let*"))
}

func TestReadBooleans(t *testing.T) {
	testRead(t, "#t", True)
	testRead(t, "#f", False)
	testReadError(t, "#x")
	testReadError(t, "#true")
}

func TestReadLists(t *testing.T) {
	testRead(t, "(+ 1 2)", List(Symbol("+"), Integer(1), Integer(2)))
	testRead(t, "()", Empty{})
	testRead(t, "( )", Empty{})
	testRead(t, "((3 4))", List(List(Integer(3), Integer(4))))
	testRead(t, "(()())", List(Empty{}, Empty{}))
	testRead(t, "(a(b)c)", List(Symbol("a"), List(Symbol("b")), Symbol("c")))
	testRead(t, "(1\n\t2)", List(Integer(1), Integer(2)))
}

func TestReadStrings(t *testing.T) {
	testRead(t, `"abc"`, String("abc"))
	testRead(t, `""`, String(""))
	testRead(t, `"abc\"def"`, String(`abc"def`))
	testRead(t, `"a\\b"`, String(`a\b`))
	testRead(t, `"a\nb\tc"`, String("a\nb\tc"))
	testRead(t, `"(not a list)"`, String("(not a list)"))
	testReadError(t, `"a\qb"`)
}

func TestReadComments(t *testing.T) {
	testRead(t, "1 ; comment", Integer(1))
	testRead(t, "; only a comment\n2", Integer(2))
	testRead(t, "(1 ; inside\n 2)", List(Integer(1), Integer(2)))
	testRead(t, "(1 ;)\n 2)", List(Integer(1), Integer(2)))
}

func TestReadQuote(t *testing.T) {
	testRead(t, "'a", List(Symbol("quote"), Symbol("a")))
	testRead(t, "'(1 2)", List(Symbol("quote"), List(Integer(1), Integer(2))))
	testRead(t, "''a", List(Symbol("quote"), List(Symbol("quote"), Symbol("a"))))
	testRead(t, "('a)", List(List(Symbol("quote"), Symbol("a"))))
}

func TestReadErrors(t *testing.T) {
	testReadError(t, ")")
	testReadError(t, "(1 2))")
}

func TestReadIncomplete(t *testing.T) {
	testReadIncomplete(t, "(1 2")
	testReadIncomplete(t, "((1 2)")
	testReadIncomplete(t, `"abc`)
	testReadIncomplete(t, `(1 "abc`)
	testReadIncomplete(t, `"abc\`)
	testReadIncomplete(t, "'")
	testReadIncomplete(t, "(define x ; trailing comment")
}

func TestReadEOF(t *testing.T) {
	for _, input := range []string{"", "   ", "; nothing\n"} {
		_, err := read(input)
		if err != io.EOF {
			t.Errorf("%q: expected io.EOF, got %v", input, err)
		}
	}
}

func TestReadAll(t *testing.T) {
	root, err := ReadAll(strings.NewReader("1 two (3) \"four\""))
	if err != nil {
		t.Fatal(err)
	}
	expected := List(Integer(1), Symbol("two"), List(Integer(3)), String("four"))
	if !Equals(root, expected) {
		t.Errorf("expected %s, got %s", Print(expected), Print(root))
	}

	root, err = ReadAll(strings.NewReader(""))
	if err != nil || !IsEmpty(root) {
		t.Errorf("expected an empty program, got %v %v", root, err)
	}

	if _, err := ReadAll(strings.NewReader("1 (2")); !IsIncomplete(err) {
		t.Errorf("expected an incomplete program, got %v", err)
	}
}

func testRead(t *testing.T, input string, output Datum) {
	t.Helper()
	actual, err := read(input)
	if err != nil {
		t.Errorf("\nInput: %s\nExpected: %s\nActual: Error - %s\n", input, Print(output), err)
		return
	}
	if !Equals(actual, output) {
		t.Errorf("\nInput: %s\nExpected: %T - %s\nActual: %T - %s\n",
			input, output, Print(output), actual, Print(actual))
	}
}

func testReadError(t *testing.T, input string) {
	t.Helper()
	actual, err := readAllString(input)
	if err == nil {
		t.Errorf("\nInput: %s\nExpected: Error\nActual: %s\n", input, Print(actual))
		return
	}
	if IsIncomplete(err) {
		t.Errorf("\nInput: %s\nExpected: syntax error\nActual: incomplete - %s\n", input, err)
	}
}

func testReadIncomplete(t *testing.T, input string) {
	t.Helper()
	_, err := readAllString(input)
	if !IsIncomplete(err) {
		t.Errorf("\nInput: %s\nExpected: incomplete\nActual: %v\n", input, err)
	}
}

func read(input string) (Datum, error) {
	return Read(bufio.NewReader(strings.NewReader(input)))
}

func readAllString(input string) (Datum, error) {
	return ReadAll(strings.NewReader(input))
}
