package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ErrIncomplete is wrapped by read errors caused by input ending inside a
// list or string. More input may complete the expression.
var ErrIncomplete = errors.New("incomplete expression")

// macro readers return a nil Datum when they consume input without producing a value
var macros map[rune]func(r *bufio.Reader) (Datum, error)

func init() {
	macros = map[rune]func(r *bufio.Reader) (Datum, error){
		'"':  stringReader,
		';':  commentReader,
		'(':  listReader,
		')':  unmatchedDelimiterReader,
		'\'': quoteReader,
	}
}

func isWhitespace(ch rune) bool {
	return unicode.IsSpace(ch)
}

func isMacro(ch rune) bool {
	_, ismacro := macros[ch]
	return ismacro
}

// IsIncomplete reports whether err means the input ended too early.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// Read returns the next top-level datum, or io.EOF when the input is exhausted.
func Read(r *bufio.Reader) (Datum, error) {
	for {
		ch, _, err := r.ReadRune()
		for err == nil && isWhitespace(ch) {
			ch, _, err = r.ReadRune()
		}
		if err != nil {
			return nil, err
		}

		macroFn, isMacro := macros[ch]
		if isMacro {
			ret, err := macroFn(r)
			if err != nil {
				return nil, err
			}
			if ret == nil {
				continue
			}
			return ret, nil
		}

		token, err := readToken(r, ch)
		if err != nil {
			return nil, err
		}
		return interpretToken(token)
	}
}

// ReadAll reads every top-level datum and returns them as a proper list.
func ReadAll(in io.Reader) (Datum, error) {
	r := bufio.NewReader(in)
	var items []Datum
	for {
		val, err := Read(r)
		if err == io.EOF {
			return List(items...), nil
		}
		if err != nil {
			return nil, err
		}
		items = append(items, val)
	}
}

func readToken(r *bufio.Reader, initch rune) (string, error) {
	var sb strings.Builder
	sb.WriteRune(initch)

	for {
		ch, _, err := r.ReadRune()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if isWhitespace(ch) || isMacro(ch) {
			r.UnreadRune()
			return sb.String(), nil
		}
		sb.WriteRune(ch)
	}
}

func interpretToken(s string) (Datum, error) {
	if s[0] == '#' {
		switch s {
		case "#t":
			return True, nil
		case "#f":
			return False, nil
		default:
			return nil, fmt.Errorf("boolean was not #t or #f: %s", s)
		}
	}

	if looksNumeric(s) {
		return matchNumber(s)
	}
	return Symbol(s), nil
}

// a token is a number if it starts with a digit, or a sign or dot followed by one
func looksNumeric(s string) bool {
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
	}
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}

func matchNumber(s string) (Datum, error) {
	i, erri := strconv.ParseInt(s, 10, 64)
	if erri == nil {
		return Integer(i), nil
	}
	f, errf := strconv.ParseFloat(s, 64)
	if errf == nil {
		return Float(f), nil
	}
	return nil, fmt.Errorf("invalid number: %s", s)
}

func stringReader(r *bufio.Reader) (Datum, error) {
	var sb strings.Builder

	for {
		ch, _, err := r.ReadRune()
		if err == io.EOF {
			return nil, fmt.Errorf("unterminated string: %w", ErrIncomplete)
		}
		if err != nil {
			return nil, fmt.Errorf("error while reading string: %w", err)
		}
		if ch == '"' {
			return String(sb.String()), nil
		}
		if ch == '\\' {
			ch, _, err = r.ReadRune()
			if err == io.EOF {
				return nil, fmt.Errorf("unterminated string: %w", ErrIncomplete)
			}
			if err != nil {
				return nil, err
			}
			switch ch {
			case 't':
				ch = '\t'
			case 'r':
				ch = '\r'
			case 'n':
				ch = '\n'
			case '\\':
			case '"':
			default:
				return nil, fmt.Errorf("unsupported escape character: \\%s", string(ch))
			}
		}
		sb.WriteRune(ch)
	}
}

func commentReader(r *bufio.Reader) (Datum, error) {
	ch, _, err := r.ReadRune()
	for err == nil && ch != '\n' && ch != '\r' {
		ch, _, err = r.ReadRune()
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	return nil, nil
}

// 'x reads as (quote x)
func quoteReader(r *bufio.Reader) (Datum, error) {
	quoted, err := Read(r)
	if err == io.EOF {
		return nil, fmt.Errorf("nothing after quote: %w", ErrIncomplete)
	}
	if err != nil {
		return nil, err
	}
	return List(Symbol("quote"), quoted), nil
}

func listReader(r *bufio.Reader) (Datum, error) {
	var items []Datum
	for {
		ch, _, err := r.ReadRune()
		for err == nil && isWhitespace(ch) {
			ch, _, err = r.ReadRune()
		}
		if err == io.EOF {
			return nil, fmt.Errorf("too many open parentheses: %w", ErrIncomplete)
		}
		if err != nil {
			return nil, err
		}

		switch ch {
		case ')':
			return List(items...), nil
		case ';':
			if _, err := commentReader(r); err != nil {
				return nil, err
			}
			continue
		}

		r.UnreadRune()
		item, err := Read(r)
		if err == io.EOF {
			return nil, fmt.Errorf("too many open parentheses: %w", ErrIncomplete)
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func unmatchedDelimiterReader(r *bufio.Reader) (Datum, error) {
	return nil, errors.New("too many closed parentheses")
}
