// Package optsplit turns the value of a JVM options environment variable
// (JAVA_OPTS and friends) into individual option strings.
//
// The historical behaviour splits on literal space characters only and knows
// nothing about quoting, so `-Dname="a b"` yields two options. That remains the
// default. Shell mode applies POSIX-like word splitting instead: whitespace
// separates words, single quotes are literal, double quotes allow backslash
// escapes of `"`, `\`, `$` and backquote, and a backslash outside quotes escapes
// any character.
package optsplit

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Mode selects the splitting rules.
type Mode int

const (
	// Spaces splits on ' ' only; runs of spaces produce no empty options.
	Spaces Mode = iota
	// Shell splits on whitespace and honours quotes and escapes.
	Shell
)

var (
	// ErrUnclosedQuote is returned when a quoted option is not closed.
	ErrUnclosedQuote = errors.New("unclosed quote in options")
	// ErrTrailingEscape is returned when the value ends with a lone backslash.
	ErrTrailingEscape = errors.New("trailing escape character in options")
)

// ParseMode maps a configuration string to a Mode. Empty means Spaces.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "space", "spaces":
		return Spaces, nil
	case "shell", "quoted":
		return Shell, nil
	}
	return Spaces, fmt.Errorf("unknown options split mode %q", s)
}

func (m Mode) String() string {
	if m == Shell {
		return "shell"
	}
	return "spaces"
}

// Split splits value according to mode.
func Split(value string, mode Mode) ([]string, error) {
	if mode == Shell {
		return splitShell(value)
	}
	return splitSpaces(value), nil
}

func splitSpaces(value string) []string {
	out := []string{}
	for _, f := range strings.Split(value, " ") {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

type quoteState int

const (
	unquoted quoteState = iota
	inSingle
	inDouble
)

// tokenizer accumulates words for shell mode. quoted records that the current
// word contained a quote pair, so "" still produces an (empty) option.
type tokenizer struct {
	words  []string
	word   strings.Builder
	quoted bool
	state  quoteState
}

func (t *tokenizer) endWord() {
	if t.word.Len() > 0 || t.quoted {
		t.words = append(t.words, t.word.String())
	}
	t.word.Reset()
	t.quoted = false
}

func splitShell(value string) ([]string, error) {
	t := &tokenizer{words: []string{}}
	runes := []rune(value)

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch t.state {
		case inSingle:
			if ch == '\'' {
				t.state = unquoted
				t.quoted = true
				continue
			}
			t.word.WriteRune(ch)

		case inDouble:
			switch ch {
			case '"':
				t.state = unquoted
				t.quoted = true
			case '\\':
				if i+1 >= len(runes) {
					return nil, ErrTrailingEscape
				}
				i++
				switch runes[i] {
				case '"', '\\', '$', '`':
				default:
					t.word.WriteRune('\\')
				}
				t.word.WriteRune(runes[i])
			default:
				t.word.WriteRune(ch)
			}

		default:
			switch {
			case ch == '\\':
				if i+1 >= len(runes) {
					return nil, ErrTrailingEscape
				}
				i++
				t.word.WriteRune(runes[i])
			case ch == '\'':
				t.state = inSingle
			case ch == '"':
				t.state = inDouble
			case unicode.IsSpace(ch):
				t.endWord()
			default:
				t.word.WriteRune(ch)
			}
		}
	}

	switch t.state {
	case inSingle:
		return nil, fmt.Errorf("%w: single quote", ErrUnclosedQuote)
	case inDouble:
		return nil, fmt.Errorf("%w: double quote", ErrUnclosedQuote)
	}
	t.endWord()
	return t.words, nil
}
