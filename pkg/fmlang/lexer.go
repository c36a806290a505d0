package fmlang

import (
	"github.com/arthur-debert/filemap/pkg/errors"
)

const commentChar = '#'

// Line is a tokenized script line
type Line struct {
	Command string
	// Arg is the first argument with surrounding quotes removed
	Arg string
}

// Empty reports whether the line carries no command
func (l Line) Empty() bool {
	return l.Command == ""
}

// ParseLine splits a raw line into a command word and its argument.
// Comments are stripped, quoted tokens keep their whitespace and any '#'
// inside them, and tokens after the argument are discarded.
func ParseLine(line string) (Line, error) {
	tokens, err := tokenize(line, 2)
	if err != nil {
		return Line{}, err
	}

	var l Line
	if len(tokens) > 0 {
		l.Command = unquote(tokens[0])
	}
	if len(tokens) > 1 {
		l.Arg = unquote(tokens[1])
	}
	return l, nil
}

// tokenize reads up to max tokens. A token is either a quoted string,
// returned with its quotes, or a run of bytes ending at whitespace or a
// comment. Every delimiter is ASCII, so the line is scanned byte by byte and
// names that are not valid UTF-8 pass through untouched.
func tokenize(line string, max int) ([]string, error) {
	var (
		tokens []string
		start  int
		quote  byte
		inWord bool
	)

	for i := 0; i < len(line) && len(tokens) < max; i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				tokens = append(tokens, line[start:i+1])
				quote = 0
			}
		case inWord:
			if isSpace(c) || c == commentChar {
				tokens = append(tokens, line[start:i])
				inWord = false
				if c == commentChar {
					return tokens, nil
				}
			}
		case isSpace(c):
		case c == commentChar:
			return tokens, nil
		case c == '\'' || c == '"':
			quote = c
			start = i
		default:
			inWord = true
			start = i
		}
	}

	if quote != 0 {
		return nil, errors.Newf(errors.ErrParseFailed, "no closing quotation (%c)", quote).
			WithDetail("line", line)
	}
	if inWord && len(tokens) < max {
		tokens = append(tokens, line[start:])
	}
	return tokens, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// unquote strips a matching pair of surrounding quotes
func unquote(token string) string {
	if len(token) >= 2 {
		first, last := token[0], token[len(token)-1]
		if (first == '\'' || first == '"') && first == last {
			return token[1 : len(token)-1]
		}
	}
	return token
}
