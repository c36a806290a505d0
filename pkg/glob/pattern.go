package glob

import (
	"regexp"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/filemap/pkg/errors"
)

// RecursiveToken is the component that stands for a directory and all of
// its descendants.
const RecursiveToken = "**"

// rawBase is added to every byte that is not part of a valid UTF-8
// sequence. The result lands in the last private use plane, which lets
// regexp match such names byte for byte.
const rawBase = 0x10FF00

// Pattern is a compiled shell-style wildcard pattern
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// HasMeta reports whether s contains any wildcard character
func HasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// Compile translates a wildcard pattern into a Pattern. `*` and `?` match any
// character, path separators included, so the same Pattern can be applied to
// a single name or to a relative path.
func Compile(pattern string) (*Pattern, error) {
	var b strings.Builder
	if runtime.GOOS == "windows" {
		b.WriteString("(?i)")
	}
	b.WriteString(`^(?s:`)

	runes := []rune(escapeRaw(pattern))
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			// collapse runs of stars, they mean the same thing
			for i+1 < len(runes) && runes[i+1] == '*' {
				i++
			}
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			class, next, err := translateClass(runes, i)
			if err != nil {
				return nil, err.WithDetail("pattern", pattern)
			}
			b.WriteString(class)
			i = next
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(`)$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBadPattern, "invalid glob %q", pattern).
			WithDetail("pattern", pattern)
	}
	return &Pattern{source: pattern, re: re}, nil
}

// translateClass converts the bracket expression starting at runes[start]
// and returns the regexp class plus the index of the closing bracket.
func translateClass(runes []rune, start int) (string, int, *errors.Error) {
	j := start + 1
	if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
		j++
	}
	// a closing bracket right after the opening one is a literal member
	if j < len(runes) && runes[j] == ']' {
		j++
	}
	for j < len(runes) && runes[j] != ']' {
		j++
	}
	if j >= len(runes) {
		return "", 0, errors.New(errors.ErrBadPattern, "unterminated character class")
	}

	body := runes[start+1 : j]
	var b strings.Builder
	b.WriteByte('[')
	if len(body) > 0 && (body[0] == '!' || body[0] == '^') {
		b.WriteByte('^')
		body = body[1:]
	}
	for _, r := range body {
		if r == '-' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	b.WriteByte(']')
	return b.String(), j, nil
}

// Match reports whether name matches the whole pattern
func (p *Pattern) Match(name string) bool {
	return p.re.MatchString(escapeRaw(name))
}

// escapeRaw maps each invalid byte of s to rawBase plus its value
func escapeRaw(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(rawBase + rune(s[i]))
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// String returns the source pattern
func (p *Pattern) String() string {
	return p.source
}

// MatchString compiles pattern and matches it against name in one step
func MatchString(pattern, name string) (bool, error) {
	p, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return p.Match(name), nil
}
