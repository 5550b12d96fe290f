package debug

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrBadPattern is returned when a pattern specification cannot be compiled.
var ErrBadPattern = errors.New("invalid namespace pattern")

// matchAll is the source of the pattern produced for absent or boolean specs.
const matchAll = ".*?"

// Pattern is a compiled namespace predicate. Two patterns are considered the
// same when their String forms are equal.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern wraps an already compiled regular expression.
func NewPattern(re *regexp.Regexp) Pattern {
	return Pattern{re: re}
}

// String returns the source expression of the pattern.
func (p Pattern) String() string {
	if p.re == nil {
		return ""
	}
	return p.re.String()
}

// MatchString reports whether the pattern occurs anywhere in namespace.
func (p Pattern) MatchString(namespace string) bool {
	return p.re != nil && p.re.MatchString(namespace)
}

// Normalize converts a pattern specification into canonical patterns.
//
// Accepted specs are nil, bool, string, Pattern, *Pattern, *regexp.Regexp and
// slices of those. Composite strings are not split here; see ParseSpec.
func Normalize(spec any) ([]Pattern, error) {
	switch v := spec.(type) {
	case nil, bool:
		return []Pattern{{re: regexp.MustCompile(matchAll)}}, nil
	case Pattern:
		return []Pattern{v}, nil
	case *Pattern:
		if v == nil {
			return Normalize(nil)
		}
		return []Pattern{*v}, nil
	case *regexp.Regexp:
		if v == nil {
			return Normalize(nil)
		}
		return []Pattern{{re: v}}, nil
	case string:
		p, err := compile(v)
		if err != nil {
			return nil, err
		}
		return []Pattern{p}, nil
	case []string:
		return normalizeEach(len(v), func(i int) any { return v[i] })
	case []Pattern:
		return normalizeEach(len(v), func(i int) any { return v[i] })
	case []*regexp.Regexp:
		return normalizeEach(len(v), func(i int) any { return v[i] })
	case []any:
		return normalizeEach(len(v), func(i int) any { return v[i] })
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrBadPattern, spec)
	}
}

func normalizeEach(n int, at func(int) any) ([]Pattern, error) {
	out := make([]Pattern, 0, n)
	for i := 0; i < n; i++ {
		ps, err := Normalize(at(i))
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}

func compile(s string) (Pattern, error) {
	var expr string
	switch {
	case len(s) > 1 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/"):
		expr = s[1 : len(s)-1]
	case strings.Contains(s, "*"):
		// legacy wildcard syntax
		expr = strings.ReplaceAll(s, "*", matchAll)
	default:
		expr = regexp.QuoteMeta(s)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w %q: %v", ErrBadPattern, s, err)
	}
	return Pattern{re: re}, nil
}

// Token is one element of a composite namespace string.
type Token struct {
	Value   string
	Negated bool
}

var separators = regexp.MustCompile(`[\s,]+`)

// ParseSpec splits a comma or whitespace separated namespace string into
// tokens. A leading '-' marks the token as negated and is stripped.
func ParseSpec(spec string) []Token {
	var tokens []Token
	for _, part := range separators.Split(spec, -1) {
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			if part = part[1:]; part == "" {
				continue
			}
			tokens = append(tokens, Token{Value: part, Negated: true})
			continue
		}
		tokens = append(tokens, Token{Value: part})
	}
	return tokens
}
