package domain

import (
	"regexp"
	"strings"
)

// Matcher is a composable predicate over normalized device fields.
// Matchers must be pure: same Fields, same answer.
type Matcher func(f Fields) bool

// Equals matches when field equals one of values exactly.
// Values are compared against the lowercased field, so pass them lowercase.
func Equals(field Field, values ...string) Matcher {
	return func(f Fields) bool {
		v := f.Get(field)
		for _, want := range values {
			if v == want {
				return true
			}
		}
		return false
	}
}

// Contains matches when field contains any of subs.
func Contains(field Field, subs ...string) Matcher {
	return func(f Fields) bool {
		v := f.Get(field)
		if v == "" {
			return false
		}
		for _, sub := range subs {
			if strings.Contains(v, sub) {
				return true
			}
		}
		return false
	}
}

// HasPrefix matches when field starts with any of prefixes.
func HasPrefix(field Field, prefixes ...string) Matcher {
	return func(f Fields) bool {
		v := f.Get(field)
		if v == "" {
			return false
		}
		for _, p := range prefixes {
			if strings.HasPrefix(v, p) {
				return true
			}
		}
		return false
	}
}

// MatchesAny matches when field matches any of the patterns. Patterns are
// compiled once, when the matcher is built; an invalid pattern panics at
// package init rather than at classification time.
func MatchesAny(field Field, patterns ...string) Matcher {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return func(f Fields) bool {
		v := f.Get(field)
		if v == "" {
			return false
		}
		for _, re := range res {
			if re.MatchString(v) {
				return true
			}
		}
		return false
	}
}

// AnyOf matches when at least one of ms matches. Evaluation stops at the
// first match.
func AnyOf(ms ...Matcher) Matcher {
	return func(f Fields) bool {
		for _, m := range ms {
			if m(f) {
				return true
			}
		}
		return false
	}
}

// AllOf matches when every one of ms matches. An empty AllOf matches nothing.
func AllOf(ms ...Matcher) Matcher {
	return func(f Fields) bool {
		if len(ms) == 0 {
			return false
		}
		for _, m := range ms {
			if !m(f) {
				return false
			}
		}
		return true
	}
}

// Not inverts m. A non-present device still matches nothing.
func Not(m Matcher) Matcher {
	return func(f Fields) bool {
		if !f.Present {
			return false
		}
		return !m(f)
	}
}

// Unless matches when m matches and veto does not. The veto is evaluated
// first: it always wins over m.
func Unless(m, veto Matcher) Matcher {
	return func(f Fields) bool {
		if veto(f) {
			return false
		}
		return m(f)
	}
}

// present guards a matcher so that a nil device never matches.
func present(m Matcher) Matcher {
	return func(f Fields) bool {
		return f.Present && m(f)
	}
}
