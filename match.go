package normst

import "strings"

// Wildcards recognized in patterns
const (
	// LineWildcard is an elision line. It matches zero or more complete
	// lines of actual text.
	LineWildcard = "..."
	// InlineWildcard matches zero or more characters within one line.
	InlineWildcard = "[..]"
)

// LineMatches reports whether the actual line satisfies the pattern line.
// The pattern may contain InlineWildcard. Placeholders disabled in r are
// removed from the pattern before matching, actual is expected to be
// redacted already.
func LineMatches(actual, pattern string, r *Redactions) bool {
	if actual == pattern {
		return true
	}
	pattern = r.Clear(pattern)
	if actual == pattern {
		return true
	}
	sections := strings.Split(pattern, InlineWildcard)
	if len(sections) == 1 {
		return false
	}
	rest, ok := strings.CutPrefix(actual, sections[0])
	if !ok {
		return false
	}
	last := len(sections) - 1
	for _, sec := range sections[1:last] {
		i := strings.Index(rest, sec)
		if i < 0 {
			return false
		}
		rest = rest[i+len(sec):]
	}
	// empty tail section is a trailing wildcard that takes any rest
	return strings.HasSuffix(rest, sections[last])
}
