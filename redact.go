package normst

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ErrPlaceholder is returned when registering a redaction under a
// placeholder that is not of the form "[NAME]".
var ErrPlaceholder = errors.New("invalid placeholder")

// Matcher recognizes a dynamic substring in actual text. The set of
// matchers is closed, use Literal or Regexp.
type Matcher interface {
	// findAll returns the byte spans of all non-overlapping matches in
	// text, in ascending order.
	findAll(text string) [][2]int
	fmt.Stringer
}

// Literal matches its verbatim text. The empty Literal matches nothing and
// disables its placeholder, see Redactions.Insert.
type Literal string

func (l Literal) findAll(text string) (spans [][2]int) {
	if l == "" {
		return nil
	}
	for off := 0; ; {
		i := strings.Index(text[off:], string(l))
		if i < 0 {
			return spans
		}
		off += i
		spans = append(spans, [2]int{off, off + len(l)})
		off += len(l)
	}
}

func (l Literal) String() string { return string(l) }

// RedactedGroup is the name of the capture group that selects the part of a
// Regexp match that gets redacted.
const RedactedGroup = "redacted"

// Regexp matches a regular expression. If the expression has a capture
// group named RedactedGroup only that group is redacted, otherwise the
// whole match.
type Regexp struct {
	rx    *regexp.Regexp
	group int
}

// NewRegexp creates a Regexp matcher from a compiled expression.
func NewRegexp(rx *regexp.Regexp) Regexp {
	return Regexp{rx: rx, group: rx.SubexpIndex(RedactedGroup)}
}

// CompileRegexp compiles expr into a Regexp matcher.
func CompileRegexp(expr string) (Regexp, error) {
	rx, err := regexp.Compile(expr)
	if err != nil {
		return Regexp{}, err
	}
	return NewRegexp(rx), nil
}

// MustRegexp is like CompileRegexp but panics if expr does not compile.
func MustRegexp(expr string) Regexp {
	return NewRegexp(regexp.MustCompile(expr))
}

func (r Regexp) findAll(text string) (spans [][2]int) {
	if r.rx == nil {
		return nil
	}
	for _, loc := range r.rx.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		if r.group > 0 {
			start, end = loc[2*r.group], loc[2*r.group+1]
		}
		// empty or non-participating group
		if start < 0 || end <= start {
			continue
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}

func (r Regexp) String() string {
	if r.rx == nil {
		return ""
	}
	return r.rx.String()
}

type redaction struct {
	placeholder string
	match       Matcher
}

// Redactions is an ordered set of placeholder to Matcher mappings. It
// replaces dynamic parts of actual text with placeholders before the text
// is matched against a pattern. The nil *Redactions is the empty set.
//
// Redactions must not be modified while it is used for normalization.
type Redactions struct {
	rs       []redaction
	disabled []string
}

func NewRedactions() *Redactions { return new(Redactions) }

func validPlaceholder(p string) bool {
	if len(p) < 3 || p[0] != '[' || p[len(p)-1] != ']' {
		return false
	}
	name := p[1 : len(p)-1]
	if name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		switch c := name[i]; {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}

// Insert registers m for placeholder. A placeholder may have more than one
// Matcher. Inserting the empty Literal disables the placeholder: Clear
// then strips it from patterns.
func (r *Redactions) Insert(placeholder string, m Matcher) error {
	if !validPlaceholder(placeholder) {
		return fmt.Errorf("%w %q: expect [NAME] with A-Z, 0-9 or _", ErrPlaceholder, placeholder)
	}
	if l, ok := m.(Literal); ok && l == "" {
		if !slices.Contains(r.disabled, placeholder) {
			r.disabled = append(r.disabled, placeholder)
		}
		return nil
	}
	r.rs = append(r.rs, redaction{placeholder: placeholder, match: m})
	// Longer literals first, so that a path wins over its parent directory.
	// Regexps keep their insertion order behind all literals.
	slices.SortStableFunc(r.rs, func(a, b redaction) int {
		al, aok := a.match.(Literal)
		bl, bok := b.match.(Literal)
		switch {
		case aok && bok:
			return len(bl) - len(al)
		case aok:
			return -1
		case bok:
			return 1
		}
		return 0
	})
	return nil
}

// Remove drops all matchers registered for placeholder.
func (r *Redactions) Remove(placeholder string) {
	if r == nil {
		return
	}
	r.rs = slices.DeleteFunc(r.rs, func(rd redaction) bool {
		return rd.placeholder == placeholder
	})
	r.disabled = slices.DeleteFunc(r.disabled, func(p string) bool {
		return p == placeholder
	})
}

// Len returns the number of registered matchers, disabled placeholders
// included.
func (r *Redactions) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rs) + len(r.disabled)
}

// Placeholders returns the registered placeholders in matching order.
func (r *Redactions) Placeholders() (res []string) {
	if r == nil {
		return nil
	}
	for _, rd := range r.rs {
		if !slices.Contains(res, rd.placeholder) {
			res = append(res, rd.placeholder)
		}
	}
	for _, p := range r.disabled {
		if !slices.Contains(res, p) {
			res = append(res, p)
		}
	}
	return res
}

// Redact replaces every substring of text recognized by a matcher with the
// matcher's placeholder.
func (r *Redactions) Redact(text string) string {
	if r == nil {
		return text
	}
	for _, rd := range r.rs {
		text = rd.redact(text)
	}
	return text
}

func (rd *redaction) redact(text string) string {
	spans := rd.match.findAll(text)
	if len(spans) == 0 {
		return text
	}
	var sb strings.Builder
	last := 0
	for _, sp := range spans {
		sb.WriteString(text[last:sp[0]])
		sb.WriteString(rd.placeholder)
		last = sp[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// Clear strips disabled placeholders from pattern.
func (r *Redactions) Clear(pattern string) string {
	if r == nil {
		return pattern
	}
	for _, p := range r.disabled {
		pattern = strings.ReplaceAll(pattern, p, "")
	}
	return pattern
}
