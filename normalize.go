package normst

import (
	"strings"

	"git.fractalqb.de/fractalqb/icontainer"
)

// NormalizeText rewrites actual so that it adopts the wildcard syntax of
// pattern wherever pattern matches. Matched lines are replaced by their
// pattern lines, elided runs by a single elision line. At the first line
// that does not match normalization gives up and the rest of actual is
// copied verbatim. Actual text is redacted with r before matching.
//
// NormalizeText(actual, pattern, r) == pattern iff actual matches pattern.
func NormalizeText(actual, pattern string, r *Redactions) string {
	if actual == pattern {
		return actual
	}
	actual = r.Redact(actual)
	alines := SplitLines(actual)
	ai := 0
	var out strings.Builder
	out.Grow(len(actual))
	pending := patternQueue(pattern)
NEXT_PATTERN_LINE:
	for pending.Len() > 0 {
		pl := pending.Front()
		pending.DropFront(1)
		if !pl.elision() {
			if ai >= len(alines) || !LineMatches(alines[ai], pl.text, r) {
				break
			}
			out.WriteString(pl.text)
			ai++
			continue
		}
		if pending.Len() == 0 {
			out.WriteString(pl.text)
			ai = len(alines)
			break
		}
		// Elide up to the earliest line matching the anchor, the anchor
		// itself is matched in the next iteration.
		anchor := pending.Front()
		for k, al := range alines[ai:] {
			if LineMatches(al, anchor.text, r) {
				out.WriteString(pl.text)
				ai += k
				continue NEXT_PATTERN_LINE
			}
		}
		break
	}
	for _, al := range alines[ai:] {
		out.WriteString(al)
	}
	return out.String()
}

type patternLine struct {
	icontainer.SListNode[*patternLine]
	text string
}

func patternQueue(pattern string) *icontainer.SList[*patternLine] {
	lines := SplitLines(pattern)
	pls := make([]*patternLine, len(lines))
	for i, l := range lines {
		pls[i] = &patternLine{text: l}
	}
	return icontainer.NewSList(pls...)
}

func (pl *patternLine) elision() bool { return lineBody(pl.text) == LineWildcard }
