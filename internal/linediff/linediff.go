// Package linediff renders line based diffs of a pattern and a normalized
// actual text.
package linediff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/fractalqb/normst"
)

type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

// Line is one line of a diff. Text has no line terminator.
type Line struct {
	Op   Op
	Text string
}

// Lines computes the line diff from pattern to actual. Deleted lines are
// in pattern only, inserted lines in actual only.
func Lines(pattern, actual string) []Line {
	dmp := diffpatch.New()
	pc, ac, lines := dmp.DiffLinesToChars(pattern, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(pc, ac, false), lines)
	var res []Line
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		for _, l := range normst.SplitLines(d.Text) {
			l = strings.TrimSuffix(l, "\n")
			res = append(res, Line{Op: op, Text: strings.TrimSuffix(l, "\r")})
		}
	}
	return res
}

// Changed reports whether ls has other than Equal lines.
func Changed(ls []Line) bool {
	for _, l := range ls {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

var (
	deleteColor = color.New(color.FgRed)
	insertColor = color.New(color.FgGreen)
)

// Write writes the diff of pattern and actual to w, lines prefixed with
// '-' (pattern only), '+' (actual only) or ' '. Colors are used unless
// color.NoColor is set.
func Write(w io.Writer, pattern, actual string) (err error) {
	for _, l := range Lines(pattern, actual) {
		switch l.Op {
		case Delete:
			_, err = deleteColor.Fprintf(w, "-%s\n", l.Text)
		case Insert:
			_, err = insertColor.Fprintf(w, "+%s\n", l.Text)
		default:
			_, err = fmt.Fprintf(w, " %s\n", l.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// String returns the diff as Write would write it.
func String(pattern, actual string) string {
	var sb strings.Builder
	Write(&sb, pattern, actual)
	return sb.String()
}
