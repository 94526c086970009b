package linediff

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	ls := Lines("a\nb\nc\n", "a\nx\nc\n")
	want := []Line{
		{Equal, "a"},
		{Delete, "b"},
		{Insert, "x"},
		{Equal, "c"},
	}
	if diff := cmp.Diff(want, ls); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if !Changed(ls) {
		t.Error("diff not reported as changed")
	}
}

func TestLines_equal(t *testing.T) {
	ls := Lines("a\r\nb", "a\r\nb")
	if Changed(ls) {
		t.Errorf("equal texts changed: %v", ls)
	}
	if len(ls) != 2 || ls[0].Text != "a" || ls[1].Text != "b" {
		t.Errorf("unexpected lines %v", ls)
	}
}

func TestWrite(t *testing.T) {
	defer func(nc bool) { color.NoColor = nc }(color.NoColor)
	color.NoColor = true
	var sb strings.Builder
	if err := Write(&sb, "Hello\nMoon\n", "Hello\nWorld\n"); err != nil {
		t.Fatal(err)
	}
	const want = " Hello\n-Moon\n+World\n"
	if got := sb.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := String("x", "x"); got != " x\n" {
		t.Errorf("String: %q", got)
	}
}
