package normst

import (
	"fmt"
	"slices"
	"testing"
)

func ExampleNormalizeText() {
	r := NewRedactions()
	r.Insert("[HOME]", Literal("/home/alice"))
	fmt.Println(NormalizeText(
		"start\ninput: /home/alice/x\nstep 1\nstep 2\ndone in 3.2s\n",
		"start\ninput: [HOME]/x\n...\ndone in [..]s\n",
		r,
	))
	fmt.Println(NormalizeText(
		"start\ninput: /home/alice/x\nstep 1\nfailed\n",
		"start\ninput: [HOME]/x\n...\ndone in [..]s\n",
		r,
	))
	// Output:
	// start
	// input: [HOME]/x
	// ...
	// done in [..]s
	//
	// start
	// input: [HOME]/x
	// step 1
	// failed
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name            string
		actual, pattern string
		want            string
	}{
		{"empty", "", "", ""},
		{"literals match", "Hello\nWorld", "Hello\nWorld", "Hello\nWorld"},
		{"pattern shorter", "Hello\nWorld", "Hello\n", "Hello\nWorld"},
		{"actual shorter", "Hello\n", "Hello\nWorld", "Hello\n"},
		{"all different", "Hello\nWorld", "Goodbye\nMoon", "Hello\nWorld"},
		{"middles diverge", "Hello\nWorld\nGoodbye", "Hello\nMoon\nGoodbye", "Hello\nWorld\nGoodbye"},
		{"elide delimited with inline",
			"Hello World\nHow are you?\nGoodbye World",
			"Hello [..]\n...\nGoodbye [..]",
			"Hello [..]\n...\nGoodbye [..]"},
		{"leading elide", "Hello\nWorld\nGoodbye", "...\nGoodbye", "...\nGoodbye"},
		{"trailing elide", "Hello\nWorld\nGoodbye", "Hello\n...", "Hello\n..."},
		{"middle elide", "Hello\nWorld\nGoodbye", "Hello\n...\nGoodbye", "Hello\n...\nGoodbye"},
		{"elide zero lines", "Hello\nGoodbye", "Hello\n...\nGoodbye", "Hello\n...\nGoodbye"},
		{"post elide diverge", "Hello\nSun\nAnd\nWorld", "Hello\n...\nMoon", "Hello\nSun\nAnd\nWorld"},
		{"post diverge elide", "Hello\nWorld\nGoodbye\nSir", "Hello\nMoon\nGoodbye\n...", "Hello\nWorld\nGoodbye\nSir"},
		{"inline elide", "Hello\nWorld\nGoodbye\nSir", "Hello\nW[..]d\nGoodbye\nSir", "Hello\nW[..]d\nGoodbye\nSir"},
		{"elide to first anchor",
			"a\nx\nb\ny\nb\nz",
			"a\n...\nb\nz",
			"a\n...\nb\ny\nb\nz"},
		{"empty pattern", "Hello\n", "", "Hello\n"},
		{"empty actual", "", "Hello\n", ""},
		{"empty actual elision", "", "...", "..."},
		{"crlf elision", "a\r\nb\r\nc\r\n", "a\r\n...\r\nc\r\n", "a\r\n...\r\nc\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.actual, tt.pattern, nil)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeText_idempotent(t *testing.T) {
	r := NewRedactions()
	r.Insert("[HOME]", Literal("/home/alice"))
	for _, p := range []string{
		"",
		"Hello\nWorld",
		"...\n",
		"Hello [..]\n...\nGoodbye [..]",
		"input: [HOME]\n",
		"[..]\n[..]\n...",
	} {
		if got := NormalizeText(p, p, r); got != p {
			t.Errorf("NormalizeText(%[1]q, %[1]q) = %q", p, got)
		}
	}
}

func TestNormalizeText_redactions(t *testing.T) {
	tests := []struct {
		name            string
		actual, pattern string
		redactions      map[string]Matcher
	}{
		{"literal", "Hello world!", "Hello [OBJECT]!",
			map[string]Matcher{"[OBJECT]": Literal("world")}},
		{"path", "input: /home/alice", "input: [HOME]",
			map[string]Matcher{"[HOME]": Literal("/home/alice")}},
		{"overlapping path", "a: /home/alice\nb: /home/alice/normst", "a: [A]\nb: [B]",
			map[string]Matcher{
				"[A]": Literal("/home/alice"),
				"[B]": Literal("/home/alice/normst"),
			}},
		{"disabled", "cargo", "cargo[EXE]",
			map[string]Matcher{"[EXE]": Literal("")}},
		{"regexp unnamed", "Hello world!", "Hello [OBJECT]!",
			map[string]Matcher{"[OBJECT]": MustRegexp("world")}},
		{"regexp named", "Hello world!", "Hello [OBJECT]!",
			map[string]Matcher{"[OBJECT]": MustRegexp(`(?P<redacted>world)!`)}},
		{"redaction and elision", "took 12ms\nfoo\nbar\nat 10:11:12", "took [..]ms\n...\nat [TIME]",
			map[string]Matcher{"[TIME]": MustRegexp(`\d\d:\d\d:\d\d`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRedactions()
			for p, m := range tt.redactions {
				if err := r.Insert(p, m); err != nil {
					t.Fatal(err)
				}
			}
			if got := NormalizeText(tt.actual, tt.pattern, r); got != tt.pattern {
				t.Errorf("got %q, want %q", got, tt.pattern)
			}
		})
	}
}

func TestNormalizeText_keepsRedactedTail(t *testing.T) {
	r := NewRedactions()
	r.Insert("[HOME]", Literal("/home/alice"))
	got := NormalizeText("Hello\n/home/alice\n", "Goodbye\n", r)
	if want := "Hello\n[HOME]\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPatternQueue(t *testing.T) {
	q := patternQueue("a\n...\r\nb")
	if q.Len() != 3 {
		t.Fatalf("queue has %d lines", q.Len())
	}
	var texts []string
	for pl := q.Front(); pl != nil; pl = pl.IterNext() {
		texts = append(texts, pl.text)
	}
	if want := []string{"a\n", "...\r\n", "b"}; !slices.Equal(texts, want) {
		t.Errorf("got %q, want %q", texts, want)
	}
	q.DropFront(1)
	if pl := q.Front(); q.Len() != 2 || !pl.elision() {
		t.Errorf("front after drop: %q, len %d", pl.text, q.Len())
	}
	if q := patternQueue(""); q.Len() != 0 || q.Front() != nil {
		t.Error("empty pattern has lines")
	}
}
