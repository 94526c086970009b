package normst

import "testing"

func TestLineMatches(t *testing.T) {
	tests := []struct {
		line, pattern string
		want          bool
	}{
		{"", "", true},
		{"", "[..]", true},
		{"hello", "hello", true},
		{"hello", "goodbye", false},
		{"hello", "[..]", true},
		{"hello", "he[..]", true},
		{"hello", "go[..]", false},
		{"hello", "[..]o", true},
		{"hello", "[..]e", false},
		{"hello", "he[..]o", true},
		{"hello", "he[..]e", false},
		{"hello", "go[..]o", false},
		{"hello", "go[..]e", false},
		{"hello", "he[..][..]lo", true},
		{"hello", "h[..]l[..]o", true},
		{"hello", "hel[..]lo", true},
		{"hello", "hell[..]lo", false},
		{"hello foo boo", "hello [..]o", true},
		{"hello world, goodbye moon", "hello [..], goodbye [..]", true},
		{"hello world, goodbye moon", "goodbye [..], goodbye [..]", false},
		{"hello world, goodbye moon", "goodbye [..], hello [..]", false},
		{"hello world, goodbye moon", "hello [..], [..] moon", true},
		{"hello world, goodbye moon", "goodbye [..], [..] moon", false},
		{"hello world, goodbye moon", "hello [..], [..] world", false},
		{"hello\n", "he[..]\n", true},
		{"hello\n", "he[..]", true},
		{"hello", "he[..]\n", false},
	}
	for _, tt := range tests {
		if got := LineMatches(tt.line, tt.pattern, nil); got != tt.want {
			t.Errorf("LineMatches(%q, %q) = %t, want %t", tt.line, tt.pattern, got, tt.want)
		}
	}
}

func TestLineMatches_trailingWildcardNeedsPrefix(t *testing.T) {
	if LineMatches("goodbye moon", "hello [..]", nil) {
		t.Error("trailing wildcard accepted a line with wrong prefix")
	}
	if LineMatches("hello moon", "hello [..] world [..]", nil) {
		t.Error("trailing wildcard accepted a line without interior section")
	}
}

func TestLineMatches_disabledPlaceholder(t *testing.T) {
	r := NewRedactions()
	if err := r.Insert("[EXE]", Literal("")); err != nil {
		t.Fatal(err)
	}
	if !LineMatches("cargo", "cargo[EXE]", r) {
		t.Error("disabled placeholder not cleared")
	}
	if !LineMatches("cargo build", "cargo[EXE] [..]", r) {
		t.Error("disabled placeholder not cleared with wildcard")
	}
	if LineMatches("cargo", "cargo[EXE]", nil) {
		t.Error("placeholder cleared without redactions")
	}
}
