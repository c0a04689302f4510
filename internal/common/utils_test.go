package common

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces and tabs", "a  \t b", "a b"},
		{"keeps single newline", "line one\nline two", "line one\nline two"},
		{"collapses blank lines to one", "para one\n\n\n\npara two", "para one\n\npara two"},
		{"trims leading and trailing space", "  hello \n", "hello"},
		{"empty input", "   \n\n  ", ""},
		{"space around newline", "a \n b", "a\nb"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeWhitespace(tc.in); got != tc.want {
				t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	if got := CountWords("one two  three\nfour"); got != 4 {
		t.Errorf("CountWords() = %d, want 4", got)
	}
	if got := CountWords("   "); got != 0 {
		t.Errorf("CountWords() = %d, want 0", got)
	}
}

func TestContentHashIsStable(t *testing.T) {
	a := ContentHash([]byte("document"))
	b := ContentHash([]byte("document"))
	if a != b {
		t.Error("same input hashed differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
	if a == ContentHash([]byte("documents")) {
		t.Error("different inputs produced the same hash")
	}
}
