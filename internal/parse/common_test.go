package parse

import "testing"

func TestSymbol(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"!", ""},
		{"abc_09 x", "abc_09"},
		{"_", "_"},
		{"你好", ""},
	}
	for _, tt := range tests {
		got, _, ok := FromString(tt.in, nil).Symbol()
		if ok != (tt.want != "") || got.Text != tt.want {
			t.Errorf("Symbol(%q) = %q,%v", tt.in, got.Text, ok)
		}
	}
}

func TestExactSymbol(t *testing.T) {
	c := FromString("format x", nil)
	if _, rest, ok := c.ExactSymbol("for"); ok || rest != c {
		t.Fatalf("ExactSymbol matched a prefix of a longer symbol")
	}
	got, rest, ok := c.ExactSymbol("format")
	if !ok || got.Text != "format" || rest.Text() != " x" {
		t.Fatalf("ExactSymbol = %q,%q,%v", got.Text, rest.Text(), ok)
	}
}

func TestExact(t *testing.T) {
	tests := []struct {
		in, s string
		ok    bool
		rest  string
	}{
		{"abc", "ab", true, "c"},
		{"abc", "b", false, "abc"},
		{"\r\n", "\r", false, "\r\n"},
		{"\r\r", "\r", true, "\r"},
		{"\r", "\r", true, ""},
		{"x\r\n", "x\r", false, "x\r\n"},
		{"\r\n", "\r\n", true, ""},
		{"abc", "", false, "abc"},
	}
	for _, tt := range tests {
		c := FromString(tt.in, nil)
		got, rest, ok := c.Exact(tt.s)
		if ok != tt.ok || rest.Text() != tt.rest {
			t.Errorf("Exact(%q, %q) = %q,%q,%v", tt.in, tt.s, got.Text, rest.Text(), ok)
		}
		if !ok && rest != c {
			t.Errorf("Exact(%q, %q) moved the cursor on a non-match", tt.in, tt.s)
		}
	}
}

func TestMarkAndWhiteMark(t *testing.T) {
	cfg := commentConfig(t, Options{Delimiter: "#"})

	if _, _, ok := FromString(" ;", cfg).Mark(';'); ok {
		t.Fatalf("Mark should not skip whitespace")
	}
	if got, _, ok := FromString("é!", cfg).Mark('é'); !ok || got.Text != "é" {
		t.Fatalf("Mark(é) = %q,%v", got.Text, ok)
	}

	got, rest, ok := FromString("  # note\n\t;x", cfg).WhiteMark(';')
	if !ok || got.Text != ";" || rest.Text() != "x" {
		t.Fatalf("WhiteMark = %q,%q,%v", got.Text, rest.Text(), ok)
	}
	if got.Line != 1 || got.Pos != 1 {
		t.Fatalf("WhiteMark position = %d:%d", got.Line, got.Pos)
	}

	c := FromString("  x", cfg)
	if _, rest, ok := c.WhiteMark(';'); ok || rest != c {
		t.Fatalf("WhiteMark on a non-match must return the original cursor")
	}
}
