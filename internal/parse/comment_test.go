package parse

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLineComment(t *testing.T) {
	tests := []struct {
		in                  string
		ok                  bool
		delim, text, ending string
		rest                string
	}{
		{"", false, "", "", "", ""},
		{"/", false, "", "", "", "/"},
		{" //", false, "", "", "", " //"},
		{"//c", true, "//", "c", "", ""},
		{"//c\r", true, "//", "c", "\r", ""},
		{"//c\r\n", true, "//", "c", "\r\n", ""},
		{"//c\r\nafter", true, "//", "c", "\r\n", "after"},
		{"//", true, "//", "", "", ""},
	}
	cfg := commentConfig(t, Options{Delimiter: "//"})
	for _, tt := range tests {
		lc, rest, ok := FromString(tt.in, cfg).LineComment()
		if ok != tt.ok || rest.Text() != tt.rest {
			t.Errorf("LineComment(%q) ok=%v rest=%q", tt.in, ok, rest.Text())
			continue
		}
		if lc.Delimiter.Text != tt.delim || lc.Text.Text != tt.text || lc.Ending.Text != tt.ending {
			t.Errorf("LineComment(%q) = %q %q %q", tt.in, lc.Delimiter.Text, lc.Text.Text, lc.Ending.Text)
		}
	}

	if _, _, ok := FromString("//c", DefaultConfig()).LineComment(); ok {
		t.Errorf("LineComment matched without a configured delimiter")
	}
}

func TestWhiteLineComments(t *testing.T) {
	tests := []struct{ in, want, rest string }{
		{"", "", ""},
		{"x", "", "x"},
		{" \r\n x", " \r\n ", "x"},
		{" \r\n //x", " \r\n //x", ""},
		{" \r\n //x\r\nx", " \r\n //x\r\n", "x"},
		{"//a\n//b\n  //c\ny", "//a\n//b\n  //c\n", "y"},
	}
	cfg := commentConfig(t, Options{Delimiter: "//"})
	for _, tt := range tests {
		got, rest, ok := FromString(tt.in, cfg).WhiteLineComments()
		if ok != (tt.want != "") || got.Text != tt.want || rest.Text() != tt.rest {
			t.Errorf("WhiteLineComments(%q) = %q,%q,%v", tt.in, got.Text, rest.Text(), ok)
		}
		// повторный пропуск ничего не находит
		if _, again, ok := rest.WhiteLineComments(); ok || again != rest {
			t.Errorf("WhiteLineComments(%q) is not idempotent", tt.in)
		}
	}
}

var blockInput = strings.Join([]string{
	"  //ignored",
	"        ",
	"\t    //four",
	"    \t//three",
	"        //two",
	"\t\t//one",
	"    \t",
}, "\n")

func TestLineCommentBlockIndentConsistency(t *testing.T) {
	cfg := commentConfig(t, Options{Delimiter: "//", TabWidth: 4})
	c := FromString(blockInput, cfg)
	block, rest := c.LineCommentBlock()

	if got, want := block.Texts(), []string{"one", "two", "three", "four"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("comments = %q, want %q", got, want)
	}
	if block.Ignored.Text != "  //ignored\n        \n" {
		t.Fatalf("ignored = %q", block.Ignored.Text)
	}
	if block.Block.Text != blockInput {
		t.Fatalf("block = %q", block.Block.Text)
	}
	one := block.Comments[0]
	if one.Line != 5 || one.Pos != 4 {
		t.Fatalf("one at %d:%d, want 5:4", one.Line, one.Pos)
	}
	if !rest.Empty() || rest.Span().Line != 6 || rest.Span().Pos != 5 {
		t.Fatalf("rest = %+v", rest.Span())
	}
}

func TestLineCommentBlockWithoutDelimiter(t *testing.T) {
	c := FromString(blockInput, DefaultConfig())
	block, rest := c.LineCommentBlock()
	if !block.Empty() || rest != c {
		t.Fatalf("expected empty extraction and unchanged cursor, got %q", block.Texts())
	}
}

func TestLineCommentBlockStopsAtAnchor(t *testing.T) {
	cfg := commentConfig(t, Options{Delimiter: "//", TabWidth: 2})
	_, c, _ := FromString("x\n  // a\n  // b\n  y", cfg).Symbol()

	block, rest := c.LineCommentBlock()
	if got, want := block.Texts(), []string{" b", " a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("comments = %q, want %q", got, want)
	}
	if block.Ignored.Text != "\n" {
		t.Fatalf("ignored = %q", block.Ignored.Text)
	}
	if rest.Text() != "y" || rest.Span().Line != 3 || rest.Span().Pos != 2 {
		t.Fatalf("rest = %+v", rest.Span())
	}
}

func TestLineCommentBlockTrim(t *testing.T) {
	cfg := commentConfig(t, Options{Delimiter: "//", TabWidth: 2, TrimComments: true})
	_, c, _ := FromString("x\n  //  a \t\n  // b\n  //\n  y", cfg).Symbol()

	block, _ := c.LineCommentBlock()
	if got, want := block.Texts(), []string{"", "b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("comments = %q, want %q", got, want)
	}
	b := block.Comments[1]
	if b.Line != 2 || b.Pos != 5 {
		t.Fatalf("trimmed comment at %d:%d, want 2:5", b.Line, b.Pos)
	}
}

func TestLineCommentBlockLineEndings(t *testing.T) {
	cfg := commentConfig(t, Options{Delimiter: "//"})

	block, _ := FromString("\t//one\r\n\t//two\r\n\t", cfg).LineCommentBlock()
	if got, want := block.Texts(), []string{"two", "one"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("CRLF comments = %q, want %q", got, want)
	}
	if !block.Ignored.Empty() || block.Ignored.Off != 0 {
		t.Fatalf("ignored = %+v", block.Ignored)
	}

	// LF CR is two line endings: the empty line between them ends the block
	c := FromString("//a\n\r//b\n\r", cfg)
	block, rest := c.LineCommentBlock()
	if !block.Empty() || rest != c {
		t.Fatalf("LFCR comments = %q", block.Texts())
	}

	block, _ = FromString("//a\r//b\r", cfg).LineCommentBlock()
	if got, want := block.Texts(), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("CR comments = %q, want %q", got, want)
	}
}

func TestLineCommentBlockMissingDelimiterStops(t *testing.T) {
	cfg := commentConfig(t, Options{Delimiter: "//"})
	block, _ := FromString("//top\n\n//a\n//b\n", cfg).LineCommentBlock()
	if got, want := block.Texts(), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("comments = %q, want %q", got, want)
	}
	if block.Ignored.Text != "//top\n\n" {
		t.Fatalf("ignored = %q", block.Ignored.Text)
	}
}

func TestConfigValidation(t *testing.T) {
	if _, err := NewConfig(Options{Delimiter: "#\n"}); !errors.Is(err, ErrInvalidDelimiter) {
		t.Fatalf("err = %v, want ErrInvalidDelimiter", err)
	}
	if _, err := NewConfig(Options{TabWidth: -1}); !errors.Is(err, ErrInvalidTabWidth) {
		t.Fatalf("err = %v, want ErrInvalidTabWidth", err)
	}
	cfg := commentConfig(t, Options{})
	if cfg.TabWidth() != DefaultTabWidth {
		t.Fatalf("TabWidth = %d", cfg.TabWidth())
	}
	if _, ok := cfg.Delimiter(); ok {
		t.Fatalf("unexpected delimiter")
	}
	for s, want := range map[string]bool{"": false, "//": true, "--": true, "a\rb": false, "#": true} {
		if got := IsValidDelimiter(s); got != want {
			t.Errorf("IsValidDelimiter(%q) = %v", s, got)
		}
	}
}
