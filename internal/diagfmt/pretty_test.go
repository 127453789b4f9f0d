package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"layoutlex/internal/diag"
	"layoutlex/internal/source"
)

// spanAt cuts [off, off+n) out of content with real line/pos coordinates.
func spanAt(t *testing.T, content string, off, n int) source.Span {
	t.Helper()
	_, right, err := source.NewSpan(content).SplitChecked(off)
	if err != nil {
		t.Fatalf("split at %d: %v", off, err)
	}
	left, _, err := right.SplitChecked(n)
	if err != nil {
		t.Fatalf("split at %d+%d: %v", off, n, err)
	}
	return left
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := "let x = \"a\x01b\"\n"
	fileID := fs.AddVirtual("/home/user/project/src/test.txt", []byte(content))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	d := diag.New(diag.SevWarning, diag.LexControlBytes, spanAt(t, content, 10, 1), "control bytes in string")
	d.File = fileID
	bag.Add(d)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.txt:1:11"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.txt:1:11"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.txt:1:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode}); err != nil {
				t.Fatalf("Pretty: %v", err)
			}
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "WARNING") {
				t.Error("Expected WARNING in output")
			}
			if !strings.Contains(output, "LEX1002") {
				t.Error("Expected LEX1002 code in output")
			}
			if !strings.Contains(output, "control bytes in string") {
				t.Error("Expected message in output")
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "Short path - as is", path: "test.txt", expected: "test.txt:1:1"},
		{name: "Long absolute path - basename", path: "/very/long/absolute/path/to/some/nested/directory/file.txt", expected: "file.txt:1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			content := "x = 42\n"
			fileID := fs.AddVirtual(tt.path, []byte(content))

			bag := diag.NewBag(10)
			d := diag.New(diag.SevInfo, diag.LexInfo, spanAt(t, content, 0, 1), "test info")
			d.File = fileID
			bag.Add(d)

			var buf bytes.Buffer
			if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto}); err != nil {
				t.Fatalf("Pretty: %v", err)
			}
			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, buf.String())
			}
		})
	}
}

func TestPrettyUnderlineKeepsTabs(t *testing.T) {
	fs := source.NewFileSet()
	content := "\tab  cd\n"
	fs.AddVirtual("f.txt", []byte(content))

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevInfo, diag.LexTrailingSpace, spanAt(t, content, 5, 2), "marked"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "f.txt:1:6: INFO LEX1005: marked\n" +
		"  |\n" +
		"1 | \tab  cd\n" +
		"  | \t    ^^\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	if got := underline("日本 x", len("日本 "), 1, fmtPlain); got != "     ^" {
		t.Fatalf("underline = %q", got)
	}
	if got := underline("abc", 3, 0, fmtPlain); got != "   ^" {
		t.Fatalf("underline at end = %q", got)
	}
}

func fmtPlain(a ...interface{}) string {
	var sb strings.Builder
	for _, v := range a {
		sb.WriteString(v.(string))
	}
	return sb.String()
}

func TestPrettyContext(t *testing.T) {
	fs := source.NewFileSet()
	content := "one\ntwo\nthree\n"
	fs.AddVirtual("ctx.txt", []byte(content))

	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevError, diag.LexBrokenStream, spanAt(t, content, 4, 3), "middle"))
	bag.Add(diag.New(diag.SevError, diag.LexBrokenStream, spanAt(t, content, 8, 5), "last"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 2, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	output := buf.String()
	for _, want := range []string{"1 | one", "2 | two", "3 | three", "ctx.txt:2:1: ERROR LEX1003: middle", "ctx.txt:3:1: ERROR LEX1003: last"} {
		if !strings.Contains(output, want) {
			t.Errorf("missing %q in:\n%s", want, output)
		}
	}
	if strings.Contains(output, "4 |") {
		t.Errorf("context ran past the end of file:\n%s", output)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	content := "a\r\nb\nc\n"
	fs.AddVirtual("notes.txt", []byte(content))

	bag := diag.NewBag(1)
	d := diag.New(diag.SevWarning, diag.LexMixedLineEndings, spanAt(t, content, 4, 1), "LF line ending").
		WithNote(spanAt(t, content, 1, 2), "first line ending here")
	bag.Add(d)

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "note: notes.txt:1:2: first line ending here") {
		t.Fatalf("expected note with location, got:\n%s", buf.String())
	}

	buf.Reset()
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyColorAndUnknownFile(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, nil, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "<unknown>:1:1") {
		t.Errorf("expected unknown location, got:\n%s", output)
	}
	if !strings.Contains(output, "\x1b[") {
		t.Errorf("expected ANSI colour codes, got:\n%q", output)
	}
	if strings.Contains(output, "|") {
		t.Errorf("no snippet expected without a file:\n%s", output)
	}
}
