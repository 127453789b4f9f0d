package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layoutlex/internal/diag"
	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

func findCode(bag *diag.Bag, code diag.Code) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func TestTokenizeFileWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFhi\r\n"), 0o600))

	res, err := Tokenize(path, TokenizeOptions{MaxDiagnostics: 10})
	require.NoError(t, err)
	require.NotNil(t, res.Lex)
	assert.Equal(t, "hi\r\n", res.File.Content)
	assert.NotZero(t, res.File.Flags&source.FileHadBOM)

	toks := res.Tokens()
	require.Len(t, toks, 2)
	assert.Equal(t, token.Symbol, toks[0].Kind)
	assert.Equal(t, token.LineEnding, toks[1].Kind)
	assert.Equal(t, "\r\n", toks[1].Text())
	assert.Zero(t, res.Bag.Len())
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(filepath.Join(t.TempDir(), "nope"), TokenizeOptions{})
	require.Error(t, err)
}

func TestTokenizeSourceControls(t *testing.T) {
	res := TokenizeSource("ctl", []byte("a\x00\x01b"), TokenizeOptions{WarnControls: true})
	require.NotNil(t, res.Lex)
	assert.Len(t, res.Tokens(), 3)
	assert.True(t, res.File.Flags&source.FileVirtual != 0)

	warns := findCode(res.Bag, diag.LexControlBytes)
	require.Len(t, warns, 1)
	assert.Equal(t, "\x00\x01", warns[0].Primary.Text)
	assert.Equal(t, diag.SevWarning, warns[0].Severity)
}

func TestCheckMixedLineEndingsAndTrailingSpace(t *testing.T) {
	res := TokenizeSource("mixed", []byte("a\r\nb\nc \n"), TokenizeOptions{Lint: true})
	require.NotNil(t, res.Lex)

	mixed := findCode(res.Bag, diag.LexMixedLineEndings)
	require.Len(t, mixed, 1)
	assert.Equal(t, "\n", mixed[0].Primary.Text)
	assert.Equal(t, uint32(1), mixed[0].Primary.Line)
	assert.Equal(t, uint32(1), mixed[0].Primary.Pos)
	require.Len(t, mixed[0].Notes, 1)
	assert.Equal(t, "\r\n", mixed[0].Notes[0].Span.Text)

	trailing := findCode(res.Bag, diag.LexTrailingSpace)
	require.Len(t, trailing, 1)
	assert.Equal(t, " ", trailing[0].Primary.Text)
	assert.Equal(t, uint32(2), trailing[0].Primary.Line)

	assert.Equal(t, 3, LineCount(res.Lex))
	assert.False(t, res.Bag.HasErrors())
}

func TestCheckSplitsMergedEndings(t *testing.T) {
	res := TokenizeSource("lfcr", []byte("a\n\rb"), TokenizeOptions{Lint: true})
	require.NotNil(t, res.Lex)
	require.Len(t, res.Tokens(), 3)

	mixed := findCode(res.Bag, diag.LexMixedLineEndings)
	require.Len(t, mixed, 1)
	assert.Equal(t, "\r", mixed[0].Primary.Text)
	assert.Equal(t, uint32(1), mixed[0].Primary.Line)
	assert.Equal(t, uint32(0), mixed[0].Primary.Pos)
	assert.Equal(t, 3, LineCount(res.Lex))
}

func TestCheckSingleStyleIsQuiet(t *testing.T) {
	res := TokenizeSource("crlf", []byte("a\r\n\r\nb\r\n"), TokenizeOptions{Lint: true})
	require.NotNil(t, res.Lex)
	assert.Zero(t, res.Bag.Len())
	assert.Equal(t, 3, LineCount(res.Lex))
}

func TestLineCountEmpty(t *testing.T) {
	res := TokenizeSource("empty", nil, TokenizeOptions{})
	require.NotNil(t, res.Lex)
	assert.Zero(t, LineCount(res.Lex))
}
