package lsp

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"layoutlex/internal/parse"
)

type published struct {
	method string
	params *protocol.PublishDiagnosticsParams
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := parse.NewConfig(parse.Options{Delimiter: "#", TabWidth: 4, TrimComments: true})
	require.NoError(t, err)
	return NewServer(Options{Parse: cfg, WarnControls: true, Version: "test"})
}

func recordingContext(out *[]published) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			p, _ := params.(*protocol.PublishDiagnosticsParams)
			*out = append(*out, published{method: method, params: p})
		},
	}
}

func testURI(t *testing.T, name string) protocol.DocumentUri {
	t.Helper()
	return pathToURI(filepath.Join(t.TempDir(), name))
}

func openDoc(t *testing.T, s *Server, ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	t.Helper()
	err := s.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "plaintext", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	s := newTestServer(t)
	res, err := s.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	result, ok := res.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "layoutlex", result.ServerInfo.Name)
	require.NotNil(t, result.ServerInfo.Version)
	assert.Equal(t, "test", *result.ServerInfo.Version)
	assert.Equal(t, true, result.Capabilities.HoverProvider)

	sync, ok := result.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *sync.Change)

	sem, ok := result.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, SemanticTokenTypes, sem.Legend.TokenTypes)
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	s := newTestServer(t)
	var out []published
	ctx := recordingContext(&out)
	uri := testURI(t, "mixed.txt")

	openDoc(t, s, ctx, uri, "a\r\nb\n")

	require.Len(t, out, 1)
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, out[0].method)
	require.NotNil(t, out[0].params)
	assert.Equal(t, uri, out[0].params.URI)

	diags := out[0].params.Diagnostics
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *d.Severity)
	assert.Equal(t, "LEX1004", d.Code.Value)
	assert.Equal(t, protocol.Position{Line: 1, Character: 1}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 2, Character: 0}, d.Range.End)
	require.Len(t, d.RelatedInformation, 1)
	assert.Equal(t, uri, d.RelatedInformation[0].Location.URI)
}

func TestDidChangeClearsDiagnostics(t *testing.T) {
	s := newTestServer(t)
	var out []published
	ctx := recordingContext(&out)
	uri := testURI(t, "fix.txt")

	openDoc(t, s, ctx, uri, "x \n")
	require.Len(t, out, 1)
	require.Len(t, out[0].params.Diagnostics, 1)

	err := s.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "x\n"}},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.NotNil(t, out[1].params.Diagnostics)
	assert.Empty(t, out[1].params.Diagnostics)

	doc, ok := s.document(uri)
	require.True(t, ok)
	assert.Equal(t, "x\n", doc.text)
	assert.Equal(t, protocol.Integer(2), doc.version)
}

func TestDidCloseForgetsDocument(t *testing.T) {
	s := newTestServer(t)
	var out []published
	ctx := recordingContext(&out)
	uri := testURI(t, "gone.txt")

	openDoc(t, s, ctx, uri, "a \n")
	require.NoError(t, s.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))

	_, ok := s.document(uri)
	assert.False(t, ok)
	require.Len(t, out, 2)
	assert.Empty(t, out[1].params.Diagnostics)

	hover, err := s.TextDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestNilNotifyIsIgnored(t *testing.T) {
	s := newTestServer(t)
	uri := testURI(t, "quiet.txt")
	openDoc(t, s, &glsp.Context{}, uri, "a \n")
	openDoc(t, s, nil, uri, "a \n")
	_, ok := s.document(uri)
	assert.True(t, ok)
}

func TestHoverShowsCommentBlock(t *testing.T) {
	s := newTestServer(t)
	uri := testURI(t, "doc.py")
	src := strings.Join([]string{
		"# Adds one.",
		"#",
		"# Returns the sum.",
		"def inc(x):",
		"    return x + 1",
		"",
	}, "\n")
	openDoc(t, s, nil, uri, src)

	hover, err := s.TextDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 3, Character: 5},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)

	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	assert.Equal(t, "Adds one.\n\nReturns the sum.", content.Value)
	require.NotNil(t, hover.Range)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 3, Character: 0},
		End:   protocol.Position{Line: 3, Character: 11},
	}, *hover.Range)

	// строка без комментария над ней
	hover, err = s.TextDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 4, Character: 6},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestSemanticTokensFull(t *testing.T) {
	s := newTestServer(t)
	uri := testURI(t, "sem.py")
	openDoc(t, s, nil, uri, "  # note\nx = 42 \u00e9\n")

	res, err := s.TextDocumentSemanticTokensFull(nil, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Equal(t, []protocol.UInteger{
		0, 2, 6, semComment, 0,
		1, 0, 1, semVariable, 0,
		0, 2, 1, semOperator, 0,
		0, 2, 2, semNumber, 0,
		0, 3, 1, semString, 0,
	}, res.Data)
}

func TestSemanticTokensUnknownDocument(t *testing.T) {
	s := newTestServer(t)
	res, err := s.TextDocumentSemanticTokensFull(nil, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///nope"},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Data)
}
