package lsp

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"layoutlex/internal/parse"
)

const lsName = "layoutlex"

var log = commonlog.GetLogger("layoutlex.lsp")

// Options configures analysis of open documents.
type Options struct {
	// Parse selects the comment delimiter and tab width; nil means no comments.
	Parse          *parse.Config
	WarnControls   bool
	MaxDiagnostics int
	Version        string
}

// Server keeps the open documents and answers LSP requests over them.
type Server struct {
	opts    Options
	mu      sync.RWMutex
	docs    map[protocol.DocumentUri]*document
	handler protocol.Handler
	server  *server.Server
}

// NewServer wires the protocol handler; RunStdio starts serving.
func NewServer(opts Options) *Server {
	if opts.Parse == nil {
		opts.Parse = parse.DefaultConfig()
	}
	s := &Server{
		opts: opts,
		docs: make(map[protocol.DocumentUri]*document),
	}
	s.handler = protocol.Handler{
		Initialize:                     s.Initialize,
		Initialized:                    s.Initialized,
		Shutdown:                       s.Shutdown,
		SetTrace:                       s.SetTrace,
		TextDocumentDidOpen:            s.TextDocumentDidOpen,
		TextDocumentDidChange:          s.TextDocumentDidChange,
		TextDocumentDidClose:           s.TextDocumentDidClose,
		TextDocumentHover:              s.TextDocumentHover,
		TextDocumentSemanticTokensFull: s.TextDocumentSemanticTokensFull,
	}
	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

// RunStdio serves the protocol on stdin/stdout until the client exits.
func (s *Server) RunStdio() error {
	log.Infof("starting %s language server", lsName)
	return s.server.RunStdio()
}

// Initialize advertises full-document sync, hover and semantic tokens.
func (s *Server) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		log.Infof("client: %s", params.ClientInfo.Name)
	}
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: ptrBool(true),
		Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
	}
	capabilities.HoverProvider = true
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     SemanticTokenTypes,
			TokenModifiers: []string{},
		},
		Full: ptrBool(true),
	}
	info := &protocol.InitializeResultServerInfo{Name: lsName}
	if s.opts.Version != "" {
		info.Version = &s.opts.Version
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo:   info,
	}, nil
}

func (s *Server) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) Shutdown(ctx *glsp.Context) error {
	log.Infof("shutdown")
	return nil
}

func (s *Server) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen analyses the buffer and publishes its diagnostics.
func (s *Server) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	log.Debugf("opened %s", item.URI)
	s.update(ctx, analyze(item.URI, item.Version, item.Text, s.opts))
	return nil
}

// TextDocumentDidChange re-analyses the buffer after applying the changes.
func (s *Server) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	prev, ok := s.document(uri)
	if !ok {
		log.Warningf("change for unknown document %s", uri)
		prev = &document{uri: uri}
	}
	text := applyChanges(prev.text, params.ContentChanges)
	s.update(ctx, analyze(uri, params.TextDocument.Version, text, s.opts))
	return nil
}

// TextDocumentDidClose forgets the buffer and clears its diagnostics.
func (s *Server) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.drop(uri)
	publishDiagnostics(ctx, uri, nil)
	return nil
}

// TextDocumentHover shows the comment block of the anchor line under the cursor.
func (s *Server) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return buildHover(doc, params.Position), nil
}

// TextDocumentSemanticTokensFull classifies every token of the buffer.
func (s *Server) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return &protocol.SemanticTokens{Data: []protocol.UInteger{}}, nil
	}
	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc, s.opts.Parse)),
	}, nil
}

func (s *Server) update(ctx *glsp.Context, doc *document) {
	s.store(doc)
	publishDiagnostics(ctx, doc.uri, buildDiagnostics(doc))
}
