// Package lsp serves parse trees to editors over the Language Server
// Protocol: hover answers point queries and document symbols enumerate the
// named nodes.
package lsp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dhamidi/gramq/format"
	"github.com/dhamidi/gramq/grammar"
	"github.com/dhamidi/gramq/parse"
	"github.com/dhamidi/gramq/query"
	"github.com/dhamidi/gramq/tree"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "gramq"

var log = commonlog.GetLogger("gramq.lsp")

type document struct {
	lines  lineIndex
	result *parse.Result
}

type Server struct {
	session *parse.Session
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*document
}

func NewServer(g *grammar.Grammar, version string) *Server {
	ls := &Server{
		session: parse.NewSession(g),
		version: version,
		docs:    make(map[protocol.DocumentUri]*document),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	diagnostics := ls.update(params.TextDocument.URI, params.TextDocument.Text)
	ls.publish(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		diagnostics := ls.update(params.TextDocument.URI, textChange.Text)
		ls.publish(ctx, params.TextDocument.URI, diagnostics)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()
	return nil
}

// update reparses a document and returns its diagnostics.
func (ls *Server) update(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	doc := &document{
		lines:  newLineIndex(text),
		result: ls.session.Run(text),
	}

	ls.mu.Lock()
	ls.docs[uri] = doc
	ls.mu.Unlock()

	d := doc.result.Diagnostics()
	log.Infof("%s: %s", uri, format.Status(d, d.NodeCount))

	diagnostics := []protocol.Diagnostic{}
	if !doc.result.Success {
		severity := protocol.DiagnosticSeverityError
		source := lsName
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    doc.lines.span(d.EndOffset, d.EndOffset),
			Severity: &severity,
			Source:   &source,
			Message:  fmt.Sprintf("parsing failed [%d/%d]", d.EndOffset, d.Length),
		})
	}
	return diagnostics
}

func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *Server) document(uri protocol.DocumentUri) *document {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.docs[uri]
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := ls.document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	n, ok := query.AtPoint(doc.result.Tree, doc.lines.offset(params.Position))
	if !ok {
		return nil, nil
	}

	path := query.Path(n)
	if len(path) == 0 {
		return nil, nil
	}

	rng := doc.lines.span(n.Begin(), n.End())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: strings.Join(path, " "),
		},
		Range: &rng,
	}, nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := ls.document(params.TextDocument.URI)
	if doc == nil || doc.result.Tree.Len() == 0 {
		return nil, nil
	}
	return symbols(doc.result.Tree.Root(), doc.lines), nil
}

// symbols converts the named descendants of n; unnamed nodes are flattened.
func symbols(n tree.Node, lines lineIndex) []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	for _, child := range n.Children() {
		if child.Name() == "" {
			out = append(out, symbols(child, lines)...)
			continue
		}
		detail := summarize(child.Value())
		rng := lines.span(child.Begin(), child.End())
		out = append(out, protocol.DocumentSymbol{
			Name:           child.Name(),
			Detail:         &detail,
			Kind:           protocol.SymbolKindField,
			Range:          rng,
			SelectionRange: rng,
			Children:       symbols(child, lines),
		})
	}
	return out
}

func summarize(value string) string {
	const limit = 40
	value = strings.Join(strings.Fields(value), " ")
	if r := []rune(value); len(r) > limit {
		return string(r[:limit]) + "…"
	}
	return value
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
