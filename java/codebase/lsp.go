package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/javil/project"
)

const lsName = "javil"

// LSPServer answers workspace symbol, completion and hover requests from
// the types on a classpath. Open documents are only used to find the
// qualified name under the cursor.
type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string

	mu        sync.RWMutex
	documents map[string]string
}

func NewLSPServer(version string, classpath []string) *LSPServer {
	ls := &LSPServer{
		codebase:  New(classpath),
		version:   version,
		documents: make(map[string]string),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentCompletion: ls.textDocumentCompletion,
		TextDocumentHover:      ls.textDocumentHover,
		WorkspaceSymbol:        ls.workspaceSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) Codebase() *Codebase { return ls.codebase }

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if classpath := classpathOption(params.InitializationOptions); len(classpath) > 0 {
		ls.codebase.SetPaths(classpath)
	} else if len(ls.codebase.Paths()) == 0 {
		if root := rootDir(params); root != "" {
			if p, err := project.LoadFrom(root); err == nil {
				if entries, err := p.ClasspathEntries(); err == nil {
					ls.codebase.SetPaths(entries)
				}
			}
		}
	}

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"."},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

// classpathOption reads {"classpath": [...]} from the client's
// initialization options.
func classpathOption(options any) []string {
	m, ok := options.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := m["classpath"].([]any)
	if !ok {
		return nil
	}
	var classpath []string
	for _, entry := range list {
		if s, ok := entry.(string); ok && s != "" {
			classpath = append(classpath, s)
		}
	}
	return classpath
}

func rootDir(params *protocol.InitializeParams) string {
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			return path
		}
	}
	if params.RootPath != nil {
		return *params.RootPath
	}
	return ""
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.Load(context.Background()); err != nil {
		log.Errorf("loading classpath: %s", err)
	}
	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.setDocument(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.setDocument(params.TextDocument.URI, whole.Text)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	delete(ls.documents, params.TextDocument.URI)
	return nil
}

func (ls *LSPServer) setDocument(uri, text string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.documents[uri] = text
}

func (ls *LSPServer) document(uri string) (string, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	text, ok := ls.documents[uri]
	return text, ok
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	text, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	start, _ := qualifiedNameAt(text, params.Position)
	end := params.Position.IndexIn(text)
	if start >= end {
		return nil, nil
	}

	completions := ls.codebase.Complete(text[start:end])
	if len(completions) == 0 {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		detail := c.Detail
		insertText := c.InsertText
		format := protocol.InsertTextFormatSnippet

		item := protocol.CompletionItem{
			Label:            c.Label,
			Kind:             &kind,
			Detail:           &detail,
			InsertText:       &insertText,
			InsertTextFormat: &format,
		}
		if c.Deprecated {
			item.Tags = []protocol.CompletionItemTag{protocol.CompletionItemTagDeprecated}
		}
		items = append(items, item)
	}

	return items, nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	text, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	start, end := qualifiedNameAt(text, params.Position)
	if start >= end {
		return nil, nil
	}

	description := ls.codebase.Describe(text[start:end])
	if description == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "```java\n" + description + "\n```",
		},
	}, nil
}

func (ls *LSPServer) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	var result []protocol.SymbolInformation
	for _, s := range ls.codebase.Symbols(params.Query) {
		info := protocol.SymbolInformation{
			Name:     s.Name,
			Kind:     toSymbolKind(s.Kind),
			Location: protocol.Location{URI: typeURI(s)},
		}
		if s.Container != "" {
			containerName := s.Container
			info.ContainerName = &containerName
		}
		if s.Deprecated {
			info.Tags = []protocol.SymbolTag{protocol.SymbolTagDeprecated}
		}
		result = append(result, info)
	}
	return result, nil
}

// typeURI points at the class file a symbol was loaded from, using the
// jar: scheme for archive members.
func typeURI(s Symbol) string {
	entry := strings.TrimSuffix(strings.TrimPrefix(s.Type.JniFullNameGenericsErased(), "L"), ";") + ".class"
	if s.Type.Container() == nil {
		return entry
	}
	base := s.Type.Container().FileName
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(base)}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".jar", ".zip":
		return "jar:" + u.String() + "!/" + entry
	case ".class":
		return u.String()
	}
	u.Path = filepath.ToSlash(filepath.Join(base, filepath.FromSlash(entry)))
	return u.String()
}

// qualifiedNameAt returns the byte range of the dotted identifier that
// ends or surrounds pos.
func qualifiedNameAt(text string, pos protocol.Position) (int, int) {
	index := pos.IndexIn(text)
	start := index
	for start > 0 && isNameByte(text[start-1]) {
		start--
	}
	end := index
	for end < len(text) && isNameByte(text[end]) && text[end] != '.' {
		end++
	}
	return start, end
}

func isNameByte(b byte) bool {
	return b == '.' || b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func toProtocolKind(kind CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case CompletionKindMethod:
		return protocol.CompletionItemKindMethod
	case CompletionKindField:
		return protocol.CompletionItemKindField
	case CompletionKindClass:
		return protocol.CompletionItemKindClass
	case CompletionKindPackage:
		return protocol.CompletionItemKindModule
	default:
		return protocol.CompletionItemKindText
	}
}

func toSymbolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolKindInterface:
		return protocol.SymbolKindInterface
	case SymbolKindEnum:
		return protocol.SymbolKindEnum
	case SymbolKindMethod:
		return protocol.SymbolKindMethod
	case SymbolKindConstructor:
		return protocol.SymbolKindConstructor
	case SymbolKindField:
		return protocol.SymbolKindField
	case SymbolKindConstant:
		return protocol.SymbolKindConstant
	default:
		return protocol.SymbolKindClass
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
