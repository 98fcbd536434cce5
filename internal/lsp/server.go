// Package lsp runs the Language Server Protocol endpoint: JSON-RPC over
// stdio, request dispatch, and notification delivery. All session state
// lives in the session package; handlers compute notification batches under
// the session lock and send them after it is released.
package lsp

import (
	"context"
	"errors"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"slice-language-server/internal/session"
	"slice-language-server/internal/version"
)

const serverName = "slice-language-server"

// Server is the LSP endpoint for one editor connection.
type Server struct {
	session *session.Session
	logger  *zap.Logger
	conn    jsonrpc2.Conn

	shutdownRequested bool
}

// NewServer creates a server around the given session.
func NewServer(sess *session.Session, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{session: sess, logger: logger}
}

// RunStdio serves LSP requests over the process stdio until the client
// disconnects or sends exit.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.Run(ctx, jsonrpc2.NewStream(stdrwc{}))
}

// Run serves LSP requests from the given stream.
func (s *Server) Run(ctx context.Context, stream jsonrpc2.Stream) error {
	conn := jsonrpc2.NewConn(stream)
	s.conn = conn
	conn.Go(ctx, s.handle)
	<-conn.Done()
	if err := conn.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Debug("handling request", zap.String("method", req.Method()))

	switch req.Method() {
	case protocol.MethodInitialize:
		return s.initialize(ctx, reply, req)
	case protocol.MethodInitialized:
		return s.initialized(ctx, reply)
	case protocol.MethodShutdown:
		s.shutdownRequested = true
		return reply(ctx, nil, nil)
	case protocol.MethodExit:
		if !s.shutdownRequested {
			s.logger.Warn("exit received without a preceding shutdown request")
		}
		err := reply(ctx, nil, nil)
		if closeErr := s.conn.Close(); err == nil {
			err = closeErr
		}
		return err
	case protocol.MethodWorkspaceDidChangeConfiguration:
		return s.didChangeConfiguration(ctx, reply, req)
	case protocol.MethodTextDocumentDidOpen:
		return s.didOpen(ctx, reply, req)
	case protocol.MethodTextDocumentDidSave:
		return s.didSave(ctx, reply, req)
	case protocol.MethodTextDocumentDefinition:
		return s.definition(ctx, reply, req)
	case protocol.MethodTextDocumentHover:
		return s.hover(ctx, reply, req)
	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func capabilities() protocol.ServerCapabilities {
	return protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindFull,
			Save:      &protocol.SaveOptions{IncludeText: false},
		},
		DefinitionProvider: true,
		HoverProvider:      true,
		Workspace: &protocol.ServerCapabilitiesWorkspace{
			WorkspaceFolders: &protocol.ServerCapabilitiesWorkspaceFolders{
				Supported:           true,
				ChangeNotifications: true,
			},
		},
	}
}

func (s *Server) initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := unmarshalParams(req, &params); err != nil {
		return reply(ctx, nil, err)
	}

	rootPath, _ := sanitizedFilePath(params.RootURI)
	if err := s.session.Initialize(rootPath, params.InitializationOptions); err != nil {
		// Startup contract violation: refuse to start.
		s.logger.Error("initialization failed", zap.Error(err))
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InternalError, "%v", err))
	}

	result := protocol.InitializeResult{
		Capabilities: capabilities(),
		ServerInfo: &protocol.ServerInfo{
			Name:    serverName,
			Version: version.Version,
		},
	}
	return reply(ctx, result, nil)
}

// initialized runs the first full compilation. The client is ready for
// notifications from this point on.
func (s *Server) initialized(ctx context.Context, reply jsonrpc2.Replier) error {
	s.logClient(ctx, protocol.MessageTypeLog, "server initialized")
	s.compileAndPublishAll(ctx)
	return reply(ctx, nil, nil)
}

// compileAndPublishAll recompiles every configuration set and publishes each
// set's diagnostics individually.
func (s *Server) compileAndPublishAll(ctx context.Context) {
	s.logClient(ctx, protocol.MessageTypeLog, "publishing diagnostics for all configuration sets")
	for _, batch := range s.session.CompileAll(ctx) {
		s.publishBatch(ctx, batch)
	}
}

func (s *Server) didChangeConfiguration(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logClient(ctx, protocol.MessageTypeLog, "detected change in server configuration")

	var params protocol.DidChangeConfigurationParams
	if err := unmarshalParams(req, &params); err != nil {
		return reply(ctx, nil, err)
	}

	// A configuration change can impact any file in the workspace: clear
	// every published diagnostic, replace the sets, then recompile all.
	tracked := s.session.TrackedFiles()
	s.session.ReplaceFromSettings(params.Settings)

	clears := newBatchClearing(tracked)
	s.publishBatch(ctx, clears)
	s.compileAndPublishAll(ctx)
	return reply(ctx, nil, nil)
}

func (s *Server) didOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return reply(ctx, nil, err)
	}
	s.handleFileChange(ctx, params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

func (s *Server) didSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return reply(ctx, nil, err)
	}
	s.handleFileChange(ctx, params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

// handleFileChange recompiles the configuration sets covering the changed
// file and publishes the resulting diagnostics. Files outside every set are
// ignored.
func (s *Server) handleFileChange(ctx context.Context, docURI protocol.DocumentURI) {
	path, ok := sanitizedFilePath(docURI)
	if !ok {
		s.logger.Warn("unsupported file path", zap.String("uri", string(docURI)))
		return
	}

	batch, affected := s.session.HandleFileChange(ctx, path)
	if !affected {
		s.logger.Debug("file is not covered by any configuration set", zap.String("path", path))
		return
	}
	s.logClient(ctx, protocol.MessageTypeLog, "publishing diagnostics for changed file "+path)
	s.publishBatch(ctx, batch)
}

func (s *Server) definition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DefinitionParams
	if err := unmarshalParams(req, &params); err != nil {
		return reply(ctx, nil, err)
	}

	docURI := params.TextDocument.URI
	path, ok := sanitizedFilePath(docURI)
	if !ok {
		s.logger.Warn("unsupported uri", zap.String("uri", string(docURI)))
		return reply(ctx, nil, nil)
	}

	span, tracked := s.session.Definition(path, toLocation(params.Position))
	if !tracked {
		s.logger.Debug("file is not tracked", zap.String("path", path))
		return reply(ctx, nil, nil)
	}
	if span == nil {
		return reply(ctx, nil, nil)
	}
	return reply(ctx, protocol.Location{URI: docURI, Range: toRange(*span)}, nil)
}

func (s *Server) hover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := unmarshalParams(req, &params); err != nil {
		return reply(ctx, nil, err)
	}

	docURI := params.TextDocument.URI
	path, ok := sanitizedFilePath(docURI)
	if !ok {
		s.logger.Warn("unsupported uri", zap.String("uri", string(docURI)))
		return reply(ctx, nil, nil)
	}

	message, tracked := s.session.Hover(path, toLocation(params.Position))
	if !tracked {
		s.logger.Debug("file is not tracked", zap.String("path", path))
		return reply(ctx, nil, nil)
	}
	if message == "" {
		return reply(ctx, nil, nil)
	}
	result := protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.PlainText, Value: message},
	}
	return reply(ctx, result, nil)
}

// logClient mirrors a log line to the editor. Best effort: delivery failures
// only reach the local log.
func (s *Server) logClient(ctx context.Context, typ protocol.MessageType, message string) {
	s.logger.Info(message)
	if s.conn == nil {
		return
	}
	params := &protocol.LogMessageParams{Type: typ, Message: message}
	if err := s.conn.Notify(ctx, protocol.MethodWindowLogMessage, params); err != nil {
		s.logger.Warn("failed to send log message", zap.Error(err))
	}
}

// stdrwc adapts process stdio to the io.ReadWriteCloser the JSON-RPC stream
// expects.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
