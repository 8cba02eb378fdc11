package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/docrank/internal/search"
	"github.com/Aman-CERP/docrank/pkg/version"
)

// Options configures a Server.
type Options struct {
	// DefaultLimit applies when a request sets no limit.
	DefaultLimit int
	// MaxLimit caps any requested limit.
	MaxLimit int
	Logger   *slog.Logger
}

// Server bridges MCP clients to a search engine.
type Server struct {
	mcp    *mcp.Server
	engine *search.Engine
	opts   Options
	logger *slog.Logger
}

// NewServer creates a server and registers its tools.
func NewServer(engine *search.Engine, opts Options) (*Server, error) {
	if engine == nil {
		return nil, errors.New("search engine is required")
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 5
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 50
	}
	if opts.MaxLimit < opts.DefaultLimit {
		opts.MaxLimit = opts.DefaultLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		engine: engine,
		opts:   opts,
		logger: logger,
	}
	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "docrank",
		Version: version.Version,
	}, nil)

	s.registerTools()
	return s, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// ListTools returns the registered tool names.
func (s *Server) ListTools() []string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	return names
}

// CallTool invokes a tool by name with decoded JSON arguments, bypassing
// the transport.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case ToolSearchDocs:
		in, err := searchInputFromArgs(args)
		if err != nil {
			return nil, err
		}
		out, err := s.searchDocs(ctx, in)
		if err != nil {
			return nil, MapError(err)
		}
		return out, nil
	case ToolIndexStatus:
		out, err := s.indexStatus(ctx)
		if err != nil {
			return nil, MapError(err)
		}
		return out, nil
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

// Serve runs the server over stdio until ctx is canceled or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Run runs the server over transport.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("mcp_server_started", slog.String("index", s.engine.Path()))

	err := s.mcp.Run(ctx, transport)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("mcp_server_stopped", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("mcp_server_stopped")
	return nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{Name: ToolSearchDocs, Description: tools[0].Description}, s.mcpSearchDocsHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: ToolIndexStatus, Description: tools[1].Description}, s.mcpIndexStatusHandler)
	s.logger.Debug("mcp_tools_registered", slog.Int("count", len(tools)))
}

func (s *Server) mcpSearchDocsHandler(ctx context.Context, _ *mcp.CallToolRequest, in SearchDocsInput) (
	*mcp.CallToolResult,
	SearchDocsOutput,
	error,
) {
	out, err := s.searchDocs(ctx, in)
	if err != nil {
		return nil, SearchDocsOutput{}, MapError(err)
	}
	return textResult(FormatResults(out.Query, out.Results)), out, nil
}

func (s *Server) mcpIndexStatusHandler(ctx context.Context, _ *mcp.CallToolRequest, _ IndexStatusInput) (
	*mcp.CallToolResult,
	IndexStatusOutput,
	error,
) {
	out, err := s.indexStatus(ctx)
	if err != nil {
		return nil, IndexStatusOutput{}, MapError(err)
	}
	return textResult(FormatStatus(out)), out, nil
}

func (s *Server) searchDocs(ctx context.Context, in SearchDocsInput) (SearchDocsOutput, error) {
	if strings.TrimSpace(in.Query) == "" {
		return SearchDocsOutput{}, NewInvalidParamsError("query cannot be empty or whitespace only")
	}
	if err := ctx.Err(); err != nil {
		return SearchDocsOutput{}, err
	}

	start := time.Now()
	requestID := uuid.NewString()[:8]
	limit := clampLimit(in.Limit, s.opts.DefaultLimit, s.opts.MaxLimit)

	results, err := s.engine.Search(search.Query{Text: in.Query, Limit: limit, Scopes: in.Scope})
	if err != nil {
		s.logger.Error("search_docs_failed",
			slog.String("request_id", requestID),
			slog.String("query", in.Query),
			slog.String("error", err.Error()))
		return SearchDocsOutput{}, err
	}

	s.logger.Info("search_docs",
		slog.String("request_id", requestID),
		slog.String("query", in.Query),
		slog.Int("limit", limit),
		slog.Int("results", len(results)),
		slog.Duration("duration", time.Since(start)))

	return SearchDocsOutput{Query: in.Query, Results: results}, nil
}

func (s *Server) indexStatus(ctx context.Context) (IndexStatusOutput, error) {
	if err := ctx.Err(); err != nil {
		return IndexStatusOutput{}, err
	}

	st, err := s.engine.Status()
	if err != nil {
		return IndexStatusOutput{}, err
	}

	out := IndexStatusOutput{
		Path:      st.Path,
		Exists:    st.Exists,
		Format:    st.Format,
		Chunks:    st.Chunks,
		Files:     st.Files,
		SizeBytes: st.Size,
	}
	if st.Exists {
		out.Modified = st.Modified.Format(time.RFC3339)
	}
	return out, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// searchInputFromArgs decodes arguments the way the SDK would: numbers
// arrive as float64, arrays as []any.
func searchInputFromArgs(args map[string]any) (SearchDocsInput, error) {
	var in SearchDocsInput

	q, ok := args["query"].(string)
	if !ok {
		return in, NewInvalidParamsError("query parameter is required and must be a string")
	}
	in.Query = q

	if l, ok := args["limit"].(float64); ok {
		in.Limit = int(l)
	}
	if scope, ok := args["scope"].([]any); ok {
		for _, v := range scope {
			str, ok := v.(string)
			if !ok {
				return in, NewInvalidParamsError(fmt.Sprintf("scope entries must be strings, got %T", v))
			}
			in.Scope = append(in.Scope, str)
		}
	}
	return in, nil
}
