// Package mcp exposes a QueryEngine as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/morphfst/internal/logging"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/ports"
	"github.com/aretw0/morphfst/pkg/realizer"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StatsURI is the resource holding the automaton summary.
const StatsURI = "morphfst://stats"

// RealizeResponse is the structured result of the realize tool.
type RealizeResponse struct {
	Query  string            `json:"query" jsonschema_description:"The query as received"`
	Output string            `json:"output,omitempty" jsonschema_description:"The realized form, empty on failure"`
	Status domain.WalkStatus `json:"status" jsonschema_description:"Terminal state of the walk"`
	Steps  []realizer.Step   `json:"steps,omitempty" jsonschema_description:"Consumed symbols, when tracing is supported"`
}

// Tracer is implemented by engines able to report the walk of a query.
type Tracer interface {
	Trace(ctx context.Context, query string) (*realizer.Trace, error)
}

// Server wraps a QueryEngine and exposes it as an MCP Server.
type Server struct {
	engine    ports.QueryEngine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.QueryEngine, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("morphfst-mcp", version),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: realize
	realizeTool := mcp.NewTool("realize",
		mcp.WithDescription("Realize an inflected form. The query is WORD+TAG+TAG..., e.g. ser+1S+soy."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Query in WORD+TAG form")),
		mcp.WithOutputSchema[RealizeResponse](),
	)
	s.mcpServer.AddTool(realizeTool, mcp.NewStructuredToolHandler(s.handleRealize))

	// TOOL: inspect
	s.mcpServer.AddTool(mcp.NewTool("inspect",
		mcp.WithDescription("Summarise the loaded automaton (states, arcs, final states)."),
	), s.handleInspect)
}

func (s *Server) handleRealize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RealizeResponse, error) {
	query, _ := args["query"].(string)
	resp := RealizeResponse{Query: query}

	if t, ok := s.engine.(Tracer); ok {
		tr, err := t.Trace(ctx, query)
		if tr != nil {
			resp.Status = tr.Status
			resp.Steps = tr.Steps
			resp.Output = tr.Output
		}
		if err != nil {
			return resp, s.toolError(err)
		}
		return resp, nil
	}

	out, err := s.engine.Realize(ctx, query)
	if err != nil {
		return resp, s.toolError(err)
	}
	resp.Output = out
	resp.Status = domain.WalkSucceeded
	return resp, nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.statsJSON(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// toolError logs failures that are not the query's fault.
func (s *Server) toolError(err error) error {
	if !errors.Is(err, domain.ErrEmptyQuery) && !errors.Is(err, domain.ErrNoPath) && !errors.Is(err, domain.ErrIncompleteMatch) {
		s.logger.Error("MCP realize failed", "error", err)
	}
	return err
}

func (s *Server) statsJSON(ctx context.Context) (string, error) {
	fst, err := s.engine.Inspect(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(fst.Stats())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Server) registerResources() {
	// EXPOSE: morphfst://stats
	s.mcpServer.AddResource(mcp.NewResource(StatsURI, "Automaton statistics",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.statsJSON(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect automaton: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      StatsURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}
