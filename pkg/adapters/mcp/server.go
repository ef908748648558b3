// Package mcp exposes the remote NLU endpoints as Model Context Protocol
// tools, so agent hosts can interpret utterances without linking the
// library directly.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/witgo"
	"github.com/aretw0/witgo/pkg/domain"
)

// Conversations is the slice of the client the MCP server needs.
type Conversations interface {
	Message(ctx context.Context, q string, opts ...witgo.QueryOption) (*domain.MessageResponse, error)
	Converse(ctx context.Context, sessionID, message string, cv domain.Context) (*domain.ConverseResponse, error)
}

// Server exposes Message and Converse as MCP tools.
type Server struct {
	client    Conversations
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server around a configured client.
func NewServer(client Conversations, version string) *Server {
	s := &Server{
		client:    client,
		mcpServer: server.NewMCPServer("witgo-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks until
// ctx is cancelled or the listener fails.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	messageTool := mcp.NewTool("wit_message",
		mcp.WithDescription("Interpret one natural language utterance. Returns intents, entities and traits."),
		mcp.WithString("q", mcp.Required(), mcp.Description("The utterance to interpret")),
		mcp.WithString("context", mcp.Description("JSON object with conversation context (timezone, coords, ...)")),
		mcp.WithOutputSchema[domain.MessageResponse](),
	)
	s.mcpServer.AddTool(messageTool, mcp.NewStructuredToolHandler(s.handleMessage))

	converseTool := mcp.NewTool("wit_converse",
		mcp.WithDescription("Advance a conversation by one decision turn. Returns the next step: a message, an action request, or stop."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Opaque conversation identifier")),
		mcp.WithString("q", mcp.Description("User utterance for the first turn of a run; omit on follow-ups")),
		mcp.WithString("context", mcp.Description("JSON object with the current conversation context")),
		mcp.WithOutputSchema[domain.ConverseResponse](),
	)
	s.mcpServer.AddTool(converseTool, mcp.NewStructuredToolHandler(s.handleConverse))
}

func (s *Server) handleMessage(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.MessageResponse, error) {
	q, _ := args["q"].(string)
	if q == "" {
		return domain.MessageResponse{}, fmt.Errorf("q is required")
	}

	opts := []witgo.QueryOption{}
	if cv, err := contextArg(args); err != nil {
		return domain.MessageResponse{}, err
	} else if cv != nil {
		opts = append(opts, witgo.WithContext(cv))
	}

	resp, err := s.client.Message(ctx, q, opts...)
	if err != nil {
		return domain.MessageResponse{}, fmt.Errorf("message failed: %w", err)
	}
	return *resp, nil
}

func (s *Server) handleConverse(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.ConverseResponse, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return domain.ConverseResponse{}, fmt.Errorf("session_id is required")
	}
	q, _ := args["q"].(string)

	cv, err := contextArg(args)
	if err != nil {
		return domain.ConverseResponse{}, err
	}

	resp, err := s.client.Converse(ctx, sessionID, q, cv)
	if err != nil {
		return domain.ConverseResponse{}, fmt.Errorf("converse failed: %w", err)
	}
	return *resp, nil
}

func contextArg(args map[string]any) (domain.Context, error) {
	raw, ok := args["context"].(string)
	if !ok || raw == "" {
		return nil, nil
	}
	var cv domain.Context
	if err := json.Unmarshal([]byte(raw), &cv); err != nil {
		return nil, fmt.Errorf("context is not valid JSON: %w", err)
	}
	return cv, nil
}
