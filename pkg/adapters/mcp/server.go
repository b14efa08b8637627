// Package mcp exposes the support pipeline as a Model Context Protocol
// server so agent hosts can call it as a tool.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/ports"
)

// Engine is the pipeline surface the MCP tools dispatch to.
type Engine interface {
	Process(ctx context.Context, query, sessionID string) (*domain.Record, error)
}

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	store     ports.TranscriptStore
	mcpServer *server.MCPServer
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithStore enables the transcript tool and resource.
func WithStore(store ports.TranscriptStore) ServerOption {
	return func(s *Server) { s.store = store }
}

// NewServer creates the MCP server over the engine.
func NewServer(engine Engine, opts ...ServerOption) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("canopy-mcp", strings.TrimSpace(canopy.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: support_chat
	chatTool := mcp.NewTool("support_chat",
		mcp.WithDescription("Answer a customer support query. The query is classified and either answered from the knowledge base or escalated to a human agent."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The customer query")),
		mcp.WithString("session_id", mcp.Description("Opaque session key for transcript grouping (optional)")),
		mcp.WithOutputSchema[domain.Record](),
	)
	s.mcpServer.AddTool(chatTool, mcp.NewStructuredToolHandler(s.handleChat))

	// TOOL: get_transcript
	if s.store != nil {
		transcriptTool := mcp.NewTool("get_transcript",
			mcp.WithDescription("Fetch the transcript of a support session in append order."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("The session key")),
			mcp.WithOutputSchema[Transcript](),
		)
		s.mcpServer.AddTool(transcriptTool, mcp.NewStructuredToolHandler(s.handleTranscript))
	}
}

// Transcript is the structured output of the get_transcript tool.
type Transcript struct {
	SessionID string           `json:"session_id"`
	Records   []*domain.Record `json:"records"`
}

func (s *Server) handleChat(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (domain.Record, error) {
	query, _ := args["query"].(string)
	sessionID, _ := args["session_id"].(string)

	record, err := s.engine.Process(ctx, query, sessionID)
	if err != nil {
		return domain.Record{}, fmt.Errorf("chat failed: %w", err)
	}
	return *record, nil
}

func (s *Server) handleTranscript(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (Transcript, error) {
	sessionID, _ := args["session_id"].(string)

	records, err := s.store.History(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return Transcript{}, fmt.Errorf("unknown session %q", sessionID)
		}
		return Transcript{}, fmt.Errorf("transcript lookup failed: %w", err)
	}
	return Transcript{SessionID: sessionID, Records: records}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: canopy://categories
	s.mcpServer.AddResource(mcp.NewResource("canopy://categories", "Query Categories",
		mcp.WithMIMEType("application/json"),
	), func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(domain.Catalog())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
