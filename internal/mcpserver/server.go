// Package mcpserver exposes routing, memory and generation as MCP tools over
// stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rcliao/text-assist/internal/assist"
	"github.com/rcliao/text-assist/internal/generate"
	"github.com/rcliao/text-assist/internal/memory"
)

// Server holds the collaborators the tool handlers use.
type Server struct {
	assistant *assist.Assistant
	mem       *memory.Store
}

func New(a *assist.Assistant, mem *memory.Store) *Server {
	return &Server{assistant: a, mem: mem}
}

// MCPServer builds the MCP server with every tool registered.
func (s *Server) MCPServer(version string) *server.MCPServer {
	srv := server.NewMCPServer(
		"text-assist",
		version,
		server.WithToolCapabilities(true),
	)

	srv.AddTool(mcp.NewTool("route_request",
		mcp.WithDescription("Classify a writing request into an intent (proofread, rewrite, write, summarize, translate) with output type, tones and target language, without generating anything."),
		mcp.WithString("instruction",
			mcp.Required(),
			mcp.Description("What the user asked for, e.g. 'make this a formal email'"),
		),
		mcp.WithString("text",
			mcp.Description("The text to act on (optional)"),
		),
		mcp.WithString("intent",
			mcp.Description("Force an intent instead of classifying (optional)"),
		),
	), s.handleRoute)

	srv.AddTool(mcp.NewTool("memory_add",
		mcp.WithDescription("Remember one exchange: the user's request and the text produced for it. Long content is summarized before it is stored."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The user's request"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The text produced for the request"),
		),
	), s.handleMemoryAdd)

	srv.AddTool(mcp.NewTool("memory_retrieve",
		mcp.WithDescription("Find remembered exchanges relevant to a query. Queries about earlier or previous work return the most recent exchanges; others are ranked by BM25."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The query to search for"),
		),
		mcp.WithNumber("top_k",
			mcp.Description("Maximum number of results (default from configuration)"),
		),
	), s.handleMemoryRetrieve)

	srv.AddTool(mcp.NewTool("memory_context",
		mcp.WithDescription("Render relevant remembered exchanges as a context block ready to prepend to a prompt."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The query to build context for"),
		),
		mcp.WithNumber("top_k",
			mcp.Description("Maximum number of exchanges (default from configuration)"),
		),
	), s.handleMemoryContext)

	srv.AddTool(mcp.NewTool("assist",
		mcp.WithDescription("Route a writing request, generate the result with the configured model and optionally use and update conversation memory."),
		mcp.WithString("instruction",
			mcp.Required(),
			mcp.Description("What the user asked for"),
		),
		mcp.WithString("text",
			mcp.Description("The text to act on (optional)"),
		),
		mcp.WithString("intent",
			mcp.Description("Force an intent instead of classifying (optional)"),
		),
		mcp.WithBoolean("use_memory",
			mcp.Description("Use and update conversation memory (default: true)"),
		),
	), s.handleAssist)

	return srv
}

// ServeStdio runs the MCP server until stdin closes.
func (s *Server) ServeStdio(version string) error {
	return server.ServeStdio(s.MCPServer(version))
}

func (s *Server) handleRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	instruction, errRes := requiredString(args, "instruction")
	if errRes != nil {
		return errRes, nil
	}
	res, req, err := s.assistant.Route(assist.Input{
		Instruction: instruction,
		Text:        optionalString(args, "text"),
		Intent:      optionalString(args, "intent"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"routing": res, "request": req})
}

func (s *Server) handleMemoryAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	query, errRes := requiredString(args, "query")
	if errRes != nil {
		return errRes, nil
	}
	content, errRes := requiredString(args, "content")
	if errRes != nil {
		return errRes, nil
	}
	e, err := s.mem.AddConversation(ctx, query, content, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save memory: %v", err)), nil
	}
	msg := fmt.Sprintf("Memory saved successfully (id: %s)", e.ID)
	if e.IsSummarized {
		msg += fmt.Sprintf(", summarized from %d characters", e.OriginalContentLength)
	}
	return mcp.NewToolResultText(msg), nil
}

func (s *Server) handleMemoryRetrieve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	query, errRes := requiredString(args, "query")
	if errRes != nil {
		return errRes, nil
	}
	return jsonResult(s.mem.Retrieve(query, optionalInt(args, "top_k")))
}

func (s *Server) handleMemoryContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	query, errRes := requiredString(args, "query")
	if errRes != nil {
		return errRes, nil
	}
	out := s.mem.GetRelevantContextString(query, optionalInt(args, "top_k"))
	if out == "" {
		return mcp.NewToolResultText("No relevant context found."), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleAssist(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	instruction, errRes := requiredString(args, "instruction")
	if errRes != nil {
		return errRes, nil
	}
	useMemory := true
	if v, ok := args["use_memory"].(bool); ok {
		useMemory = v
	}
	out, err := s.assistant.Handle(ctx, assist.Input{
		Instruction: instruction,
		Text:        optionalString(args, "text"),
		Intent:      optionalString(args, "intent"),
		UseMemory:   useMemory,
	})
	if errors.Is(err, generate.ErrUnavailable) {
		return mcp.NewToolResultError("generation backend unavailable. Configure generation.provider in the config file"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out.Result), nil
}

func requiredString(args map[string]any, name string) (string, *mcp.CallToolResult) {
	if args == nil {
		return "", mcp.NewToolResultError("missing arguments")
	}
	v, ok := args[name]
	if !ok {
		return "", mcp.NewToolResultError("missing required parameter: " + name)
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("parameter '%s' must be a non-empty string", name))
	}
	return s, nil
}

func optionalString(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// optionalInt reads a JSON number; absent or invalid values give 0.
func optionalInt(args map[string]any, name string) int {
	switch v := args[name].(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	}
	return 0
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
