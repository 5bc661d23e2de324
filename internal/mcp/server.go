package mcp

import (
	"context"
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"board_add_container": {
		def:     addContainerToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAddContainer },
	},
	"board_add_category": {
		def:     addCategoryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAddCategory },
	},
	"board_save_link": {
		def:     saveLinkToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSaveLink },
	},
	"board_clear_links": {
		def:     clearLinksToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClearLinks },
	},
	"board_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"board_refresh": {
		def:     refreshToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRefresh },
	},
	"board_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with linkboard tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(gw ops.Gateway, db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"linkboard",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(gw, db, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(gw ops.Gateway, db *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(gw, db, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
