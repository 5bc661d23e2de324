package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	gw  ops.Gateway
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(gw ops.Gateway, db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{gw: gw, db: db, cfg: cfg}
}

// Request types for each tool

// AddContainerRequest represents the arguments for board_add_container.
type AddContainerRequest struct {
	Name    string `json:"name"`
	Key     string `json:"key,omitempty"`
	Columns int    `json:"columns,omitempty"`
}

// AddCategoryRequest represents the arguments for board_add_category.
type AddCategoryRequest struct {
	Name        string `json:"name"`
	Key         string `json:"key,omitempty"`
	Description string `json:"description,omitempty"`
	Container   string `json:"container"`
	Layout      string `json:"layout,omitempty"`
	Accent      string `json:"accent,omitempty"`
	Column      int    `json:"column,omitempty"`
}

// SaveLinkRequest represents the arguments for board_save_link.
type SaveLinkRequest struct {
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category"`
}

// ListRequest represents the arguments for board_list.
type ListRequest struct {
	Refresh bool `json:"refresh,omitempty"`
}

// ExportRequest represents the arguments for board_export.
type ExportRequest struct {
	IncludeContent bool `json:"include_content,omitempty"`
}

// Handler implementations

// HandleAddContainer handles the board_add_container tool call.
func (h *Handlers) HandleAddContainer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddContainerRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddContainer(ctx, h.gw, h.db, h.cfg, ops.AddContainerInput{
		Name:    input.Name,
		Key:     input.Key,
		Columns: input.Columns,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleAddCategory handles the board_add_category tool call.
func (h *Handlers) HandleAddCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddCategoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddCategory(ctx, h.gw, h.db, h.cfg, ops.AddCategoryInput{
		Name:        input.Name,
		Key:         input.Key,
		Description: input.Description,
		Container:   input.Container,
		Layout:      input.Layout,
		Accent:      input.Accent,
		Column:      input.Column,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSaveLink handles the board_save_link tool call.
func (h *Handlers) HandleSaveLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SaveLinkRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddLink(ctx, h.gw, h.db, h.cfg, ops.AddLinkInput{
		URL:      input.URL,
		Title:    input.Title,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleClearLinks handles the board_clear_links tool call.
func (h *Handlers) HandleClearLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.RemoveLinks(ctx, h.gw, h.db, h.cfg, ops.RemoveLinksInput{})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the board_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.gw, h.db, h.cfg, ops.ListInput{
		Refresh: input.Refresh,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRefresh handles the board_refresh tool call.
func (h *Handlers) HandleRefresh(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Refresh(ctx, h.gw, h.db, h.cfg, ops.RefreshInput{})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the board_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(ctx, h.gw, h.db, h.cfg, ops.ExportInput{
		IncludeContent: input.IncludeContent,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if boardErr, ok := err.(*errors.BoardError); ok {
		errorObj := map[string]any{
			"code":    boardErr.Code,
			"message": boardErr.Message,
			"status":  boardErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if boardErr.Code != errors.ErrInternal && boardErr.Details != nil {
			errorObj["details"] = boardErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
