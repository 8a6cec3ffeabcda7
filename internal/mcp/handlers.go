package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alywork/lawdesk/internal/corpus"
	"github.com/alywork/lawdesk/internal/engine"
	"github.com/alywork/lawdesk/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine *engine.Engine
	memory memory.Store
}

// LawSearch handles the law_search tool
func (h *Handlers) LawSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query argument is required and must be a non-empty string"), nil
	}

	section := request.GetString("section", "")
	topN := request.GetInt("top_n", 0)

	var res engine.Result
	if request.GetBool("remember", true) {
		res = h.engine.Answer(query, section, topN)
	} else {
		res = h.engine.Search(query, section, topN)
	}

	return jsonResult(res)
}

// LawSuggest handles the law_suggest tool
func (h *Handlers) LawSuggest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	count := request.GetInt("count", 0)
	if count < 0 {
		return mcp.NewToolResultError("count must not be negative"), nil
	}

	return jsonResult(map[string]interface{}{
		"suggestions": h.engine.Suggest(query, count),
	})
}

// LawSections handles the law_sections tool
func (h *Handlers) LawSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"sections": h.engine.ListSections(),
	})
}

// LawSectionArticles handles the law_section_articles tool
func (h *Handlers) LawSectionArticles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	section, err := request.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError("section argument is required and must be a string"), nil
	}

	articles := h.engine.ArticlesInSection(section)
	return jsonResult(struct {
		Section  string           `json:"section"`
		Count    int              `json:"count"`
		Articles []corpus.Article `json:"articles"`
	}{section, len(articles), articles})
}

// LawExplore handles the law_explore tool
func (h *Handlers) LawExplore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	hits, err := h.engine.Explore(query, request.GetString("section", ""), request.GetInt("limit", 10))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("explore failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"hits": hits,
	})
}

// MemorySearch handles the memory_search tool
func (h *Handlers) MemorySearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := request.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError("keyword argument is required and must be a string"), nil
	}

	records := []memory.Record{}
	if h.memory != nil {
		records = h.memory.Search(keyword, request.GetString("role", ""))
	}

	return jsonResult(map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
