/*
Package mcp implements the MCP server that exposes the legal article engine.

The server uses stdio transport and exposes 6 tools:
  - law_search: Answer a question with the best matching article
  - law_suggest: Suggest articles related to a topic
  - law_sections: List the corpus sections
  - law_section_articles: List the articles in a section
  - law_explore: Rank articles by keyword relevance (BM25)
  - memory_search: Search the interaction log

Tool results are JSON text. Bad arguments produce tool errors, not protocol
errors.
*/
package mcp

import (
	"github.com/alywork/lawdesk/internal/engine"
	"github.com/alywork/lawdesk/internal/memory"
	"github.com/alywork/lawdesk/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Server represents the lawdesk MCP server.
type Server struct {
	mcp      *mcpserver.MCPServer
	handlers *Handlers
}

// NewServer creates an MCP server over the given engine and memory store.
// memory may be nil, in which case memory_search reports an empty log.
func NewServer(eng *engine.Engine, mem memory.Store) *Server {
	server := mcpserver.NewMCPServer(
		"lawdesk",
		version.Version,
	)

	handlers := &Handlers{engine: eng, memory: mem}
	registerTools(server, handlers)

	return &Server{mcp: server, handlers: handlers}
}

// Run serves MCP over stdio. This blocks until stdin is closed.
func (s *Server) Run() error {
	return mcpserver.ServeStdio(s.mcp)
}

func registerTools(server *mcpserver.MCPServer, h *Handlers) {
	server.AddTool(mcp.Tool{
		Name: "law_search",
		Description: `Answer a legal question with the most relevant labor-law article, its citation and an applied example.

Matching runs in order: exact phrase, TF-IDF similarity, then fuzzy text match.
The answer is recorded in the interaction log unless remember is false.`,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The question or phrase to look up",
				},
				"section": map[string]interface{}{
					"type":        "string",
					"description": "Only consider articles whose section contains this text",
				},
				"top_n": map[string]interface{}{
					"type":        "number",
					"description": "Number of matching articles to return (default: configured topN)",
				},
				"remember": map[string]interface{}{
					"type":        "boolean",
					"description": "Record the interaction in the memory log (default: true)",
					"default":     true,
				},
			},
			Required: []string{"query"},
		},
	}, h.LawSearch)

	server.AddTool(mcp.Tool{
		Name:        "law_suggest",
		Description: "Suggest articles whose text is close to a topic. Useful for 'related articles' lists.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Topic text to compare against article texts",
				},
				"count": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of suggestions (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"query"},
		},
	}, h.LawSuggest)

	server.AddTool(mcp.Tool{
		Name:        "law_sections",
		Description: "List the distinct sections of the corpus in source order.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, h.LawSections)

	server.AddTool(mcp.Tool{
		Name:        "law_section_articles",
		Description: "List every article whose section contains the given text (case-insensitive).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"section": map[string]interface{}{
					"type":        "string",
					"description": "Section name or part of it",
				},
			},
			Required: []string{"section"},
		},
	}, h.LawSectionArticles)

	server.AddTool(mcp.Tool{
		Name:        "law_explore",
		Description: "Rank articles by BM25 keyword relevance across every field. Returns several scored hits instead of a single answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Keywords to rank articles by",
				},
				"section": map[string]interface{}{
					"type":        "string",
					"description": "Only consider articles whose section contains this text",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of hits (default: 10)",
					"default":     10,
				},
			},
			Required: []string{"query"},
		},
	}, h.LawExplore)

	server.AddTool(mcp.Tool{
		Name:        "memory_search",
		Description: "Search past questions and answers in the interaction log (case-insensitive).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"keyword": map[string]interface{}{
					"type":        "string",
					"description": "Text to find in past queries or responses",
				},
				"role": map[string]interface{}{
					"type":        "string",
					"description": "Only return records with this role (user or assistant)",
				},
			},
			Required: []string{"keyword"},
		},
	}, h.MemorySearch)
}
