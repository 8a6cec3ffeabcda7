package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alywork/lawdesk/internal/mcp"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the 'serve' command for running the MCP server.
//
// This exposes the engine to AI clients via stdio transport:
// - law_search, law_suggest, law_sections, law_section_articles,
// law_explore, memory_search
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the lawdesk MCP server using stdio transport.

This server exposes 6 tools to AI clients:
  • law_search           - Answer a question with the best matching article
  • law_suggest          - Suggest articles related to a topic
  • law_sections         - List the corpus sections
  • law_section_articles - List the articles in a section
  • law_explore          - Rank articles by keyword relevance
  • memory_search        - Search the interaction log

The corpus is loaded once at startup. Answers given through law_search are
recorded in the interaction log like 'lawdesk ask'.`,
		Example: `  # Run directly
  lawdesk serve

  # Add to Claude Code
  claude mcp add lawdesk -- lawdesk serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	return cmd
}

// runServe starts the MCP server with stdio transport and signal handling.
// Implements graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
func runServe() error {
	rt, err := openRuntime(true)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer rt.Close()

	log.Printf("Loaded %d articles from %s", rt.engine.Len(), rt.cfg.Corpus.Path)

	server := mcp.NewServer(rt.engine, rt.memory)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down gracefully...", sig)
		return nil

	case err := <-errChan:
		// stdin closed or transport error
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
