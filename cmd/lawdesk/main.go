/*
Package main is the entry point for the lawdesk CLI.

lawdesk answers questions against a spreadsheet of legal articles and keeps
a bounded log of the answers it gave.

Usage:
  lawdesk [command]

Available Commands:
  ask         Answer a question from the law corpus
  search      Search the corpus without recording the interaction
  suggest     List articles whose text is close to the given text
  sections    List the distinct sections of the corpus
  section     List the articles whose section contains the given name
  explore     Rank articles by keyword relevance
  memory      Inspect and edit the interaction log
  stats       Show how recent questions were answered
  init        Write a default configuration file
  serve       Run the MCP server (stdio transport)
  version     Show version information

Examples:
  # Point lawdesk at a corpus
  lawdesk init --corpus ~/law/labor_law.xlsx

  # Ask a question
  lawdesk ask "الإجازة السنوية"

  # Run as MCP server
  lawdesk serve
*/
package main

import (
	"fmt"
	"os"

	"github.com/alywork/lawdesk/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
