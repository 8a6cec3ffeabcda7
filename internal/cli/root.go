/*
Package cli implements the lawdesk command line.

Every command reads the configuration from --config (default ~/.lawdesk.json),
applies LAWDESK_* environment overrides, and loads a .env file from the
working directory first when one exists.
*/
package cli

import (
	"log"
	"os"

	"github.com/alywork/lawdesk/internal/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Persistent flags shared by every command.
var (
	configPath string
	envFile    string
)

// NewRootCmd creates the 'lawdesk' root command with every subcommand.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lawdesk",
		Short: "Search a labor-law article corpus and keep a log of answers",
		Long: `lawdesk answers questions against a spreadsheet of legal articles
(article number, section, text, applied example).

Each question is matched in order by exact phrase, TF-IDF similarity and
fuzzy text match. Answers are kept in a bounded interaction log, and every
search is counted in a local analytics database.

The same engine is available to AI clients over MCP with 'lawdesk serve'.`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnvFile(envFile)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.lawdesk.json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading config")

	rootCmd.AddCommand(NewAskCmd())
	rootCmd.AddCommand(NewSearchCmd())
	rootCmd.AddCommand(NewSuggestCmd())
	rootCmd.AddCommand(NewSectionsCmd())
	rootCmd.AddCommand(NewSectionCmd())
	rootCmd.AddCommand(NewExploreCmd())
	rootCmd.AddCommand(NewMemoryCmd())
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// loadEnvFile loads path into the environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("Warning: failed to load %s: %v", path, err)
	}
}
