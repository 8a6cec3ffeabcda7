package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewExploreCmd creates the 'explore' command, a BM25 keyword ranking over
// every article field.
func NewExploreCmd() *cobra.Command {
	var (
		section string
		limit   int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "explore <keywords...>",
		Short: "Rank articles by keyword relevance",
		Long: `Rank articles by BM25 keyword relevance over the article number,
section, text and example.

Unlike 'ask', explore always returns a ranked list and never falls back to
fuzzy matching.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			hits, err := rt.engine.Explore(strings.Join(args, " "), section, limit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{"hits": hits})
			}
			printHits(cmd.OutOrStdout(), hits)
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Only consider articles whose section contains this text")
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of articles to return")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
