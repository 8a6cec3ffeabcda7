package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewAskCmd creates the 'ask' command, which answers a question and records
// the interaction.
func NewAskCmd() *cobra.Command {
	var (
		section string
		top     int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer a question from the law corpus",
		Long: `Answer a question from the law corpus and remember the interaction.

The question is matched against every article by exact phrase first, then
by TF-IDF similarity, then by fuzzy text match. The answer, its article
reference and applied example are appended to the interaction log.`,
		Example: `  lawdesk ask "الإجازة السنوية"
  lawdesk ask --section إجازات --top 3 "مدفوعة الأجر"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			res := rt.engine.Answer(strings.Join(args, " "), section, top)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Only consider articles whose section contains this text")
	cmd.Flags().IntVarP(&top, "top", "n", 0, "Number of articles to return (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
