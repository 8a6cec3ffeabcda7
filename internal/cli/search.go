package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the 'search' command. It runs the same retrieval as
// 'ask' but records nothing.
func NewSearchCmd() *cobra.Command {
	var (
		section string
		top     int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the corpus without recording the interaction",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			res := rt.engine.Search(strings.Join(args, " "), section, top)
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
