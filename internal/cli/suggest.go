package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewSuggestCmd creates the 'suggest' command.
func NewSuggestCmd() *cobra.Command {
	var (
		count  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "suggest <text...>",
		Short: "List articles whose text is close to the given text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			hits := rt.engine.Suggest(strings.Join(args, " "), count)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{"suggestions": hits})
			}
			printHits(cmd.OutOrStdout(), hits)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Maximum number of suggestions (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
