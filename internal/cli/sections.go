package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewSectionsCmd creates the 'sections' command.
func NewSectionsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List the distinct sections of the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			sections := rt.engine.ListSections()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{"sections": sections})
			}

			w := cmd.OutOrStdout()
			if len(sections) == 0 {
				fmt.Fprintln(w, "No sections found.")
				return nil
			}
			for _, s := range sections {
				fmt.Fprintln(w, s)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

// NewSectionCmd creates the 'section' command, which lists the articles of
// one section.
func NewSectionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "section <name...>",
		Short: "List the articles whose section contains the given name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			name := strings.Join(args, " ")
			articles := rt.engine.ArticlesInSection(name)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"section":  name,
					"count":    len(articles),
					"articles": articles,
				})
			}

			w := cmd.OutOrStdout()
			if len(articles) == 0 {
				fmt.Fprintf(w, "No articles in section %q.\n", name)
				return nil
			}
			for _, a := range articles {
				fmt.Fprintf(w, "%s\n  %s\n", a.Reference(), truncate(a.Text, 70))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
