package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alywork/lawdesk/internal/memory"
	"github.com/spf13/cobra"
)

// NewMemoryCmd creates the 'memory' command group for the interaction log.
func NewMemoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect and edit the interaction log",
		Long: `Inspect and edit the bounded interaction log.

Subcommands:
  list    - Show every record, oldest first
  search  - Find records by keyword and role
  update  - Change fields of one record
  clear   - Remove every record`,
	}

	cmd.AddCommand(newMemoryListCmd())
	cmd.AddCommand(newMemorySearchCmd())
	cmd.AddCommand(newMemoryUpdateCmd())
	cmd.AddCommand(newMemoryClearCmd())

	return cmd
}

// openMemory opens the configured interaction log.
func openMemory() (*memory.FileStore, error) {
	cfg, err := loadConfig(false)
	if err != nil {
		return nil, err
	}
	return memory.NewFileStore(cfg.Memory.Path, cfg.Memory.MaxInteractions), nil
}

func newMemoryListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every record, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openMemory()
			if err != nil {
				return err
			}
			entries := store.Entries()
			matches := make([]memory.Match, len(entries))
			for i, rec := range entries {
				matches[i] = memory.Match{Index: i, Record: rec}
			}
			return printMatches(cmd.OutOrStdout(), matches, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newMemorySearchCmd() *cobra.Command {
	var (
		role   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find records whose query or response contains a keyword",
		Long: `Find records whose query or response contains a keyword.

Each match is shown with its index in the whole log, which is the index
'lawdesk memory update' takes.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openMemory()
			if err != nil {
				return err
			}
			return printMatches(cmd.OutOrStdout(), store.SearchIndexed(args[0], role), asJSON)
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "", "Only records with this role (user or assistant)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newMemoryUpdateCmd() *cobra.Command {
	var fields map[string]string

	cmd := &cobra.Command{
		Use:   "update <index>",
		Short: "Change fields of the record at a zero-based index",
		Long: `Change fields of the record at a zero-based index.

Settable fields: role, query, response, reference, example, notes and
context_tags (comma-separated).`,
		Example: `  lawdesk memory update 0 --set notes="checked with HR"
  lawdesk memory update 3 --set context_tags=إجازات,عمال`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			if len(fields) == 0 {
				return fmt.Errorf("nothing to update: pass at least one --set field=value")
			}

			store, err := openMemory()
			if err != nil {
				return err
			}

			rec, err := store.Update(index, memory.UpdateFromFields(fields))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated record %d (%s)\n", index, rec.ID)
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&fields, "set", nil, "Field to change, as field=value (repeatable)")

	return cmd
}

func newMemoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every record from the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openMemory()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Interaction log cleared")
			return nil
		},
	}
}

// printMatches lists records under their log index.
func printMatches(w io.Writer, matches []memory.Match, asJSON bool) error {
	if asJSON {
		return printJSON(w, map[string]interface{}{"count": len(matches), "matches": matches})
	}
	if len(matches) == 0 {
		fmt.Fprintln(w, "No records.")
		return nil
	}
	for _, m := range matches {
		rec := m.Record
		fmt.Fprintf(w, "[%d] %s %s: %s\n", m.Index, rec.Timestamp, rec.Role, truncate(rec.Query, 50))
		if rec.Response != "" {
			fmt.Fprintf(w, "    → %s\n", truncate(rec.Response, 70))
		}
		if rec.Reference != "" {
			fmt.Fprintf(w, "    %s\n", rec.Reference)
		}
		if rec.Notes != "" {
			fmt.Fprintf(w, "    notes: %s\n", rec.Notes)
		}
	}
	return nil
}
