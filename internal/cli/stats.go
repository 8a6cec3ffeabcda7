package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/alywork/lawdesk/internal/storage"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the 'stats' command, which summarizes search analytics.
func NewStatsCmd() *cobra.Command {
	var (
		since  time.Duration
		recent int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show how recent questions were answered",
		Long: `Show how many searches each retrieval strategy answered, and the most
recent searches. Only query hashes are stored, never the query text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(false)
			if err != nil {
				return err
			}
			if !cfg.Analytics.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Analytics is disabled in config.")
				return nil
			}

			store := storage.NewStorage(cfg.Analytics.DBPath)
			if err := store.Init(); err != nil {
				return fmt.Errorf("failed to open analytics: %w", err)
			}
			defer store.Close()

			counts, err := store.StrategyCounts(time.Now().Add(-since))
			if err != nil {
				return err
			}
			searches, err := store.RecentSearches(recent)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"strategies": counts,
					"recent":     searches,
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Searches in the last %s:\n", since)
			if len(counts) == 0 {
				fmt.Fprintln(w, "  none")
			}
			strategies := make([]string, 0, len(counts))
			for s := range counts {
				strategies = append(strategies, s)
			}
			sort.Strings(strategies)
			for _, s := range strategies {
				fmt.Fprintf(w, "  %-12s %d\n", s, counts[s])
			}

			if len(searches) > 0 {
				fmt.Fprintln(w, "\nRecent searches:")
				for _, rec := range searches {
					fmt.Fprintf(w, "  %s  %-12s %d hit(s)  %s\n",
						rec.Timestamp.Local().Format("2006-01-02 15:04"), rec.Strategy, rec.ResultsCount, rec.Section)
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&since, "since", 30*24*time.Hour, "Count searches newer than this")
	cmd.Flags().IntVar(&recent, "recent", 10, "Number of recent searches to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
