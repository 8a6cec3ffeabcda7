package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alywork/lawdesk/internal/config"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the 'init' command, which writes a default config.
func NewInitCmd() *cobra.Command {
	var (
		corpusPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a default configuration file to --config (default ~/.lawdesk.json).

Files ending in .yaml or .yml are written as YAML. An existing file is kept
unless --force is given, in which case it is backed up to <file>.bak first.`,
		Example: `  lawdesk init --corpus ~/law/labor_law.xlsx
  lawdesk --config ./lawdesk.yaml init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				var err error
				if path, err = config.GetDefaultConfigPath(); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.NewConfig()
			if corpusPath != "" {
				abs, err := filepath.Abs(corpusPath)
				if err != nil {
					return fmt.Errorf("invalid corpus path: %w", err)
				}
				cfg.Corpus.Path = abs
			}

			if err := config.Save(cfg, path); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "✓ Wrote config to %s\n", path)
			fmt.Fprintf(w, "  corpus: %s\n", cfg.Corpus.Path)
			fmt.Fprintf(w, "  memory: %s\n", cfg.Memory.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Path to the corpus spreadsheet (.xlsx or .csv)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}
