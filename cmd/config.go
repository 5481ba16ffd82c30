package cmd

import (
	"fmt"

	"github.com/rogersnm/tcli/internal/config"
	"github.com/rogersnm/tcli/internal/search"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persistent settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := search.DefaultLimit
		if cfg.SearchLimit > 0 {
			limit = cfg.SearchLimit
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Config dir: %s\n", configDir)
		fmt.Fprintf(w, "Tasks file: %s\n", resolveTasksFile(cmd))
		fmt.Fprintf(w, "Search limit: %d\n", limit)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value (tasks_file, search_limit)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(configDir, cfg); err != nil {
			return &fatalError{fmt.Errorf("saving config: %w", err)}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
