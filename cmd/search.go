package cmd

import (
	"fmt"
	"strings"

	"github.com/rogersnm/tcli/internal/markdown"
	"github.com/rogersnm/tcli/internal/search"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Find the tasks closest to a keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		k := search.DefaultLimit
		if cfg != nil && cfg.SearchLimit > 0 {
			k = cfg.SearchLimit
		}
		if cmd.Flags().Changed("limit") {
			k, _ = cmd.Flags().GetInt("limit")
		}

		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderMatchTable(st.Search(query, k)))
		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("limit", "k", search.DefaultLimit, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
