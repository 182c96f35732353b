package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pytoy/src/internal/config"
	"pytoy/src/internal/index"
	"pytoy/src/internal/security"
)

// searchCmd looks a single name up against the index. PyPI-style JSON indices
// expose per-name metadata only, not a full-text search endpoint, so this is an
// existence probe rather than a fuzzy search.
var searchCmd = &cobra.Command{
	Use:   "search <package_name>",
	Short: "Check whether a package exists on the index and print its latest version",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		globalCfg, err := config.Load()
		if err != nil {
			pterm.Error.Printf("Failed to load global config: %v\n", err)
			return
		}
		token, _ := security.GetToken()
		client := index.NewClient(globalCfg.IndexURL, token)

		pkg, err := client.FetchLatest(context.Background(), args[0])
		if err != nil {
			pterm.Warning.Printf("%s: not found\n", args[0])
			return
		}
		fmt.Printf("%s %s - %s\n", pkg.Name, pkg.Version, pkg.Description)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
