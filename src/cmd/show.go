package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pytoy/src/internal/config"
	"pytoy/src/internal/index"
	"pytoy/src/internal/security"
)

var showCmd = &cobra.Command{
	Use:   "show <package_name>",
	Short: "Show index metadata for a package",
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
			pterm.Error.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("Name: %s\n", pkg.Name)
		fmt.Printf("Version: %s\n", pkg.Version)
		fmt.Printf("Author: %s\n", pkg.Author)
		fmt.Printf("Homepage: %s\n", pkg.Homepage)
		fmt.Printf("Description: %s\n", pkg.Description)
		if len(pkg.Dependencies) > 0 {
			names := make([]string, 0, len(pkg.Dependencies))
			for _, d := range pkg.Dependencies {
				names = append(names, d.Name+d.VersionSpec)
			}
			fmt.Printf("Requires: %s\n", strings.Join(names, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
