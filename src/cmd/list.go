package cmd

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pytoy/src/internal/manifest"
	"pytoy/src/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages recorded in the project's install registry",
	Run: func(cmd *cobra.Command, args []string) {
		wd, err := os.Getwd()
		if err != nil {
			pterm.Error.Printf("Failed to get cwd: %v\n", err)
			return
		}
		m, _, err := manifest.LoadOrCreate(wd)
		if err != nil {
			pterm.Error.Printf("Failed to load pytoy.toml: %v\n", err)
			return
		}
		installRoot := installRootFor(wd, m.Tool.Pytoy.InstallDir)
		reg, err := registry.Load(filepath.Join(installRoot, registry.FileName))
		if err != nil {
			pterm.Error.Printf("Failed to load install registry: %v\n", err)
			return
		}

		pkgs := reg.List()
		sort.Slice(pkgs, func(i, j int) bool { return strings.ToLower(pkgs[i].Name) < strings.ToLower(pkgs[j].Name) })

		data := pterm.TableData{{"Package", "Version", "Installed At"}}
		for _, p := range pkgs {
			data = append(data, []string{p.Name, p.Version, p.InstalledAt.Format("2006-01-02 15:04:05")})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
