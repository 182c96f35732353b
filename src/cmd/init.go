package cmd

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pytoy/src/internal/manifest"
)

var initPythonVersion string

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Initialize a project with pytoy.toml",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		wd, err := os.Getwd()
		if err != nil {
			pterm.Error.Printf("Failed to get cwd: %v\n", err)
			return
		}
		if name != "" && name != "." {
			wd = filepath.Join(wd, name)
			if err := os.MkdirAll(wd, 0755); err != nil {
				pterm.Error.Printf("Failed to create %s: %v\n", wd, err)
				return
			}
		}

		_, path, err := manifest.LoadOrCreate(wd)
		if err != nil {
			pterm.Error.Printf("Failed to write pytoy.toml: %v\n", err)
			return
		}
		if initPythonVersion != "" {
			if m, err := manifest.Load(path); err == nil {
				m.Tool.Pytoy.PythonVersion = initPythonVersion
				_ = manifest.Save(path, m)
			}
		}

		pterm.Success.Printf("Created %s\n", path)
	},
}

func init() {
	initCmd.Flags().StringVarP(&initPythonVersion, "python", "p", "", "Python version recorded in [tool.pytoy]")
	rootCmd.AddCommand(initCmd)
}
