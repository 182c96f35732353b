package cmd

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pytoy/src/internal/manifest"
	"pytoy/src/internal/registry"
)

// removeInstalled deletes name's on-disk install path, if the registry knows
// about one, before the registry entry itself is dropped.
func removeInstalled(reg *registry.Registry, name string) {
	if entry, ok := reg.Get(name); ok && entry.InstallPath != "" {
		_ = os.RemoveAll(entry.InstallPath)
	}
}

var removeCmd = &cobra.Command{
	Use:   "remove <package_name>...",
	Short: "Remove one or more packages from the manifest and install registry",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wd, err := os.Getwd()
		if err != nil {
			pterm.Error.Printf("Failed to get cwd: %v\n", err)
			return
		}
		m, manifestPath, err := manifest.LoadOrCreate(wd)
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

		removed := 0
		for _, raw := range args {
			name := requirementToDepName(raw)
			if name == "" {
				continue
			}
			delete(m.Dependencies, name)
			removeInstalled(reg, name)
			if ok, err := reg.Unregister(name); err == nil && ok {
				removed++
			}
		}

		if err := manifest.Save(manifestPath, m); err != nil {
			pterm.Warning.Printf("Removed but failed to persist pytoy.toml: %v\n", err)
			return
		}
		pterm.Success.Printf("Removed %d package(s)\n", removed)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
