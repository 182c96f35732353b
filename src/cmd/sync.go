package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pytoy/src/internal/config"
	"pytoy/src/internal/manifest"
	"pytoy/src/internal/model"
	"pytoy/src/internal/registry"
	"pytoy/src/internal/security"
)

// syncCmd reconciles the install registry with pytoy.toml: anything the
// manifest now resolves to gets installed, and anything the registry still
// tracks but the manifest no longer reaches gets uninstalled.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the install registry with pytoy.toml",
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

		globalCfg, err := config.Load()
		if err != nil {
			pterm.Error.Printf("Failed to load global config: %v\n", err)
			return
		}
		token, _ := security.GetToken()

		res, inst, store, err := buildPipeline(globalCfg.IndexURL, token)
		if err != nil {
			pterm.Error.Printf("Failed to init pipeline: %v\n", err)
			return
		}
		defer store.Close()

		deps := make([]model.Dependency, 0, len(m.Dependencies))
		for name, spec := range m.Dependencies {
			deps = append(deps, model.Dependency{Name: name, VersionSpec: spec})
		}

		plan, err := res.Resolve(context.Background(), deps)
		if err != nil {
			pterm.Error.Printf("Resolve failed: %v\n", err)
			return
		}
		wanted := make(map[string]bool, len(plan))
		for _, pkg := range plan {
			wanted[pkg.Name] = true
		}

		installRoot := installRootFor(wd, m.Tool.Pytoy.InstallDir)
		reg, err := registry.Load(filepath.Join(installRoot, registry.FileName))
		if err != nil {
			pterm.Error.Printf("Failed to load install registry: %v\n", err)
			return
		}

		if err := inst.Install(context.Background(), plan, installRoot, reg); err != nil {
			pterm.Error.Printf("Install failed: %v\n", err)
			return
		}

		pruned := 0
		for _, entry := range reg.List() {
			if wanted[entry.Name] {
				continue
			}
			removeInstalled(reg, entry.Name)
			if ok, err := reg.Unregister(entry.Name); err == nil && ok {
				pruned++
			}
		}

		pterm.Success.Printf("Synced: %d package(s) in plan, %d pruned\n", len(plan), pruned)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
