package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pytoy/src/internal/bridge"
	"pytoy/src/internal/config"
	"pytoy/src/internal/manifest"
	"pytoy/src/internal/model"
	"pytoy/src/internal/registry"
	"pytoy/src/internal/security"
)

var installPublish string

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Resolve pytoy.toml's dependencies and install the full plan",
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

		deps := make([]model.Dependency, 0, len(m.Dependencies)+len(m.DevDeps))
		for name, spec := range m.Dependencies {
			deps = append(deps, model.Dependency{Name: name, VersionSpec: spec})
		}
		for name, spec := range m.DevDeps {
			deps = append(deps, model.Dependency{Name: name, VersionSpec: spec})
		}

		pterm.Info.Printf("Resolving %d direct dependenc(y/ies)...\n", len(deps))
		plan, err := res.Resolve(context.Background(), deps)
		if err != nil {
			pterm.Error.Printf("Resolve failed: %v\n", err)
			return
		}

		installRoot := installRootFor(wd, m.Tool.Pytoy.InstallDir)
		reg, err := registry.Load(filepath.Join(installRoot, registry.FileName))
		if err != nil {
			pterm.Error.Printf("Failed to load install registry: %v\n", err)
			return
		}

		pterm.Info.Printf("Installing %d package(s) into %s...\n", len(plan), installRoot)
		if err := inst.Install(context.Background(), plan, installRoot, reg); err != nil {
			pterm.Error.Printf("Install failed: %v\n", err)
			return
		}

		if installPublish != "" {
			if err := bridge.Publish(installPublish, installRoot); err != nil {
				pterm.Warning.Printf("Installed but failed to publish to interpreter: %v\n", err)
				return
			}
			pterm.Info.Printf("Published install root to %s's site-packages\n", installPublish)
		}

		hitRate := store.HitRate()
		pterm.Success.Printf("Installed %d package(s) (cache hit rate %.1f%%)\n", len(plan), hitRate*100)
	},
}

func init() {
	installCmd.Flags().StringVar(&installPublish, "publish", "", "python interpreter to publish the install root into (writes a .pth file)")
	rootCmd.AddCommand(installCmd)
}
