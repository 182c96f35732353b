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

var addCmd = &cobra.Command{
	Use:   "add <package_name>...",
	Short: "Add one or more dependencies to pytoy.toml and install them",
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

		for _, req := range args {
			name := requirementToDepName(req)
			if name == "" {
				continue
			}
			m.Dependencies[name] = "*"
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

		for _, pkg := range plan {
			m.Dependencies[manifest.NormalizeDepName(pkg.Name)] = pkg.Version
		}
		if err := manifest.Save(manifestPath, m); err != nil {
			pterm.Warning.Printf("Installed but failed to persist pytoy.toml: %v\n", err)
			return
		}

		pterm.Success.Printf("Installed %d package(s)\n", len(plan))
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
