// Package cmd is pytoy's CLI surface: thin cobra commands that build the
// install pipeline's collaborators (manifest, resolver, cache, installer,
// registry, bridge) and call into them. Grounded on the teacher's cmd/root.go
// (telemetry wiring behind --profile, viper-backed global config init).
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pytoy/src/internal/cache"
	"pytoy/src/internal/index"
	"pytoy/src/internal/installer"
	"pytoy/src/internal/pytoydir"
	"pytoy/src/internal/resolver"
	"pytoy/src/internal/telemetry"
)

var cfgFile string
var profileEnabled bool
var profileDir string

var rootCmd = &cobra.Command{
	Use:   "pytoy",
	Short: "pytoy is a high-throughput package manager for PyPI-style indices",
	Long: `pytoy resolves a project's dependencies against a PyPI-style JSON index,
fetches archive artifacts through a three-tier cache, and extracts them into a
project-local install directory, keeping a registry of what's installed so
reruns are incremental. Projects declare dependencies in pytoy.toml; artifacts
are cached globally under the user cache directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !profileEnabled {
			return nil
		}
		dir := strings.TrimSpace(profileDir)
		if dir == "" {
			dir = pytoydir.ProfileDir()
		}
		info, err := telemetry.Start(dir)
		if err != nil {
			return err
		}
		telemetry.Event(
			"command.start",
			"command", cmd.CommandPath(),
			"args_count", len(args),
			"config", viper.ConfigFileUsed(),
		)
		fmt.Printf("Profiling enabled.\nLogs: %s\nCPU: %s\nHeap: %s\n", info.LogPath, info.CPUPath, info.HeapPath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if !profileEnabled {
			return
		}
		telemetry.Event("command.stop", "command", cmd.CommandPath())
		if _, err := telemetry.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to flush profiling artifacts: %v\n", err)
		}
	},
}

// Execute runs the root command and exits with status 1 when cobra returns an
// error (an unknown command, bad flags or arguments). Subcommands report their
// own failures through pterm and return normally, so those runs exit with
// status 0.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the pytoy global config)")
	rootCmd.PersistentFlags().BoolVar(&profileEnabled, "profile", false, "collect CPU/heap profiles and structured timing logs")
	rootCmd.PersistentFlags().StringVar(&profileDir, "profile-dir", "", "directory for profiling artifacts (default: <pytoy-home>/profile)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigFile(pytoydir.ConfigFile())
	}
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// buildPipeline wires the resolver and installer against the global artifact
// cache rooted at <user_cache_dir>/pytoy/packages, per §6's cache layout.
func buildPipeline(indexURL, token string) (*resolver.Resolver, *installer.Installer, *cache.Store, error) {
	store, err := cache.Open(pytoydir.CacheDir())
	if err != nil {
		return nil, nil, nil, err
	}
	idx := index.NewClient(indexURL, token)
	res := resolver.New(idx, store)
	inst := installer.New(store)
	return res, inst, store, nil
}

func installRootFor(wd, installDir string) string {
	if filepath.IsAbs(installDir) {
		return installDir
	}
	return filepath.Join(wd, installDir)
}
