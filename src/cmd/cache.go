package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pytoy/src/internal/cache"
	"pytoy/src/internal/pytoydir"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the global artifact cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the artifact cache's hit rate",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := cache.Open(pytoydir.CacheDir())
		if err != nil {
			pterm.Error.Printf("Failed to open cache: %v\n", err)
			return
		}
		defer store.Close()
		pterm.Info.Printf("Cache hit rate: %.1f%%\n", store.HitRate()*100)
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all three cache tiers",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := cache.Open(pytoydir.CacheDir())
		if err != nil {
			pterm.Error.Printf("Failed to open cache: %v\n", err)
			return
		}
		defer store.Close()
		if err := store.Clear(); err != nil {
			pterm.Error.Printf("Failed to clear cache: %v\n", err)
			return
		}
		pterm.Success.Println("Cache cleared")
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
