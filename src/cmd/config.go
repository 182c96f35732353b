package cmd

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pytoy/src/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit pytoy's global configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved global configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			pterm.Error.Printf("Failed to load global config: %v\n", err)
			return
		}
		enc := toml.NewEncoder(os.Stdout)
		_ = enc.Encode(cfg)
	},
}

var configSetIndexCmd = &cobra.Command{
	Use:   "set-index <url>",
	Short: "Set the default index URL in the global config",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			pterm.Error.Printf("Failed to load global config: %v\n", err)
			return
		}
		cfg.IndexURL = args[0]

		f, err := os.Create(config.Path())
		if err != nil {
			pterm.Error.Printf("Failed to write global config: %v\n", err)
			return
		}
		defer f.Close()
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			pterm.Error.Printf("Failed to encode global config: %v\n", err)
			return
		}
		pterm.Success.Printf("index_url set to %s\n", cfg.IndexURL)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetIndexCmd)
	rootCmd.AddCommand(configCmd)
}
