package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catmatch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Loads the configuration the same way 'play' does, applies the
difficulty preset and prints the result as YAML. Redirect the output to
~/.catmatch/configs/catmatch.yaml to start a custom config.

Examples:
  catmatch config
  catmatch config --difficulty hard
  catmatch config --config ./my-catmatch.yaml
  catmatch config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

var flagConfigDefaults bool

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults file verbatim")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagConfigDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadCatMatch(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyCatMatchPreset(&cfg, preset)

	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}
