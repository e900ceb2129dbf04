package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagPresets bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `Load the configuration the way 'snake play' would, apply the
command line overrides, and print it as YAML. The difficulty preset is
recorded by name, so the output can be saved as ~/.snake/config.yaml.

Examples:
  snake config
  snake config --difficulty hard --fps 8
  snake config --presets`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagPresets, "presets", false, "List difficulty presets and what they change")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, source, err := loadRawConfig()
	if err != nil {
		return err
	}

	if flagPresets {
		printPresets(cfg)
		return nil
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	_, err = os.Stdout.Write(data)
	return err
}

func printPresets(raw config.Config) {
	selected, _ := config.ParsePreset(raw.Game.Difficulty)

	fmt.Printf("  %-6s  %-10s  %s\n", "Preset", "Level time", "Food")
	fmt.Printf("  %-6s  %-10s  %s\n", "------", "----------", "----")
	for _, p := range config.Presets() {
		cfg := raw
		cfg.Game.Difficulty = string(p)
		cfg = cfg.Effective()

		marker := ""
		if p == selected {
			marker = "  (selected)"
		}
		fmt.Printf("  %-6s  %-10s  %d%s\n", p, cfg.Game.LevelTime, cfg.Game.FoodCapacity, marker)
	}
}
