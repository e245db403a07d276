package cli

import (
	"github.com/spf13/cobra"

	"github.com/oneiriclabs/mnemo/config"
	"github.com/oneiriclabs/mnemo/narrative"
)

var themesMinFrequency int

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Extract recurring themes from the memory dump",
	Run:   runThemes,
}

func init() {
	themesCmd.Flags().IntVar(&themesMinFrequency, "min", 0, "Minimum tag frequency (0 uses the config value)")
	RootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}

	memories, err := loadMemories(cmd)
	if err != nil {
		exitErr("load memories", err)
	}

	minFrequency := themesMinFrequency
	if minFrequency <= 0 {
		minFrequency = cfg.DreamConfig().Narrative.ThemeMinFrequency
	}

	printJSON(narrative.ExtractThemes(memories, minFrequency))
}
