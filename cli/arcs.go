package cli

import (
	"github.com/spf13/cobra"

	"github.com/oneiriclabs/mnemo/config"
	"github.com/oneiriclabs/mnemo/narrative"
)

var arcsCmd = &cobra.Command{
	Use:   "arcs",
	Short: "Detect story arcs in the memory dump",
	Run:   runArcs,
}

func init() {
	RootCmd.AddCommand(arcsCmd)
}

func runArcs(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}

	memories, err := loadMemories(cmd)
	if err != nil {
		exitErr("load memories", err)
	}

	arcs, err := narrative.DetectArcs(memories, cfg.DreamConfig().Narrative)
	if err != nil {
		exitErr("detect arcs", err)
	}

	printJSON(arcs)
}
