package cli

import (
	"github.com/spf13/cobra"

	"github.com/oneiriclabs/mnemo/config"
	"github.com/oneiriclabs/mnemo/graph"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Print ranked link proposals for the memory dump",
	Run:   runLinks,
}

func init() {
	RootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}

	memories, err := loadMemories(cmd)
	if err != nil {
		exitErr("load memories", err)
	}

	proposals, err := graph.GenerateProposedLinks(memories, cfg.DreamConfig().Propose)
	if err != nil {
		exitErr("generate proposals", err)
	}

	printJSON(proposals)
}
