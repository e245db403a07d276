package cli

import (
	"github.com/spf13/cobra"

	"github.com/oneiriclabs/mnemo/config"
	"github.com/oneiriclabs/mnemo/dream"
	"github.com/oneiriclabs/mnemo/memory/store/chromem"
	"github.com/oneiriclabs/mnemo/policy"
)

var dreamCmd = &cobra.Command{
	Use:   "dream",
	Short: "Run a maintenance pass over the memory dump",
	Long:  "Loads the dump into an in-memory store, runs link enrichment, consolidation, decay, contradiction flagging, and narrative annotation, then prints the report. Trust scores are read before and written back after the pass.",
	Run:   runDream,
}

func init() {
	RootCmd.AddCommand(dreamCmd)
}

func runDream(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}

	memories, err := loadMemories(cmd)
	if err != nil {
		exitErr("load memories", err)
	}

	store, err := chromem.New()
	if err != nil {
		exitErr("open store", err)
	}
	for _, m := range memories {
		if err := store.Save(cmd.Context(), m); err != nil {
			exitErr("load store", err)
		}
	}

	trust, err := policy.LoadTrustFile(trustPath)
	if err != nil {
		exitErr("load trust scores", err)
	}

	engine, err := dream.NewEngine(store, cfg.DreamConfig(),
		dream.WithPolicy(policy.NewEngine(cfg.Policy, trust)),
		dream.WithQueue(policy.NewProposalQueue(trust)),
	)
	if err != nil {
		exitErr("create engine", err)
	}

	report, err := engine.Run(cmd.Context())
	if err != nil {
		exitErr("run pass", err)
	}

	if err := policy.SaveTrustFile(trust, trustPath); err != nil {
		exitErr("save trust scores", err)
	}

	printJSON(report)
}
