package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oneiriclabs/mnemo/policy"
)

var (
	trustAction  string
	trustOutcome string
)

var trustCmd = &cobra.Command{
	Use:   "trust",
	Short: "Show per-action trust scores",
	Run:   runTrust,
}

var trustRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a review outcome for an action",
	Run:   runTrustRecord,
}

func init() {
	trustRecordCmd.Flags().StringVar(&trustAction, "action", "", "Action the outcome applies to (e.g. consolidate)")
	trustRecordCmd.Flags().StringVar(&trustOutcome, "outcome", "", "Outcome: approved, rejected, or auto")
	trustRecordCmd.MarkFlagRequired("action")
	trustRecordCmd.MarkFlagRequired("outcome")
	trustCmd.AddCommand(trustRecordCmd)
	RootCmd.AddCommand(trustCmd)
}

func runTrust(cmd *cobra.Command, args []string) {
	trust, err := policy.LoadTrustFile(trustPath)
	if err != nil {
		exitErr("load trust scores", err)
	}
	printJSON(trust.Export())
}

func runTrustRecord(cmd *cobra.Command, args []string) {
	outcome := policy.Status(trustOutcome)
	switch outcome {
	case policy.StatusApproved, policy.StatusRejected, policy.StatusAuto:
	default:
		exitErr("record outcome", fmt.Errorf("unknown outcome %q", trustOutcome))
	}

	trust, err := policy.LoadTrustFile(trustPath)
	if err != nil {
		exitErr("load trust scores", err)
	}

	trust.RecordOutcome(policy.Action(trustAction), outcome)

	if err := policy.SaveTrustFile(trust, trustPath); err != nil {
		exitErr("save trust scores", err)
	}
	printJSON(trust.Get(policy.Action(trustAction)))
}
