package cmd

import (
	"errors"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/output"

	"github.com/spf13/cobra"
)

// errPlanHasErrors is returned by preview when the plan cannot be executed
// and block-on-errors is set.
var errPlanHasErrors = errors.New("plan has squash or fixup commits with no previous commit")

var previewCmd = &cobra.Command{
	Use:   "preview <plan>",
	Short: "Show the history a plan would produce",
	Args:  cobra.ExactArgs(1),
	RunE:  previewRunE,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func previewRunE(cmd *cobra.Command, args []string) error {
	ec, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := readPlan(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	report := output.NewReport(p)
	if err := output.WriteReport(cmd.OutOrStdout(), report, ec.Output); err != nil {
		return err
	}

	if report.HasErrors && ec.BlockOnErrors {
		return errPlanHasErrors
	}
	return nil
}
