package cmd

import (
	"github.com/spf13/cobra"
)

var autosquashCmd = &cobra.Command{
	Use:   "autosquash <plan>",
	Short: "Move fixup!/squash! commits after their targets",
	Long: `Rearrange the plan so that every commit whose summary starts with
"fixup! " or "squash! " directly follows the commit it names, with its
action set accordingly. Commits with no target keep their place at the end
of the plan and are reported as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: autosquashRunE,
}

func init() {
	rootCmd.AddCommand(autosquashCmd)
}

func autosquashRunE(cmd *cobra.Command, args []string) error {
	ec, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := readPlan(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	p.ApplyAutosquash()
	return p.Write(cmd.OutOrStdout(), planFormat(ec.Output))
}
