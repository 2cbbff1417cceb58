package cmd

import (
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/output"

	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo <plan>",
	Short: "Print the rebase todo script for a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  todoRunE,
}

func init() {
	rootCmd.AddCommand(todoCmd)
}

func todoRunE(cmd *cobra.Command, args []string) error {
	p, err := readPlan(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	script, err := p.Todo()
	if err != nil {
		return err
	}
	return output.WriteTodo(cmd.OutOrStdout(), script)
}
