package cmd

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rpc"

	"github.com/spf13/cobra"
)

var sequenceEditorCmd = &cobra.Command{
	Use:   "sequence-editor <plan> <todo-file>",
	Short: "Replace git's rebase todo with a plan (GIT_SEQUENCE_EDITOR hook)",
	Long: `Act as git's sequence editor: overwrite the todo file git is about to
execute with the script serialized from plan. git appends the todo file
path, so the plan is the only argument to configure:

  GIT_SEQUENCE_EDITOR="rebaseplan sequence-editor plan.yml" git rebase -i main

The plan must list exactly the commits git put in the todo. A stale plan,
or one loaded against a different upstream, is refused and the todo is left
as git wrote it.`,
	Args: cobra.ExactArgs(2),
	RunE: sequenceEditorRunE,
}

func init() {
	rootCmd.AddCommand(sequenceEditorCmd)
}

func sequenceEditorRunE(cmd *cobra.Command, args []string) error {
	ec, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := readPlan(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	script, err := p.Todo()
	if err != nil {
		return err
	}

	backend := rpc.NewLocalBackend(ec)
	_, err = backend.ExecuteInteractiveRebase(commandContext(cmd), rpc.ExecuteInteractiveRebaseParams{
		TodoScript: script,
		TodoFile:   args[1],
	})
	if err != nil {
		return fmt.Errorf("writing todo: %w", err)
	}
	return nil
}
