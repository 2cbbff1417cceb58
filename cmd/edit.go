package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"

	"github.com/spf13/cobra"
)

var (
	flagSetAction  []string
	flagSetMessage []string
	flagMove       []string
	flagWrite      bool
)

var editCmd = &cobra.Command{
	Use:   "edit <plan>",
	Short: "Change actions, messages, or order of commits in a plan",
	Long: `Apply edits to a plan. Commits are addressed by short id or a prefix of
the full id. Edits are applied in the order: moves, actions, messages.

Examples:
  rebaseplan edit plan.yml --action 3f2a1bc=fixup --action 9c8d7e6=drop
  rebaseplan edit plan.yml --message 3f2a1bc="Better summary" --write
  rebaseplan edit plan.yml --move 9c8d7e6=0`,
	Args: cobra.ExactArgs(1),
	RunE: editRunE,
}

func init() {
	editCmd.Flags().StringArrayVar(&flagSetAction, "action", nil, "set an action: <commit>=<pick|reword|edit|squash|fixup|drop>")
	editCmd.Flags().StringArrayVar(&flagSetMessage, "message", nil, "reword a commit: <commit>=<new message>")
	editCmd.Flags().StringArrayVar(&flagMove, "move", nil, "move a commit to a position: <commit>=<index>")
	editCmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "write the result back to the plan file")
	rootCmd.AddCommand(editCmd)
}

func editRunE(cmd *cobra.Command, args []string) error {
	ec, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := readPlan(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := applyEdits(p, flagMove, flagSetAction, flagSetMessage); err != nil {
		return err
	}

	format := planFormat(ec.Output)
	if !flagWrite || args[0] == "-" {
		return p.Write(cmd.OutOrStdout(), format)
	}
	return p.WriteFile(args[0], format)
}

func applyEdits(p *plan.Plan, moves, actions, messages []string) error {
	for _, m := range moves {
		ref, value, err := splitEdit(m)
		if err != nil {
			return err
		}
		to, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid position %q for %s", value, ref)
		}
		from, err := p.Find(ref)
		if err != nil {
			return err
		}
		if err := p.Move(from, to); err != nil {
			return err
		}
	}

	for _, a := range actions {
		ref, value, err := splitEdit(a)
		if err != nil {
			return err
		}
		action, err := rebase.ParseAction(value)
		if err != nil {
			return err
		}
		i, err := p.Find(ref)
		if err != nil {
			return err
		}
		if err := p.SetAction(i, action); err != nil {
			return err
		}
	}

	for _, m := range messages {
		ref, value, err := splitEdit(m)
		if err != nil {
			return err
		}
		i, err := p.Find(ref)
		if err != nil {
			return err
		}
		if err := p.SetMessage(i, value); err != nil {
			return err
		}
	}
	return nil
}

func splitEdit(s string) (string, string, error) {
	ref, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(ref) == "" {
		return "", "", fmt.Errorf("invalid edit %q: expected <commit>=<value>", s)
	}
	return strings.TrimSpace(ref), value, nil
}
