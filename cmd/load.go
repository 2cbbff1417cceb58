package cmd

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/git"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"

	"github.com/spf13/cobra"
)

var flagHead string

var loadCmd = &cobra.Command{
	Use:   "load [upstream]",
	Short: "Write a plan for the commits between upstream and HEAD",
	Long: `Load the commits that an interactive rebase onto upstream would replay
and write them as a plan file in which every commit is picked. Without an
argument the configured upstream is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: loadRunE,
}

func init() {
	loadCmd.Flags().StringVar(&flagHead, "head", "", "branch tip to rebase (default: HEAD)")
	rootCmd.AddCommand(loadCmd)
}

func loadRunE(cmd *cobra.Command, args []string) error {
	repo, err := git.Open(flagPath)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	ec, err := loadConfig()
	if err != nil {
		return err
	}

	upstream := ""
	if len(args) == 1 {
		upstream = args[0]
	}

	p, err := plan.FromRepository(git.NewRepositoryStore(repo), upstream, flagHead, ec)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}

	return p.Write(cmd.OutOrStdout(), planFormat(ec.Output))
}
