package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rpc"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner as JSON-RPC over stdio",
	Long: `Read newline-delimited JSON-RPC 2.0 requests from stdin and write the
responses to stdout. Available methods: get_rebase_commits,
execute_interactive_rebase, plan.preview, plan.autosquash, plan.todo.
Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: serveRunE,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serveRunE(cmd *cobra.Command, _ []string) error {
	ec, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("path", flagPath).Msg("starting rebaseplan server")

	server := rpc.NewServer(rpc.NewLocalBackend(ec))
	err = rpc.Serve(ctx, server, cmd.InOrStdin(), cmd.OutOrStdout())
	if ctx.Err() != nil {
		log.Info().Msg("server stopped")
		return nil
	}
	return err
}
