package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagPath      string
	flagConfig    string
	flagOutput    string
	flagVerbosity string
)

// rootCmd is the top-level command for rebaseplan.
var rootCmd = &cobra.Command{
	Use:   "rebaseplan",
	Short: "Plan interactive rebases",
	Long: `rebaseplan builds an interactive rebase plan from a branch, previews the
history it would produce, and hands the finished todo script to git.

Typical flow:
  rebaseplan load main > plan.yml
  rebaseplan edit plan.yml --action 3f2a1bc=fixup --write
  rebaseplan preview plan.yml
  GIT_SEQUENCE_EDITOR="rebaseplan sequence-editor plan.yml" git rebase -i main`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging(flagVerbosity)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the git repository")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: text, json, or yaml (default: from config)")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")
}

// setupLogging configures the global zerolog logger. Logs go to stderr so
// stdout stays clean for plans and todo scripts.
func setupLogging(verbosity string) {
	var level zerolog.Level
	switch verbosity {
	case "quiet":
		level = zerolog.ErrorLevel
	case "info", "":
		level = zerolog.InfoLevel
	case "debug":
		level = zerolog.DebugLevel
	default:
		parsed, err := zerolog.ParseLevel(verbosity)
		if err != nil {
			parsed = zerolog.InfoLevel
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
