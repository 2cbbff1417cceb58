package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/config"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/git"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"

	"github.com/spf13/cobra"
)

// loadConfig loads configuration for the repository at flagPath. When
// flagPath is not inside a repository it is used as the config directory.
func loadConfig() (config.EffectiveConfiguration, error) {
	workDir := flagPath
	if repo, err := git.Open(flagPath); err == nil {
		workDir = repo.WorkingDirectory()
	}

	cfg, err := config.Load(flagConfig, workDir)
	if err != nil {
		return config.EffectiveConfiguration{}, fmt.Errorf("loading configuration: %w", err)
	}

	ec := cfg.Effective()
	if flagOutput != "" {
		ec.Output = flagOutput
	}
	return ec, nil
}

// readPlan loads a plan file. "-" reads from in.
func readPlan(path string, in io.Reader) (*plan.Plan, error) {
	if path != "-" {
		return plan.LoadFromFile(path)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading plan from stdin: %w", err)
	}
	return plan.LoadFromBytes(data)
}

// planFormat maps an output format to a plan file format. Plans have no
// text rendering, so text means YAML.
func planFormat(output string) string {
	if output == config.OutputJSON {
		return plan.FormatJSON
	}
	return plan.FormatYAML
}

// commandContext returns the command's context, or Background when the
// command is run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
