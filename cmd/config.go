package cmd

import (
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/config"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/output"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  configRunE,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// effectiveDocument is the printable form of the effective configuration.
type effectiveDocument struct {
	Upstream       string `yaml:"upstream" json:"upstream"`
	ShortShaLength int    `yaml:"short-sha-length" json:"shortShaLength"`
	Autosquash     string `yaml:"autosquash" json:"autosquash"`
	BlockOnErrors  bool   `yaml:"block-on-errors" json:"blockOnErrors"`
	Output         string `yaml:"output" json:"output"`
}

func configRunE(cmd *cobra.Command, _ []string) error {
	ec, err := loadConfig()
	if err != nil {
		return err
	}

	doc := effectiveDocument{
		Upstream:       ec.Upstream,
		ShortShaLength: ec.ShortShaLength,
		Autosquash:     ec.Autosquash.String(),
		BlockOnErrors:  ec.BlockOnErrors,
		Output:         ec.Output,
	}

	if ec.Output == config.OutputJSON {
		return output.WriteJSON(cmd.OutOrStdout(), doc)
	}
	return output.WriteYAML(cmd.OutOrStdout(), doc)
}
