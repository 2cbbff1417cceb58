package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/config"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type versionInfo struct {
	Version string `json:"version"`
	Go      string `json:"go"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rebaseplan binary version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagOutput == config.OutputJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(versionInfo{Version: Version, Go: runtime.Version()})
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "rebaseplan %s\n", Version)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
