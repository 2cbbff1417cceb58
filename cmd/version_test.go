package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/config"

	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Text(t *testing.T) {
	Version = "1.0.0-test"
	defer func() { Version = "dev" }()

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	require.NoError(t, versionCmd.RunE(versionCmd, nil))
	require.Equal(t, "rebaseplan 1.0.0-test\n", buf.String())
}

func TestVersionCmd_JSON(t *testing.T) {
	Version = "1.0.0-test"
	flagOutput = config.OutputJSON
	defer func() {
		Version = "dev"
		flagOutput = ""
	}()

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	require.NoError(t, versionCmd.RunE(versionCmd, nil))

	var info versionInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	require.Equal(t, "1.0.0-test", info.Version)
	require.NotEmpty(t, info.Go)
}
