package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromBytes_Full(t *testing.T) {
	data := []byte(`
upstream: origin/main
short-sha-length: 9
autosquash: apply
block-on-errors: false
output: json
`)

	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, "origin/main", *cfg.Upstream)
	require.Equal(t, 9, *cfg.ShortShaLength)
	require.Equal(t, AutosquashApply, *cfg.Autosquash)
	require.False(t, *cfg.BlockOnErrors)
	require.Equal(t, "json", *cfg.Output)
}

func TestLoadFromBytes_Partial(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("autosquash: off\n"))
	require.NoError(t, err)
	require.Equal(t, AutosquashOff, *cfg.Autosquash)
	require.Nil(t, cfg.Upstream)
	require.Nil(t, cfg.ShortShaLength)
}

func TestLoadFromBytes_Empty(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(""))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Nil(t, cfg.Autosquash)
}

func TestLoadFromBytes_InvalidAutosquash(t *testing.T) {
	_, err := LoadFromBytes([]byte("autosquash: sometimes\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown autosquash mode "sometimes"`)
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("upstream: [unclosed"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing config")
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config file")
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	require.Empty(t, FindFile(dir))

	root := filepath.Join(dir, "rebaseplan.yml")
	require.NoError(t, os.WriteFile(root, []byte(""), 0o644))
	require.Equal(t, root, FindFile(dir))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".github"), 0o755))
	github := filepath.Join(dir, ".github", "rebaseplan.yml")
	require.NoError(t, os.WriteFile(github, []byte(""), 0o644))
	require.Equal(t, github, FindFile(dir))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load("", dir)
	require.NoError(t, err)
	require.Equal(t, "main", *cfg.Upstream)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rebaseplan.yml"), []byte("upstream: trunk\n"), 0o644))
	cfg, err = Load("", dir)
	require.NoError(t, err)
	require.Equal(t, "trunk", *cfg.Upstream)

	explicit := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(explicit, []byte("short-sha-length: 12\n"), 0o644))
	cfg, err = Load(explicit, dir)
	require.NoError(t, err)
	require.Equal(t, "main", *cfg.Upstream)
	require.Equal(t, 12, *cfg.ShortShaLength)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("short-sha-length: 2\n"), 0o644))

	_, err := Load(path, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "short-sha-length")
}
