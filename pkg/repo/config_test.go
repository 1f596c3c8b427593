package repo

import (
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	repoPath := t.TempDir()
	cfg, err := LoadConfig(repoPath)
	require.Nil(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 24*time.Hour, cfg.Log.RotationTime.ToDuration())

	cfg.Log.RotationTime = Duration(time.Hour)
	cfg.Executor.FixedTimestamp = 1700000000
	require.Nil(t, writeConfigWithEnv(path.Join(repoPath, CfgFileName), cfg))

	cfg2, err := LoadConfig(repoPath)
	require.Nil(t, err)
	assert.Equal(t, time.Hour, cfg2.Log.RotationTime.ToDuration())
	assert.Equal(t, uint64(1700000000), cfg2.Executor.FixedTimestamp)

	t.Setenv("DAAP_LEDGER_LOG_LEVEL", "debug")
	cfg3, err := LoadConfig(repoPath)
	require.Nil(t, err)
	assert.Equal(t, "debug", cfg3.Log.Level)
}

func TestRepoLoadAndFlush(t *testing.T) {
	repoPath := t.TempDir()
	rep := Default(repoPath)
	rep.GenesisConfig.Token.Name = "Other"
	require.Nil(t, rep.Flush())

	loaded, err := Load(repoPath)
	require.Nil(t, err)
	assert.Equal(t, repoPath, loaded.RepoRoot)
	assert.Equal(t, "Other", loaded.GenesisConfig.Token.Name)
	assert.Equal(t, path.Join(repoPath, KeystoreDirName, "alice.json"), loaded.KeystorePath("alice"))

	var lines []string
	loaded.PrintRepoInfo(func(c string) {
		lines = append(lines, c)
	})
	assert.Len(t, lines, 3)
}

func TestLoadRepoRootFromEnv(t *testing.T) {
	root, err := LoadRepoRootFromEnv("/tmp/daap")
	require.Nil(t, err)
	assert.Equal(t, "/tmp/daap", root)

	t.Setenv(rootPathEnvVar, "/tmp/daap-env")
	root, err = LoadRepoRootFromEnv("")
	require.Nil(t, err)
	assert.Equal(t, "/tmp/daap-env", root)
}
