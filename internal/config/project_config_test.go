package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0600))
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when config does not exist", func(t *testing.T) {
		dir := t.TempDir()

		cfg, err := Load(dir)
		require.NoError(t, err)
		require.Equal(t, "master", cfg.BaseBranch)
		require.Equal(t, "origin", cfg.Remote)
		require.Equal(t, "upstream", cfg.UpstreamRemote)
		require.Equal(t, "master", cfg.Submit.Base)
		require.Equal(t, "github.com", cfg.GitHub.Hostname)
		require.Equal(t, 5*time.Second, cfg.RequestTimeout())
		require.Equal(t, []string{"make", "test"}, cfg.Test.Command)
		require.Equal(t, SourceURLGit, cfg.Test.SourceURL)
		require.Empty(t, cfg.Repository.Owner)
	})

	t.Run("reads values from the yaml file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, `repository:
  owner: zencoder
  name: video-js
submit:
  owner: heff2
baseBranch: develop
github:
  timeout: 10s
test:
  command: [npm, test]
  sourceURL: https
`)

		cfg, err := Load(dir)
		require.NoError(t, err)
		require.Equal(t, "zencoder", cfg.Repository.Owner)
		require.Equal(t, "video-js", cfg.Repository.Name)
		require.Equal(t, "heff2", cfg.Submit.Owner)
		require.Equal(t, "develop", cfg.BaseBranch)
		require.Equal(t, "develop", cfg.Submit.Base, "submit base follows the base branch")
		require.Equal(t, 10*time.Second, cfg.RequestTimeout())
		require.Equal(t, []string{"npm", "test"}, cfg.Test.Command)
		require.Equal(t, SourceURLHTTPS, cfg.Test.SourceURL)
	})

	t.Run("submit owner defaults to repository owner", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "repository:\n  owner: zencoder\n")

		cfg, err := Load(dir)
		require.NoError(t, err)
		require.Equal(t, "zencoder", cfg.Submit.Owner)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "repository:\n  owner: zencoder\n")
		t.Setenv("FEATUREFLOW_UPSTREAM_OWNER", "videojs")
		t.Setenv("FEATUREFLOW_BASE_BRANCH", "main")

		cfg, err := Load(dir)
		require.NoError(t, err)
		require.Equal(t, "videojs", cfg.Repository.Owner)
		require.Equal(t, "main", cfg.BaseBranch)
	})

	t.Run("rejects an unknown source url kind", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "test:\n  sourceURL: ftp\n")

		_, err := Load(dir)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid test.sourceURL")
	})

	t.Run("rejects a malformed timeout", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "github:\n  timeout: soon\n")

		_, err := Load(dir)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid github.timeout")
	})

	t.Run("fails on malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "repository: [unterminated\n")

		_, err := Load(dir)
		require.Error(t, err)
	})
}

func TestSaveAndFillRepository(t *testing.T) {
	dir := t.TempDir()
	require.False(t, Exists(dir))

	cfg := Default()
	cfg.FillRepository("zencoder", "video-js")
	require.Equal(t, "zencoder", cfg.Submit.Owner)
	require.NoError(t, cfg.Save(dir))
	require.True(t, Exists(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	// configured values win over inferred ones
	loaded.FillRepository("someone", "else")
	require.Equal(t, "zencoder", loaded.Repository.Owner)
	require.Equal(t, "video-js", loaded.Repository.Name)
}
