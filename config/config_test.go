package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gramq.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
grammar = "grammars/java8.yaml"
jobs = 4
verbosity = 1
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Grammar:   "grammars/java8.yaml",
		Jobs:      4,
		Verbosity: 1,
		Format:    "json",
	}, cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `grammar = "a.json"`)
	t.Setenv(EnvGrammar, "b.ebnf")
	t.Setenv(EnvJobs, "2")
	t.Setenv(EnvVerbosity, "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.ebnf", cfg.Grammar)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, 3, cfg.Verbosity)
	assert.Equal(t, "line", cfg.Format)
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv(EnvJobs, "many")
	_, err := Load(writeConfig(t, ""))
	assert.ErrorContains(t, err, EnvJobs)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "config file not found")
}

func TestLoadDefaultPathIsOptional(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Jobs: -1, Format: "xml"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "jobs=-1")
	assert.ErrorContains(t, err, `format="xml"`)
}

func TestLoadInvalidTOML(t *testing.T) {
	_, err := Load(writeConfig(t, `grammar = `))
	assert.ErrorContains(t, err, "failed to parse config")
}
