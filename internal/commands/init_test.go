package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/config"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "tally-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "tally")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/tally")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runTally(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "init", dir)
	require.NoError(t, err)

	expectedDirs := []string{
		"rules",
		"rates",
		"logs",
		"statements",
		filepath.Join("statements", "processed"),
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "init", dir, "--base-currency", "EUR")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "tally.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Ledger.BaseCurrency)
	assert.Equal(t, "ledger.csv", cfg.Ledger.Path)
	assert.True(t, cfg.Git.AutoCommit)
}

func TestInit_DefaultBaseCurrency(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "init", dir)
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "tally.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "DKK", cfg.Ledger.BaseCurrency)
}

func TestInit_SeedFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "init", dir)
	require.NoError(t, err)

	rules, err := os.ReadFile(filepath.Join(dir, "rules", "categorization-rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "rules: []\n", string(rules))

	ratesCSV, err := os.ReadFile(filepath.Join(dir, "rates", "rates.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Date;From;To;Rate\n", string(ratesCSV))
}

func TestInit_GitRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "init", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init:")

	authorLog := exec.Command("git", "log", "--format=%an <%ae>", "-1")
	authorLog.Dir = dir
	out, err = authorLog.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Tally <tally@localhost>")
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "statements/")
}
