package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masquerade/internal/content"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "masquerade (devel)\n", out)
}

func TestSimulate_SameSeedSameTranscript(t *testing.T) {
	first, err := execute(t, "simulate", "--seed", "7", "--strategy", "random")
	require.NoError(t, err)
	second, err := execute(t, "simulate", "--seed", "7", "--strategy", "random")
	require.NoError(t, err)

	assert.Contains(t, first, "seed 7 strategy random\n")
	assert.Contains(t, first, "accuracy ")
	assert.Equal(t, first, second)
}

func TestSimulate_UnknownStrategy(t *testing.T) {
	_, err := execute(t, "simulate", "--seed", "1", "--strategy", "psychic")
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestContentValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")

	pack, err := content.Default()
	require.NoError(t, err)
	f, err := os.Create(good)
	require.NoError(t, err)
	require.NoError(t, content.Write(f, pack))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(bad, []byte(`{"version": "v2.0.0"}`), 0o644))

	out, err := execute(t, "content", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok    "+good)

	out, err = execute(t, "content", "validate", good, bad)
	assert.ErrorContains(t, err, "1 of 2 packs invalid")
	assert.Contains(t, out, "FAIL  "+bad)
}

func TestStatsAndReset(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")

	out, err := execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No games played yet.")

	_, err = execute(t, "simulate", "--db", db, "--seed", "3", "--strategy", "correct", "--record")
	require.NoError(t, err)

	out, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Games:     1")
	assert.Contains(t, out, "Outcomes")

	out, err = execute(t, "reset", "--db", db, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")

	out, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No games played yet.")
}
