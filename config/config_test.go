package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/tableau/penalty"
	"q.log/tableau/simplex"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "twophase", c.Method)
	assert.Equal(t, "lexicographic", c.Resolver)
	assert.Equal(t, penalty.DefaultTolerance, c.Tolerance)
	assert.Zero(t, c.MaxIterations)
	assert.False(t, c.Verbose)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
	assert.Equal(t, 10, c.Log.MaxSize)

	m, err := c.SolveMethod()
	require.NoError(t, err)
	assert.Equal(t, simplex.TwoPhase, m)

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tableau.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
method: bigm
tolerance: 0.001
max_iterations: 50
log:
  level: debug
  format: json
`), 0o600))

	t.Setenv("TABLEAU_TOLERANCE", "1e-6")
	t.Setenv("TABLEAU_LOG_FORMAT", "text")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--resolver", "substitution", "--max-iterations", "7", "-v"}))

	c, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "bigm", c.Method, "from the file")
	assert.Equal(t, 1e-6, c.Tolerance, "environment beats the file")
	assert.Equal(t, "text", c.Log.Format, "environment beats the file")
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "substitution", c.Resolver, "flag")
	assert.Equal(t, 7, c.MaxIterations, "flag beats the file")
	assert.True(t, c.Verbose)

	m, err := c.SolveMethod()
	require.NoError(t, err)
	assert.Equal(t, simplex.BigM, m)
}

func TestLoadUnchangedFlagsKeepDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	c, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "twophase", c.Method)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestLoadValidation(t *testing.T) {
	for name, env := range map[string][2]string{
		"method":     {"TABLEAU_METHOD", "dual"},
		"resolver":   {"TABLEAU_RESOLVER", "guess"},
		"tolerance":  {"TABLEAU_TOLERANCE", "0"},
		"log level":  {"TABLEAU_LOG_LEVEL", "loud"},
		"iterations": {"TABLEAU_MAX_ITERATIONS", "-1"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := Load("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config: validate")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"), nil)
	require.Error(t, err)
}
