package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestDefaultConfigWrittenOnlyWhenRead(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Cleanup(func() {
		configPath, defaultConfigPath, logger = "", false, nil
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
	want := filepath.Join(home, "config", "tracker", "config.toml")

	assert.Equal(t, want+"\n", runRoot(t, "config", "path"))
	_, err := os.Stat(want)
	assert.True(t, os.IsNotExist(err), "config path must not write the config")

	runRoot(t, "completion", "bash")
	_, err = os.Stat(want)
	assert.True(t, os.IsNotExist(err), "completion must not write the config")

	assert.Contains(t, runRoot(t, "config", "show"), "[workweek]")
	_, err = os.Stat(want)
	assert.NoError(t, err, "reading the config writes the template")
}
