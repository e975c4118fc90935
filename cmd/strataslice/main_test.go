package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strataslice/pkg/config"
)

// writeWorkspace creates three small surfaces and a config pointing at them
func writeWorkspace(t *testing.T) (cfgFile, outDir string) {
	t.Helper()
	dir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		return path
	}

	cfg := config.DefaultConfig()
	cfg.Input.Lower = write("in_lower.txt", "1,2,3\n4,5,6\n7,8,9\n")
	cfg.Input.Central = write("in.txt", "11,12,13\n14,15,16\n17,18,19\n")
	cfg.Input.Upper = write("in_upper.txt", "21,22,23\n24,25,26\n27,28,29\n")
	cfg.Output.Dir = filepath.Join(dir, "output")
	cfg.Output.Heatmaps = false

	cfgFile = filepath.Join(dir, "strataslice.yaml")
	require.NoError(t, config.SaveConfig(cfg, cfgFile))
	return cfgFile, cfg.Output.Dir
}

// resetFlags puts every flag of cmd and its subcommands back to its default
// so one Execute does not leak into the next.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

// execute runs the root command with args on freshly reset flags
func execute(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(t, rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestRenderCommand(t *testing.T) {
	cfgFile, outDir := writeWorkspace(t)

	require.NoError(t, execute(t, "render", "--config", cfgFile, "--z-min", "10", "--stl", "mesh.stl", "--inclusive"))

	_, err := os.Stat(filepath.Join(outDir, "surfaces.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "mesh.stl"))
	require.NoError(t, err)

	assert.True(t, cfg.Slice.Inclusive)
}

func TestRenderFlagsDoNotCarryOver(t *testing.T) {
	first, _ := writeWorkspace(t)
	require.NoError(t, execute(t, "render", "--config", first, "--stl", "mesh.stl", "--inclusive"))
	require.True(t, cfg.Slice.Inclusive)

	second, outDir := writeWorkspace(t)
	require.NoError(t, execute(t, "render", "--config", second))

	assert.False(t, cfg.Slice.Inclusive)
	_, err := os.Stat(filepath.Join(outDir, "mesh.stl"))
	assert.True(t, os.IsNotExist(err), "mesh.stl written without --stl")
	_, err = os.Stat(filepath.Join(outDir, "surfaces.html"))
	require.NoError(t, err)
}

func TestRenderCommandMissingInput(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "strataslice.yaml")
	cfg := config.DefaultConfig()
	cfg.Input.Central = filepath.Join(t.TempDir(), "missing.txt")
	require.NoError(t, config.SaveConfig(cfg, cfgFile))

	require.Error(t, execute(t, "render", "--config", cfgFile))
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "strataslice.yaml")

	require.NoError(t, execute(t, "config", "init", path))

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)
}
