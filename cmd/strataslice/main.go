package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"strataslice/pkg/config"
	"strataslice/pkg/section"
	"strataslice/pkg/visualization"
)

var (
	// Global flags
	configPath string
	verbose    bool
	logFile    string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "strataslice",
	Short: "Slice three stacked elevation surfaces along X, Y and Z",
	Long: `strataslice loads a lower, central and upper surface from CSV grids,
derives X/Y index coordinates from the central grid and masks every cell that
falls outside the selected X, Y and Z ranges.

The sliced surfaces are rendered as an interactive 3D chart (HTML), plan-view
heat maps and cross-section profiles (PNG), and optionally an STL mesh.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		logger, err = newLogger(cmd)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newLogger builds the zap logger. The viewer owns the terminal, so it only
// logs when a log file is given.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if cmd.Name() == "view" && logFile == "" {
		return zap.NewNop(), nil
	}

	zc := zap.NewProductionConfig()
	if verbose || cfg.Output.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logFile != "" {
		zc.OutputPaths = []string{logFile}
		zc.ErrorOutputPaths = []string{logFile}
	}
	return zc.Build()
}

// loadSection reads the configured surfaces
func loadSection() (*section.Section, error) {
	return section.Load(cfg.Paths(),
		section.WithInclusive(cfg.Slice.Inclusive),
		section.WithLogger(logger))
}

// newViewer creates a viewer configured from the render settings
func newViewer(sec *section.Section) *visualization.Viewer {
	return visualization.NewViewer(sec,
		visualization.WithTitle(cfg.Render.Title),
		visualization.WithSize(cfg.Render.Width, cfg.Render.Height),
		visualization.WithTheme(cfg.Render.Theme),
		visualization.WithPlotSize(cfg.Render.PlotWidth, cfg.Render.PlotHeight),
		visualization.WithLogger(logger))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "strataslice.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(renderCmd, viewCmd, profileCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
