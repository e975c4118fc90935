package main

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"strataslice/internal/models"
	"strataslice/internal/tui"
	"strataslice/pkg/section"
)

var (
	viewWatch     bool
	viewAutoWrite bool
)

// viewCmd starts the interactive slider UI
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Slice the surfaces interactively with six slider controls",
	Long: `Opens a terminal UI with lower and upper limits for Z, X and Y.
Every slider change re-slices the three surfaces; 'w' writes the 3D chart to
the configured HTML file and 'r' resets all sliders to the full extent.

With --auto-write the chart is rewritten after every change, so a browser
showing it only needs a refresh. With --watch the surfaces are reloaded when
an input file changes.`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&viewWatch, "watch", false, "Reload surfaces when an input file changes")
	viewCmd.Flags().BoolVar(&viewAutoWrite, "auto-write", false, "Rewrite the HTML chart after every slider change")
}

func runView(cmd *cobra.Command, args []string) error {
	sec, err := loadSection()
	if err != nil {
		return err
	}

	htmlPath := filepath.Join(cfg.Output.Dir, cfg.Output.HTML)
	model := tui.New(sec, tui.Options{
		Load: loadSection,
		Write: func(s *section.Section, b models.Bounds) (string, error) {
			if err := newViewer(s).SaveHTML(htmlPath, b); err != nil {
				return "", err
			}
			return htmlPath, nil
		},
		AutoWrite: viewAutoWrite || cfg.View.AutoWrite,
		Title:     cfg.Render.Title,
		Logger:    logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if viewWatch || cfg.View.Watch {
		paths := []string{cfg.Input.Lower, cfg.Input.Central, cfg.Input.Upper}
		go func() {
			err := tui.Watch(ctx, paths, func(string) { p.Send(tui.ReloadMsg{}) }, logger)
			if err != nil {
				logger.Error("watcher stopped", zap.Error(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
