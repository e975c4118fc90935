package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	profileAxis  string
	profileIndex int
	profileOut   string
)

// profileCmd writes a single cross-section
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Write one cross-section through all three surfaces",
	Long: `Cuts the sliced surfaces along a column (--axis x) or a row (--axis y)
at a 1-based index and plots the elevation of every layer.

Example:
  strataslice profile --axis x --index 25 --out section_x25.png`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileAxis, "axis", "x", "Axis to cut across (x or y)")
	profileCmd.Flags().IntVar(&profileIndex, "index", 1, "1-based column (x) or row (y) to cut along")
	profileCmd.Flags().StringVarP(&profileOut, "out", "o", "", "Output PNG (default <output dir>/profile_<axis>_<index>.png)")
}

func runProfile(cmd *cobra.Command, args []string) error {
	sec, err := loadSection()
	if err != nil {
		return err
	}

	path := profileOut
	if path == "" {
		path = filepath.Join(cfg.Output.Dir, fmt.Sprintf("profile_%s_%03d.png", profileAxis, profileIndex))
	}

	b := cfg.Bounds(sec.Extent())
	if err := newViewer(sec).SaveProfile(profileAxis, profileIndex, path, b); err != nil {
		return err
	}

	fmt.Printf("Profile saved to: %s\n", path)
	return nil
}
