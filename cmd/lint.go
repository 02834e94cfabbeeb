package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/korrigangames/bspforge/diagnostics"
	"github.com/korrigangames/bspforge/pipeline"
)

var lintMapPath string

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check a brush map for degenerate geometry",
	Long:  `Runs the full compilation as a dry run and fails when any brush raised a degenerate-geometry diagnostic, so bad maps are caught before they reach a renderer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := loadConfigOrDefault()
		mapPath := config.MapPath
		if lintMapPath != "" {
			mapPath = lintMapPath
		}

		fmt.Printf("Linting %s...\n", mapPath)
		mapText, err := os.ReadFile(mapPath)
		if err != nil {
			return fmt.Errorf("reading map file: %w", err)
		}

		diag := &diagnostics.Collector{}
		if _, err := pipeline.Build(string(mapText), pipeline.Options{Diag: diag}); err != nil {
			return fmt.Errorf("compiling map: %w", err)
		}

		if diag.Len() > 0 {
			fmt.Print(diag.Report())
			return fmt.Errorf("lint failed: %d degenerate-geometry diagnostics", diag.Len())
		}

		fmt.Println("Lint passed: no degenerate geometry found.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().StringVarP(&lintMapPath, "map", "m", "", "Map file to lint (overrides bspforge.yaml)")
}
