package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/korrigangames/bspforge/pipeline"
	"github.com/korrigangames/bspforge/platform"
	"github.com/korrigangames/bspforge/project"
)

var (
	buildMapPath  string
	buildDumpPath string
	buildSeed     uint64
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile a brush map into union geometry, a BSP tree, and cells",
	Long:  `Reads the map file, builds and unions its brushes, partitions the boundary into a BSP tree, enumerates convex cells, and writes the BSP debug dump.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := loadConfigOrDefault()

		mapPath := config.MapPath
		if buildMapPath != "" {
			mapPath = buildMapPath
		}
		dumpPath := config.DumpPath
		if buildDumpPath != "" {
			dumpPath = buildDumpPath
		}
		seed := config.Seed
		if cmd.Flags().Changed("seed") {
			seed = buildSeed
		}

		target, err := platform.DetectCurrent()
		if err != nil {
			return fmt.Errorf("detecting current platform: %w", err)
		}
		fmt.Printf("Building %s on %s\n", mapPath, target)

		mapText, err := os.ReadFile(mapPath)
		if err != nil {
			return fmt.Errorf("reading map file: %w", err)
		}

		res, err := pipeline.Build(string(mapText), pipeline.Options{Seed: seed})
		if err != nil {
			return fmt.Errorf("compiling map: %w", err)
		}

		fmt.Printf("  %d boundary polygons, %d vertices, %d cells\n",
			len(res.Polygons), len(res.Vertices), len(res.Cells))
		if res.Diag.Len() > 0 {
			fmt.Printf("  %d degenerate-geometry diagnostics:\n%s", res.Diag.Len(), res.Diag.Report())
		}

		if err := pipeline.WriteDebugTree(res.Root, dumpPath); err != nil {
			return fmt.Errorf("writing debug dump: %w", err)
		}
		fmt.Printf("Build complete: %s\n", dumpPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildMapPath, "map", "m", "", "Map file to compile (overrides bspforge.yaml)")
	buildCmd.Flags().StringVarP(&buildDumpPath, "out", "o", "", "BSP debug dump path (overrides bspforge.yaml)")
	buildCmd.Flags().Uint64Var(&buildSeed, "seed", 0, "Seed for per-polygon fallback colors")
}

// loadConfigOrDefault resolves the project configuration: a bspforge.yaml
// found in a parent directory wins, otherwise the built-in defaults are
// used so the tool works from a bare map file.
func loadConfigOrDefault() *project.Config {
	projectRoot, err := project.FindProjectRoot()
	if err != nil {
		return project.Default()
	}
	config, err := project.LoadConfig(projectRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring invalid %s: %v\n", filepath.Join(projectRoot, "bspforge.yaml"), err)
		return project.Default()
	}
	return config
}
