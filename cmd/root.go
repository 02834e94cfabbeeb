package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bspforge",
	Short: "bspforge - Brush map compiler producing CSG unions and BSP trees",
	Long: `bspforge compiles Quake-style brush maps into render-ready geometry.
It builds a polyhedron per brush, removes interior surface with a boolean
union, partitions the boundary into a BSP tree, and enumerates the convex
cells of the solid for spatial queries.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
