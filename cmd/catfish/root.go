// Package main provides the catfish CLI for one-off analysis runs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catfish",
	Short: "Dating-safety evidence analysis",
	Long: `Catfish analyzes dating-platform evidence (chat text, profile images,
voice messages) for scam patterns and AI-generated content, using the
same pipeline as the API server.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}
