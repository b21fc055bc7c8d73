// Package main provides the Graft CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "v0.1.0-dev"

var (
	logger *zap.Logger

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "graft",
	Short: "Graft - layer-by-layer CNN construction for Go",
	Long: `Graft builds convolutional networks layer by layer on a CPU tensor
backend. Models are described in YAML and assembled through the layer
builder.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("graft %s\n", version)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.AddCommand(versionCmd, describeCmd, benchCmd, exportCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "graft: %v\n", err)
		os.Exit(1)
	}
}
