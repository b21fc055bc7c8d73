package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graft-ml/graft/internal/checkpoint"
)

var inspectSkipChecksum bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the contents of a .grft parameter file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectSkipChecksum, "skip-checksum", false, "skip data checksum validation")
}

func runInspect(cmd *cobra.Command, args []string) error {
	reader, err := checkpoint.NewReaderWithOptions(args[0], checkpoint.ReaderOptions{
		SkipChecksumValidation: inspectSkipChecksum,
	})
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	defer reader.Close()

	header := reader.Header()
	fmt.Printf("model: %s (graft %s, created %s)\n",
		header.ModelName, header.GraftVersion, header.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	for k, v := range header.Metadata {
		fmt.Printf("  %s: %s\n", k, v)
	}

	var totalBytes int64
	fmt.Printf("\ntensors (%d):\n", len(header.Tensors))
	for _, meta := range header.Tensors {
		fmt.Printf("  %-24s %-8s %v (%d bytes)\n", meta.Name, meta.DType, meta.Shape, meta.Size)
		totalBytes += meta.Size
	}
	fmt.Printf("\ntotal: %d bytes\n", totalBytes)
	return nil
}
