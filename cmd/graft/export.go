package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/graft-ml/graft/internal/checkpoint"
	"github.com/graft-ml/graft/internal/tensor"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Build a model and write its parameters to a .grft file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "model.grft", "output file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b, m, err := buildNetwork(cfg)
	if err != nil {
		return err
	}

	state := make(map[string]*tensor.RawTensor, len(b.Parameters()))
	for _, p := range b.Parameters() {
		state[p.Name()] = p.Tensor().Raw()
	}

	metadata := map[string]string{
		"batch_size":  strconv.Itoa(m.BatchSize()),
		"num_classes": strconv.Itoa(m.NumClasses()),
		"data_format": cfg.DataFormat,
	}
	if err := checkpoint.SaveState(exportOutput, state, m.Name(), metadata); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	logger.Info("parameters exported",
		zap.String("model", m.Name()),
		zap.String("path", exportOutput),
		zap.Int("tensors", len(state)),
	)
	return nil
}
