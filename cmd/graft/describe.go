package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/graft-ml/graft/internal/backend/cpu"
	"github.com/graft-ml/graft/internal/builder"
	"github.com/graft-ml/graft/internal/config"
	"github.com/graft-ml/graft/internal/model"
	"github.com/graft-ml/graft/internal/tensor"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Build a model and print its layer structure",
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b, m, err := buildNetwork(cfg)
	if err != nil {
		return err
	}

	logits := b.Top()
	logger.Info("model built",
		zap.String("model", m.Name()),
		zap.Int("batch_size", m.BatchSize()),
		zap.Int("num_classes", m.NumClasses()),
		zap.Ints("output_shape", logits.Shape()),
	)

	fmt.Printf("%s\n\n", m)
	for i, layer := range b.Modules() {
		fmt.Printf("  (%d): %v\n", i, layer)
	}

	total := 0
	for _, p := range b.Parameters() {
		total += p.NumElements()
	}
	fmt.Printf("\nParameters: %d tensors, %d elements\n", len(b.Parameters()), total)
	return nil
}

// loadConfig reads the config file named by --config, or defaults.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// buildNetwork assembles the configured model over a zero-filled input
// batch and returns the builder holding the resulting network.
func buildNetwork(cfg *config.Config) (*builder.Builder[*cpu.CPUBackend], model.Model[*cpu.CPUBackend], error) {
	format, err := cfg.ParsedDataFormat()
	if err != nil {
		return nil, nil, err
	}
	padding, err := cfg.ParsedPadding()
	if err != nil {
		return nil, nil, err
	}

	var backend *cpu.CPUBackend
	if cfg.Seed != 0 {
		backend = cpu.NewSeeded(cfg.Seed)
	} else {
		backend = cpu.New()
	}

	var inputShape tensor.Shape
	if format == tensor.NCHW {
		inputShape = tensor.Shape{cfg.BatchSize, cfg.Channels, cfg.ImageHeight, cfg.ImageWidth}
	} else {
		inputShape = tensor.Shape{cfg.BatchSize, cfg.ImageHeight, cfg.ImageWidth, cfg.Channels}
	}
	input := tensor.Zeros[float32](inputShape, backend)

	var m model.Model[*cpu.CPUBackend]
	switch cfg.Model {
	case "simple":
		m = model.NewSimpleNet[*cpu.CPUBackend](cfg.BatchSize, cfg.NumClasses)
	default:
		return nil, nil, fmt.Errorf("unknown model %q", cfg.Model)
	}

	b := builder.New(input, cfg.Channels, cfg.TrainPhase, backend,
		builder.WithPadding(padding),
		builder.WithDataFormat(format),
	)

	if _, _, err := m.Inference(b); err != nil {
		return nil, nil, err
	}

	return b, m, nil
}
