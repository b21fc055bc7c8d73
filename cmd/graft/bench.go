package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var benchIterations int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time model construction and forward passes",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVarP(&benchIterations, "iterations", "n", 5, "number of timed runs")
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Info("benchmark starting",
		zap.String("model", cfg.Model),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Int("iterations", benchIterations),
	)

	var total time.Duration
	for i := 0; i < benchIterations; i++ {
		start := time.Now()
		if _, _, err := buildNetwork(cfg); err != nil {
			return err
		}
		elapsed := time.Since(start)
		total += elapsed
		logger.Info("run complete", zap.Int("iteration", i), zap.Duration("elapsed", elapsed))
	}

	logger.Info("benchmark finished",
		zap.Duration("total", total),
		zap.Duration("avg", total/time.Duration(benchIterations)),
	)
	return nil
}
