// Package config loads run configuration for graft tools from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/graft-ml/graft/internal/tensor"
)

// Config captures the runtime knobs for building and running a model.
type Config struct {
	Model       string  `yaml:"model"`
	BatchSize   int     `yaml:"batch_size"`
	NumClasses  int     `yaml:"num_classes"`
	ImageHeight int     `yaml:"image_height"`
	ImageWidth  int     `yaml:"image_width"`
	Channels    int     `yaml:"channels"`
	DataFormat  string  `yaml:"data_format"`
	Padding     string  `yaml:"padding"`
	TrainPhase  bool    `yaml:"train_phase"`
	KeepProb    float32 `yaml:"keep_prob"`
	Seed        int64   `yaml:"seed"`
}

// Default returns a configuration suitable for MNIST-sized inputs.
func Default() *Config {
	return &Config{
		Model:       "simple",
		BatchSize:   32,
		NumClasses:  10,
		ImageHeight: 28,
		ImageWidth:  28,
		Channels:    1,
		DataFormat:  "NCHW",
		Padding:     "SAME",
		TrainPhase:  false,
		KeepProb:    0.5,
		Seed:        0,
	}
}

// Load reads and validates a Config from a YAML file. Fields absent from
// the file keep their defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Model      string
	BatchSize  int
	NumClasses int
	TrainPhase *bool
	Seed       int64
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Model != "" {
		c.Model = o.Model
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.NumClasses > 0 {
		c.NumClasses = o.NumClasses
	}
	if o.TrainPhase != nil {
		c.TrainPhase = *o.TrainPhase
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Model == "" {
		return errors.New("model name must be set")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.NumClasses <= 0 {
		return fmt.Errorf("num_classes must be positive, got %d", c.NumClasses)
	}
	if c.ImageHeight <= 0 || c.ImageWidth <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.ImageHeight, c.ImageWidth)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("channels must be positive, got %d", c.Channels)
	}
	if c.KeepProb <= 0 || c.KeepProb > 1 {
		return fmt.Errorf("keep_prob must be in (0, 1], got %v", c.KeepProb)
	}
	if _, err := c.ParsedDataFormat(); err != nil {
		return err
	}
	if _, err := c.ParsedPadding(); err != nil {
		return err
	}
	return nil
}

// ParsedDataFormat resolves the data_format field.
func (c *Config) ParsedDataFormat() (tensor.DataFormat, error) {
	return tensor.ParseDataFormat(c.DataFormat)
}

// ParsedPadding resolves the padding field.
func (c *Config) ParsedPadding() (tensor.Padding, error) {
	return tensor.ParsePadding(c.Padding)
}
