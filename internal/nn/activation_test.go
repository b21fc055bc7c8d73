package nn

import (
	"testing"

	"github.com/graft-ml/graft/internal/backend/cpu"
	"github.com/graft-ml/graft/internal/tensor"
)

func TestActivationByName(t *testing.T) {
	names := []string{"", "linear", "relu", "sigmoid", "softmax", "tanh"}
	for _, name := range names {
		if _, err := ActivationByName[*cpu.CPUBackend](name); err != nil {
			t.Errorf("ActivationByName(%q) failed: %v", name, err)
		}
	}
}

func TestActivationByName_Unknown(t *testing.T) {
	if _, err := ActivationByName[*cpu.CPUBackend]("swish"); err == nil {
		t.Fatal("Expected error for unknown activation")
	}
}

func TestIdentity_Forward(t *testing.T) {
	backend := cpu.New()

	input, _ := tensor.FromSlice([]float32{-1, 2, -3}, tensor.Shape{3}, backend)
	output := NewIdentity[*cpu.CPUBackend]().Forward(input)

	if output != input {
		t.Error("Expected Identity to return the input unchanged")
	}
}

func TestReLU_Forward(t *testing.T) {
	backend := cpu.New()

	input, _ := tensor.FromSlice([]float32{-1, 0, 2, -3}, tensor.Shape{4}, backend)
	output := NewReLU[*cpu.CPUBackend]().Forward(input)

	expected := []float32{0, 0, 2, 0}
	for i, v := range output.Data() {
		if v != expected[i] {
			t.Errorf("ReLU[%d]: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestSoftmax_Forward(t *testing.T) {
	backend := cpu.New()

	input, _ := tensor.FromSlice([]float32{1, 1, 1, 1}, tensor.Shape{2, 2}, backend)
	output := NewSoftmax[*cpu.CPUBackend](-1).Forward(input)

	for i, v := range output.Data() {
		if v < 0.4999 || v > 0.5001 {
			t.Errorf("Softmax[%d]: expected 0.5, got %v", i, v)
		}
	}
}
