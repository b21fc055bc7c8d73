package nn

import (
	"math"
	"testing"

	"github.com/graft-ml/graft/internal/backend/cpu"
	"github.com/graft-ml/graft/internal/tensor"
)

func TestFans(t *testing.T) {
	tests := []struct {
		shape         tensor.Shape
		fanIn, fanOut int
	}{
		// 2D weights: [in, out]
		{tensor.Shape{784, 128}, 784, 128},
		// 4D filters: leading dims multiply both fans
		{tensor.Shape{2, 2, 3, 4}, 12, 16},
		// 1D: single dimension for both
		{tensor.Shape{5}, 5, 5},
	}

	for _, tt := range tests {
		fanIn, fanOut := Fans(tt.shape)
		if fanIn != tt.fanIn || fanOut != tt.fanOut {
			t.Errorf("Fans(%v): expected (%d, %d), got (%d, %d)",
				tt.shape, tt.fanIn, tt.fanOut, fanIn, fanOut)
		}
	}
}

func TestXavier_Bounds(t *testing.T) {
	backend := cpu.New()

	fanIn, fanOut := 100, 50
	w := Xavier[*cpu.CPUBackend](fanIn, fanOut, tensor.Shape{100, 50}, backend)

	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	for i, v := range w.Data() {
		if float64(v) < -bound || float64(v) > bound {
			t.Errorf("Xavier[%d]: value %v outside [-%v, %v]", i, v, bound, bound)
		}
	}

	// Not all zero
	allZero := true
	for _, v := range w.Data() {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("Xavier produced all zeros")
	}
}

func TestInitializerByName(t *testing.T) {
	backend := cpu.New()

	// Default (empty name) is glorot_uniform
	init, err := InitializerByName[*cpu.CPUBackend]("")
	if err != nil {
		t.Fatalf("InitializerByName(\"\") failed: %v", err)
	}
	w := init(tensor.Shape{10, 10}, backend)
	if !w.Shape().Equal(tensor.Shape{10, 10}) {
		t.Errorf("Unexpected shape %v", w.Shape())
	}

	// zeros
	init, err = InitializerByName[*cpu.CPUBackend]("zeros")
	if err != nil {
		t.Fatalf("InitializerByName(zeros) failed: %v", err)
	}
	z := init(tensor.Shape{4}, backend)
	for i, v := range z.Data() {
		if v != 0 {
			t.Errorf("zeros[%d]: expected 0, got %v", i, v)
		}
	}
}

func TestInitializerByName_Unknown(t *testing.T) {
	_, err := InitializerByName[*cpu.CPUBackend]("he_normal")
	if err == nil {
		t.Fatal("Expected error for unknown initializer")
	}
}
