package tensor

import (
	"testing"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
		{Shape{1}, 1},
		{Shape{}, 1}, // scalar
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("Shape %v: expected %d elements, got %d", tt.shape, tt.expected, got)
		}
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	shape := Shape{2, 3, 4}
	strides := shape.ComputeStrides()

	expected := []int{12, 4, 1}
	if len(strides) != len(expected) {
		t.Fatalf("Expected %d strides, got %d", len(expected), len(strides))
	}
	for i, s := range expected {
		if strides[i] != s {
			t.Errorf("Stride[%d]: expected %d, got %d", i, s, strides[i])
		}
	}
}

func TestShape_Equal(t *testing.T) {
	a := Shape{2, 3}
	b := Shape{2, 3}
	c := Shape{3, 2}

	if !a.Equal(b) {
		t.Errorf("Expected %v == %v", a, b)
	}
	if a.Equal(c) {
		t.Errorf("Expected %v != %v", a, c)
	}
}

func TestShape_ResolveWildcard(t *testing.T) {
	// [2, -1] over 24 elements resolves to [2, 12]
	resolved, err := Shape{2, -1}.ResolveWildcard(24)
	if err != nil {
		t.Fatalf("ResolveWildcard failed: %v", err)
	}
	if !resolved.Equal(Shape{2, 12}) {
		t.Errorf("Expected [2 12], got %v", resolved)
	}

	// No wildcard: shape must already match the element count
	resolved, err = Shape{4, 6}.ResolveWildcard(24)
	if err != nil {
		t.Fatalf("ResolveWildcard failed: %v", err)
	}
	if !resolved.Equal(Shape{4, 6}) {
		t.Errorf("Expected [4 6], got %v", resolved)
	}
}

func TestShape_ResolveWildcard_Errors(t *testing.T) {
	// Element count not divisible by known dimensions
	if _, err := (Shape{5, -1}).ResolveWildcard(24); err == nil {
		t.Error("Expected error for non-divisible wildcard")
	}

	// Multiple wildcards
	if _, err := (Shape{-1, -1}).ResolveWildcard(24); err == nil {
		t.Error("Expected error for multiple wildcards")
	}

	// Mismatched fixed shape
	if _, err := (Shape{2, 3}).ResolveWildcard(24); err == nil {
		t.Error("Expected error for mismatched element count")
	}
}

func TestBroadcastShapes(t *testing.T) {
	result, needsBroadcast, err := BroadcastShapes(Shape{2, 3}, Shape{1, 3})
	if err != nil {
		t.Fatalf("BroadcastShapes failed: %v", err)
	}
	if !needsBroadcast {
		t.Fatal("Expected broadcasting to be needed")
	}
	if !result.Equal(Shape{2, 3}) {
		t.Errorf("Expected [2 3], got %v", result)
	}

	// Equal shapes need no broadcasting
	_, needsBroadcast, err = BroadcastShapes(Shape{2, 3}, Shape{2, 3})
	if err != nil {
		t.Fatalf("BroadcastShapes failed: %v", err)
	}
	if needsBroadcast {
		t.Error("Expected no broadcasting for equal shapes")
	}

	// Incompatible shapes
	if _, _, err := BroadcastShapes(Shape{2, 3}, Shape{4, 3}); err == nil {
		t.Error("Expected error for incompatible shapes")
	}
}
