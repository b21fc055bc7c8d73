package tensor

import "testing"

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(Shape{2, 3}) {
		t.Errorf("Expected shape [2 3], got %v", raw.Shape())
	}
	if raw.DType() != Float32 {
		t.Errorf("Expected Float32, got %v", raw.DType())
	}
	if raw.NumElements() != 6 {
		t.Errorf("Expected 6 elements, got %d", raw.NumElements())
	}
	if raw.ByteSize() != 24 {
		t.Errorf("Expected 24 bytes, got %d", raw.ByteSize())
	}
}

func TestNewRaw_InvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, -3}, Float32, CPU); err == nil {
		t.Error("Expected error for negative dimension")
	}
}

func TestRawTensor_TypedAccess(t *testing.T) {
	raw, _ := NewRaw(Shape{4}, Float32, CPU)

	data := raw.AsFloat32()
	if len(data) != 4 {
		t.Fatalf("Expected 4 float32 values, got %d", len(data))
	}

	data[0] = 1.5
	data[3] = -2.0

	// Views share the underlying buffer
	again := raw.AsFloat32()
	if again[0] != 1.5 || again[3] != -2.0 {
		t.Errorf("Expected values to persist across views, got %v", again)
	}
}

func TestRawTensor_CloneSharesBuffer(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Float32, CPU)
	raw.AsFloat32()[0] = 7.0

	clone := raw.Clone()

	if raw.IsUnique() {
		t.Error("Expected original to be shared after Clone")
	}
	if clone.AsFloat32()[0] != 7.0 {
		t.Errorf("Expected clone to see shared data, got %v", clone.AsFloat32()[0])
	}

	clone.Release()
	if !raw.IsUnique() {
		t.Error("Expected original to be unique after clone released")
	}
}

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, NewMockBackend())
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if x.At(0, 0) != 1 || x.At(1, 2) != 6 {
		t.Errorf("Unexpected element values: %v", x.Data())
	}
}

func TestFromSlice_SizeMismatch(t *testing.T) {
	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 3}, NewMockBackend()); err == nil {
		t.Error("Expected error for mismatched slice length")
	}
}
