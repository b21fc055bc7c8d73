package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go reference implementation
//   - backend/cuda, backend/metal: planned
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Matrix operations
	MatMul(a, b *RawTensor) *RawTensor

	// Image operations on 4D tensors in the given data format.
	//
	// Conv2D kernel layout is always [out_channels, in_channels, k_h, k_w]
	// regardless of the input data format.
	Conv2D(input, kernel *RawTensor, strideH, strideW int, padding Padding, format DataFormat) *RawTensor
	MaxPool2D(input *RawTensor, windowH, windowW, strideH, strideW int, padding Padding, format DataFormat) *RawTensor
	LRN(input *RawTensor, depthRadius int, bias, alpha, beta float32, format DataFormat) *RawTensor
	BiasAdd(input, bias *RawTensor, format DataFormat) *RawTensor

	// Dropout keeps each element with probability keepProb and scales the
	// kept elements by 1/keepProb (inverted dropout).
	Dropout(input *RawTensor, keepProb float32) *RawTensor

	// Activation functions
	Softmax(x *RawTensor, dim int) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
