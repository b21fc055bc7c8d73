package tensor

import "fmt"

// DataFormat describes the memory layout of a 4D image tensor.
type DataFormat int

// Supported data formats.
const (
	// NCHW is channels-first layout: [batch, channels, height, width].
	NCHW DataFormat = iota
	// NHWC is channels-last layout: [batch, height, width, channels].
	NHWC
)

// String returns the conventional name of the data format.
func (f DataFormat) String() string {
	switch f {
	case NCHW:
		return "NCHW"
	case NHWC:
		return "NHWC"
	default:
		return "Unknown"
	}
}

// ParseDataFormat converts a format name to a DataFormat.
func ParseDataFormat(s string) (DataFormat, error) {
	switch s {
	case "NCHW", "nchw":
		return NCHW, nil
	case "NHWC", "nhwc":
		return NHWC, nil
	default:
		return 0, fmt.Errorf("unknown data format %q (want NCHW or NHWC)", s)
	}
}

// ChannelAxis returns the index of the channel dimension in a 4D tensor
// with this format.
func (f DataFormat) ChannelAxis() int {
	if f == NHWC {
		return 3
	}
	return 1
}

// SpatialDims extracts (height, width) from a 4D shape in this format.
func (f DataFormat) SpatialDims(s Shape) (int, int) {
	if f == NHWC {
		return s[1], s[2]
	}
	return s[2], s[3]
}

// Padding selects how convolution and pooling windows are padded.
type Padding int

// Supported padding modes.
const (
	// Same pads the input so the output spatial size is ceil(in/stride).
	// Padding is split evenly, with the extra cell on the bottom/right.
	Same Padding = iota
	// Valid applies no padding; windows must fit entirely in the input.
	Valid
)

// String returns the conventional name of the padding mode.
func (p Padding) String() string {
	switch p {
	case Same:
		return "SAME"
	case Valid:
		return "VALID"
	default:
		return "Unknown"
	}
}

// ParsePadding converts a padding-mode name to a Padding.
func ParsePadding(s string) (Padding, error) {
	switch s {
	case "SAME", "same":
		return Same, nil
	case "VALID", "valid":
		return Valid, nil
	default:
		return 0, fmt.Errorf("unknown padding mode %q (want SAME or VALID)", s)
	}
}

// OutputDim computes the output extent of a window op along one axis,
// together with the leading padding to apply.
func (p Padding) OutputDim(in, window, stride int) (out, padBefore int) {
	if p == Valid {
		return (in-window)/stride + 1, 0
	}
	out = (in + stride - 1) / stride
	padTotal := (out-1)*stride + window - in
	if padTotal < 0 {
		padTotal = 0
	}
	return out, padTotal / 2
}
