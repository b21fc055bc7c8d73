// Package checkpoint implements the .grft binary format for saving and
// loading named tensors.
//
// A .grft file starts with a fixed 64-byte header (magic, version,
// sizes, SHA-256 checksum of the data section), followed by a JSON
// header describing the tensors, padding to a 64-byte boundary, and
// the raw tensor data.
package checkpoint

import (
	"time"

	"github.com/graft-ml/graft/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "GRFT"
	FormatVersion   = 1
	FixedHeaderSize = 64 // magic + version + sizes + checksum + reserved
	DataAlignment   = 64 // tensor data aligned for direct slice access
	ChecksumSize    = 32 // SHA-256
)

// Fixed header field offsets.
const (
	versionOffset    = 0x04
	headerSizeOffset = 0x08
	dataSizeOffset   = 0x10
	checksumOffset   = 0x18
)

// Header is the JSON header of a .grft file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	GraftVersion  string            `json:"graft_version"`
	ModelName     string            `json:"model_name"`
	CreatedAt     time.Time         `json:"created_at"`
	Tensors       []TensorMeta      `json:"tensors"`
	Metadata      map[string]string `json:"metadata"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"` // bytes from the start of the data section
	Size   int64  `json:"size"`
}

// parseDataType converts the serialized dtype name back to a DataType.
func parseDataType(s string) (tensor.DataType, bool) {
	switch s {
	case "float32":
		return tensor.Float32, true
	case "float64":
		return tensor.Float64, true
	case "int32":
		return tensor.Int32, true
	case "int64":
		return tensor.Int64, true
	case "uint8":
		return tensor.Uint8, true
	case "bool":
		return tensor.Bool, true
	default:
		return 0, false
	}
}
