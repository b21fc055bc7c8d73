package checkpoint

import (
	"fmt"
	"sort"
)

// Validation limits. Malformed headers are rejected before any tensor
// data is read.
const (
	MaxHeaderSize    = 100 * 1024 * 1024
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// ValidateTensorOffsets checks tensor metadata against the data section:
// no negative offsets, no reads past the end, no overlapping regions.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyTensors, len(tensors), MaxTensorCount)
	}

	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if len(t.Name) > MaxTensorNameLen {
			return fmt.Errorf("%w: tensor name is %d bytes", ErrHeaderTooLarge, len(t.Name))
		}
		if t.Offset < 0 || t.Size < 0 {
			return fmt.Errorf("%w: tensor %q: offset=%d size=%d", ErrNegativeOffset, t.Name, t.Offset, t.Size)
		}
		if t.Offset+t.Size > dataSize {
			return fmt.Errorf("%w: tensor %q: offset %d + size %d > data size %d",
				ErrOutOfBounds, t.Name, t.Offset, t.Size, dataSize)
		}
		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return fmt.Errorf("%w: tensors %q and %q", ErrOffsetOverlap, t.Name, next.Name)
			}
		}
	}

	return nil
}
