package checkpoint

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/graft-ml/graft/internal/tensor"
)

const graftVersion = "0.1.0"

// Writer writes tensors to a .grft file.
type Writer struct {
	file   *os.File
	closed bool
}

// NewWriter creates a .grft file writer at the given path, truncating
// any existing file.
func NewWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: path comes from the caller, expected for checkpoint saving
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &Writer{file: file}, nil
}

// WriteState writes a state dictionary to the file. Tensors are laid
// out in name order so identical state always produces identical bytes.
func (w *Writer) WriteState(state map[string]*tensor.RawTensor, modelName string, metadata map[string]string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	names := make([]string, 0, len(state))
	for name := range state {
		names = append(names, name)
	}
	sort.Strings(names)

	header := Header{
		FormatVersion: FormatVersion,
		GraftVersion:  graftVersion,
		ModelName:     modelName,
		CreatedAt:     time.Now().UTC(),
		Tensors:       make([]TensorMeta, 0, len(state)),
		Metadata:      metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	var dataSize int64
	for _, name := range names {
		raw := state[name]
		size := int64(raw.NumElements() * raw.DType().Size())
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  raw.DType().String(),
			Shape:  []int(raw.Shape()),
			Offset: dataSize,
			Size:   size,
		})
		dataSize += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	// The checksum covers the data section, so assemble it first.
	data := make([]byte, 0, dataSize)
	for _, name := range names {
		data = append(data, state[name].Data()...)
	}
	checksum := ComputeChecksum(data)

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[versionOffset:], FormatVersion)
	binary.LittleEndian.PutUint64(fixed[headerSizeOffset:], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[dataSizeOffset:], uint64(dataSize))
	copy(fixed[checksumOffset:checksumOffset+ChecksumSize], checksum[:])

	if _, err := w.file.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.file.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	pos := int64(FixedHeaderSize) + int64(len(headerJSON))
	if padding := (DataAlignment - pos%DataAlignment) % DataAlignment; padding > 0 {
		if _, err := w.file.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := w.file.Write(data); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}

	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// SaveState writes a state dictionary to path in one call.
func SaveState(path string, state map[string]*tensor.RawTensor, modelName string, metadata map[string]string) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteState(state, modelName, metadata); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
