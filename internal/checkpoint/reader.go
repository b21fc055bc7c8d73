package checkpoint

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/graft-ml/graft/internal/tensor"
)

// Reader reads tensors from a .grft file.
type Reader struct {
	file       *os.File
	header     Header
	dataOffset int64
	dataSize   int64
	checksum   [ChecksumSize]byte
	closed     bool
}

// ReaderOptions configures Reader behavior.
type ReaderOptions struct {
	SkipChecksumValidation bool // skip the data checksum pass (faster, less safe)
}

// NewReader opens a .grft file and validates its header and checksum.
func NewReader(path string) (*Reader, error) {
	return NewReaderWithOptions(path, ReaderOptions{})
}

// NewReaderWithOptions opens a .grft file with custom options.
func NewReaderWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: path comes from the caller, expected for checkpoint loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r := &Reader{file: file}
	if err := r.parseHeader(); err != nil {
		_ = file.Close()
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if r.dataOffset+r.dataSize > info.Size() {
		_ = file.Close()
		return nil, fmt.Errorf("%w: data section truncated", ErrOutOfBounds)
	}

	if err := ValidateTensorOffsets(r.header.Tensors, r.dataSize); err != nil {
		_ = file.Close()
		return nil, err
	}

	if !opts.SkipChecksumValidation {
		if err := r.validateChecksum(); err != nil {
			_ = file.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *Reader) parseHeader() error {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r.file, fixed); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}

	if string(fixed[:4]) != MagicBytes {
		return ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixed[versionOffset:]); version != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixed[headerSizeOffset:])
	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}
	dataSize := binary.LittleEndian.Uint64(fixed[dataSizeOffset:])
	copy(r.checksum[:], fixed[checksumOffset:checksumOffset+ChecksumSize])

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r.file, headerBytes); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	pos := int64(FixedHeaderSize) + int64(headerSize) //nolint:gosec // G115: bounded by MaxHeaderSize
	padding := (DataAlignment - pos%DataAlignment) % DataAlignment
	r.dataOffset = pos + padding
	r.dataSize = int64(dataSize) //nolint:gosec // G115: validated against file size by caller

	return nil
}

func (r *Reader) validateChecksum() error {
	if _, err := r.file.Seek(r.dataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to data section: %w", err)
	}
	data := make([]byte, r.dataSize)
	if _, err := io.ReadFull(r.file, data); err != nil {
		return fmt.Errorf("failed to read data section: %w", err)
	}
	return ValidateChecksum(ComputeChecksum(data), r.checksum)
}

// Header returns the parsed file header.
func (r *Reader) Header() Header {
	return r.header
}

// TensorNames lists the tensors in the file, in header order.
func (r *Reader) TensorNames() []string {
	names := make([]string, len(r.header.Tensors))
	for i, meta := range r.header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// TensorInfo returns metadata for a named tensor.
func (r *Reader) TensorInfo(name string) (*TensorMeta, error) {
	for _, meta := range r.header.Tensors {
		if meta.Name == name {
			return &meta, nil
		}
	}
	return nil, fmt.Errorf("tensor %q not found", name)
}

// LoadTensor reads one tensor into a new RawTensor on the backend's
// device.
func (r *Reader) LoadTensor(name string, backend tensor.Backend) (*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	meta, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}

	dtype, ok := parseDataType(meta.DType)
	if !ok {
		return nil, fmt.Errorf("unsupported dtype %q for tensor %q", meta.DType, name)
	}
	shape := tensor.Shape(meta.Shape)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape for tensor %q: %w", name, err)
	}
	if want := int64(shape.NumElements() * dtype.Size()); want != meta.Size {
		return nil, fmt.Errorf("tensor %q: size %d does not match shape %v (%d bytes)",
			name, meta.Size, shape, want)
	}

	if _, err := r.file.Seek(r.dataOffset+meta.Offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to tensor %q: %w", name, err)
	}

	raw, err := tensor.NewRaw(shape, dtype, backend.Device())
	if err != nil {
		return nil, fmt.Errorf("failed to allocate tensor %q: %w", name, err)
	}
	if _, err := io.ReadFull(r.file, raw.Data()); err != nil {
		return nil, fmt.Errorf("failed to read tensor %q: %w", name, err)
	}

	return raw, nil
}

// LoadState reads every tensor in the file into a state dictionary.
func (r *Reader) LoadState(backend tensor.Backend) (map[string]*tensor.RawTensor, error) {
	state := make(map[string]*tensor.RawTensor, len(r.header.Tensors))
	for _, meta := range r.header.Tensors {
		raw, err := r.LoadTensor(meta.Name, backend)
		if err != nil {
			return nil, err
		}
		state[meta.Name] = raw
	}
	return state, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// LoadState opens path and reads all tensors in one call.
func LoadState(path string, backend tensor.Backend) (map[string]*tensor.RawTensor, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.LoadState(backend)
}
