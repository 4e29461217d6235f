package executor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/pierrec/lz4"

	"github.com/go-geounion/geounion/errors"
)

// Transfer frame layout: the compressed payload length and an xxhash64
// checksum of the compressed bytes, both little-endian, followed by the
// lz4-compressed payload. The checksum guards the process boundary; a
// mismatch means the frame was corrupted in transit and the group cannot
// be recovered.

// EncodeFrame compresses a serialized state payload and writes it to w as
// a checksummed frame.
func EncodeFrame(w io.Writer, payload []byte) error {
	var compressed bytes.Buffer
	compressor := lz4.NewWriter(&compressed)
	if _, err := compressor.Write(payload); err != nil {
		return fmt.Errorf("compressing state payload: %w", err)
	}
	if err := compressor.Close(); err != nil {
		return fmt.Errorf("compressing state payload: %w", err)
	}
	header := make([]byte, 16)
	binary.LittleEndian.PutUint64(header[:8], uint64(compressed.Len()))
	binary.LittleEndian.PutUint64(header[8:], xxhash.Sum64(compressed.Bytes()))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing frame header: %w", err)
	}
	if _, err := w.Write(compressed.Bytes()); err != nil {
		return fmt.Errorf("writing frame payload: %w", err)
	}
	return nil
}

// DecodeFrame reads one checksummed frame from r and returns the
// decompressed state payload.
func DecodeFrame(r io.Reader) ([]byte, error) {
	header := make([]byte, 16)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading frame header: %w", err)
	}
	length := binary.LittleEndian.Uint64(header[:8])
	expected := binary.LittleEndian.Uint64(header[8:])
	if length == 0 {
		return nil, errors.EmptyTransferFrameError{}
	}
	compressed := make([]byte, length)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("reading frame payload: %w", err)
	}
	if actual := xxhash.Sum64(compressed); actual != expected {
		return nil, errors.ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	var payload bytes.Buffer
	decompressor := lz4.NewReader(bytes.NewReader(compressed))
	if _, err := payload.ReadFrom(decompressor); err != nil {
		return nil, fmt.Errorf("decompressing state payload: %w", err)
	}
	return payload.Bytes(), nil
}
