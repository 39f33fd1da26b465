package corpus

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Packed word list layout: 4-byte magic, uint32 original size, one LZ4
// block. Header integers are big-endian.
const (
	packHeaderSize = 8
	// PackedExt is the conventional extension for packed word lists.
	PackedExt = ".words.lz4"
)

var packMagic = [4]byte{'P', 'F', 'W', 'L'}

// Pack compresses a raw word list into the packed container format.
func Pack(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("cannot pack an empty word list")
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	if n == 0 {
		// Incompressible input; lz4 reports zero rather than expanding it.
		return nil, errors.New("word list is not compressible")
	}

	out := make([]byte, 0, packHeaderSize+n)
	out = append(out, packMagic[:]...)

	sizeBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(sizeBytes, uint32(len(data)))
	out = append(out, sizeBytes...)

	return append(out, compressed[:n]...), nil
}

// Unpack restores the raw word list from a packed container.
func Unpack(data []byte) ([]byte, error) {
	if !IsPacked(data) {
		return nil, errors.New("data is not a packed word list")
	}

	originalSize := int(binary.BigEndian.Uint32(data[4:8]))
	if originalSize <= 0 {
		return nil, errors.New("packed word list declares zero size")
	}

	decompressed := make([]byte, originalSize)
	n, err := lz4.UncompressBlock(data[packHeaderSize:], decompressed)
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}
	if n != originalSize {
		return nil, fmt.Errorf("decompressed size mismatch: got %d, header says %d", n, originalSize)
	}

	return decompressed, nil
}

// IsPacked reports whether data begins with the packed word list magic.
func IsPacked(data []byte) bool {
	if len(data) < packHeaderSize {
		return false
	}
	return data[0] == packMagic[0] && data[1] == packMagic[1] &&
		data[2] == packMagic[2] && data[3] == packMagic[3]
}

// CompressionRatio reports packed size relative to the original.
func CompressionRatio(original, packed []byte) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(packed)) / float64(len(original))
}
