// Package compress implements the block compression used by snapshot envelopes.
//
// A block is laid out as
//
//	[UncompressedSize uint32][CompressedSize uint32][Data...]
//
// with CompressedSize == 0 meaning Data is stored verbatim.
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/docidx/internal/conv"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used.
type Type uint8

const (
	// None stores blocks uncompressed.
	None Type = 0
	// LZ4 selects LZ4 block compression (fast).
	LZ4 Type = 1
	// ZSTD selects ZSTD block compression (better ratio).
	ZSTD Type = 2
)

// String returns the name of the compression type.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compress(%d)", uint8(t))
	}
}

// Valid reports whether t is a known compression type.
func (t Type) Valid() bool { return t <= ZSTD }

var (
	// ErrShortBlock is returned when a block is smaller than its header claims.
	ErrShortBlock = errors.New("compress: block too small")
	// ErrSizeMismatch is returned when a decompressed block has the wrong size.
	ErrSizeMismatch = errors.New("compress: decompressed size mismatch")
	// ErrUnknownType is returned for an unknown compression type.
	ErrUnknownType = errors.New("compress: unknown type")
	// ErrImplausibleSize is returned when a block header claims more output
	// than its compressed payload can expand to.
	ErrImplausibleSize = errors.New("compress: implausible uncompressed size")
)

// maxLZ4Ratio bounds the expansion of an LZ4 block: every extra match length
// byte adds at most 255 bytes of output.
const maxLZ4Ratio = 255

// ZSTD encoder/decoder pools
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecodedSize))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

const (
	headerSize = 8

	// maxDecodedSize is the largest size a block header can describe.
	maxDecodedSize = 1<<32 - 1
)

// Block compresses data with the given algorithm and prepends the block header.
// Data that does not shrink by at least 10% is stored verbatim.
func Block(data []byte, t Type) ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
	size, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, err
	}

	var compressed []byte

	switch t {
	case LZ4:
		compressed, err = blockLZ4(data)
	case ZSTD:
		compressed = blockZSTD(data)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, headerSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], size)
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[headerSize:], data)
		return result, nil
	}

	result := make([]byte, headerSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], size)
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[headerSize:], compressed)
	return result, nil
}

func blockLZ4(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func blockZSTD(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil)
}

// Unblock reverses Block.
func Unblock(data []byte, t Type) ([]byte, error) {
	if len(data) < headerSize {
		return nil, ErrShortBlock
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])

	if compressedSize == 0 {
		if uint64(len(data)) < headerSize+uint64(uncompressedSize) {
			return nil, ErrShortBlock
		}
		return data[headerSize : headerSize+uncompressedSize], nil
	}

	if uint64(len(data)) < headerSize+uint64(compressedSize) {
		return nil, ErrShortBlock
	}
	payload := data[headerSize : headerSize+compressedSize]

	switch t {
	case LZ4:
		if uint64(uncompressedSize) > uint64(compressedSize)*maxLZ4Ratio {
			return nil, fmt.Errorf("%w: %d from %d bytes", ErrImplausibleSize, uncompressedSize, compressedSize)
		}
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, ErrSizeMismatch
		}
		return result, nil

	case ZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, ErrSizeMismatch
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
}
