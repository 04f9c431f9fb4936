package docidx

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/docidx/codec"
	"github.com/hupe1980/docidx/internal/compress"
	"github.com/hupe1980/docidx/internal/conv"
	"github.com/hupe1980/docidx/internal/hash"
)

// Compression selects the block compression of binary snapshots.
type Compression uint8

const (
	// CompressionNone stores the encoded snapshot verbatim.
	CompressionNone = Compression(compress.None)
	// CompressionLZ4 favours speed.
	CompressionLZ4 = Compression(compress.LZ4)
	// CompressionZSTD favours ratio.
	CompressionZSTD = Compression(compress.ZSTD)
)

// String returns the name of the compression.
func (c Compression) String() string { return compress.Type(c).String() }

// Binary snapshot envelope:
//
//	magic      [4]byte "DIDX"
//	version    uint8
//	compress   uint8
//	codecLen   uint8
//	codec      [codecLen]byte
//	checksum   uint32 CRC32-C of the encoded snapshot, little endian
//	block      compressed encoded snapshot
const (
	snapshotMagic   = "DIDX"
	snapshotVersion = 1

	fixedHeaderSize = len(snapshotMagic) + 3
	checksumSize    = 4
)

// MarshalBinary implements encoding.BinaryMarshaler. The exported snapshot is
// encoded with the configured codec and compression.
func (c *Collection) MarshalBinary() ([]byte, error) {
	payload, err := c.codec.Marshal(c.Export())
	if err != nil {
		return nil, fmt.Errorf("docidx: encode snapshot: %w", err)
	}

	block, err := compress.Block(payload, compress.Type(c.compression))
	if err != nil {
		return nil, fmt.Errorf("docidx: compress snapshot: %w", err)
	}

	name := c.codec.Name()
	nameLen, err := conv.IntToUint8(len(name))
	if err != nil {
		return nil, fmt.Errorf("docidx: codec name %q: %w", name, err)
	}

	buf := make([]byte, 0, fixedHeaderSize+len(name)+checksumSize+len(block))
	buf = append(buf, snapshotMagic...)
	buf = append(buf, snapshotVersion, byte(c.compression), nameLen)
	buf = append(buf, name...)
	buf = binary.LittleEndian.AppendUint32(buf, hash.CRC32C(payload))
	buf = append(buf, block...)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The payload is
// decoded with the codec named in the envelope and then imported.
func (c *Collection) UnmarshalBinary(data []byte) error {
	s, err := decodeSnapshot(data)
	if err != nil {
		c.logger.LogImport(0, len(c.indexes), err)
		return err
	}
	return c.Import(s)
}

func decodeSnapshot(data []byte) (*Snapshot, error) {
	if len(data) < fixedHeaderSize || string(data[:len(snapshotMagic)]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptSnapshot)
	}

	header := data[len(snapshotMagic):fixedHeaderSize]
	if v := header[0]; v != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, v)
	}
	ct := compress.Type(header[1])
	if !ct.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrCorruptSnapshot, ct)
	}

	rest := data[fixedHeaderSize:]
	n := int(header[2])
	if len(rest) < n+checksumSize {
		return nil, fmt.Errorf("%w: truncated header", ErrCorruptSnapshot)
	}
	cd, ok := codec.ByName(string(rest[:n]))
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrCorruptSnapshot, rest[:n])
	}
	sum := binary.LittleEndian.Uint32(rest[n:])

	payload, err := compress.Unblock(rest[n+checksumSize:], ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if !hash.Verify(payload, sum) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptSnapshot)
	}

	var s Snapshot
	if err := cd.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return &s, nil
}
