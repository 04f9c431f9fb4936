package hash

import "github.com/klauspost/crc32"

// crc32cTable is pre-computed for the CRC32-Castagnoli polynomial.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// Verify reports whether data matches the expected checksum.
func Verify(data []byte, expected uint32) bool {
	return CRC32C(data) == expected
}
