// Package hash provides the checksum used to detect corrupted snapshot payloads.
//
// # CRC32-Castagnoli (CRC32C)
//
// Snapshot envelopes carry a CRC32C of the encoded payload:
//
//	checksum := hash.CRC32C(data)
//
// The checksum detects accidental corruption only; it is not a MAC.
package hash
