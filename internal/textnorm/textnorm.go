// Package textnorm canonicalises strings before they reach an index.
//
// Both the insert and the query path go through the same functions so that
// canonically equivalent inputs (for example a decomposed "は゜" and the
// precomposed "ぱ") produce identical keys and byte sequences.
package textnorm

import "golang.org/x/text/unicode/norm"

// String returns the NFC form of s.
func String(s string) string {
	return norm.NFC.String(s)
}

// Bytes returns the UTF-8 bytes of the NFC form of s.
func Bytes(s string) []byte {
	return norm.NFC.Bytes([]byte(s))
}
