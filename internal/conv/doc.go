// Package conv provides bounds-checked integer conversions for the fixed-width
// fields of snapshot envelopes and compressed blocks.
//
// For conversions that are provably safe by construction (loop indices,
// byte values), use direct type casts instead.
package conv
