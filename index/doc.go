// Package index defines the capability shared by the per-field indexes of a
// collection and the wire types used to export them.
//
// Two variants exist:
//
//   - exact: hash index from a normalized primitive to the ids carrying it
//     (number, boolean, tag and tags fields)
//   - ngram: three byte tries (1, 2 and 3 bytes deep) answering substring
//     queries of any length (string and string[] fields)
//
// Both satisfy the Index interface; Kind tells them apart.
package index
