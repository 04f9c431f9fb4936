// Package testutil provides testing utilities for docidx.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random generator, random text and tag generators,
// and naive reference answers to check the indexes against.
//
// # Random Text
//
//	rng := testutil.NewRNG(seed)
//	s := rng.String("abc", 12)        // 12 bytes drawn from "abc"
//	tags := rng.Tags(vocab, 3)        // up to 3 distinct tags
//
// # Ground Truth
//
//	want := testutil.SubstringMatches(docs, "abca")
package testutil
