// Package textutil provides text processing utilities for title
// normalization and similarity scoring.
//
// The primary use cases are:
//   - Normalizing media titles across accents, symbols, and whitespace
//   - Computing token-order-independent similarity between titles
//
// Normalization lowercases text, strips diacritics, folds common symbols to
// words, and collapses everything that is not a letter or digit into single
// spaces.
package textutil
