// Package textutil compares free-text titles.
//
// Titles are folded to lowercase ASCII-ish tokens (diacritics removed, split
// on anything that is not a letter or digit) and turned into term-frequency
// fingerprints. CosineSimilarity scores two fingerprints between 0 and 1.
package textutil
