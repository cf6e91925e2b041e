/*
Package prep prepares batches of keys for the dictionary engines.

Bulk operations on the trie packages are cheapest when their input arrives
normalized, sorted and deduplicated: sorted keys share prefixes with their
neighbors, which lets the engines reuse traversal work between adjacent
keys. This package performs that preparation once per batch.

Features:
  - Normalization: every key is passed through a caller-supplied Normalizer.
  - Sorting: unsorted batches are sorted after normalization.
  - Deduplication: optional, stable for presorted input.
  - Unicode case folding: the default normalizer Fold maps keys to their
    Unicode case-folded form, so "Straße", "STRASSE" and "Strasse" all
    prepare to "strasse".

Example:

	batch := prep.Prepare([]string{"Go", "go", "Gopher"}, prep.Fold, true, false)
	fmt.Println(batch) // [go gopher]

Complexity:
  - O(n log n) when sorting is needed.
  - O(n) when presorted=true.
*/
package prep

import (
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"

	"github.com/Zubayear/jukai/set"
)

// Normalizer maps a key to its canonical form. It must be pure and
// idempotent: Normalize(Normalize(x)) == Normalize(x).
type Normalizer func(string) string

// Fold is the default Normalizer. It applies Unicode case folding, the
// caseless-matching form defined by the Unicode standard, which is
// stronger than lowercasing ("Straße" folds to "strasse").
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Identity returns the key unchanged. Use it when the input is already
// normalized.
func Identity(s string) string {
	return s
}

// Prepare normalizes a batch of keys and optionally sorts and
// deduplicates it.
//
// Algorithm Steps:
//   - Apply normalize to every element (nil means Identity).
//   - presorted=false: sort the normalized batch; with dedup=true the
//     duplicates are dropped before sorting.
//   - presorted=true: the input is assumed sorted under the same
//     normalizer; with dedup=true a single stable pass removes adjacent
//     duplicates.
//
// Passing presorted=true for input that is not sorted under the same
// normalizer violates the contract; it is not detected and the batch
// handed to the engines will be processed in the order given.
//
// Time Complexity: O(n log n), or O(n) when presorted.
func Prepare(words []string, normalize Normalizer, dedup, presorted bool) []string {
	if normalize == nil {
		normalize = Identity
	}

	if presorted {
		if !dedup {
			out := make([]string, 0, len(words))
			for _, w := range words {
				out = append(out, normalize(w))
			}
			return out
		}
		out := make([]string, 0, len(words))
		for _, w := range words {
			w = normalize(w)
			if len(out) == 0 || out[len(out)-1] != w {
				out = append(out, w)
			}
		}
		return out
	}

	out := make([]string, 0, len(words))
	if dedup {
		seen := set.NewUnorderedSet[string]()
		for _, w := range words {
			w = normalize(w)
			if seen.Contain(w) {
				continue
			}
			seen.Insert(w)
			out = append(out, w)
		}
	} else {
		for _, w := range words {
			out = append(out, normalize(w))
		}
	}
	slices.Sort(out)
	return out
}
