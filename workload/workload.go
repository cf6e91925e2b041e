/*
Package workload generates random key sets for exercising the dictionary
engines in tests and benchmarks.

Three generators are provided, each deterministic for a given seed:

  - Words: English words, with optional unique sampling and an optional
    prefix bias that clusters output around shared two-letter prefixes.
  - IPs: IPv4 addresses split between public space and weighted private
    classes.
  - URLs: http(s) URLs with Zipf-weighted hosts and realistic path shapes.

The generators interact with the tries only by producing key sets; they
have no knowledge of the tree structures. They are also the only part of
the module that reports invalid arguments: a request outside a documented
range (a non-positive batch size, more unique items than the pool holds,
a weight set that sums to zero) returns an error instead of a batch.

Example:

	gen := workload.NewWords(42, nil)
	keys, err := gen.Generate(1500, false)
	if err != nil {
		log.Fatal(err)
	}
	t := radix.New()
	t.BatchInsert(keys, true, false)
*/
package workload

import (
	"math/rand/v2"
	"sort"
)

// newRNG builds the deterministic generator shared by this package.
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
}

// cumulate turns a weight vector into its running sum for sampling.
func cumulate(weights []float64) []float64 {
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		total += w
		cum[i] = total
	}
	return cum
}

// weightedIndex draws an index with probability proportional to the
// weights behind the cumulative vector.
func weightedIndex(rng *rand.Rand, cum []float64) int {
	total := cum[len(cum)-1]
	x := rng.Float64() * total
	i := sort.SearchFloat64s(cum, x)
	if i == len(cum) {
		i = len(cum) - 1
	}
	return i
}
