package workload

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/Zubayear/jukai/set"
)

// defaultPoolSize is the target size of the synthesized word pool when
// the caller does not supply one.
const defaultPoolSize = 2000

// Words generates random English-word workloads from a fixed pool.
//
// The pool is either caller-supplied or synthesized from the gofakeit
// word corpus at construction. Words two bytes or longer are additionally
// grouped into buckets by their first two bytes; the prefix-bias mode
// samples bucket-first so that output clusters around shared prefixes the
// way autocompletion corpora do.
type Words struct {
	rng      *rand.Rand
	pool     []string
	buckets  map[string][]string
	prefixes []string
	cum      []float64
}

// NewWords creates a word generator. A nil pool synthesizes one of
// roughly defaultPoolSize distinct words from the gofakeit corpus; the
// same seed always yields the same pool and the same batches.
func NewWords(seed uint64, pool []string) *Words {
	rng := newRNG(seed)
	if pool == nil {
		faker := gofakeit.New(seed)
		uniq := set.NewUnorderedSet[string]()
		var words []string
		// The corpus is finite; cap the draws so a small corpus cannot
		// spin forever.
		for attempts := 0; uniq.Size() < defaultPoolSize && attempts < defaultPoolSize*50; attempts++ {
			w := faker.Word()
			if uniq.Contain(w) {
				continue
			}
			uniq.Insert(w)
			words = append(words, w)
		}
		pool = words
	}

	g := &Words{
		rng:     rng,
		pool:    pool,
		buckets: make(map[string][]string),
	}
	for _, w := range pool {
		if len(w) < 2 {
			continue
		}
		p := w[:2]
		if _, ok := g.buckets[p]; !ok {
			g.prefixes = append(g.prefixes, p)
		}
		g.buckets[p] = append(g.buckets[p], w)
	}
	weights := make([]float64, len(g.prefixes))
	for i, p := range g.prefixes {
		weights[i] = float64(len(g.buckets[p]))
	}
	if len(weights) > 0 {
		g.cum = cumulate(weights)
	}
	return g
}

// PoolSize returns the number of words the generator can draw from.
func (g *Words) PoolSize() int {
	return len(g.pool)
}

// Generate returns n words from the pool.
//
//   - unique=false: sample with replacement (fast, allows duplicates)
//   - unique=true: sample without replacement; n must not exceed the
//     pool size
//
// An n outside the documented range is an invalid argument and returns
// an error.
func (g *Words) Generate(n int, unique bool) ([]string, error) {
	if len(g.pool) == 0 || n < 1 || (unique && n > len(g.pool)) {
		return nil, fmt.Errorf("workload: n must be between 1 and %d", len(g.pool))
	}
	if unique {
		picked := make([]string, len(g.pool))
		copy(picked, g.pool)
		g.rng.Shuffle(len(picked), func(i, j int) {
			picked[i], picked[j] = picked[j], picked[i]
		})
		return picked[:n], nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = g.pool[g.rng.IntN(len(g.pool))]
	}
	return out, nil
}

// effectiveBias maps the caller-facing bias logarithmically onto the
// repeat probability, so small settings already produce visible
// clustering. bias 0 maps to 0; bias 1 approaches (but never reaches) 1.
func effectiveBias(x float64) (float64, error) {
	if x < 0 || x > 1 {
		return 0, fmt.Errorf("workload: prefix bias must be between 0 and 1")
	}
	x = math.Min(x, 0.999999)
	k := math.Log(100)
	p := 1.0 - math.Exp(-k*x)
	return math.Min(p, 0.999999), nil
}

// GenerateWithPrefixBias returns n words where a higher bias makes runs
// of words share a two-byte prefix bucket.
//
// Algorithm Steps:
//   - Map bias logarithmically to a repeat probability.
//   - Draw a bucket weighted by its population, emit a word from it,
//     then keep emitting from the same bucket while a coin keeps landing
//     under the repeat probability.
//   - unique=true additionally tracks emitted words and exhausted
//     buckets; n may not exceed ~90% of the bucketed pool, since the
//     tail of a nearly-drained pool would dominate the run time.
func (g *Words) GenerateWithPrefixBias(n int, bias float64, unique bool) ([]string, error) {
	p, err := effectiveBias(bias)
	if err != nil {
		return nil, err
	}
	bucketed := 0
	for _, b := range g.buckets {
		bucketed += len(b)
	}
	maxUnique := bucketed * 10 / 11
	if n < 1 || (unique && n > maxUnique) {
		return nil, fmt.Errorf("workload: n must be between 1 and %d", maxUnique)
	}
	if len(g.prefixes) == 0 {
		return nil, fmt.Errorf("workload: pool has no words of length >= 2")
	}

	var out []string
	seen := set.NewUnorderedSet[string]()
	exhausted := set.NewUnorderedSet[string]()

	for len(out) < n {
		prefix := g.prefixes[weightedIndex(g.rng, g.cum)]
		options := g.buckets[prefix]
		word := options[g.rng.IntN(len(options))]
		if unique && (exhausted.Contain(prefix) || seen.Contain(word)) {
			continue
		}
		out = append(out, word)
		if unique {
			seen.Insert(word)
		}

		for g.rng.Float64() < p && len(out) < n {
			next := options[g.rng.IntN(len(options))]
			if unique {
				var remaining []string
				for _, w := range options {
					if !seen.Contain(w) {
						remaining = append(remaining, w)
					}
				}
				if len(remaining) == 0 {
					exhausted.Insert(prefix)
					break
				}
				if seen.Contain(next) {
					next = remaining[g.rng.IntN(len(remaining))]
				}
			}
			out = append(out, next)
			if unique {
				seen.Insert(next)
			}
		}
	}
	return out, nil
}
