package radix

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/Zubayear/jukai/trie"
)

// FuzzRadixVsStandardTrie drives the compressed and the standard trie
// with the same random workload and requires identical observable
// behavior: membership, stored sets, prefix enumerations, and batch
// removal counts.
func FuzzRadixVsStandardTrie(f *testing.F) {
	// Seed corpus
	f.Add(uint64(12345), 150, 4)
	f.Add(uint64(67890), 400, 6)
	f.Add(uint64(54321), 800, 3)
	// Edge-case leaning seeds
	f.Add(uint64(0), 10, 1)    // bias towards heavy key collisions
	f.Add(^uint64(0), 1000, 8) // large sets, wide alphabet

	f.Fuzz(func(t *testing.T, seed uint64, n, maxLen int) {
		if n < 1 || n > 2000 || maxLen < 1 || maxLen > 12 {
			t.Skip("bounds")
		}

		prng := rand.New(rand.NewPCG(seed, 13))
		randomKey := func() string {
			alphabet := "abXY"
			var b strings.Builder
			for range prng.IntN(maxLen + 1) {
				b.WriteByte(alphabet[prng.IntN(len(alphabet))])
			}
			return b.String()
		}

		keys := make([]string, n)
		for i := range keys {
			keys[i] = randomKey()
		}

		rt := New()
		st := trie.NewTrie()
		model := map[string]bool{}

		rt.BatchInsert(keys, true, false)
		st.BatchInsert(keys, true, false)
		for _, w := range keys {
			model[strings.ToLower(w)] = true
		}

		if rt.Size() != len(model) || st.Size() != len(model) {
			t.Fatalf("sizes diverge: radix %d, trie %d, model %d", rt.Size(), st.Size(), len(model))
		}

		got := map[string]bool{}
		for w := range rt.EnumeratePrefix("") {
			if got[w] {
				t.Fatalf("radix enumeration yielded %q twice", w)
			}
			got[w] = true
		}
		for w := range model {
			if !got[w] {
				t.Fatalf("radix enumeration missed %q", w)
			}
		}
		if len(got) != len(model) {
			t.Fatalf("radix enumeration size %d; want %d", len(got), len(model))
		}

		// Prefix soundness and completeness against the model.
		for _, p := range []string{"", "a", "ab", "x", "xy", randomKey()} {
			p = strings.ToLower(p)
			want := map[string]bool{}
			for w := range model {
				if strings.HasPrefix(w, p) {
					want[w] = true
				}
			}
			sub := map[string]bool{}
			for w := range rt.EnumeratePrefix(p) {
				sub[w] = true
			}
			if len(sub) != len(want) {
				t.Fatalf("EnumeratePrefix(%q) size %d; want %d", p, len(sub), len(want))
			}
			for w := range want {
				if !sub[w] {
					t.Fatalf("EnumeratePrefix(%q) missed %q", p, w)
				}
			}
		}

		// Remove a random half through both engines.
		var victims []string
		for _, w := range keys {
			if prng.IntN(2) == 0 {
				victims = append(victims, w)
			}
		}
		rd, rm := rt.BatchRemove(victims, true, false)
		sd, sm := st.BatchRemove(victims, true, false)
		if rd != sd || rm != sm {
			t.Fatalf("BatchRemove diverges: radix (%d, %d), trie (%d, %d)", rd, rm, sd, sm)
		}
		for _, w := range victims {
			delete(model, strings.ToLower(w))
		}

		for w := range model {
			if !rt.Search(w) || !st.Search(w) {
				t.Fatalf("survivor %q lost", w)
			}
		}
		for _, w := range victims {
			w = strings.ToLower(w)
			if rt.Search(w) || st.Search(w) {
				t.Fatalf("victim %q still present", w)
			}
		}
		if rt.Size() != len(model) || st.Size() != len(model) {
			t.Fatalf("post-removal sizes diverge: radix %d, trie %d, model %d", rt.Size(), st.Size(), len(model))
		}
		checkInvariants(t, rt)
	})
}
