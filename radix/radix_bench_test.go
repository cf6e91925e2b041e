package radix

import (
	"testing"

	"github.com/Zubayear/jukai/workload"
)

var benchWords = []string{
	"apple", "app", "application", "apply", "banana", "band", "bandana",
	"cat", "cater", "catering", "dog", "dodge", "zebra",
}

func benchKeys(b *testing.B, n int) []string {
	b.Helper()
	keys, err := workload.NewWords(1, nil).GenerateWithPrefixBias(n, 0.5, false)
	if err != nil {
		b.Fatal(err)
	}
	return keys
}

func BenchmarkInsert(b *testing.B) {
	for i := 0; i < b.N; i++ {
		t := New()
		for _, word := range benchWords {
			t.Insert(word)
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	t := New()
	for _, word := range benchWords {
		t.Insert(word)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		t.Search("application")
	}
}

func BenchmarkStartsWith(b *testing.B) {
	t := New()
	for _, word := range benchWords {
		t.Insert(word)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		t.StartsWith("app")
	}
}

func BenchmarkGetWordsWithPrefix(b *testing.B) {
	t := New()
	for _, word := range benchWords {
		t.Insert(word)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = t.GetWordsWithPrefix("app")
	}
}

func BenchmarkBatchInsert(b *testing.B) {
	keys := benchKeys(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		t := New()
		t.BatchInsert(keys, true, false)
	}
}

func BenchmarkBatchRemove(b *testing.B) {
	keys := benchKeys(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		t := New()
		t.BatchInsert(keys, true, false)
		b.StartTimer()
		t.BatchRemove(keys, true, false)
	}
}

func BenchmarkEnumeratePrefix(b *testing.B) {
	t := New()
	t.BatchInsert(benchKeys(b, 5000), true, false)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for range t.EnumeratePrefix("th") {
		}
	}
}

func BenchmarkURLWorkload(b *testing.B) {
	gen, err := workload.NewURLs(workload.URLConfig{Seed: 7, NumHosts: 200, SlugProb: 0.3})
	if err != nil {
		b.Fatal(err)
	}
	urls, err := gen.Batch(5000)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		t := New()
		t.BatchInsert(urls, true, false)
	}
}

func BenchmarkSearchParallel(b *testing.B) {
	keys := benchKeys(b, 10000)
	t := New()
	t.BatchInsert(keys, true, false)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			t.Search(keys[i%len(keys)])
			i++
		}
	})
}

func BenchmarkCountNodes(b *testing.B) {
	t := New()
	t.BatchInsert(benchKeys(b, 10000), true, false)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = t.CountNodes()
	}
}
