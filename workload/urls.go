package workload

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/Zubayear/jukai/set"
)

// Extensions and their observed shares for path generation.
var urlExtensions = []string{
	// Code / markup
	"js", "mjs", "css", "html", "htm",
	// Images
	"jpg", "jpeg", "png", "gif", "webp", "svg", "ico",
	// Fonts
	"woff2", "woff", "ttf", "otf", "eot",
	// Docs / data
	"pdf", "json", "xml", "txt", "csv",
	// Media
	"mp4", "webm", "mov", "mp3", "ogg",
}

var urlExtensionWeights = []float64{
	// Code / markup
	0.283058, 0.010266, 0.095455, 0.029750, 0.004057,
	// Images
	0.103223, 0.025806, 0.090288, 0.050907, 0.028495, 0.015048, 0.005123,
	// Fonts
	0.080540, 0.009943, 0.003977, 0.002983, 0.001989,
	// Docs / data
	0.029830, 0.029830, 0.009943, 0.011932, 0.007955,
	// Media
	0.034801, 0.014915, 0.004972, 0.009943, 0.004972,
}

// Segment separators and their shares. "/" dominates; the rest appear
// inside slugs.
var urlSeparators = []string{"/", "-", "_", "%20"}

var urlSeparatorWeights = []float64{0.65, 0.23, 0.12, 0.06}

// Path depth distribution.
var urlDepths = []int{0, 1, 2, 3, 4, 5}

var urlDepthWeights = []float64{0.20, 0.30, 0.25, 0.13, 0.10, 0.02}

var (
	urlExtensionCum = cumulate(urlExtensionWeights)
	urlSeparatorCum = cumulate(urlSeparatorWeights)
	urlDepthCum     = cumulate(urlDepthWeights)
)

// URLConfig configures a URLs generator.
//
//   - Seed: deterministic generator seed.
//   - NumHosts: size of the host pool, between 1 and 1,000,000.
//   - SlugProb: probability that a path segment is a random slug rather
//     than a dictionary word, between 0 and 1.
//   - ZipfExponent: host popularity skew; 0 takes the default of 1.1.
type URLConfig struct {
	Seed         uint64
	NumHosts     int
	SlugProb     float64
	ZipfExponent float64
}

// URLs generates http(s) URL workloads with Zipf-weighted hosts.
type URLs struct {
	cfg   URLConfig
	rng   *rand.Rand
	words *Words
	hosts []string
	cum   []float64
}

// NewURLs validates the configuration and builds a generator. The host
// pool is synthesized from the faker's domain corpus and ranked; rank r
// is drawn with weight 1/(r+1)^s, matching the popularity skew of real
// host traffic.
func NewURLs(cfg URLConfig) (*URLs, error) {
	if cfg.NumHosts <= 0 || cfg.NumHosts > 1_000_000 {
		return nil, fmt.Errorf("workload: num hosts must be between 1 and 1,000,000")
	}
	if cfg.SlugProb < 0 || cfg.SlugProb > 1 {
		return nil, fmt.Errorf("workload: slug probability must be between 0 and 1")
	}
	if cfg.ZipfExponent == 0 {
		cfg.ZipfExponent = 1.1
	}

	faker := gofakeit.New(cfg.Seed)
	uniq := set.NewUnorderedSet[string]()
	hosts := make([]string, 0, cfg.NumHosts)
	for attempts := 0; len(hosts) < cfg.NumHosts && attempts < cfg.NumHosts*50; attempts++ {
		d := faker.DomainName()
		if uniq.Contain(d) {
			continue
		}
		uniq.Insert(d)
		hosts = append(hosts, d)
	}

	weights := make([]float64, len(hosts))
	for r := range weights {
		weights[r] = 1 / math.Pow(float64(r+1), cfg.ZipfExponent)
	}
	return &URLs{
		cfg:   cfg,
		rng:   newRNG(cfg.Seed),
		words: NewWords(cfg.Seed, nil),
		hosts: hosts,
		cum:   cumulate(weights),
	}, nil
}

// scheme picks http or https with realistic shares.
func (g *URLs) scheme() string {
	if g.rng.Float64() < 0.12 {
		return "http"
	}
	return "https"
}

// slug produces a short random path segment of lowercase letters,
// sometimes with digits mixed in.
func (g *URLs) slug() string {
	pool := "abcdefghijklmnopqrstuvwxyz"
	if g.rng.Float64() < 0.15 {
		pool += "0123456789"
	}
	n := 2 + g.rng.IntN(15)
	var b strings.Builder
	for range n {
		b.WriteByte(pool[g.rng.IntN(len(pool))])
	}
	return b.String()
}

// path generates a random path. The slug probability rises with each
// segment: deep paths tend toward generated identifiers rather than
// dictionary words.
func (g *URLs) path() string {
	depth := urlDepths[weightedIndex(g.rng, urlDepthCum)]
	path := "/"
	if depth == 0 {
		return path
	}
	slugP := g.cfg.SlugProb
	for range depth {
		if len(g.words.pool) == 0 || g.rng.Float64() < slugP {
			path += g.slug()
		} else {
			path += strings.ToLower(g.words.pool[g.rng.IntN(len(g.words.pool))])
		}
		slugP += (1 - slugP) * 0.2
		path += urlSeparators[weightedIndex(g.rng, urlSeparatorCum)]
	}
	if g.rng.Float64() < 0.3 {
		path += "." + urlExtensions[weightedIndex(g.rng, urlExtensionCum)]
	} else {
		path += "/"
	}
	return path
}

// Single returns one URL.
func (g *URLs) Single() string {
	host := g.hosts[weightedIndex(g.rng, g.cum)]
	return g.scheme() + "://" + host + g.path()
}

// Batch returns n URLs. A non-positive n is an invalid argument.
func (g *URLs) Batch(n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("workload: n must be positive")
	}
	out := make([]string, n)
	for i := range out {
		out[i] = g.Single()
	}
	return out, nil
}
