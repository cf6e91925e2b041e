package workload

import (
	"fmt"
	"math/rand/v2"
	"net/netip"

	"github.com/brianvoe/gofakeit/v7"
)

// IPConfig configures an IPs generator.
//
//   - PublicShare: fraction of generated addresses drawn from public
//     space (default used by DefaultIPConfig: 0.9).
//   - PrivateWeights: relative weights for the private classes "a"
//     (10.0.0.0/8), "b" (172.16.0.0/12) and "c" (192.168.0.0/16). All
//     three keys must be present, non-negative, and sum to a positive
//     value.
//   - Seed: deterministic generator seed.
type IPConfig struct {
	PublicShare    float64
	PrivateWeights map[string]float64
	Seed           uint64
}

// DefaultIPConfig returns the stock configuration: 90% public, private
// classes weighted a:0.35, b:0.10, c:0.55.
func DefaultIPConfig(seed uint64) IPConfig {
	return IPConfig{
		PublicShare: 0.9,
		PrivateWeights: map[string]float64{
			"a": 0.35,
			"b": 0.10,
			"c": 0.55,
		},
		Seed: seed,
	}
}

// IPs generates IPv4 address workloads.
type IPs struct {
	cfg     IPConfig
	rng     *rand.Rand
	faker   *gofakeit.Faker
	classes []string
	cum     []float64
}

// NewIPs validates the configuration and builds a generator. A nil
// PrivateWeights map takes the defaults; an invalid one (missing class,
// negative weight, zero sum) is an invalid argument.
func NewIPs(cfg IPConfig) (*IPs, error) {
	if cfg.PrivateWeights == nil {
		cfg.PrivateWeights = DefaultIPConfig(cfg.Seed).PrivateWeights
	}
	classes := []string{"a", "b", "c"}
	weights := make([]float64, 0, len(classes))
	sum := 0.0
	for _, cls := range classes {
		w, ok := cfg.PrivateWeights[cls]
		if !ok {
			return nil, fmt.Errorf("workload: private weights missing class %q", cls)
		}
		if w < 0 {
			return nil, fmt.Errorf("workload: private weights must be non-negative")
		}
		weights = append(weights, w)
		sum += w
	}
	if sum == 0 {
		return nil, fmt.Errorf("workload: sum of private weights must be > 0")
	}
	if cfg.PublicShare < 0 || cfg.PublicShare > 1 {
		return nil, fmt.Errorf("workload: public share must be between 0 and 1")
	}
	return &IPs{
		cfg:     cfg,
		rng:     newRNG(cfg.Seed),
		faker:   gofakeit.New(cfg.Seed),
		classes: classes,
		cum:     cumulate(weights),
	}, nil
}

// privateAddr draws an address from the weighted private class blocks.
func (g *IPs) privateAddr() string {
	switch g.classes[weightedIndex(g.rng, g.cum)] {
	case "a":
		return fmt.Sprintf("10.%d.%d.%d", g.rng.IntN(256), g.rng.IntN(256), g.rng.IntN(256))
	case "b":
		return fmt.Sprintf("172.%d.%d.%d", 16+g.rng.IntN(16), g.rng.IntN(256), g.rng.IntN(256))
	default:
		return fmt.Sprintf("192.168.%d.%d", g.rng.IntN(256), g.rng.IntN(256))
	}
}

// publicAddr draws addresses from the faker until one is routable
// public space.
func (g *IPs) publicAddr() string {
	for {
		s := g.faker.IPv4Address()
		addr, err := netip.ParseAddr(s)
		if err != nil {
			continue
		}
		if addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsMulticast() || addr.IsUnspecified() {
			continue
		}
		return s
	}
}

// Single returns one IPv4 address, public with probability PublicShare.
func (g *IPs) Single() string {
	if g.rng.Float64() > g.cfg.PublicShare {
		return g.privateAddr()
	}
	return g.publicAddr()
}

// Batch returns n addresses. A non-positive n is an invalid argument.
func (g *IPs) Batch(n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("workload: n must be positive")
	}
	out := make([]string, n)
	for i := range out {
		out[i] = g.Single()
	}
	return out, nil
}
