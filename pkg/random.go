package pesim

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Random is the single source of randomness of a simulation stream. It is
// not safe for concurrent use; each worker owns its own stream.
type Random struct {
	src rand.Source
	rng *rand.Rand
}

// NewRandom returns a generator whose draw sequence is fixed by seed and
// stream.
func NewRandom(seed, stream uint64) *Random {
	src := rand.NewPCG(seed, stream)
	return &Random{src: src, rng: rand.New(src)}
}

// Gaus draws from a normal distribution.
func (r *Random) Gaus(mean, sigma float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: sigma, Src: r.src}.Rand()
}

// Poisson draws a multiplicity with mean lambda.
func (r *Random) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: r.src}.Rand())
}

// IntN draws uniformly from [0, n).
func (r *Random) IntN(n int) int {
	return r.rng.IntN(n)
}
